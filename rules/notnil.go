package rules

import (
	"fmt"

	"github.com/notnil/chess"
	"github.com/samber/lo"
)

type notnilMove struct {
	move *chess.Move
}

func (m notnilMove) String() string { return m.move.String() }

// notnilPosition holds an immutable chess.Position. Apply swaps in the
// successor snapshot and the undo closure swaps the old one back, so Clone
// only has to copy the pointer.
type notnilPosition struct {
	pos *chess.Position
}

func newNotnilPosition(fen string) (Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	return &notnilPosition{pos: chess.NewGame(opt).Position()}, nil
}

func (p *notnilPosition) LegalMoves() []Move {
	return lo.Map(p.pos.ValidMoves(), func(m *chess.Move, _ int) Move {
		return notnilMove{move: m}
	})
}

func (p *notnilPosition) Apply(m Move) func() {
	nm, ok := m.(notnilMove)
	if !ok {
		panic(fmt.Sprintf("rules: move %v does not belong to the notnil backend", m))
	}
	prev := p.pos
	p.pos = prev.Update(nm.move)
	return func() { p.pos = prev }
}

func (p *notnilPosition) Clone() Position {
	return &notnilPosition{pos: p.pos}
}

func (p *notnilPosition) WhiteToMove() bool { return p.pos.Turn() == chess.White }

func (p *notnilPosition) IsCheckmate() bool { return p.pos.Status() == chess.Checkmate }

func (p *notnilPosition) IsStalemate() bool { return p.pos.Status() == chess.Stalemate }

func (p *notnilPosition) Status() Status {
	method := p.pos.Status()
	board := p.Board()
	return classify(method == chess.Checkmate, method == chess.Stalemate, p.WhiteToMove(), &board, halfmoveClock(p.FEN()))
}

func (p *notnilPosition) Key() Key { return keyFromFEN(p.FEN()) }

func (p *notnilPosition) FEN() string { return p.pos.String() }

func (p *notnilPosition) Board() [64]Piece {
	var out [64]Piece
	board := p.pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		pc := board.Piece(sq)
		if pc == chess.NoPiece {
			continue
		}
		out[int(sq)] = Piece{Type: notnilPieceType(pc.Type()), White: pc.Color() == chess.White}
	}
	return out
}

func notnilPieceType(pt chess.PieceType) PieceType {
	switch pt {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	}
	return NoPieceType
}
