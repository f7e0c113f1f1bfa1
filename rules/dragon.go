package rules

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
	"github.com/samber/lo"
)

// dragonMove wraps a dragontoothmg move so it satisfies Move.
type dragonMove struct {
	move dragontoothmg.Move
}

func (m dragonMove) String() string {
	mv := m.move
	return mv.String()
}

// dragonPosition keeps the board by value; Clone is a plain struct copy.
type dragonPosition struct {
	board dragontoothmg.Board
}

func newDragonPosition(fen string) (pos Position, err error) {
	defer func() {
		if r := recover(); r != nil {
			pos = nil
			err = fmt.Errorf("%w: %v", ErrInvalidPosition, r)
		}
	}()
	return &dragonPosition{board: dragontoothmg.ParseFen(fen)}, nil
}

func (p *dragonPosition) LegalMoves() []Move {
	return lo.Map(p.board.GenerateLegalMoves(), func(m dragontoothmg.Move, _ int) Move {
		return dragonMove{move: m}
	})
}

func (p *dragonPosition) Apply(m Move) func() {
	dm, ok := m.(dragonMove)
	if !ok {
		panic(fmt.Sprintf("rules: move %v does not belong to the dragon backend", m))
	}
	return p.board.Apply(dm.move)
}

func (p *dragonPosition) Clone() Position {
	c := *p
	return &c
}

func (p *dragonPosition) WhiteToMove() bool { return p.board.Wtomove }

func (p *dragonPosition) IsCheckmate() bool {
	return len(p.board.GenerateLegalMoves()) == 0 && p.board.OurKingInCheck()
}

func (p *dragonPosition) IsStalemate() bool {
	return len(p.board.GenerateLegalMoves()) == 0 && !p.board.OurKingInCheck()
}

func (p *dragonPosition) Status() Status {
	noMoves := len(p.board.GenerateLegalMoves()) == 0
	inCheck := p.board.OurKingInCheck()
	board := p.Board()
	return classify(noMoves && inCheck, noMoves && !inCheck, p.board.Wtomove, &board, halfmoveClock(p.FEN()))
}

func (p *dragonPosition) Key() Key { return keyFromFEN(p.FEN()) }

func (p *dragonPosition) FEN() string { return p.board.ToFen() }

func (p *dragonPosition) Board() [64]Piece {
	var out [64]Piece
	for sq := uint8(0); sq < 64; sq++ {
		if pt, ok := dragonPieceAt(sq, &p.board.White); ok {
			out[sq] = Piece{Type: pt, White: true}
		} else if pt, ok := dragonPieceAt(sq, &p.board.Black); ok {
			out[sq] = Piece{Type: pt}
		}
	}
	return out
}

func dragonPieceAt(sq uint8, bitboards *dragontoothmg.Bitboards) (PieceType, bool) {
	mask := uint64(1) << sq
	switch {
	case bitboards.Pawns&mask != 0:
		return Pawn, true
	case bitboards.Knights&mask != 0:
		return Knight, true
	case bitboards.Bishops&mask != 0:
		return Bishop, true
	case bitboards.Rooks&mask != 0:
		return Rook, true
	case bitboards.Queens&mask != 0:
		return Queen, true
	case bitboards.Kings&mask != 0:
		return King, true
	}
	return NoPieceType, false
}
