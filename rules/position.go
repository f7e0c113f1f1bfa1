// Package rules is the contract between the solver and a chess rules engine.
//
// The solver never generates moves itself. It talks to a Position, which is
// backed either by dragontoothmg (in-place apply with an undo closure) or by
// notnil/chess (immutable snapshots). Both backends enumerate legal moves in a
// fixed order for a given position, which the search relies on for its
// tie-breaks.
package rules

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPosition is returned when a FEN cannot be turned into a position.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrUnknownBackend is returned by ParseBackend for names it does not know.
	ErrUnknownBackend = errors.New("unknown rules backend")
)

// Backend selects the rules library behind a Position.
type Backend string

const (
	Dragon Backend = "dragon"
	Notnil Backend = "notnil"
)

// Backends lists every supported backend, default first.
var Backends = []Backend{Dragon, Notnil}

func ParseBackend(name string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(name))) {
	case "", Dragon:
		return Dragon, nil
	case Notnil:
		return Notnil, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// Move is an opaque move handle. String returns long algebraic notation
// (e2e4, e7e8q), which is also what two moves are compared by.
type Move interface {
	fmt.Stringer
}

// SameMove reports whether a and b denote the same move. Nil only equals nil.
func SameMove(a, b Move) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

// Key identifies a position for caching: piece placement, side to move,
// castling rights and en-passant target. Move clocks are not part of it.
type Key string

// Status is the terminal classification of a position.
type Status uint8

const (
	Ongoing Status = iota
	WhiteWins
	BlackWins
	Draw
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case WhiteWins:
		return "white-wins"
	case BlackWins:
		return "black-wins"
	case Draw:
		return "draw"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece on a square. The zero value is an empty square.
type Piece struct {
	Type  PieceType
	White bool
}

// Position is a mutable handle on a chess position.
//
// Apply changes the position in place and returns the closure that takes the
// move back; undo closures must run in reverse order of the Apply calls that
// produced them. Clone returns an independent copy, so a caller can choose
// copy-on-branch instead of apply/undo. Mixing the two on the same handle
// within one traversal is not supported.
type Position interface {
	// LegalMoves returns the legal moves in the backend's deterministic order.
	LegalMoves() []Move
	Apply(m Move) (undo func())
	Clone() Position

	WhiteToMove() bool
	IsCheckmate() bool
	IsStalemate() bool
	Status() Status

	Key() Key
	FEN() string
	// Board is indexed a1=0, b1=1, ..., h8=63.
	Board() [64]Piece
}

// Parse builds a Position for fen on the requested backend. Malformed input
// is reported with an error wrapping ErrInvalidPosition.
func Parse(fen string, backend Backend) (Position, error) {
	normalized, err := validateFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	if err := checkOpponentSafe(normalized); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	switch backend {
	case "", Dragon:
		return newDragonPosition(normalized)
	case Notnil:
		return newNotnilPosition(normalized)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, string(backend))
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(fen string, backend Backend) Position {
	pos, err := Parse(fen, backend)
	if err != nil {
		panic(err)
	}
	return pos
}
