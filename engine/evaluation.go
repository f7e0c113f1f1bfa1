package engine

import "chess-tactics/rules"

// Score is always from White's point of view.
type Score int32

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	WinWhite  Score = 9999
	WinBlack  Score = -9999
	DrawScore Score = 0

	// Infinity bounds the alpha-beta window; no evaluation reaches it.
	Infinity Score = 1 << 20
)

var PieceValue = [7]Score{
	rules.NoPieceType: 0,
	rules.Pawn:        1,
	rules.Knight:      3,
	rules.Bishop:      3,
	rules.Rook:        5,
	rules.Queen:       9,
	rules.King:        100,
}

// Material sums piece values, White positive and Black negative.
func Material(board [64]rules.Piece) Score {
	var score Score
	for _, pc := range board {
		if pc.White {
			score += PieceValue[pc.Type]
		} else {
			score -= PieceValue[pc.Type]
		}
	}
	return score
}

// StaticScore scores a position without search: the terminal sentinel when
// the game is decided, the material balance otherwise.
func StaticScore(pos rules.Position) Score {
	switch pos.Status() {
	case rules.WhiteWins:
		return WinWhite
	case rules.BlackWins:
		return WinBlack
	case rules.Draw:
		return DrawScore
	}
	return Material(pos.Board())
}

// Evaluate returns the session's cached score for pos, falling back to
// StaticScore. pos is not modified.
func (s *Session) Evaluate(pos rules.Position) Score {
	key := pos.Key()
	if score, ok := s.TT.probeStatic(key); ok {
		s.stats.StaticHits++
		return score
	}
	score := StaticScore(pos)
	s.TT.storeStatic(key, score)
	return score
}
