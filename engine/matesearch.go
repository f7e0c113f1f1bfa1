package engine

import "chess-tactics/rules"

// MateInOne returns the first legal move, in the position's enumeration
// order, that checkmates the opponent, or nil. Each move is applied and taken
// back before the next one is tried, including the one that is returned.
func MateInOne(pos rules.Position) rules.Move {
	for _, m := range pos.LegalMoves() {
		undo := pos.Apply(m)
		mate := pos.IsCheckmate()
		undo()
		if mate {
			return m
		}
	}
	return nil
}

// MateInTwo returns the first move after which every reply still allows a
// mate in one, or nil. A move that mates immediately qualifies; a move that
// leaves the opponent stalemated does not.
func MateInTwo(pos rules.Position) rules.Move {
	return mateInTwo(pos, false)
}

// MateInTwoLenient is MateInTwo that also accepts a first move leaving the
// opponent without replies when it is stalemate. Legacy configurations use it.
func MateInTwoLenient(pos rules.Position) rules.Move {
	return mateInTwo(pos, true)
}

func mateInTwo(pos rules.Position, acceptStalemate bool) rules.Move {
	for _, first := range pos.LegalMoves() {
		undo := pos.Apply(first)
		forced := forcesMate(pos, acceptStalemate)
		undo()
		if forced {
			return first
		}
	}
	return nil
}

// forcesMate reports whether the side to move in pos, having just been moved
// against, is mated now or after any reply.
func forcesMate(pos rules.Position, acceptStalemate bool) bool {
	replies := pos.LegalMoves()
	if len(replies) == 0 {
		return acceptStalemate || pos.IsCheckmate()
	}
	for _, reply := range replies {
		undo := pos.Apply(reply)
		mate := MateInOne(pos) != nil
		undo()
		if !mate {
			return false
		}
	}
	return true
}
