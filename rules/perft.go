package rules

// Perft counts leaf nodes (move sequences) from the position for a given depth.
// It walks the tree with Apply and the returned undo closures, so pos is
// unchanged afterwards.
func Perft(pos Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var nodes uint64
	for _, m := range pos.LegalMoves() {
		undo := pos.Apply(m)
		nodes += Perft(pos, depth-1)
		undo()
	}
	return nodes
}

// PerftDivide returns, for each legal root move in long algebraic form, the
// number of leaf nodes reachable from that move at the given depth.
func PerftDivide(pos Position, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range pos.LegalMoves() {
		undo := pos.Apply(m)
		result[m.String()] = Perft(pos, depth-1)
		undo()
	}
	return result
}
