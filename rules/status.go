package rules

// SeventyFiveMoveLimit is the halfmove clock at which a game is drawn
// without a claim.
const SeventyFiveMoveLimit = 150

// classify turns the raw facts about a position into a Status. Checkmate
// wins over every draw rule.
func classify(checkmate, stalemate, whiteToMove bool, board *[64]Piece, halfmove int) Status {
	switch {
	case checkmate && whiteToMove:
		return BlackWins
	case checkmate:
		return WhiteWins
	case stalemate:
		return Draw
	case insufficientMaterial(board):
		return Draw
	case halfmove >= SeventyFiveMoveLimit:
		return Draw
	}
	return Ongoing
}

// insufficientMaterial reports dead positions: bare kings, a single minor
// piece, or only bishops that all stand on one square colour.
func insufficientMaterial(board *[64]Piece) bool {
	var minors, knights int
	var bishopsOn [2]int
	for sq, pc := range board {
		switch pc.Type {
		case Pawn, Rook, Queen:
			return false
		case Knight:
			knights++
			minors++
		case Bishop:
			minors++
			bishopsOn[squareColor(sq)]++
		}
	}
	if minors <= 1 {
		return true
	}
	return knights == 0 && (bishopsOn[0] == 0 || bishopsOn[1] == 0)
}

// squareColor is 0 for dark squares (a1) and 1 for light squares.
func squareColor(sq int) int {
	return (sq/8 + sq%8) % 2
}
