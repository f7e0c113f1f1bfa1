package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

var errOpponentInCheck = errors.New("side not to move is in check")

// checkOpponentSafe rejects positions where the side that just moved left
// its own king in check. Both backends assume this never happens; the dragon
// move generator indexes past the board when the enemy king can be taken.
// The check runs on dragontoothmg for either backend: the FEN is flipped to
// the other side and asked whether that king is attacked.
func checkOpponentSafe(fen string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rules engine rejected position: %v", r)
		}
	}()
	fields := strings.Fields(fen)
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	// Castling and en passant do not affect attacks.
	fields[2], fields[3] = "-", "-"
	board := dragontoothmg.ParseFen(strings.Join(fields, " "))
	if board.OurKingInCheck() {
		return errOpponentInCheck
	}
	return nil
}
