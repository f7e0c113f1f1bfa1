package rules

import (
	"errors"
	"strconv"
	"strings"
)

// StartPos is the FEN string for the standard initial chess position.
const StartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// pieceFromChar converts a FEN character to a Piece. ok is false for
// characters that are not piece letters.
func pieceFromChar(ch rune) (p Piece, ok bool) {
	white := ch >= 'A' && ch <= 'Z'
	switch ch {
	case 'P', 'p':
		return Piece{Type: Pawn, White: white}, true
	case 'N', 'n':
		return Piece{Type: Knight, White: white}, true
	case 'B', 'b':
		return Piece{Type: Bishop, White: white}, true
	case 'R', 'r':
		return Piece{Type: Rook, White: white}, true
	case 'Q', 'q':
		return Piece{Type: Queen, White: white}, true
	case 'K', 'k':
		return Piece{Type: King, White: white}, true
	}
	return Piece{}, false
}

// validateFEN checks the shape of a FEN string and returns it in six-field
// form. Four-field input gets "0 1" clocks appended. The rules libraries
// behind the backends do not reject malformed input on their own, so
// everything they would trip over is caught here.
func validateFEN(fen string) (string, error) {
	fields := strings.Fields(fen)
	if len(fields) != 4 && len(fields) != 6 {
		return "", errors.New("expected 4 or 6 fields")
	}

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return "", errors.New("incorrect number of ranks")
	}
	var board [64]Piece
	var whiteKings, blackKings int
	for i, rankStr := range ranks {
		if len(rankStr) == 0 {
			return "", errors.New("empty rank description")
		}
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				if file > 8 {
					return "", errors.New("too many squares in rank")
				}
				continue
			}
			piece, ok := pieceFromChar(ch)
			if !ok {
				return "", errors.New("unrecognized piece character")
			}
			if file >= 8 {
				return "", errors.New("too many squares in rank")
			}
			if piece.Type == Pawn && (rank == 0 || rank == 7) {
				return "", errors.New("pawn on first or last rank")
			}
			if piece.Type == King {
				if piece.White {
					whiteKings++
				} else {
					blackKings++
				}
			}
			board[rank*8+file] = piece
			file++
		}
		if file != 8 {
			return "", errors.New("rank does not cover 8 squares")
		}
	}
	if whiteKings != 1 || blackKings != 1 {
		return "", errors.New("each side needs exactly one king")
	}
	if kingsTouch(&board) {
		return "", errors.New("kings on adjacent squares")
	}

	// 2. Side to move
	if fields[1] != "w" && fields[1] != "b" {
		return "", errors.New("side to move must be w or b")
	}

	// 3. Castling rights
	if fields[2] != "-" {
		seen := map[rune]bool{}
		for _, ch := range fields[2] {
			if !strings.ContainsRune("KQkq", ch) || seen[ch] {
				return "", errors.New("invalid castling rights")
			}
			seen[ch] = true
			if !castlingPiecesHome(&board, ch) {
				return "", errors.New("castling right without king and rook on their home squares")
			}
		}
	}

	// 4. En passant target
	if ep := fields[3]; ep != "-" {
		if len(ep) != 2 || ep[0] < 'a' || ep[0] > 'h' || (ep[1] != '3' && ep[1] != '6') {
			return "", errors.New("invalid en passant square")
		}
		if !enPassantConsistent(&board, int(ep[0]-'a'), int(ep[1]-'1'), fields[1] == "w") {
			return "", errors.New("en passant square does not follow a double pawn push")
		}
	}

	// 5-6. Move clocks
	if len(fields) == 4 {
		fields = append(fields, "0", "1")
	}
	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 || halfmove > 255 {
		return "", errors.New("invalid halfmove clock")
	}
	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return "", errors.New("invalid fullmove number")
	}
	return strings.Join(fields, " "), nil
}

func kingsTouch(board *[64]Piece) bool {
	white, black := -1, -1
	for sq, pc := range board {
		if pc.Type == King {
			if pc.White {
				white = sq
			} else {
				black = sq
			}
		}
	}
	df := white%8 - black%8
	dr := white/8 - black/8
	return df >= -1 && df <= 1 && dr >= -1 && dr <= 1
}

// castlingPiecesHome reports whether the king and rook a castling letter
// refers to still stand on e1/h1, e1/a1, e8/h8 or e8/a8.
func castlingPiecesHome(board *[64]Piece, right rune) bool {
	var kingSq, rookSq int
	white := right == 'K' || right == 'Q'
	switch right {
	case 'K':
		kingSq, rookSq = 4, 7
	case 'Q':
		kingSq, rookSq = 4, 0
	case 'k':
		kingSq, rookSq = 60, 63
	case 'q':
		kingSq, rookSq = 60, 56
	default:
		return false
	}
	return board[kingSq] == Piece{Type: King, White: white} &&
		board[rookSq] == Piece{Type: Rook, White: white}
}

// enPassantConsistent checks that the target square sits behind a pawn of
// the side that just moved, on rank 6 with White to move or rank 3 with
// Black to move, and that the pawn's start and skipped squares are empty.
func enPassantConsistent(board *[64]Piece, file, rank int, whiteToMove bool) bool {
	pawnRank, startRank := 3, 1
	if whiteToMove {
		if rank != 5 {
			return false
		}
		pawnRank, startRank = 4, 6
	} else if rank != 2 {
		return false
	}
	pawn := board[pawnRank*8+file]
	return pawn == Piece{Type: Pawn, White: !whiteToMove} &&
		board[rank*8+file] == Piece{} &&
		board[startRank*8+file] == Piece{}
}

// keyFromFEN drops the clocks from a full FEN.
func keyFromFEN(fen string) Key {
	fields := strings.Fields(fen)
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return Key(strings.Join(fields, " "))
}

// halfmoveClock reads the fifth FEN field, 0 when absent.
func halfmoveClock(fen string) int {
	fields := strings.Fields(fen)
	if len(fields) < 5 {
		return 0
	}
	n, err := strconv.Atoi(fields[4])
	if err != nil {
		return 0
	}
	return n
}
