package engine

import "chess-tactics/rules"

// AlphaBeta returns the fail-soft minimax value of pos, searched depth plies
// deep inside the window (alpha, beta). White maximises and Black minimises
// the same White-relative score. Every child is searched on its own clone,
// so pos is never modified. Results are written to the session table.
func (s *Session) AlphaBeta(pos rules.Position, depth int, alpha, beta Score) Score {
	if depth < 0 {
		depth = 0
	}
	return s.alphabeta(pos, alpha, beta, depth, 0)
}

func (s *Session) alphabeta(pos rules.Position, alpha, beta Score, depth int, ply int) Score {
	s.stats.Nodes++

	if s.budget.exceeded(s.stats.Nodes) {
		return s.Evaluate(pos)
	}

	/* INIT KEY VARIABLES */
	var key = pos.Key()
	var isRoot = ply == 0

	// Horizon, mate, stalemate and dead draws are all scored statically.
	if depth == 0 || pos.Status() != rules.Ongoing {
		s.stats.Leaves++
		score := s.Evaluate(pos)
		s.TT.storeLeaf(key, depth, score)
		return score
	}

	/*
		TRANSPOSITION TABLE LOOKUP
	*/
	if ttScore, usable := s.TT.useEntry(key, depth, &alpha, &beta); usable {
		s.stats.TTCutoffs++
		return ttScore
	}

	// Window the children actually see, after the table narrowed it.
	alphaOrig, betaOrig := alpha, beta
	maximising := pos.WhiteToMove()
	bestScore := Infinity
	if maximising {
		bestScore = -Infinity
	}

	for _, move := range pos.LegalMoves() {
		child := pos.Clone()
		child.Apply(move)
		score := s.alphabeta(child, alpha, beta, depth-1, ply+1)

		if maximising {
			if score > bestScore {
				bestScore = score
				if isRoot {
					s.rootBest, s.rootBestScore = move, score
				}
			}
			alpha = Max(alpha, bestScore)
			if bestScore >= beta {
				s.stats.BetaCutoffs++
				break
			}
		} else {
			if score < bestScore {
				bestScore = score
				if isRoot {
					s.rootBest, s.rootBestScore = move, score
				}
			}
			beta = Min(beta, bestScore)
			if bestScore <= alpha {
				s.stats.AlphaCutoffs++
				break
			}
		}

		if s.budget.stopped {
			break
		}
	}

	// A cut-short search must not leave entries behind.
	if s.budget.stopped {
		return bestScore
	}
	s.TT.storeEntry(key, depth, bestScore, alphaOrig, betaOrig)
	return bestScore
}
