package engine

import (
	"testing"

	"chess-tactics/rules"
)

var oraclePositions = []string{
	startPosition,
	hangingQueen,
	hangingQueenBlack,
	rookMateInTwo,
	backRankMateInOne,
	foolsMateInOne,
	pawnsOnly,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3",
}

// minimax is a full-width search with no pruning and no table.
func minimax(pos rules.Position, depth int) Score {
	if depth == 0 || pos.Status() != rules.Ongoing {
		return StaticScore(pos)
	}
	white := pos.WhiteToMove()
	best := Infinity
	if white {
		best = -Infinity
	}
	for _, m := range pos.LegalMoves() {
		undo := pos.Apply(m)
		score := minimax(pos, depth-1)
		undo()
		if white {
			best = Max(best, score)
		} else {
			best = Min(best, score)
		}
	}
	return best
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	for _, backend := range rules.Backends {
		for _, mode := range []TableMode{TaggedTable, LegacyTable} {
			for _, fen := range oraclePositions {
				for depth := 1; depth <= 2; depth++ {
					pos := mustPosition(t, fen, backend)
					want := minimax(pos, depth)
					s := newTestSession(t, mode, depth)
					if got := s.AlphaBeta(pos, depth, -Infinity, Infinity); got != want {
						t.Errorf("%s/%s depth %d: AlphaBeta(%q) = %d, want %d", backend, mode, depth, fen, got, want)
					}
				}
			}
		}
	}
}

func TestAlphaBetaDepthThreeTagged(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping depth three oracle in short mode")
	}
	for _, fen := range []string{hangingQueen, rookMateInTwo, pawnsOnly} {
		pos := mustPosition(t, fen, rules.Dragon)
		want := minimax(pos, 3)
		s := newTestSession(t, TaggedTable, 3)
		if got := s.AlphaBeta(pos, 3, -Infinity, Infinity); got != want {
			t.Errorf("AlphaBeta(%q, 3) = %d, want %d", fen, got, want)
		}
	}
}

func TestAlphaBetaRepeatedSearchIsStable(t *testing.T) {
	// The second call runs against the table filled by the first.
	for _, backend := range rules.Backends {
		pos := mustPosition(t, oraclePositions[7], backend)
		s := newTestSession(t, TaggedTable, 2)
		first := s.AlphaBeta(pos, 2, -Infinity, Infinity)
		second := s.AlphaBeta(pos, 2, -Infinity, Infinity)
		if first != second {
			t.Fatalf("%s: repeated search changed value: %d then %d", backend, first, second)
		}
		if s.Stats().TTCutoffs == 0 {
			t.Fatalf("%s: expected the second search to hit the table", backend)
		}
	}
}

func TestAlphaBetaDoesNotModifyPosition(t *testing.T) {
	for _, backend := range rules.Backends {
		for _, fen := range oraclePositions {
			pos := mustPosition(t, fen, backend)
			before := pos.FEN()
			s := newTestSession(t, TaggedTable, 2)
			s.AlphaBeta(pos, 2, -Infinity, Infinity)
			if pos.FEN() != before {
				t.Fatalf("%s: AlphaBeta modified position: %s -> %s", backend, before, pos.FEN())
			}
		}
	}
}

func TestAlphaBetaTerminalRoot(t *testing.T) {
	cases := []struct {
		fen  string
		want Score
	}{
		{checkmatePosition, WinBlack},
		{stalematePosition, DrawScore},
		{seventyFiveMoves, DrawScore},
	}
	for _, tc := range cases {
		pos := mustPosition(t, tc.fen, rules.Dragon)
		s := newTestSession(t, TaggedTable, 2)
		if got := s.AlphaBeta(pos, 2, -Infinity, Infinity); got != tc.want {
			t.Errorf("AlphaBeta(%q) = %d, want %d", tc.fen, got, tc.want)
		}
	}
}

func TestAlphaBetaFailSoftBounds(t *testing.T) {
	// A window that excludes the true value still yields a bound on the
	// correct side of it.
	pos := mustPosition(t, hangingQueen, rules.Dragon)

	s := newTestSession(t, TaggedTable, 2)
	if got := s.AlphaBeta(pos, 2, 10, 20); got > 10 {
		t.Fatalf("fail-low search returned %d, want <= 10", got)
	}
	s = newTestSession(t, TaggedTable, 2)
	if got := s.AlphaBeta(pos, 2, -20, 0); got < 0 {
		t.Fatalf("fail-high search returned %d, want >= 0", got)
	}
}

func TestAlphaBetaPrunes(t *testing.T) {
	pos := mustPosition(t, oraclePositions[7], rules.Dragon)
	s := newTestSession(t, TaggedTable, 2)
	s.AlphaBeta(pos, 2, -Infinity, Infinity)
	// Full width at depth two visits 1 + 48 + 2039 nodes.
	if s.Stats().Nodes >= 1+48+2039 {
		t.Fatalf("expected pruning, visited %d nodes", s.Stats().Nodes)
	}
	if s.Stats().BetaCutoffs+s.Stats().AlphaCutoffs == 0 {
		t.Fatalf("expected at least one cutoff")
	}
}
