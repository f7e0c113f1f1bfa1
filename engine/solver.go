package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chess-tactics/rules"
)

// Outcome says how the solver arrived at its result.
type Outcome uint8

const (
	// NoMove means there is nothing to play: no legal moves, or no root move
	// matched the searched value.
	NoMove Outcome = iota
	ForcedMate
	SearchMove
	// SearchIncomplete means the budget ran out; Move is the best root move
	// seen before it did.
	SearchIncomplete
)

func (o Outcome) String() string {
	switch o {
	case NoMove:
		return "no-move"
	case ForcedMate:
		return "forced-mate"
	case SearchMove:
		return "search"
	case SearchIncomplete:
		return "incomplete"
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

// DrawishAdvisory is attached to search moves whose cached value is within
// one pawn of equality.
const DrawishAdvisory = "move may not be a genuine tactic"

type Result struct {
	Outcome  Outcome
	Move     rules.Move
	Score    Score
	Advisory string
	Nodes    uint64
	Depth    int
	Session  uuid.UUID
}

func (r Result) String() string {
	if r.Move == nil {
		return fmt.Sprintf("%v (none)", r.Outcome)
	}
	s := fmt.Sprintf("%v %v score %d depth %d nodes %d", r.Outcome, r.Move, r.Score, r.Depth, r.Nodes)
	if r.Advisory != "" {
		s += " (" + r.Advisory + ")"
	}
	return s
}

func isDrawish(score Score) bool {
	return score >= -1 && score <= 1
}

// Solve picks a move for pos: the first legal move with an advisory when the
// game is already drawn, a forced mate in two when there is one, otherwise the
// first root move whose cached value equals the alpha-beta root value. The session table is kept, so successive calls on related positions
// reuse it; call Reset before an unrelated one. pos is left as it was found.
func (s *Session) Solve(ctx context.Context, pos rules.Position) Result {
	res := Result{Session: s.ID}
	startTime := time.Now()

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		res.Score = StaticScore(pos)
		return res
	}
	// A dead or 75-move draw still has moves to play but nothing to search for.
	if pos.Status() != rules.Ongoing {
		res.Outcome = SearchMove
		res.Move = moves[0]
		res.Score = StaticScore(pos)
		res.Advisory = DrawishAdvisory
		s.log.Debug().Str("event", "drawish-move").Str("fen", pos.FEN()).Stringer("move", res.Move).Msg("drawn root")
		return res
	}

	if mv := s.mateInTwo(pos); mv != nil {
		res.Outcome = ForcedMate
		res.Move = mv
		if pos.WhiteToMove() {
			res.Score = WinWhite
		} else {
			res.Score = WinBlack
		}
		s.log.Debug().Str("event", "mate-found").Str("fen", pos.FEN()).Stringer("move", mv).Send()
		return res
	}

	s.budget.start(ctx, s.cfg.NodeLimit, s.cfg.MoveTime)
	defer s.budget.clear()
	s.rootBest = nil
	nodesBefore := s.stats.Nodes

	root := s.alphabeta(pos, -Infinity, Infinity, s.cfg.Depth, 0)
	res.Score = root
	res.Depth = s.cfg.Depth
	res.Nodes = s.stats.Nodes - nodesBefore

	if s.budget.stopped {
		res.Outcome = SearchIncomplete
		res.Move = s.rootBest
		if res.Move == nil {
			res.Move = moves[0]
		} else {
			res.Score = s.rootBestScore
		}
		s.log.Debug().Str("event", "search-incomplete").
			Str("fen", pos.FEN()).
			Stringer("move", res.Move).
			Uint64("nodes", res.Nodes).
			Dur("elapsed", time.Since(startTime)).
			Send()
		return res
	}

	mv, childScore, ok := s.matchRoot(pos.Clone(), root)
	if !ok {
		s.log.Debug().Str("event", "no-root-match").Str("fen", pos.FEN()).Int32("score", int32(root)).Send()
		return res
	}
	res.Outcome = SearchMove
	res.Move = mv
	if isDrawish(childScore) {
		res.Advisory = DrawishAdvisory
		s.log.Debug().Str("event", "drawish-move").Stringer("move", mv).Int32("score", int32(childScore)).Send()
	}
	s.log.Debug().Str("event", "search-complete").
		Str("fen", pos.FEN()).
		Stringer("move", mv).
		Int32("score", int32(root)).
		Int("depth", res.Depth).
		Dict("stats", s.stats.dict()).
		Dur("elapsed", time.Since(startTime)).
		Send()
	return res
}

func (s *Session) mateInTwo(pos rules.Position) rules.Move {
	if s.cfg.LenientMates {
		return MateInTwoLenient(pos)
	}
	return MateInTwo(pos)
}

// matchRoot walks the root moves of probe in order and returns the first one
// whose child entry holds the root value, along with that cached value. Each
// probe move is taken back before the next is tried.
func (s *Session) matchRoot(probe rules.Position, root Score) (rules.Move, Score, bool) {
	whiteRoot := probe.WhiteToMove()
	for _, m := range probe.LegalMoves() {
		undo := probe.Apply(m)
		e, found := s.TT.Lookup(probe.Key())
		undo()
		if found && s.TT.rootMatch(e, root, whiteRoot) {
			return m, e.Score, true
		}
	}
	return nil, 0, false
}

// Solve runs a fresh session on pos.
func Solve(ctx context.Context, pos rules.Position, cfg Config) (Result, error) {
	s, err := NewSession(cfg)
	if err != nil {
		return Result{}, err
	}
	return s.Solve(ctx, pos), nil
}

// SolveFEN parses fen with the given backend and solves it in a fresh
// session. Parse failures are returned as is.
func SolveFEN(ctx context.Context, fen string, backend rules.Backend, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	pos, err := rules.Parse(fen, backend)
	if err != nil {
		return Result{}, err
	}
	return Solve(ctx, pos, cfg)
}
