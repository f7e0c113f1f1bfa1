package engine

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"chess-tactics/rules"
)

// Session owns the transposition table and counters shared by the
// evaluator, the search and the solver. A session is used by one goroutine
// at a time; unrelated searches either get their own session or call Reset
// in between.
type Session struct {
	ID uuid.UUID
	TT *Table

	cfg    Config
	log    zerolog.Logger
	stats  CutStatistics
	budget budget

	// Best root move of the running search, kept for incomplete results.
	rootBest      rules.Move
	rootBestScore Score
}

func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	id := uuid.New()
	return &Session{
		ID:  id,
		TT:  NewTable(cfg.Table, cfg.MaxEntries),
		cfg: cfg,
		log: cfg.Logger.With().Str("session", id.String()).Logger(),
	}, nil
}

func (s *Session) Config() Config { return s.cfg }

// Reset clears the table and counters so the session can serve an
// unrelated position.
func (s *Session) Reset() {
	s.TT.Reset()
	s.stats = CutStatistics{}
	s.budget.clear()
	s.rootBest = nil
	s.rootBestScore = 0
}
