package engine

import "github.com/rs/zerolog"

// CutStatistics collects counts for each search event of a session.
type CutStatistics struct {
	Nodes       uint64
	Leaves      uint64
	TTCutoffs   uint64
	BetaCutoffs uint64
	// AlphaCutoffs counts minimising nodes that stopped at or below alpha.
	AlphaCutoffs uint64
	StaticHits   uint64
}

func (s *Session) Stats() CutStatistics { return s.stats }

func (c CutStatistics) dict() *zerolog.Event {
	return zerolog.Dict().
		Uint64("nodes", c.Nodes).
		Uint64("leaves", c.Leaves).
		Uint64("tt_cutoffs", c.TTCutoffs).
		Uint64("beta_cutoffs", c.BetaCutoffs).
		Uint64("alpha_cutoffs", c.AlphaCutoffs).
		Uint64("static_hits", c.StaticHits)
}
