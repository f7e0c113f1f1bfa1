package engine

import (
	"fmt"
	"strings"

	"chess-tactics/rules"
)

// Bound says how a stored search score relates to the true value.
type Bound int8

const (
	// AlphaFlag marks an upper bound: the node failed low.
	AlphaFlag Bound = iota
	// BetaFlag marks a lower bound: the node failed high.
	BetaFlag
	ExactFlag
)

func (b Bound) String() string {
	switch b {
	case AlphaFlag:
		return "upper"
	case BetaFlag:
		return "lower"
	case ExactFlag:
		return "exact"
	}
	return fmt.Sprintf("bound(%d)", int8(b))
}

// TableMode selects how cached scores are trusted.
type TableMode uint8

const (
	// TaggedTable stores depth and bound with every search score and keeps
	// static evaluations in their own slot.
	TaggedTable TableMode = iota
	// LegacyTable keeps one untagged score per key, shared by the search and
	// the evaluator, and returns it on any hit. A score backed up from a
	// shallow search can then stand in for a deeper one, and the evaluator
	// can return a search score instead of the material count.
	LegacyTable
)

func (m TableMode) String() string {
	switch m {
	case TaggedTable:
		return "tagged"
	case LegacyTable:
		return "legacy"
	}
	return fmt.Sprintf("table(%d)", uint8(m))
}

func ParseTableMode(s string) (TableMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tagged":
		return TaggedTable, nil
	case "legacy":
		return LegacyTable, nil
	}
	return 0, fmt.Errorf("%w: unknown table mode %q", ErrInvalidConfig, s)
}

type TTEntry struct {
	// Search slot.
	Score    Score
	Depth    int
	Flag     Bound
	Searched bool

	// Static slot, written by the evaluator in tagged mode only.
	Static    Score
	HasStatic bool
}

type TableStats struct {
	Probes  uint64
	Hits    uint64
	Stores  uint64
	Dropped uint64
}

// Table is a transposition table keyed by rules.Key. It belongs to one
// session and is not safe for concurrent use.
type Table struct {
	mode       TableMode
	maxEntries int
	entries    map[rules.Key]*TTEntry
	stats      TableStats
}

// NewTable returns an empty table. maxEntries <= 0 means unbounded; once the
// cap is reached new keys are dropped while existing ones still update.
func NewTable(mode TableMode, maxEntries int) *Table {
	return &Table{
		mode:       mode,
		maxEntries: maxEntries,
		entries:    make(map[rules.Key]*TTEntry),
	}
}

func (tt *Table) Mode() TableMode { return tt.mode }

func (tt *Table) Len() int { return len(tt.entries) }

func (tt *Table) Stats() TableStats { return tt.stats }

// Reset drops every entry and counter.
func (tt *Table) Reset() {
	tt.entries = make(map[rules.Key]*TTEntry)
	tt.stats = TableStats{}
}

// Lookup returns a copy of the entry stored under key.
func (tt *Table) Lookup(key rules.Key) (TTEntry, bool) {
	e, ok := tt.entries[key]
	if !ok {
		return TTEntry{}, false
	}
	return *e, true
}

// slot returns the entry for key, creating it unless the table is full.
func (tt *Table) slot(key rules.Key) *TTEntry {
	if e, ok := tt.entries[key]; ok {
		return e
	}
	if tt.maxEntries > 0 && len(tt.entries) >= tt.maxEntries {
		tt.stats.Dropped++
		return nil
	}
	e := &TTEntry{}
	tt.entries[key] = e
	return e
}

// probeStatic is the evaluator's lookup. Legacy mode hands back whatever the
// search stored.
func (tt *Table) probeStatic(key rules.Key) (Score, bool) {
	tt.stats.Probes++
	e, ok := tt.entries[key]
	if !ok {
		return 0, false
	}
	if tt.mode == LegacyTable {
		if e.Searched {
			tt.stats.Hits++
			return e.Score, true
		}
		return 0, false
	}
	if e.HasStatic {
		tt.stats.Hits++
		return e.Static, true
	}
	return 0, false
}

func (tt *Table) storeStatic(key rules.Key, score Score) {
	if tt.mode == LegacyTable {
		return
	}
	if e := tt.slot(key); e != nil {
		e.Static = score
		e.HasStatic = true
		tt.stats.Stores++
	}
}

// useEntry is the search lookup for a node with depth plies to go. In tagged
// mode a shallower entry is ignored, exact entries return, and bounds narrow
// the window, returning once it closes. Legacy mode returns any hit.
func (tt *Table) useEntry(key rules.Key, depth int, alpha, beta *Score) (score Score, usable bool) {
	tt.stats.Probes++
	e, ok := tt.entries[key]
	if !ok || !e.Searched {
		return 0, false
	}
	if tt.mode == LegacyTable {
		tt.stats.Hits++
		return e.Score, true
	}
	if e.Depth < depth {
		return 0, false
	}
	tt.stats.Hits++
	switch e.Flag {
	case ExactFlag:
		return e.Score, true
	case BetaFlag:
		*alpha = Max(*alpha, e.Score)
	case AlphaFlag:
		*beta = Min(*beta, e.Score)
	}
	if *alpha >= *beta {
		return e.Score, true
	}
	return 0, false
}

// storeEntry records a node's fail-soft score against the window it was
// searched with. Tagged mode keeps the deeper of two entries; legacy mode
// always overwrites.
func (tt *Table) storeEntry(key rules.Key, depth int, score, alpha, beta Score) {
	e := tt.slot(key)
	if e == nil {
		return
	}
	if tt.mode == TaggedTable && e.Searched && e.Depth > depth {
		return
	}
	flag := ExactFlag
	switch {
	case score <= alpha:
		flag = AlphaFlag
	case score >= beta:
		flag = BetaFlag
	}
	e.Score = score
	e.Depth = depth
	e.Flag = flag
	e.Searched = true
	tt.stats.Stores++
}

// storeLeaf records a horizon or terminal score as exact. Legacy mode only
// ever stores expanded nodes.
func (tt *Table) storeLeaf(key rules.Key, depth int, score Score) {
	if tt.mode == LegacyTable {
		return
	}
	tt.storeEntry(key, depth, score, -Infinity, Infinity)
}

// rootMatch reports whether a root child's entry can be trusted to equal the
// root score. For White a lower bound equal to the maximum is exact, for
// Black an upper bound equal to the minimum is.
func (tt *Table) rootMatch(e TTEntry, root Score, whiteRoot bool) bool {
	if !e.Searched || e.Score != root {
		return false
	}
	if tt.mode == LegacyTable {
		return true
	}
	switch e.Flag {
	case ExactFlag:
		return true
	case BetaFlag:
		return whiteRoot
	case AlphaFlag:
		return !whiteRoot
	}
	return false
}
