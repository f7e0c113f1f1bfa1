package engine

import (
	"errors"
	"testing"

	"chess-tactics/rules"
)

const testKey = rules.Key("8/8/8/8/8/8/8/K6k w - -")

func TestStoreEntryClassifiesBounds(t *testing.T) {
	cases := []struct {
		score Score
		want  Bound
	}{
		{-5, AlphaFlag},
		{0, AlphaFlag},
		{3, ExactFlag},
		{10, BetaFlag},
		{15, BetaFlag},
	}
	for _, tc := range cases {
		tt := NewTable(TaggedTable, 0)
		tt.storeEntry(testKey, 2, tc.score, 0, 10)
		e, ok := tt.Lookup(testKey)
		if !ok {
			t.Fatalf("expected an entry for score %d", tc.score)
		}
		if e.Flag != tc.want {
			t.Errorf("score %d in (0, 10): flag %v, want %v", tc.score, e.Flag, tc.want)
		}
	}
}

func TestUseEntryHonoursDepthAndBound(t *testing.T) {
	tt := NewTable(TaggedTable, 0)
	tt.storeEntry(testKey, 2, 7, -Infinity, Infinity)

	alpha, beta := -Infinity, Infinity
	if _, ok := tt.useEntry(testKey, 3, &alpha, &beta); ok {
		t.Fatalf("a depth 2 entry must not answer a depth 3 probe")
	}
	if score, ok := tt.useEntry(testKey, 2, &alpha, &beta); !ok || score != 7 {
		t.Fatalf("expected exact hit 7, got %d (%v)", score, ok)
	}

	// Lower bound 7 raises alpha without closing the window.
	tt.storeEntry(testKey, 4, 7, -Infinity, 5)
	alpha, beta = 0, 10
	if _, ok := tt.useEntry(testKey, 3, &alpha, &beta); ok {
		t.Fatalf("lower bound inside the window must not cut")
	}
	if alpha != 7 || beta != 10 {
		t.Fatalf("expected window (7, 10), got (%d, %d)", alpha, beta)
	}
	alpha, beta = 0, 6
	if score, ok := tt.useEntry(testKey, 3, &alpha, &beta); !ok || score != 7 {
		t.Fatalf("expected lower bound cut at 7, got %d (%v)", score, ok)
	}

	// Upper bound lowers beta.
	tt = NewTable(TaggedTable, 0)
	tt.storeEntry(testKey, 1, -3, 0, Infinity)
	alpha, beta = -10, 10
	if _, ok := tt.useEntry(testKey, 1, &alpha, &beta); ok {
		t.Fatalf("upper bound inside the window must not cut")
	}
	if beta != -3 {
		t.Fatalf("expected beta -3, got %d", beta)
	}
}

func TestStoreEntryPrefersDepth(t *testing.T) {
	tt := NewTable(TaggedTable, 0)
	tt.storeEntry(testKey, 3, 1, -Infinity, Infinity)
	tt.storeEntry(testKey, 1, 9, -Infinity, Infinity)
	if e, _ := tt.Lookup(testKey); e.Score != 1 || e.Depth != 3 {
		t.Fatalf("shallow store replaced a deeper entry: %+v", e)
	}
	tt.storeLeaf(testKey, 0, 4)
	if e, _ := tt.Lookup(testKey); e.Score != 1 {
		t.Fatalf("leaf store replaced a deeper entry: %+v", e)
	}

	legacy := NewTable(LegacyTable, 0)
	legacy.storeEntry(testKey, 3, 1, -Infinity, Infinity)
	legacy.storeEntry(testKey, 1, 9, -Infinity, Infinity)
	if e, _ := legacy.Lookup(testKey); e.Score != 9 {
		t.Fatalf("legacy table must overwrite, got %+v", e)
	}
}

func TestLegacyTableTrustsAnyHit(t *testing.T) {
	tt := NewTable(LegacyTable, 0)
	tt.storeEntry(testKey, 1, -3, 0, 10)
	alpha, beta := -Infinity, Infinity
	if score, ok := tt.useEntry(testKey, 5, &alpha, &beta); !ok || score != -3 {
		t.Fatalf("expected legacy hit -3, got %d (%v)", score, ok)
	}
	if score, ok := tt.probeStatic(testKey); !ok || score != -3 {
		t.Fatalf("expected legacy static probe to return the search score, got %d (%v)", score, ok)
	}
	tt.storeLeaf(rules.Key("leaf"), 0, 1)
	if _, ok := tt.Lookup(rules.Key("leaf")); ok {
		t.Fatalf("legacy table must not store leaves")
	}
	tt.storeStatic(rules.Key("static"), 1)
	if tt.Len() != 1 {
		t.Fatalf("legacy table must not store static scores, have %d entries", tt.Len())
	}
}

func TestStaticSlotIsSeparate(t *testing.T) {
	tt := NewTable(TaggedTable, 0)
	tt.storeEntry(testKey, 2, 50, -Infinity, Infinity)
	if _, ok := tt.probeStatic(testKey); ok {
		t.Fatalf("search score leaked into the static slot")
	}
	tt.storeStatic(testKey, -2)
	if score, ok := tt.probeStatic(testKey); !ok || score != -2 {
		t.Fatalf("expected static -2, got %d (%v)", score, ok)
	}
	if e, _ := tt.Lookup(testKey); e.Score != 50 {
		t.Fatalf("static store clobbered the search slot: %+v", e)
	}
}

func TestRootMatch(t *testing.T) {
	tt := NewTable(TaggedTable, 0)
	exact := TTEntry{Score: 3, Flag: ExactFlag, Searched: true}
	lower := TTEntry{Score: 3, Flag: BetaFlag, Searched: true}
	upper := TTEntry{Score: 3, Flag: AlphaFlag, Searched: true}

	if !tt.rootMatch(exact, 3, true) || !tt.rootMatch(exact, 3, false) {
		t.Fatalf("exact entries must match either root")
	}
	if !tt.rootMatch(lower, 3, true) || tt.rootMatch(lower, 3, false) {
		t.Fatalf("lower bounds match only a white root")
	}
	if tt.rootMatch(upper, 3, true) || !tt.rootMatch(upper, 3, false) {
		t.Fatalf("upper bounds match only a black root")
	}
	if tt.rootMatch(exact, 4, true) {
		t.Fatalf("a different score must not match")
	}
	if tt.rootMatch(TTEntry{HasStatic: true, Static: 3}, 3, true) {
		t.Fatalf("a static-only entry must not match")
	}

	legacy := NewTable(LegacyTable, 0)
	if !legacy.rootMatch(upper, 3, true) {
		t.Fatalf("legacy tables match any equal score")
	}
}

func TestTableCap(t *testing.T) {
	tt := NewTable(TaggedTable, 1)
	tt.storeEntry(rules.Key("a"), 1, 1, -Infinity, Infinity)
	tt.storeEntry(rules.Key("b"), 1, 2, -Infinity, Infinity)
	tt.storeEntry(rules.Key("a"), 2, 3, -Infinity, Infinity)
	if tt.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", tt.Len())
	}
	if tt.Stats().Dropped != 1 {
		t.Fatalf("expected 1 dropped store, got %d", tt.Stats().Dropped)
	}
	if e, _ := tt.Lookup(rules.Key("a")); e.Score != 3 {
		t.Fatalf("existing keys must still update after the cap, got %+v", e)
	}
	tt.Reset()
	if tt.Len() != 0 || tt.Stats() != (TableStats{}) {
		t.Fatalf("Reset left %d entries and stats %+v", tt.Len(), tt.Stats())
	}
}

func TestParseTableMode(t *testing.T) {
	for in, want := range map[string]TableMode{"": TaggedTable, "tagged": TaggedTable, "Legacy": LegacyTable} {
		got, err := ParseTableMode(in)
		if err != nil || got != want {
			t.Errorf("ParseTableMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseTableMode("lru"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
