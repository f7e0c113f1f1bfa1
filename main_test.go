package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"chess-tactics/engine"
	"chess-tactics/rules"
)

func TestSolveLoop(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
		"",
		"not a fen",
		"k7/8/8/3q4/8/8/8/3R2K1 w - - 0 1",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
		"quit",
		"4k3/4p3/8/8/8/8/4P3/4K3 w - - 0 1",
	}, "\n")

	session, err := engine.NewSession(engine.DefaultConfig())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	var out bytes.Buffer
	solveLoop(context.Background(), strings.NewReader(input), &out, session, rules.Dragon, zerolog.Nop())

	var best []string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "bestmove ") {
			best = append(best, strings.TrimPrefix(line, "bestmove "))
		}
	}
	want := []string{"a1a8", "d1d5", "(none)"}
	if strings.Join(best, ",") != strings.Join(want, ",") {
		t.Fatalf("expected bestmoves %v, got %v\n%s", want, best, out.String())
	}
	if !strings.Contains(out.String(), "info string invalid position") {
		t.Fatalf("expected an invalid position notice, got\n%s", out.String())
	}
}

func BenchmarkSolveLoop(b *testing.B) {
	session, err := engine.NewSession(engine.DefaultConfig())
	if err != nil {
		b.Fatalf("NewSession: %v", err)
	}
	for i := 0; i < b.N; i++ {
		var out bytes.Buffer
		solveLoop(context.Background(), strings.NewReader(rules.StartPos), &out, session, rules.Dragon, zerolog.Nop())
	}
}
