package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chess-tactics/engine"
	"chess-tactics/rules"
)

func main() {
	depth := flag.Int("depth", engine.DefaultDepth, "alpha-beta depth in plies when no mate in two exists")
	legacy := flag.Bool("legacy", false, "legacy behaviour: untagged table, stalemating moves count as mates")
	nodes := flag.Uint64("nodes", 0, "node limit per search (0 = none)")
	moveTime := flag.Duration("movetime", 0, "time limit per search (0 = none)")
	backendName := flag.String("backend", string(rules.Dragon), "rules backend: dragon or notnil")
	verbose := flag.Bool("v", false, "debug logging on stderr")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	backend, err := rules.ParseBackend(*backendName)
	if err != nil {
		logger.Error().Err(err).Send()
		os.Exit(2)
	}
	cfg := engine.DefaultConfig()
	cfg.Depth = *depth
	cfg.NodeLimit = *nodes
	cfg.MoveTime = *moveTime
	cfg.Logger = logger
	if *legacy {
		cfg.Table = engine.LegacyTable
		cfg.LenientMates = true
	}
	session, err := engine.NewSession(cfg)
	if err != nil {
		logger.Error().Err(err).Send()
		os.Exit(2)
	}

	solveLoop(context.Background(), os.Stdin, os.Stdout, session, backend, logger)
}

// solveLoop reads one FEN per line and answers each with a bestmove line.
// "reset" clears the session table and "quit" stops the loop.
func solveLoop(ctx context.Context, in io.Reader, out io.Writer, session *engine.Session, backend rules.Backend, logger zerolog.Logger) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch strings.ToLower(line) {
		case "quit":
			return
		case "reset":
			session.Reset()
			continue
		}

		pos, err := rules.Parse(line, backend)
		if err != nil {
			logger.Warn().Err(err).Str("line", line).Msg("skipping position")
			fmt.Fprintln(out, "info string invalid position")
			continue
		}
		// Lines are unrelated puzzles, so each starts from an empty table.
		session.Reset()
		res := session.Solve(ctx, pos)
		writeResult(out, res)
	}
	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Msg("reading input")
	}
}

func writeResult(out io.Writer, res engine.Result) {
	fmt.Fprintf(out, "info string %v score %d depth %d nodes %d\n", res.Outcome, res.Score, res.Depth, res.Nodes)
	if res.Advisory != "" {
		fmt.Fprintln(out, "info string", res.Advisory)
	}
	if res.Move == nil {
		fmt.Fprintln(out, "bestmove (none)")
		return
	}
	fmt.Fprintln(out, "bestmove", res.Move)
}
