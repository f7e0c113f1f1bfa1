package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"chess-tactics/engine"
	"chess-tactics/rules"
)

type line struct {
	fen string
	res engine.Result
	err error
}

func main() {
	inPath := flag.String("in", "", "file with one FEN per line (empty = stdin)")
	workers := flag.Int("workers", runtime.NumCPU(), "positions solved in parallel")
	depth := flag.Int("depth", engine.DefaultDepth, "alpha-beta depth in plies")
	legacy := flag.Bool("legacy", false, "legacy behaviour: untagged table, stalemating moves count as mates")
	nodes := flag.Uint64("nodes", 0, "node limit per position (0 = none)")
	moveTime := flag.Duration("movetime", 0, "time limit per position (0 = none)")
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
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Send()
		os.Exit(2)
	}

	var in io.Reader = os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			logger.Error().Err(err).Send()
			os.Exit(2)
		}
		defer f.Close()
		in = f
	}
	fens, err := readFENs(in)
	if err != nil {
		logger.Error().Err(err).Msg("reading input")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := solveAll(ctx, fens, backend, cfg, *workers)
	if err != nil {
		logger.Error().Err(err).Msg("batch stopped")
	}
	for _, out := range lo.Map(results, formatLine) {
		fmt.Println(out)
	}
	logger.Info().Int("positions", len(fens)).Dur("elapsed", time.Since(start)).Msg("batch done")
}

func readFENs(in io.Reader) ([]string, error) {
	var fens []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fens = append(fens, text)
	}
	return fens, scanner.Err()
}

// solveAll solves every FEN in its own session, at most workers at a time.
// Results keep the input order. A bad FEN is recorded on its line only; the
// group stops early only when ctx is cancelled.
func solveAll(ctx context.Context, fens []string, backend rules.Backend, cfg engine.Config, workers int) ([]line, error) {
	results := make([]line, len(fens))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(engine.Clamp(workers, 1, 4*runtime.NumCPU()))

	for i, fen := range fens {
		i, fen := i, fen
		results[i].fen = fen
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].err = err
				return err
			}
			res, err := engine.SolveFEN(gctx, fen, backend, cfg)
			results[i].res = res
			results[i].err = err
			return nil
		})
	}
	return results, g.Wait()
}

func formatLine(l line, idx int) string {
	if l.err != nil {
		return fmt.Sprintf("%d\terror\t%v", idx+1, l.err)
	}
	move := "(none)"
	if l.res.Move != nil {
		move = l.res.Move.String()
	}
	out := fmt.Sprintf("%d\t%s\t%v\t%d", idx+1, move, l.res.Outcome, l.res.Score)
	if l.res.Advisory != "" {
		out += "\t" + l.res.Advisory
	}
	return out
}
