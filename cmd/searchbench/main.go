package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chess-tactics/engine"
	"chess-tactics/rules"
)

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", engine.DefaultDepth, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of solves to run")
	fenFlag := flag.String("fen", "", "FEN to solve (empty = startpos)")
	backendFlag := flag.String("backend", string(rules.Dragon), "rules backend: dragon or notnil")
	legacyFlag := flag.Bool("legacy", false, "legacy behaviour: untagged table, stalemating moves count as mates")
	warmFlag := flag.Bool("warm", false, "keep one session across runs instead of starting cold")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := engine.DefaultConfig()
	cfg.Depth = *depthFlag
	if *legacyFlag {
		cfg.Table = engine.LegacyTable
		cfg.LenientMates = true
	}
	backend, err := rules.ParseBackend(*backendFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("bad backend")
	}
	session, err := engine.NewSession(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("bad config")
	}

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := rules.StartPos
	if *fenFlag != "" {
		fen = *fenFlag
	}
	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d backend=%s table=%s\n", fen, cfg.Depth, *repeatFlag, backend, cfg.Table)

	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		// Fresh position for each run
		pos, err := rules.Parse(fen, backend)
		if err != nil {
			log.Fatal().Err(err).Msg("bad FEN")
		}
		if !*warmFlag {
			session.Reset()
		}

		iterStart := time.Now()
		res := session.Solve(context.Background(), pos)
		totalNodes += res.Nodes
		fmt.Printf("iteration %d: %v  time=%v\n", i+1, res, time.Since(iterStart))
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v  nodes: %d  nps: %.0f  table: %d entries\n",
		totalElapsed, totalNodes, float64(totalNodes)/totalElapsed.Seconds(), session.TT.Len())

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}
