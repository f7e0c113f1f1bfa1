package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// step is one external command of the benchmark run.
type step struct {
	label string
	name  string
	args  []string
}

type stepResult struct {
	step
	output string
	code   int
}

func (r stepResult) failed() bool { return r.code != 0 }

// run executes s and captures its combined output. A command that cannot be
// started reports exit code -1 with the start error as its output.
func run(s step) stepResult {
	cmd := exec.Command(s.name, s.args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	res := stepResult{step: s}
	err := cmd.Run()
	res.output = out.String()
	var ee *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &ee):
		res.code = ee.ExitCode()
	default:
		res.code = -1
		res.output += err.Error() + "\n"
	}
	return res
}

func perftSteps() []step {
	var steps []step
	for _, backend := range []string{"dragon", "notnil"} {
		for _, depth := range []string{"3", "4"} {
			steps = append(steps, step{
				label: "perft " + backend + " initial depth " + depth,
				name:  "go",
				args:  []string{"run", "./cmd/perft", "-backend", backend, "-depth", depth, "-label", "Initial"},
			})
		}
		steps = append(steps, step{
			label: "perft " + backend + " kiwipete depth 3",
			name:  "go",
			args:  []string{"run", "./cmd/perft", "-backend", backend, "-fen", kiwipete, "-depth", "3", "-label", "Kiwipete"},
		})
	}
	return steps
}

// runAll prints the output of every step to w and returns the failed ones.
func runAll(w io.Writer, steps []step) []stepResult {
	var failed []stepResult
	for _, s := range steps {
		res := run(s)
		fmt.Fprint(w, res.output)
		if res.failed() {
			failed = append(failed, res)
		}
	}
	return failed
}

// summarize writes one line per failed step and returns the process exit code.
func summarize(w io.Writer, failed []stepResult) int {
	if len(failed) == 0 {
		return 0
	}
	fmt.Fprintf(w, "\n%d step(s) failed:\n", len(failed))
	for _, f := range failed {
		fmt.Fprintf(w, "  %s: exit %d: %s %s\n", f.label, f.code, f.name, strings.Join(f.args, " "))
	}
	return 1
}

func main() {
	// Usage: go run ./cmd/benchrun
	// Format: BenchmarkName  Iterations  ns/op  B/op  allocs/op
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	bench := run(step{
		label: "benchmarks",
		name:  "go",
		args:  []string{"test", "./rules", "./engine", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s"},
	})
	fmt.Print(bench.output)
	if bench.failed() {
		os.Exit(summarize(os.Stderr, []stepResult{bench}))
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tBackend \tDepth \t\tNodes \t\tTime \tNPS")
	failed := runAll(os.Stdout, perftSteps())

	fmt.Println("\nSolve Performance:")
	failed = append(failed, runAll(os.Stdout, []step{{
		label: "searchbench kiwipete depth 3",
		name:  "go",
		args:  []string{"run", "./cmd/searchbench", "-depth", "3", "-repeat", "3", "-fen", kiwipete},
	}})...)
	os.Exit(summarize(os.Stderr, failed))
}
