// Command brcbench runs the engine across a matrix of worker counts
// against a fixed file. It asserts that varying worker count never changes
// the aggregated output and reports median timings per worker count.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/stationwx/brc/internal/engine"
	"github.com/stationwx/brc/internal/filemap"
	"github.com/stationwx/brc/internal/hashfn"
	"github.com/stationwx/brc/internal/render"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("brcbench", flag.ContinueOnError)
	path := fs.String("file", "data/measurements.txt", "measurements file to benchmark")
	iterations := fs.Int("iterations", 3, "iterations per worker count")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	mapping, err := filemap.Open(*path)
	if err != nil {
		logger.Error("open input", zap.Error(err))
		return 1
	}
	defer mapping.Close() //nolint:errcheck
	data := mapping.Data()

	workerCounts := []int{1, 2, 4, 8, runtime.NumCPU()}
	var canonical []byte

	for _, w := range workerCounts {
		durations := make([]time.Duration, 0, *iterations)
		var out []byte

		for i := 0; i < *iterations; i++ {
			start := time.Now()
			records, err := engine.Run(context.Background(), data, engine.Options{
				Workers: w,
				Hash:    hashfn.Prefix,
				Logger:  zap.NewNop(),
			})
			if err != nil {
				logger.Error("engine run failed", zap.Int("workers", w), zap.Error(err))
				return 1
			}
			durations = append(durations, time.Since(start))

			var buf bytes.Buffer
			if err := (render.Text{Writer: &buf}).Render(records); err != nil {
				logger.Error("render failed", zap.Error(err))
				return 1
			}
			out = buf.Bytes()
		}

		if canonical == nil {
			canonical = out
		} else if !bytes.Equal(canonical, out) {
			logger.Error("worker-count invariant violated: output differs from the 1-worker baseline",
				zap.Int("workers", w))
			return 1
		}

		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
		median := durations[len(durations)/2]
		logger.Info("benchmark",
			zap.Int("workers", w),
			zap.Duration("median", median),
			zap.Int("iterations", *iterations))
	}

	logger.Info("worker counts agree", zap.Int("stations", bytes.Count(canonical, []byte("\n"))))
	return 0
}
