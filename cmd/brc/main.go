// Command brc summarizes a one-billion-row-style measurements file into a
// sorted per-station {min, mean, max}. It is a thin shell around
// internal/engine: argument parsing, the SIMD capability probe, opening
// the file mapping, and rendering — none of the hot-path logic lives here.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stationwx/brc/internal/engine"
	"github.com/stationwx/brc/internal/filemap"
	"github.com/stationwx/brc/internal/hashfn"
	"github.com/stationwx/brc/internal/render"
	"github.com/stationwx/brc/internal/scan"
)

// defaultInputPath is the conventional local path for a downloaded or
// generated measurements file.
const defaultInputPath = "data/measurements.txt"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("brc", flag.ContinueOnError)
	workers := fs.Int("workers", runtime.NumCPU(), "number of chunk workers")
	hashName := fs.String("hash", "prefix", "station key hash: prefix or xxh3")
	format := fs.String("format", "text", "output format: text or arrow")
	outPath := fs.String("out", "", "output file path (defaults to stdout)")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, error")
	noSIMD := fs.Bool("nosimd", false, "skip the AVX2 requirement check at startup")
	cpuProfile := fs.String("cpuprofile", "", "write a CPU profile to this path")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	if err := checkEnvironment(*noSIMD); err != nil {
		logger.Error("environment check failed", zap.Error(err))
		return 1
	}

	if *cpuProfile != "" {
		stop, err := startCPUProfile(*cpuProfile)
		if err != nil {
			logger.Error("failed to start CPU profile", zap.Error(err))
			return 1
		}
		defer stop()
	}

	path := defaultInputPath
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	totalStart := time.Now()

	mapping, err := filemap.Open(path)
	if err != nil {
		logger.Error("failed to map input file", zap.Error(err))
		return 1
	}
	defer mapping.Close() //nolint:errcheck

	data := mapping.Data()
	logger.Info("mapped input file",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(totalStart)))

	engineStart := time.Now()
	records, err := engine.Run(context.Background(), data, engine.Options{
		Workers: *workers,
		Hash:    hashfn.ByName(*hashName),
		Logger:  logger,
	})
	if err != nil {
		logger.Error("engine run failed", zap.Error(err))
		return 1
	}
	logger.Info("aggregation complete",
		zap.Int("stations", len(records)),
		zap.Int("workers", *workers),
		zap.Duration("elapsed", time.Since(engineStart)))

	out, closeOut, err := resolveOutput(*outPath)
	if err != nil {
		logger.Error("failed to open output", zap.Error(err))
		return 1
	}
	defer closeOut() //nolint:errcheck

	renderer, err := resolveRenderer(*format, out)
	if err != nil {
		logger.Error("failed to resolve renderer", zap.Error(err))
		return 1
	}

	renderStart := time.Now()
	if err := renderer.Render(records); err != nil {
		logger.Error("render failed", zap.Error(err))
		return 1
	}
	logger.Info("render complete",
		zap.String("format", *format),
		zap.Duration("elapsed", time.Since(renderStart)),
		zap.Duration("total", time.Since(totalStart)))

	return 0
}

// checkEnvironment implements the Environment.fail contract: on amd64,
// AVX2 is required unless the caller passes -nosimd to skip the check.
// The scanner itself always falls back to the portable byte scan when
// AVX2 is unavailable; this check only decides whether that fallback is
// an error or a silently accepted, slower path. Non-amd64 targets have
// no AVX2 path to begin with and always run the portable scanner.
func checkEnvironment(noSIMD bool) error {
	if noSIMD || runtime.GOARCH != "amd64" {
		return nil
	}
	if !scan.HasAVX2() {
		return fmt.Errorf("CPU lacks AVX2, the required 256-bit byte-compare intrinsic (pass -nosimd to run the portable scan path anyway)")
	}
	return nil
}

func resolveOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output %s: %w", path, err)
	}
	return f, f.Close, nil
}

func resolveRenderer(format string, out io.Writer) (engine.Renderer, error) {
	switch format {
	case "", "text":
		return render.Text{Writer: out}, nil
	case "arrow":
		return render.Arrow{Writer: out}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid -log-level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
