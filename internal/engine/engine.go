// Package engine wires the chunker, the worker pool, the merger, and the
// sorter into the single fork-join pass described by the parallel driver
// and merger component. It has no notion of files, flags, or output
// formats; it consumes a byte slice and returns a sorted slice of Records
// for a caller-supplied Renderer.
package engine

import (
	"bytes"
	"context"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stationwx/brc/internal/byterange"
	"github.com/stationwx/brc/internal/chunk"
	"github.com/stationwx/brc/internal/hashfn"
	"github.com/stationwx/brc/internal/table"
	"github.com/stationwx/brc/internal/worker"
)

// mergeTreeThreshold is the table (chunk) count above which the merge phase folds
// tables pairwise in a binary tree, run concurrently via errgroup, instead
// of linearly accumulating into the first table. Below the threshold the
// fan-out cost of spawning merge goroutines outweighs the saving.
const mergeTreeThreshold = 8

// Record is one line of the sorted output: a station name (still backed by
// the caller's mapping — see the zero-copy keys design note) and its
// {min, mean, max} in whole-degree floating point, plus the observation
// count.
type Record struct {
	Name  []byte
	Min   float64
	Mean  float64
	Max   float64
	Count int64
}

// Renderer consumes the sorted result. cmd/brc supplies a text renderer by
// default and an Arrow renderer behind -format=arrow.
type Renderer interface {
	Render([]Record) error
}

// Options configures a single Run. The zero value is valid: it resolves to
// runtime.NumCPU() workers, the prefix hash, the default station-count
// hint, and a no-op logger.
type Options struct {
	Workers          int
	Hash             hashfn.Func
	ExpectedStations int
	Logger           *zap.Logger
}

func (o Options) resolve() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Hash == nil {
		o.Hash = hashfn.Prefix
	}
	if o.ExpectedStations <= 0 {
		o.ExpectedStations = worker.DefaultExpectedStations
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Run partitions data into opts.Workers line-aligned chunks, aggregates
// each concurrently, merges the results, and returns them sorted by
// station name. It returns ctx.Err() if ctx is canceled between chunk
// boundaries; the CLI itself never cancels, but embedding callers may.
func Run(ctx context.Context, data []byte, opts Options) ([]Record, error) {
	opts = opts.resolve()
	log := opts.Logger

	ranges := chunk.Plan(data, opts.Workers)
	log.Debug("chunk plan", zap.Int("chunks", len(ranges)), zap.Int("bytes", len(data)))
	if len(ranges) == 0 {
		return nil, nil
	}

	tables := make([]*table.Table, len(ranges))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range ranges {
		i, r := i, r
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			tables[i] = worker.Run(data, r, opts.Hash, opts.ExpectedStations)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := mergeAll(ctx, tables)
	log.Debug("merge complete", zap.Int("stations", merged.Len()))

	records := toRecords(merged)
	return records, nil
}

// mergeAll folds every table into one, choosing a binary-tree fan-in above
// mergeTreeThreshold tables and a plain linear fold otherwise. Merge is
// associative and commutative, so either strategy yields the same result.
func mergeAll(ctx context.Context, tables []*table.Table) *table.Table {
	if len(tables) > mergeTreeThreshold {
		return mergeTree(ctx, tables)
	}
	acc := tables[0]
	for _, t := range tables[1:] {
		acc.Merge(t)
	}
	return acc
}

func mergeTree(ctx context.Context, tables []*table.Table) *table.Table {
	if len(tables) == 1 {
		return tables[0]
	}
	mid := len(tables) / 2
	var left, right *table.Table
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		left = mergeTree(ctx, tables[:mid])
		return nil
	})
	g.Go(func() error {
		right = mergeTree(ctx, tables[mid:])
		return nil
	})
	_ = g.Wait() // the closures above never return an error
	left.Merge(right)
	return left
}

// toRecords sorts the merged table's occupied slots by name bytes,
// ordinal comparison, and formats each aggregate into a Record. Names
// keep pointing into the caller's mapping; Run does not copy them.
func toRecords(t *table.Table) []Record {
	records := make([]Record, 0, t.Len())
	t.Iterate(func(name byterange.Range, _ int32, agg table.Aggregate) bool {
		records = append(records, Record{
			Name:  []byte(name),
			Min:   float64(agg.Min) / 10.0,
			Mean:  agg.Mean(),
			Max:   float64(agg.Max) / 10.0,
			Count: int64(agg.Count),
		})
		return true
	})
	sort.Slice(records, func(i, j int) bool {
		return bytes.Compare(records[i].Name, records[j].Name) < 0
	})
	return records
}
