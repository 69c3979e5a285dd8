package render

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/stationwx/brc/internal/engine"
)

// arrowSchema names the five columns written by the Arrow renderer: the
// station name and its three temperature statistics plus the observation
// count, so downstream analytics tooling can re-derive nothing and trust
// the columns directly.
var arrowSchema = arrow.NewSchema([]arrow.Field{
	{Name: "name", Type: arrow.BinaryTypes.String},
	{Name: "min", Type: arrow.PrimitiveTypes.Float64},
	{Name: "mean", Type: arrow.PrimitiveTypes.Float64},
	{Name: "max", Type: arrow.PrimitiveTypes.Float64},
	{Name: "count", Type: arrow.PrimitiveTypes.Int64},
}, nil)

// Arrow renders the merged result as a single Arrow record batch, written
// to Writer in the IPC file format. It is an additive output format; it
// does not participate in the aggregation itself.
type Arrow struct {
	Writer io.Writer
}

// Render implements engine.Renderer.
func (a Arrow) Render(records []engine.Record) error {
	pool := memory.NewGoAllocator()
	b := array.NewRecordBuilder(pool, arrowSchema)
	defer b.Release()

	nameB := b.Field(0).(*array.StringBuilder)
	minB := b.Field(1).(*array.Float64Builder)
	meanB := b.Field(2).(*array.Float64Builder)
	maxB := b.Field(3).(*array.Float64Builder)
	countB := b.Field(4).(*array.Int64Builder)

	for _, r := range records {
		nameB.Append(string(r.Name))
		minB.Append(r.Min)
		meanB.Append(r.Mean)
		maxB.Append(r.Max)
		countB.Append(r.Count)
	}

	rec := b.NewRecord()
	defer rec.Release()

	writer, err := ipc.NewFileWriter(a.Writer, ipc.WithSchema(arrowSchema), ipc.WithAllocator(pool))
	if err != nil {
		return fmt.Errorf("render arrow: open writer: %w", err)
	}
	defer writer.Close()

	if err := writer.Write(rec); err != nil {
		return fmt.Errorf("render arrow: write record: %w", err)
	}
	return nil
}
