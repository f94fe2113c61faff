package sweep

import (
	"strconv"

	"github.com/Gawiiiii/fast-compress/pkg/fastcompress"
)

// NotAvailable is the sentinel written in place of a metric which was not
// found in the benchmark report. It is distinct from zero or any valid
// measurement.
const NotAvailable = "N/A"

// Header is the fixed column order of the result table.
var Header = []string{
	"input_file",
	"algorithm",
	"page_shuffle",
	"block_size",
	"iterations",
	"file_size",
	"nblocks",
	"compression_throughput",
	"compression_ratio",
	"decompression_throughput",
}

// Row is one fully resolved result of a benchmark case. The case identity
// fields come from the case itself; the metric fields come from the parsed
// report. Rows are never mutated after creation.
type Row struct {
	Case    fastcompress.Case
	Metrics fastcompress.Metrics
}

// Record renders the row as strings in Header order. Every column is always
// present; unset metrics are filled with the NotAvailable sentinel.
func (r Row) Record() []string {
	return []string{
		r.Case.InputFile,
		r.Case.Algorithm,
		strconv.Itoa(r.Case.PageShuffle),
		intOrSentinel(r.Metrics.BlockSize),
		intOrSentinel(r.Metrics.Iterations),
		intOrSentinel(r.Metrics.FileSize),
		intOrSentinel(r.Metrics.NBlocks),
		floatOrSentinel(r.Metrics.CompressionThroughput),
		floatOrSentinel(r.Metrics.CompressionRatio),
		floatOrSentinel(r.Metrics.DecompressionThroughput),
	}
}

// ResultTable is the ordered sequence of rows accumulated by a sweep, one row
// per non-failed case, in enumeration order.
type ResultTable []Row

// Records renders the whole table in Header order.
func (t ResultTable) Records() [][]string {
	records := make([][]string, 0, len(t))
	for _, row := range t {
		records = append(records, row.Record())
	}
	return records
}

func intOrSentinel(value *int) string {
	if value == nil {
		return NotAvailable
	}
	return strconv.Itoa(*value)
}

func floatOrSentinel(value *float64) string {
	if value == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*value, 'g', -1, 64)
}
