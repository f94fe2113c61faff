// Package visualization renders sweep results as human readable tables on
// the console. The CSV file is the machine readable artifact; this package
// only exists so a finished sweep can be eyeballed without opening the file.
package visualization

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/Gawiiiii/fast-compress/pkg/sweep"
)

// Table is a model for tabular data.
type Table struct {
	headers []string
	data    [][]string
}

// NewTable creates a new model of data representation.
func NewTable(headers []string, data [][]string) *Table {
	return &Table{
		headers,
		data,
	}
}

// Draw renders the headers and data rows to out.
func (t *Table) Draw(out io.Writer) {
	output := tablewriter.NewWriter(out)
	output.SetHeader(t.headers)
	for _, row := range t.data {
		output.Append(row)
	}
	output.Render()
}

// PrintResults renders the whole result table of a finished sweep.
func PrintResults(out io.Writer, results sweep.ResultTable) {
	NewTable(sweep.Header, results.Records()).Draw(out)
}
