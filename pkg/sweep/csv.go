package sweep

import (
	"encoding/csv"
	"os"

	"github.com/pkg/errors"
)

// WriteCSV serializes the result table as a flat tabular file at destination,
// overwriting it when it already exists: one header row followed by one row
// per result, values in Header column order, no index column. A write failure
// is returned to the caller; nothing is retried.
func WriteCSV(table ResultTable, destination string) error {
	file, err := os.Create(destination)
	if err != nil {
		return errors.Wrapf(err, "could not create result file %q", destination)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(Header); err != nil {
		return errors.Wrapf(err, "could not write result header to %q", destination)
	}

	for _, row := range table {
		if err := writer.Write(row.Record()); err != nil {
			return errors.Wrapf(err, "could not write result row for case (%s)", row.Case)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrapf(err, "could not flush results to %q", destination)
	}

	return nil
}
