package sweep

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/Gawiiiii/fast-compress/pkg/fastcompress"
)

// stubRunner is a deterministic Runner which records attempted cases and
// fails the cases selected by failOn.
type stubRunner struct {
	failOn func(c fastcompress.Case) bool
	ran    []fastcompress.Case
}

func (r *stubRunner) Run(c fastcompress.Case) (fastcompress.Metrics, error) {
	r.ran = append(r.ran, c)

	if r.failOn != nil && r.failOn(c) {
		return fastcompress.Metrics{}, errors.Errorf("case (%s) failed with exit code 1", c)
	}

	blockSize := c.BlockSize
	iterations := c.Iterations
	ratio := 2.35
	return fastcompress.Metrics{
		BlockSize:        &blockSize,
		Iterations:       &iterations,
		CompressionRatio: &ratio,
	}, nil
}

func smallParams() Params {
	return Params{
		InputFiles:   []string{"dickens"},
		Algorithms:   []string{"lz4"},
		BlockSizes:   []int{1, 4},
		Iterations:   []int{1},
		ShuffleFlags: []int{0, 1},
	}
}

func TestParams(t *testing.T) {
	Convey("While enumerating the parameter space", t, func() {
		params := Params{
			InputFiles:   []string{"dickens", "mozilla"},
			Algorithms:   []string{"lz4", "zstd"},
			BlockSizes:   []int{1, 4},
			Iterations:   []int{1, 5},
			ShuffleFlags: []int{0, 1},
		}

		Convey("The total should be the product of the five set sizes", func() {
			So(params.TotalCases(), ShouldEqual, 32)
			So(len(params.Cases()), ShouldEqual, 32)
		})

		Convey("The enumeration should follow the fixed nested order", func() {
			cases := params.Cases()

			So(cases[0], ShouldResemble, fastcompress.Case{
				InputFile: "dickens", Algorithm: "lz4", BlockSize: 1, Iterations: 1, PageShuffle: 0})
			// Shuffle flag is the innermost loop.
			So(cases[1], ShouldResemble, fastcompress.Case{
				InputFile: "dickens", Algorithm: "lz4", BlockSize: 1, Iterations: 1, PageShuffle: 1})
			// Then iterations.
			So(cases[2], ShouldResemble, fastcompress.Case{
				InputFile: "dickens", Algorithm: "lz4", BlockSize: 1, Iterations: 5, PageShuffle: 0})
			// Input file is the outermost loop.
			So(cases[16], ShouldResemble, fastcompress.Case{
				InputFile: "mozilla", Algorithm: "lz4", BlockSize: 1, Iterations: 1, PageShuffle: 0})
			So(cases[31], ShouldResemble, fastcompress.Case{
				InputFile: "mozilla", Algorithm: "zstd", BlockSize: 4, Iterations: 5, PageShuffle: 1})
		})
	})
}

func TestSweepRun(t *testing.T) {
	Convey("While running a sweep of 4 cases", t, func() {
		params := smallParams()

		Convey("When every invocation succeeds", func() {
			runner := &stubRunner{}
			progressOut := &bytes.Buffer{}

			table := New(runner, ConsoleProgress{Out: progressOut}).Run(params)

			Convey("Every combination should be attempted exactly once, in order", func() {
				So(runner.ran, ShouldResemble, params.Cases())
			})

			Convey("The table should have one row per case, in enumeration order", func() {
				So(len(table), ShouldEqual, 4)
				for i, row := range table {
					So(row.Case, ShouldResemble, params.Cases()[i])
				}
			})

			Convey("Case identity fields should come from the case itself", func() {
				So(table[1].Case.PageShuffle, ShouldEqual, 1)
				So(table[1].Case.InputFile, ShouldEqual, "dickens")
			})

			Convey("The progress indicator should reach 4/4 (100.00%)", func() {
				So(progressOut.String(), ShouldContainSubstring, "Progress: 1/4 (25.00%)\r")
				So(progressOut.String(), ShouldEndWith, "Progress: 4/4 (100.00%)\r")
			})
		})

		Convey("When one of the cases fails", func() {
			runner := &stubRunner{
				failOn: func(c fastcompress.Case) bool {
					return c.BlockSize == 4 && c.PageShuffle == 0
				},
			}
			progressOut := &bytes.Buffer{}

			table := New(runner, ConsoleProgress{Out: progressOut}).Run(params)

			Convey("The failed case should be skipped and the sweep should continue", func() {
				So(len(runner.ran), ShouldEqual, 4)
				So(len(table), ShouldEqual, 3)

				for _, row := range table {
					So(row.Case.BlockSize == 4 && row.Case.PageShuffle == 0, ShouldBeFalse)
				}
			})

			Convey("Progress should still be reported for every attempted case", func() {
				So(progressOut.String(), ShouldEndWith, "Progress: 4/4 (100.00%)\r")
			})
		})

		Convey("When run without a progress handler", func() {
			runner := &stubRunner{}

			table := New(runner, nil).Run(params)

			Convey("The sweep should still produce the full table", func() {
				So(len(table), ShouldEqual, 4)
			})
		})
	})
}

func TestRowRecord(t *testing.T) {
	Convey("While rendering a row", t, func() {
		blockSize := 4
		ratio := 2.35

		row := Row{
			Case: fastcompress.Case{
				InputFile: "dickens", Algorithm: "lz4", BlockSize: 4, Iterations: 1, PageShuffle: 0},
			Metrics: fastcompress.Metrics{
				BlockSize:        &blockSize,
				CompressionRatio: &ratio,
			},
		}

		Convey("All ten fields should be present with sentinels filling gaps", func() {
			record := row.Record()

			So(len(record), ShouldEqual, len(Header))
			So(record, ShouldResemble, []string{
				"dickens", "lz4", "0", "4", NotAvailable, NotAvailable, NotAvailable,
				NotAvailable, "2.35", NotAvailable,
			})
		})

		Convey("The sentinel should be distinct from zero", func() {
			zero := 0
			row.Metrics.FileSize = &zero
			So(strings.Contains(strings.Join(row.Record(), ","), ",0,"), ShouldBeTrue)
		})
	})
}
