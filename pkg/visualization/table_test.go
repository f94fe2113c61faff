package visualization

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Gawiiiii/fast-compress/pkg/fastcompress"
	"github.com/Gawiiiii/fast-compress/pkg/sweep"
)

func TestDrawTable(t *testing.T) {
	Convey("While drawing a table", t, func() {
		buffer := &bytes.Buffer{}

		Convey("Headers and rows should both be rendered", func() {
			table := NewTable([]string{"algorithm", "ratio"}, [][]string{{"lz4", "2.35"}})
			table.Draw(buffer)

			So(buffer.String(), ShouldContainSubstring, "ALGORITHM")
			So(buffer.String(), ShouldContainSubstring, "lz4")
			So(buffer.String(), ShouldContainSubstring, "2.35")
		})

		Convey("A result table should be rendered with the full column set", func() {
			ratio := 2.35
			results := sweep.ResultTable{{
				Case: fastcompress.Case{
					InputFile: "dickens", Algorithm: "lz4", BlockSize: 4, Iterations: 1, PageShuffle: 0},
				Metrics: fastcompress.Metrics{CompressionRatio: &ratio},
			}}

			PrintResults(buffer, results)

			So(buffer.String(), ShouldContainSubstring, "INPUT FILE")
			So(buffer.String(), ShouldContainSubstring, "DECOMPRESSION THROUGHPUT")
			So(buffer.String(), ShouldContainSubstring, "dickens")
			So(buffer.String(), ShouldContainSubstring, sweep.NotAvailable)
		})
	})
}
