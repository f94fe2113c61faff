package sweep

import (
	"os"
	"path"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Gawiiiii/fast-compress/pkg/fastcompress"
)

func TestWriteCSV(t *testing.T) {
	Convey("While writing a result table to a CSV file", t, func() {
		blockSize := 4
		iterations := 1
		ratio := 2.35

		table := ResultTable{
			{
				Case: fastcompress.Case{
					InputFile: "dickens", Algorithm: "lz4", BlockSize: 4, Iterations: 1, PageShuffle: 0},
				Metrics: fastcompress.Metrics{
					BlockSize:        &blockSize,
					Iterations:       &iterations,
					CompressionRatio: &ratio,
				},
			},
			{
				Case: fastcompress.Case{
					InputFile: "dickens", Algorithm: "zstd", BlockSize: 4, Iterations: 1, PageShuffle: 1},
			},
		}

		destination := path.Join(t.TempDir(), "results.csv")

		Convey("The file should contain the header and one line per row", func() {
			So(WriteCSV(table, destination), ShouldBeNil)

			content, err := os.ReadFile(destination)
			So(err, ShouldBeNil)
			So(string(content), ShouldEqual,
				"input_file,algorithm,page_shuffle,block_size,iterations,file_size,nblocks,"+
					"compression_throughput,compression_ratio,decompression_throughput\n"+
					"dickens,lz4,0,4,1,N/A,N/A,N/A,2.35,N/A\n"+
					"dickens,zstd,1,N/A,N/A,N/A,N/A,N/A,N/A,N/A\n")
		})

		Convey("Writing twice should overwrite, leaving identical content", func() {
			So(WriteCSV(table, destination), ShouldBeNil)
			first, err := os.ReadFile(destination)
			So(err, ShouldBeNil)

			So(WriteCSV(table, destination), ShouldBeNil)
			second, err := os.ReadFile(destination)
			So(err, ShouldBeNil)

			So(string(second), ShouldEqual, string(first))
		})

		Convey("An empty table should still produce the header", func() {
			So(WriteCSV(ResultTable{}, destination), ShouldBeNil)

			content, err := os.ReadFile(destination)
			So(err, ShouldBeNil)
			So(string(content), ShouldEqual,
				"input_file,algorithm,page_shuffle,block_size,iterations,file_size,nblocks,"+
					"compression_throughput,compression_ratio,decompression_throughput\n")
		})

		Convey("An unreachable destination should yield an error", func() {
			err := WriteCSV(table, path.Join(t.TempDir(), "no", "such", "dir", "results.csv"))
			So(err, ShouldNotBeNil)
		})
	})
}
