package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Gawiiiii/fast-compress/pkg/conf"
	"github.com/Gawiiiii/fast-compress/pkg/executor"
	"github.com/Gawiiiii/fast-compress/pkg/fastcompress"
	"github.com/Gawiiiii/fast-compress/pkg/metadata"
	"github.com/Gawiiiii/fast-compress/pkg/sweep"
	"github.com/Gawiiiii/fast-compress/pkg/utils/errutil"
	"github.com/Gawiiiii/fast-compress/pkg/utils/uuid"
	"github.com/Gawiiiii/fast-compress/pkg/visualization"
)

var (
	// Parameter space flags. Each one can be given many times
	// (--input_file=dickens --input_file=mozilla) or comma separated.
	inputFilesFlag = conf.NewSliceFlag(
		"input_file", "Input file to benchmark. Can be given many times.",
		"dickens", "mozilla", "mr", "nci", "ooffice", "osdb")
	algorithmsFlag = conf.NewSliceFlag(
		"algorithm", "Compression algorithm to benchmark. Can be given many times.",
		"lz4", "lz4hc", "lzo", "lzo-rle", "zstd", "842")
	blockSizesFlag = conf.NewSliceFlag(
		"block_size", "Block size in pages. Can be given many times.",
		"1", "4")
	iterationsFlag = conf.NewSliceFlag(
		"iterations", "Number of iterations per invocation. Can be given many times.",
		"1", "5")
	pageShuffleFlag = conf.NewSliceFlag(
		"page_shuffle", "Page shuffle switch (0 or 1). Can be given many times.",
		"0", "1")

	outputFileFlag = conf.NewStringFlag(
		"output_file", "Destination of the CSV result table.",
		"compression_test_results.csv")
	printTableFlag = conf.NewBoolFlag(
		"print_table", "Print the result table on the console when the sweep finishes.",
		true)
)

// intValues converts one of the numeric slice flags, aborting on junk input.
func intValues(name string, values []string) []int {
	ints := make([]int, 0, len(values))
	for _, value := range values {
		number, err := strconv.Atoi(value)
		errutil.CheckWithContext(err, fmt.Sprintf("invalid value %q for flag %q", value, name))
		ints = append(ints, number)
	}
	return ints
}

func paramsFromFlags() sweep.Params {
	return sweep.Params{
		InputFiles:   inputFilesFlag.Value(),
		Algorithms:   algorithmsFlag.Value(),
		BlockSizes:   intValues("block_size", blockSizesFlag.Value()),
		Iterations:   intValues("iterations", iterationsFlag.Value()),
		ShuffleFlags: intValues("page_shuffle", pageShuffleFlag.Value()),
	}
}

func main() {
	conf.SetAppName("compression-sweep")
	conf.SetHelp(`Compression sweep runs the FastCompress benchmark over the full cartesian
product of input files, algorithms, block sizes, iteration counts and page
shuffle settings, and aggregates the parsed measurements into a CSV table.`)

	errutil.Check(conf.ParseFlags())

	logrus.SetLevel(conf.LogLevel())

	params := paramsFromFlags()

	sweepID := uuid.New()
	logrus.Infof("Starting sweep %s: %d cases", sweepID, params.TotalCases())

	if metadata.DBFlag.Value() != "none" {
		recorder, err := metadata.NewDefault(sweepID)
		errutil.CheckWithContext(err, "cannot connect to metadata database")
		errutil.CheckWithContext(metadata.RecordRuntimeEnv(recorder, time.Now()), "cannot record sweep metadata")
	}

	benchmark := fastcompress.New(executor.NewLocal(), fastcompress.DefaultConfig())

	results := sweep.New(benchmark, sweep.ConsoleProgress{}).Run(params)
	// The progress indicator ends with a carriage return; move past it.
	fmt.Println()

	errutil.CheckWithContext(sweep.WriteCSV(results, outputFileFlag.Value()), "cannot write result table")
	logrus.Infof("Sweep %s finished: %d of %d cases succeeded, results saved to %s",
		sweepID, len(results), params.TotalCases(), outputFileFlag.Value())

	if printTableFlag.Value() {
		visualization.PrintResults(os.Stdout, results)
	}
}
