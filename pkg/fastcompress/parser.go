package fastcompress

import (
	"regexp"
	"strconv"
)

// FastCompress reports each metric on a distinguishable line containing a
// fixed label followed by a numeric value, for example:
// [INFO]: block size 4 pages, number of iterations 5
// [INFO]: file size 10192446, number of blocks 623
// [INFO]: compression throughput 1309.77 MiB/Second
// [INFO]: compression ratio (original size / compressed size) 2.35
// [INFO]: decompression throughput 3404.61 MiB/Second
var (
	blockSizeRegex               = regexp.MustCompile(`\[INFO\]: block size (\d+) pages`)
	iterationsRegex              = regexp.MustCompile(`number of iterations (\d+)`)
	fileSizeRegex                = regexp.MustCompile(`\[INFO\]: file size (\d+)`)
	nblocksRegex                 = regexp.MustCompile(`number of blocks (\d+)`)
	compressionThroughputRegex   = regexp.MustCompile(`\[INFO\]: compression throughput ([\d\.]+) MiB/Second`)
	compressionRatioRegex        = regexp.MustCompile(`\[INFO\]: compression ratio \(original size / compressed size\) ([\d\.]+)`)
	decompressionThroughputRegex = regexp.MustCompile(`\[INFO\]: decompression throughput ([\d\.]+) MiB/Second`)
)

func matchNotFound(match []string) bool {
	return match == nil || len(match) < 2 || len(match[1]) == 0
}

// getIntFrom searches output for the given pattern and parses the first
// submatch as an integer. It returns nil when the pattern is not found.
func getIntFrom(regex *regexp.Regexp, output string) *int {
	match := regex.FindStringSubmatch(output)
	if matchNotFound(match) {
		return nil
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}

	return &value
}

// getFloatFrom searches output for the given pattern and parses the first
// submatch as a float. It returns nil when the pattern is not found.
func getFloatFrom(regex *regexp.Regexp, output string) *float64 {
	match := regex.FindStringSubmatch(output)
	if matchNotFound(match) {
		return nil
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return nil
	}

	return &value
}

// Parse scrapes all known metrics from a FastCompress report.
// Each pattern is searched independently; the first match per pattern wins.
// Output does not have to be well formed: lines which cannot be found simply
// leave the corresponding field unset and no error is ever raised.
func Parse(output string) Metrics {
	return Metrics{
		BlockSize:               getIntFrom(blockSizeRegex, output),
		Iterations:              getIntFrom(iterationsRegex, output),
		FileSize:                getIntFrom(fileSizeRegex, output),
		NBlocks:                 getIntFrom(nblocksRegex, output),
		CompressionThroughput:   getFloatFrom(compressionThroughputRegex, output),
		CompressionRatio:        getFloatFrom(compressionRatioRegex, output),
		DecompressionThroughput: getFloatFrom(decompressionThroughputRegex, output),
	}
}
