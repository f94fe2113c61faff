package fastcompress

// Metrics holds the measurements scraped from a single FastCompress report.
// A nil field means the corresponding line was not found in the report;
// a missing metric is not an error.
type Metrics struct {
	BlockSize               *int
	Iterations              *int
	FileSize                *int
	NBlocks                 *int
	CompressionThroughput   *float64
	CompressionRatio        *float64
	DecompressionThroughput *float64
}
