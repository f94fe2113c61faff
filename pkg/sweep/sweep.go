// Package sweep enumerates the FastCompress parameter space, runs the
// benchmark for every combination and accumulates the results into a table.
package sweep

import (
	log "github.com/sirupsen/logrus"

	"github.com/Gawiiiii/fast-compress/pkg/fastcompress"
)

// Params describes the parameter space of one sweep. The full space is the
// Cartesian product of the five sets.
type Params struct {
	InputFiles   []string
	Algorithms   []string
	BlockSizes   []int
	Iterations   []int
	ShuffleFlags []int
}

// TotalCases returns the number of cases in the parameter space. It is
// computed before any case runs so progress can be reported against it.
func (p Params) TotalCases() int {
	return len(p.InputFiles) * len(p.Algorithms) * len(p.BlockSizes) * len(p.Iterations) * len(p.ShuffleFlags)
}

// Cases enumerates the parameter space in the fixed nested order: input file
// outermost, then algorithm, block size, iterations and the shuffle flag
// innermost. The order determines both the progress sequence and the final
// row order, and must stay reproducible.
func (p Params) Cases() []fastcompress.Case {
	cases := make([]fastcompress.Case, 0, p.TotalCases())
	for _, inputFile := range p.InputFiles {
		for _, algorithm := range p.Algorithms {
			for _, blockSize := range p.BlockSizes {
				for _, iterations := range p.Iterations {
					for _, pageShuffle := range p.ShuffleFlags {
						cases = append(cases, fastcompress.Case{
							InputFile:   inputFile,
							Algorithm:   algorithm,
							BlockSize:   blockSize,
							Iterations:  iterations,
							PageShuffle: pageShuffle,
						})
					}
				}
			}
		}
	}
	return cases
}

// Runner runs a single benchmark case. It returns the scraped metrics or an
// error when the case invocation failed.
type Runner interface {
	Run(c fastcompress.Case) (fastcompress.Metrics, error)
}

// Sweep drives a Runner over a parameter space.
type Sweep struct {
	runner   Runner
	progress ProgressHandler
}

// New is a constructor for Sweep. A nil progress handler disables progress
// reporting.
func New(runner Runner, progress ProgressHandler) *Sweep {
	return &Sweep{
		runner:   runner,
		progress: progress,
	}
}

// Run attempts every case of the parameter space exactly once, in enumeration
// order. A failing case is reported and skipped; it never aborts the sweep.
// The returned table holds one row per successful case, in enumeration order.
func (s *Sweep) Run(params Params) ResultTable {
	total := params.TotalCases()
	done := 0

	table := ResultTable{}
	for _, benchmarkCase := range params.Cases() {
		metrics, err := s.runner.Run(benchmarkCase)
		done++

		if err != nil {
			log.Errorf("Test failed for case (%s): %v", benchmarkCase, err)
		} else {
			warnOnParameterMismatch(benchmarkCase, metrics)
			table = append(table, Row{Case: benchmarkCase, Metrics: metrics})
		}

		if s.progress != nil {
			s.progress.OnProgress(done, total)
		}
	}

	return table
}

// warnOnParameterMismatch surfaces a disagreement between what was requested
// and what the benchmark reports. The reported value still wins in the result
// row; the requested value is never substituted for it.
func warnOnParameterMismatch(c fastcompress.Case, m fastcompress.Metrics) {
	if m.BlockSize != nil && *m.BlockSize != c.BlockSize {
		log.Warnf("Case (%s) reported block size %d pages", c, *m.BlockSize)
	}
	if m.Iterations != nil && *m.Iterations != c.Iterations {
		log.Warnf("Case (%s) reported %d iterations", c, *m.Iterations)
	}
}
