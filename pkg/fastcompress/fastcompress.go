package fastcompress

import (
	"fmt"
	"path"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Gawiiiii/fast-compress/pkg/conf"
	"github.com/Gawiiiii/fast-compress/pkg/executor"
)

const name = "FastCompress"

// Config is a config for the FastCompress block compression benchmark.
// FastCompress usage:
// [USAGE]: file path, block size [n pages], number of iteration,
//          [page random shuffle, false by default], algorithm
type Config struct {
	PathToBinary string        `help:"Path to the FastCompress binary." default:"./FastCompress"`
	DataDir      string        `help:"Directory with corpus input files." default:"data"`
	RunTimeout   time.Duration `help:"Maximum duration of a single benchmark run; 0 means no timeout." default:"0s"`
	RunRetries   int           `help:"Number of additional attempts for a failed benchmark run." default:"0"`

	flagPrefix string
}

var defaultConfig = Config{
	flagPrefix: name,
}

func init() {
	conf.Process(&defaultConfig)
}

// DefaultConfig is a constructor for Config with values from flags and environment.
func DefaultConfig() Config {
	conf.Process(&defaultConfig)
	return defaultConfig
}

// Case is one concrete combination of benchmark parameters.
type Case struct {
	InputFile   string
	Algorithm   string
	BlockSize   int
	Iterations  int
	PageShuffle int
}

// String implements fmt.Stringer interface. It is used in diagnostics to name
// the failing parameter combination.
func (c Case) String() string {
	return fmt.Sprintf("input_file=%s, algorithm=%s, block_size=%d, iterations=%d, page_shuffle=%d",
		c.InputFile, c.Algorithm, c.BlockSize, c.Iterations, c.PageShuffle)
}

// Benchmark is a launcher for the FastCompress block compression benchmark.
type Benchmark struct {
	exec executor.Executor
	conf Config
}

// New is a constructor for Benchmark.
func New(exec executor.Executor, config Config) Benchmark {
	return Benchmark{
		exec: exec,
		conf: config,
	}
}

func (b Benchmark) buildCommand(c Case) string {
	return fmt.Sprint(b.conf.PathToBinary,
		" ", path.Join(b.conf.DataDir, c.InputFile),
		" ", c.BlockSize,
		" ", c.Iterations,
		" ", c.PageShuffle,
		" ", c.Algorithm)
}

// Run executes FastCompress for one parameter combination, waits for its
// termination and parses the captured report. A non-zero exit status or a
// timeout is returned as an error with no metrics. Failed runs are repeated
// up to RunRetries times.
func (b Benchmark) Run(c Case) (Metrics, error) {
	var lastErr error
	for attempt := 0; attempt <= b.conf.RunRetries; attempt++ {
		if attempt > 0 {
			log.Debugf("Retrying case (%s), attempt %d of %d", c, attempt, b.conf.RunRetries)
		}

		metrics, err := b.runOnce(c)
		if err == nil {
			return metrics, nil
		}
		lastErr = err
	}

	return Metrics{}, lastErr
}

func (b Benchmark) runOnce(c Case) (Metrics, error) {
	command := b.buildCommand(c)

	task, err := b.exec.Execute(command)
	if err != nil {
		return Metrics{}, errors.Wrapf(err, "could not execute %q", command)
	}
	defer func() {
		if err := task.EraseOutput(); err != nil {
			log.Errorf("Could not erase output of task %q: %v", command, err)
		}
	}()
	defer func() {
		if err := task.Clean(); err != nil {
			log.Errorf("Could not clean task %q: %v", command, err)
		}
	}()

	if terminated := task.Wait(b.conf.RunTimeout); !terminated {
		if err := task.Stop(); err != nil {
			log.Errorf("Could not stop timed out task %q: %v", command, err)
		}
		return Metrics{}, errors.Errorf("case (%s) timed out after %s", c, b.conf.RunTimeout)
	}

	exitCode, err := task.ExitCode()
	if err != nil {
		return Metrics{}, errors.Wrapf(err, "could not fetch exit code of %q", command)
	}
	if exitCode != 0 {
		executor.LogUnsuccessfulExecution(command, b.exec.Name(), task)
		return Metrics{}, errors.Errorf("case (%s) failed with exit code %d", c, exitCode)
	}

	output, err := executor.ReadStdout(task)
	if err != nil {
		return Metrics{}, errors.Wrapf(err, "could not read output of %q", command)
	}

	return Parse(output), nil
}
