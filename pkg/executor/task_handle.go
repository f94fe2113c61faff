package executor

import (
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/errors"
)

// TaskState is an enum presenting current task state.
type TaskState int

const (
	// RUNNING task state means that task is still running.
	RUNNING TaskState = iota
	// TERMINATED task state means that task completed or stopped.
	TERMINATED
)

// TaskHandle represents a process which can be stopped or monitored.
type TaskHandle interface {
	// Stop terminates the task.
	Stop() error
	// Status returns a state of the task.
	Status() TaskState
	// ExitCode returns an exit code. If task is not terminated it returns error.
	ExitCode() (int, error)
	// StdoutFile returns a file handle to the task's stdout file.
	StdoutFile() (*os.File, error)
	// StderrFile returns a file handle to the task's stderr file.
	StderrFile() (*os.File, error)
	// Wait blocks until the task terminates or the timeout elapses.
	// Zero timeout means infinite wait.
	// It returns true if the task is terminated.
	Wait(timeout time.Duration) bool
	// Clean closes the task's stdout & stderr files.
	Clean() error
	// EraseOutput removes task's stdout & stderr files.
	EraseOutput() error
	// Address returns address where the task was executed.
	Address() string
}

// ReadStdout reads the whole content of the task's stdout file.
func ReadStdout(handle TaskHandle) (string, error) {
	stdoutFile, err := handle.StdoutFile()
	if err != nil {
		return "", err
	}

	if _, err := stdoutFile.Seek(0, io.SeekStart); err != nil {
		return "", errors.Wrapf(err, "could not rewind stdout file %q", stdoutFile.Name())
	}

	output, err := ioutil.ReadAll(stdoutFile)
	if err != nil {
		return "", errors.Wrapf(err, "could not read stdout file %q", stdoutFile.Name())
	}

	return string(output), nil
}
