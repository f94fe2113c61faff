package executor

import (
	"os"
	"os/exec"
	"path"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Local provisioning is responsible for providing the execution environment
// on local machine via exec.Command.
// It runs command as current user.
type Local struct {
}

// NewLocal returns a Local instance.
func NewLocal() Local {
	return Local{}
}

// Name returns user-friendly name of executor.
func (l Local) Name() string {
	return "Local Executor"
}

// Execute runs the command given as input.
// Returned TaskHandle is able to stop & monitor the provisioned process.
func (l Local) Execute(command string) (TaskHandle, error) {
	log.Debugf("Local Executor: executing %q", command)

	cmd := exec.Command("sh", "-c", command)

	// It is important to set additional Process Group ID for parent process and his children
	// to have ability to kill all the children processes.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdoutFile, stderrFile, err := createExecutorOutputFiles(command, "local")
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create output files for command %q", command)
	}

	log.Debugf("Local Executor: stdout in %q, stderr in %q", stdoutFile.Name(), stderrFile.Name())

	cmd.Stdout = stdoutFile
	cmd.Stderr = stderrFile

	err = cmd.Start()
	if err != nil {
		return nil, errors.Wrapf(err, "could not start command %q", command)
	}

	log.Debugf("Local Executor: started task %q with pid %d", command, cmd.Process.Pid)

	taskHandle := &localTaskHandle{
		cmdHandler:     cmd,
		command:        command,
		stdoutFile:     stdoutFile,
		stderrFile:     stderrFile,
		waitEndChannel: make(chan struct{}),
	}

	// Wait for the process termination in the background. Note: it is the only
	// place where cmd.Wait is invoked.
	go func() {
		defer close(taskHandle.waitEndChannel)

		// NOTE: Wait returns an error for non-zero exit codes. The process
		// state is inspected through the handle in any case (success or
		// failure), so the error object matters less here.
		cmd.Wait()

		err := stdoutFile.Sync()
		if err != nil {
			log.Errorf("Cannot sync stdout file for task %q: %v", command, err)
		}
		err = stderrFile.Sync()
		if err != nil {
			log.Errorf("Cannot sync stderr file for task %q: %v", command, err)
		}

		log.Debugf("Local Executor: task %q with pid %d has ended", command, cmd.Process.Pid)
	}()

	return taskHandle, nil
}

// localTaskHandle implements TaskHandle interface.
type localTaskHandle struct {
	cmdHandler *exec.Cmd
	command    string
	stdoutFile *os.File
	stderrFile *os.File

	// waitEndChannel is closed when the task terminates.
	waitEndChannel chan struct{}
}

// isTerminated checks if waitEndChannel is closed. If it is closed, it means
// that the wait ended and task is in terminated state.
func (t *localTaskHandle) isTerminated() bool {
	select {
	case <-t.waitEndChannel:
		return true
	default:
		return false
	}
}

func (t *localTaskHandle) getPid() int {
	return t.cmdHandler.Process.Pid
}

// Stop terminates the local task.
func (t *localTaskHandle) Stop() error {
	if t.isTerminated() {
		return nil
	}

	// We signal the entire process group.
	// The kill syscall interprets a negated PID N as the process group N belongs to.
	log.Debug("Sending SIGTERM to PID ", -t.getPid())
	err := syscall.Kill(-t.getPid(), syscall.SIGTERM)
	if err != nil {
		return errors.Wrapf(err, "could not stop task %q", t.command)
	}

	// Wait until the process terminates.
	<-t.waitEndChannel
	return nil
}

// Status returns a state of the task.
func (t *localTaskHandle) Status() TaskState {
	if !t.isTerminated() {
		return RUNNING
	}

	return TERMINATED
}

// ExitCode returns a exitCode. If task is not terminated it returns error.
func (t *localTaskHandle) ExitCode() (int, error) {
	if !t.isTerminated() {
		return -1, errors.Errorf("task %q is not terminated", t.command)
	}

	waitStatus := t.cmdHandler.ProcessState.Sys().(syscall.WaitStatus)
	if waitStatus.Exited() {
		return waitStatus.ExitStatus(), nil
	}

	// Shell convention for termination by signal.
	return 128 + int(waitStatus.Signal()), nil
}

// StdoutFile returns a file handle for the task's stdout file.
func (t *localTaskHandle) StdoutFile() (*os.File, error) {
	if _, err := os.Stat(t.stdoutFile.Name()); err != nil {
		return nil, errors.Wrapf(err, "stdout file for task %q is not available", t.command)
	}

	return t.stdoutFile, nil
}

// StderrFile returns a file handle for the task's stderr file.
func (t *localTaskHandle) StderrFile() (*os.File, error) {
	if _, err := os.Stat(t.stderrFile.Name()); err != nil {
		return nil, errors.Wrapf(err, "stderr file for task %q is not available", t.command)
	}

	return t.stderrFile, nil
}

// Wait blocks until the task terminates or the timeout elapses.
// Zero timeout means infinite wait.
// It returns true if the task is terminated.
func (t *localTaskHandle) Wait(timeout time.Duration) bool {
	if t.isTerminated() {
		return true
	}

	var timeoutChannel <-chan time.Time
	if timeout != 0 {
		// In case of wait with timeout set the timeout channel.
		timeoutChannel = time.After(timeout)
	}

	select {
	case <-t.waitEndChannel:
		// If waitEndChannel is closed then task is terminated.
		return true
	case <-timeoutChannel:
		// If timeout time exceeded return then task did not terminate yet.
		return false
	}
}

// Clean closes the task's stdout & stderr files.
func (t *localTaskHandle) Clean() error {
	err := t.stdoutFile.Close()
	if err != nil {
		return errors.Wrapf(err, "could not close stdout file for task %q", t.command)
	}

	err = t.stderrFile.Close()
	if err != nil {
		return errors.Wrapf(err, "could not close stderr file for task %q", t.command)
	}

	return nil
}

// EraseOutput removes the output directory with task's stdout & stderr files.
func (t *localTaskHandle) EraseOutput() error {
	outputDir := path.Dir(t.stdoutFile.Name())
	if err := os.RemoveAll(outputDir); err != nil {
		return errors.Wrapf(err, "could not remove output directory %q", outputDir)
	}

	return nil
}

// Address returns address where the task was executed.
func (t *localTaskHandle) Address() string {
	return "local"
}
