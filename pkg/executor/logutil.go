package executor

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Gawiiiii/fast-compress/pkg/utils/fs"
)

// LogUnsuccessfulExecution logs the stdout and stderr file locations of a
// failed task together with the last lines of both files.
func LogUnsuccessfulExecution(whatWasExecuted string, whereWasExecuted string, handle TaskHandle) {
	var stdoutFileName string
	var stderrFileName string

	stdoutFile, err := handle.StdoutFile()
	if err != nil {
		logrus.Errorf("Could not read stdout filename for command %s on %s", whatWasExecuted, whereWasExecuted)
		stdoutFileName = fmt.Sprintf("%v", err)
	} else {
		stdoutFileName = stdoutFile.Name()
	}

	stderrFile, err := handle.StderrFile()
	if err != nil {
		logrus.Errorf("Could not read stderr filename for command %s on %s", whatWasExecuted, whereWasExecuted)
		stderrFileName = fmt.Sprintf("%v", err)
	} else {
		stderrFileName = stderrFile.Name()
	}

	lineCount := 3
	stdoutTail, err := fs.ReadTail(stdoutFileName, lineCount)
	if err != nil {
		stdoutTail = fmt.Sprintf("%v", err)
	}
	stderrTail, err := fs.ReadTail(stderrFileName, lineCount)
	if err != nil {
		stderrTail = fmt.Sprintf("%v", err)
	}

	logrus.Errorf("Command %q might have ended prematurely on %q", whatWasExecuted, whereWasExecuted)
	logrus.Errorf("Stdout stored in %q", stdoutFileName)
	logrus.Errorf("Stderr stored in %q", stderrFileName)
	logrus.Errorf("Last %d lines of stdout", lineCount)
	ErrorLogLines(strings.NewReader(stdoutTail))
	logrus.Errorf("Last %d lines of stderr", lineCount)
	ErrorLogLines(strings.NewReader(stderrTail))

	exitCode, err := handle.ExitCode()
	if err != nil {
		logrus.Errorf("Could not read exit code: %v", err)
	} else {
		logrus.Errorf("Exit code: %d", exitCode)
	}
}

// ErrorLogLines takes a reader and prints each line from it in a separate
// log.Errorf call. Rationale behind this function is the fact that logrus
// does not support multi-line logs.
func ErrorLogLines(r *strings.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		logrus.Errorf("  %s", scanner.Text())
	}
	err := scanner.Err()
	if err != nil {
		logrus.Errorf("Printing from reader failed: %q", err.Error())
	}
}
