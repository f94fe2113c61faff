package executor

import (
	"io/ioutil"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
)

func getBinaryNameFromCommand(command string) (string, error) {
	_, name := path.Split(command)
	nameSplit := strings.Split(name, " ")
	if len(nameSplit) == 0 {
		return "", errors.Errorf("failed to extract command name from %q", command)
	}
	return nameSplit[0], nil
}

// createExecutorOutputFiles creates a fresh output directory in the working
// directory and the stdout & stderr files for one command execution inside it.
func createExecutorOutputFiles(command, prefix string) (stdout, stderr *os.File, err error) {
	if len(command) == 0 {
		return nil, nil, errors.New("empty command string")
	}

	commandName, err := getBinaryNameFromCommand(command)
	if err != nil {
		return nil, nil, err
	}

	pwd, err := os.Getwd()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get working directory")
	}
	outputDir, err := ioutil.TempDir(pwd, prefix+"_"+commandName+"_")
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create output directory for %q", commandName)
	}

	stdoutFileName := path.Join(outputDir, "stdout")
	stdout, err = os.Create(stdoutFileName)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create stdout file for %q", commandName)
	}

	stderr, err = os.Create(path.Join(outputDir, "stderr"))
	if err != nil {
		os.Remove(stdoutFileName)
		return nil, nil, errors.Wrapf(err, "failed to create stderr file for %q", commandName)
	}

	return stdout, stderr, err
}
