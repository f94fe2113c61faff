package metadata

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Keys in the platform metrics map. Throughput numbers are meaningless
// without knowing what hardware produced them, so the CPU and kernel details
// are recorded next to the results.
const (
	// CPUModelNameKey defines a key in the platform metrics map
	CPUModelNameKey = "cpu_model"
	// KernelVersionKey defines a key in the platform metrics map
	KernelVersionKey = "kernel_version"
	// OSReleaseKey defines a key in the platform metrics map
	OSReleaseKey = "os_release"
	// CPUTopologyKey defines a key in the platform metrics map
	CPUTopologyKey = "cpu_topology"
	// PowerGovernorKey defines a key in the platform metrics map
	PowerGovernorKey = "power_governor"
)

// GetPlatformMetrics returns a map of strings with platform metrics.
// If a metric could not be retrieved its value is an empty string.
func GetPlatformMetrics() (platformMetrics map[string]string) {
	platformMetrics = make(map[string]string)

	item, err := CPUModelName()
	if err != nil {
		logrus.Warnf("GetPlatformMetrics: failed to get %s metric, skipping: %s", CPUModelNameKey, err.Error())
	}
	platformMetrics[CPUModelNameKey] = item

	item, err = KernelVersion()
	if err != nil {
		logrus.Warnf("GetPlatformMetrics: failed to get %s metric, skipping: %s", KernelVersionKey, err.Error())
	}
	platformMetrics[KernelVersionKey] = item

	item, err = OSRelease()
	if err != nil {
		logrus.Warnf("GetPlatformMetrics: failed to get %s metric, skipping: %s", OSReleaseKey, err.Error())
	}
	platformMetrics[OSReleaseKey] = item

	item, err = CPUTopology()
	if err != nil {
		logrus.Warnf("GetPlatformMetrics: failed to get %s metric, skipping: %s", CPUTopologyKey, err.Error())
	}
	platformMetrics[CPUTopologyKey] = item

	item, err = PowerGovernor()
	if err != nil {
		logrus.Warnf("GetPlatformMetrics: failed to get %s metric, skipping: %s", PowerGovernorKey, err.Error())
	}
	platformMetrics[PowerGovernorKey] = item

	return platformMetrics
}

// CPUModelName reads /proc/cpuinfo and returns the first 'model name' value.
// Mixed CPU models in multi socket machines are not distinguished.
func CPUModelName() (string, error) {
	file, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return "", errors.Wrap(err, "cannot open /proc/cpuinfo file")
	}
	defer file.Close()

	procScanner := bufio.NewScanner(file)

	for procScanner.Scan() {
		line := procScanner.Text()
		chunks := strings.SplitN(line, ":", 2)
		if len(chunks) != 2 {
			continue
		}
		if strings.TrimSpace(chunks[0]) == "model name" {
			return strings.TrimSpace(chunks[1]), nil
		}
	}

	err = procScanner.Err()
	if err == nil {
		err = errors.New("did not find 'model name' in /proc/cpuinfo")
	}
	return "", err
}

// KernelVersion returns the kernel version as stated in /proc/version.
func KernelVersion() (string, error) {
	return readContents("/proc/version")
}

// OSRelease returns the PRETTY_NAME line of /etc/os-release.
func OSRelease() (string, error) {
	contents, err := readContents("/etc/os-release")
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(contents, "\n") {
		if strings.HasPrefix(line, "PRETTY_NAME=") {
			return strings.Trim(strings.TrimPrefix(line, "PRETTY_NAME="), `"`), nil
		}
	}
	return "", errors.New("did not find PRETTY_NAME in /etc/os-release")
}

// CPUTopology returns the whole output of 'lscpu -e'.
func CPUTopology() (string, error) {
	output, err := exec.Command("lscpu", "-e").Output()
	if err != nil {
		return "", errors.Wrap(err, "failed to get output from lscpu -e")
	}
	return strings.TrimSpace(string(output)), nil
}

// PowerGovernor returns a comma separated list of CPU:power_policy pairs.
// Example (snippet):
//
//	"0:performance,1:performance,10:performance"
func PowerGovernor() (string, error) {
	dir := "/sys/devices/system/cpu"
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrap(err, "failed to scan sysfs for CPU devices")
	}

	re := regexp.MustCompile("cpu[0-9]+$")
	output := []string{}
	for _, file := range files {
		if file.IsDir() && re.MatchString(file.Name()) {
			cpufreq := path.Join(dir, file.Name(), "cpufreq/scaling_governor")

			gov, err := readContents(cpufreq)
			if err != nil {
				return "", err
			}
			item := fmt.Sprintf("%s:%s", strings.TrimPrefix(file.Name(), "cpu"), gov)
			output = append(output, item)
		}
	}

	return strings.Join(output, ","), nil
}

func readContents(name string) (string, error) {
	content, err := os.ReadFile(name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", name)
	}
	return strings.TrimSpace(string(content)), nil
}
