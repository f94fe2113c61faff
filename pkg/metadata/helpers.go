package metadata

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Gawiiiii/fast-compress/pkg/conf"
)

// RecordRuntimeEnv stores the full sweep context in the metadata database:
// the parsed flags, the SWEEP_ environment, the host, the start time and the
// platform characteristics.
func RecordRuntimeEnv(metadata Metadata, sweepStart time.Time) error {
	err := recordFlags(metadata)
	if err != nil {
		return err
	}

	err = recordEnv(metadata, conf.EnvironmentPrefix)
	if err != nil {
		return err
	}

	hostname, err := os.Hostname()
	if err != nil {
		return errors.Wrap(err, "cannot retrieve hostname")
	}

	err = metadata.RecordMap(map[string]string{
		"time": sweepStart.Format(time.RFC822Z),
		"host": hostname,
	}, TypeEmpty)
	if err != nil {
		return err
	}

	return recordPlatformMetrics(metadata)
}

// recordFlags saves the whole flag based configuration.
func recordFlags(metadata Metadata) error {
	return metadata.RecordMap(conf.GetFlags(), TypeFlags)
}

// recordEnv saves all OS environment variables that start with prefix.
func recordEnv(metadata Metadata, prefix string) error {
	envMetadata := map[string]string{}
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, prefix) {
			fields := strings.SplitN(env, "=", 2)
			envMetadata[fields[0]] = fields[1]
		}
	}
	return metadata.RecordMap(envMetadata, TypeEnviron)
}

func recordPlatformMetrics(metadata Metadata) error {
	return metadata.RecordMap(GetPlatformMetrics(), TypePlatform)
}
