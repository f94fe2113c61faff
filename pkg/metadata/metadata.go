// Package metadata records sweep context (flags, environment, platform) in an
// external database so results in the CSV can be traced back to the exact
// configuration that produced them.
package metadata

import (
	"github.com/pkg/errors"

	"github.com/Gawiiiii/fast-compress/pkg/conf"
)

// Predefined kinds of metadata. A kind groups entries by their common
// characteristics: TypeFlags for the parsed command line, TypeEnviron for
// environment variables and TypePlatform for recorded host characteristics.
// The kind is just a string and callers may define their own.
const (
	TypeEmpty    = ""
	TypeFlags    = "flags"
	TypeEnviron  = "environ"
	TypePlatform = "platform"
)

// DBFlag selects the metadata backend. With the default "none" no metadata is
// recorded at all.
var DBFlag = conf.NewStringFlag("metadata_db", "Database to store the sweep metadata in (none, cassandra or influxdb)", "none")

// Metadata is the backend interface for storing sweep metadata.
type Metadata interface {
	// Record stores a single key and value and associates it with the sweep id.
	Record(key string, value string, kind string) error
	// RecordMap stores a key-value map and associates it with the sweep id.
	RecordMap(metadata map[string]string, kind string) error
	// GetByKind retrieves the metadata of a single kind from the database.
	GetByKind(kind string) (map[string]string, error)
	// Clear deletes all metadata entries associated with the sweep id.
	Clear() error
}

// NewDefault returns the backend selected by the metadata_db flag. Callers
// should not call it when the flag is set to "none".
func NewDefault(sweepID string) (Metadata, error) {
	switch DBFlag.Value() {
	case "cassandra":
		return NewCassandra(sweepID, DefaultCassandraConfig())
	case "influxdb":
		return NewInfluxDB(sweepID, DefaultInfluxDBConfig())
	}

	return nil, errors.Errorf("unsupported database for metadata: %q", DBFlag.Value())
}
