package metadata

import (
	"fmt"
	"strings"
	"time"

	client "github.com/influxdata/influxdb1-client/v2"
	"github.com/pkg/errors"

	"github.com/Gawiiiii/fast-compress/pkg/conf"
)

const influxMetadataMeasurement = "metadata"

var (
	influxDBAddressFlag            = conf.NewStringFlag("influxdb_addr", "Address of the InfluxDB endpoint for sweep metadata", "127.0.0.1")
	influxDBPortFlag               = conf.NewIntFlag("influxdb_port", "Port of the InfluxDB endpoint for sweep metadata", 8086)
	influxDBUsernameFlag           = conf.NewStringFlag("influxdb_username", "Username for the InfluxDB connection", "")
	influxDBPasswordFlag           = conf.NewStringFlag("influxdb_password", "Password for the InfluxDB connection", "")
	influxDBNameFlag               = conf.NewStringFlag("influxdb_name", "Database holding the sweep metadata", "fastcompress")
	influxDBCreateDatabaseFlag     = conf.NewBoolFlag("influxdb_create_database", "Create the metadata database if it does not exist", true)
	influxDBInsecureSkipVerifyFlag = conf.NewBoolFlag("influxdb_insecure_skip_verify", "Skip SSL verification for the InfluxDB connection", false)
)

// InfluxDBConfig holds the connection settings for InfluxDB.
type InfluxDBConfig struct {
	httpConfig client.HTTPConfig
	dbName     string
}

// DefaultInfluxDBConfig applies the InfluxDB settings from the command line
// flags and environment variables.
func DefaultInfluxDBConfig() InfluxDBConfig {
	return InfluxDBConfig{
		dbName: influxDBNameFlag.Value(),
		httpConfig: client.HTTPConfig{
			Addr:               fmt.Sprintf("http://%s:%d", influxDBAddressFlag.Value(), influxDBPortFlag.Value()),
			Username:           influxDBUsernameFlag.Value(),
			Password:           influxDBPasswordFlag.Value(),
			InsecureSkipVerify: influxDBInsecureSkipVerifyFlag.Value(),
		},
	}
}

// InfluxDB keeps the client session alive, holds the active configuration and
// the sweep id to tag the metadata with.
type InfluxDB struct {
	sweepID string
	session client.Client
	config  InfluxDBConfig
}

// NewInfluxDB returns the Metadata helper from a sweep id and configuration.
func NewInfluxDB(sweepID string, config InfluxDBConfig) (Metadata, error) {
	var err error

	metadata := &InfluxDB{
		sweepID: sweepID,
		config:  config,
	}

	metadata.session, err = client.NewHTTPClient(config.httpConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create InfluxDB client for sweep %s", sweepID)
	}

	if influxDBCreateDatabaseFlag.Value() {
		response, err := metadata.session.Query(client.Query{
			Command: fmt.Sprintf("CREATE DATABASE %s", config.dbName)})
		if err != nil {
			return nil, errors.Wrapf(err, "cannot create InfluxDB database for sweep %s", sweepID)
		}
		if response.Error() != nil {
			return nil, errors.Wrapf(response.Error(), "cannot create InfluxDB database for sweep %s", sweepID)
		}
	}

	return metadata, nil
}

// storeMap writes one point per call carrying the whole map as fields, tagged
// with the sweep id and metadata kind.
func (m *InfluxDB) storeMap(metadata map[string]string, kind string) error {
	batchPoints, err := client.NewBatchPoints(client.BatchPointsConfig{Database: m.config.dbName})
	if err != nil {
		return errors.Wrapf(err, "cannot create batch points for metadata kind %q", kind)
	}

	tags := map[string]string{"kind": kind, "sweep_id": m.sweepID}

	fields := make(map[string]interface{})
	for key := range metadata {
		fields[key] = metadata[key]
	}

	point, err := client.NewPoint(influxMetadataMeasurement, tags, fields, time.Now())
	if err != nil {
		return errors.Wrapf(err, "cannot create point for metadata kind %q", kind)
	}

	batchPoints.AddPoint(point)

	return errors.Wrapf(m.session.Write(batchPoints), "cannot publish metadata of kind %q", kind)
}

// Record stores a key and value and associates it with the sweep id.
func (m *InfluxDB) Record(key, value, kind string) error {
	return m.storeMap(map[string]string{key: value}, kind)
}

// RecordMap stores a key-value map and associates it with the sweep id.
func (m *InfluxDB) RecordMap(metadata map[string]string, kind string) error {
	return m.storeMap(metadata, kind)
}

// GetByKind retrieves a single kind from the database. If duplicates exist the
// most recent values win.
func (m *InfluxDB) GetByKind(kind string) (map[string]string, error) {
	metadata := make(map[string]string)

	// Grouping by the two tags collapses them out of the result series.
	cmd := fmt.Sprintf("SELECT last(*) FROM %s WHERE sweep_id='%s' AND kind='%s' GROUP BY sweep_id,kind", influxMetadataMeasurement, m.sweepID, kind)

	response, err := m.session.Query(client.Query{
		Command:  cmd,
		Database: m.config.dbName,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot query metadata for sweep %s", m.sweepID)
	}
	if response.Error() != nil {
		return nil, errors.Wrapf(response.Error(), "cannot query metadata for sweep %s", m.sweepID)
	}

	for _, result := range response.Results {
		for _, row := range result.Series {
			for _, value := range row.Values {
				for idx, cell := range value {
					// Index 0 holds the timestamp and sparse results leave
					// empty cells. Skip both.
					if cell != nil && idx != 0 {
						column := strings.Replace(row.Columns[idx], "last_", "", 1)
						metadata[column] = cell.(string)
					}
				}
			}
		}
	}

	return metadata, nil
}

// Clear deletes all metadata entries associated with the sweep id.
func (m *InfluxDB) Clear() error {
	cmd := fmt.Sprintf("DROP SERIES FROM %s WHERE sweep_id ='%s'", influxMetadataMeasurement, m.sweepID)

	response, err := m.session.Query(client.Query{
		Command:  cmd,
		Database: m.config.dbName,
	})
	if err != nil {
		return errors.Wrapf(err, "cannot clear metadata for sweep %s", m.sweepID)
	}
	if response.Error() != nil {
		return errors.Wrapf(response.Error(), "cannot clear metadata for sweep %s", m.sweepID)
	}
	return nil
}
