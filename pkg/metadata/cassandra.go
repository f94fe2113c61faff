package metadata

import (
	"fmt"
	"time"

	"github.com/gocql/gocql"
	"github.com/pkg/errors"

	"github.com/Gawiiiii/fast-compress/pkg/conf"
)

var (
	cassandraAddressFlag           = conf.NewStringFlag("cassandra_addr", "Address of the Cassandra endpoint for sweep metadata", "127.0.0.1")
	cassandraPortFlag              = conf.NewIntFlag("cassandra_port", "Port of the Cassandra endpoint for sweep metadata", 9042)
	cassandraUsernameFlag          = conf.NewStringFlag("cassandra_username", "Username for the Cassandra connection", "")
	cassandraPasswordFlag          = conf.NewStringFlag("cassandra_password", "Password for the Cassandra connection", "")
	cassandraConnectionTimeoutFlag = conf.NewDurationFlag("cassandra_connection_timeout", "Timeout for connecting to Cassandra", 0)
	cassandraTimeoutFlag           = conf.NewDurationFlag("cassandra_timeout", "Timeout for Cassandra queries", 0)
	cassandraKeyspaceNameFlag      = conf.NewStringFlag("cassandra_keyspace_name", "Keyspace holding the sweep metadata table", "fastcompress")
	cassandraCreateKeyspaceFlag    = conf.NewBoolFlag("cassandra_create_keyspace", "Create the metadata keyspace if it does not exist", true)
	cassandraSslEnabledFlag        = conf.NewBoolFlag("cassandra_ssl", "Enable SSL for the Cassandra connection", false)
	cassandraSslHostValidationFlag = conf.NewBoolFlag("cassandra_ssl_host_validation", "Verify the Cassandra host when SSL is enabled", false)
	cassandraSslCAPathFlag         = conf.NewFileFlag("cassandra_ssl_ca_path", "Path to the CA certificate for the Cassandra connection", "")
	cassandraSslCertPathFlag       = conf.NewFileFlag("cassandra_ssl_cert_path", "Path to the client certificate for the Cassandra connection", "")
	cassandraSslKeyPathFlag        = conf.NewFileFlag("cassandra_ssl_key_path", "Path to the client key for the Cassandra connection", "")
)

// CassandraConfig encodes the settings for connecting to the database.
type CassandraConfig struct {
	Address           string
	Port              int
	Username          string
	Password          string
	ConnectionTimeout time.Duration
	Timeout           time.Duration
	KeyspaceName      string
	CreateKeyspace    bool
	SslEnabled        bool
	SslHostValidation bool
	SslCAPath         string
	SslCertPath       string
	SslKeyPath        string
}

// DefaultCassandraConfig applies the Cassandra settings from the command line
// flags and environment variables.
func DefaultCassandraConfig() CassandraConfig {
	return CassandraConfig{
		Address:           cassandraAddressFlag.Value(),
		Port:              cassandraPortFlag.Value(),
		Username:          cassandraUsernameFlag.Value(),
		Password:          cassandraPasswordFlag.Value(),
		ConnectionTimeout: cassandraConnectionTimeoutFlag.Value(),
		Timeout:           cassandraTimeoutFlag.Value(),
		KeyspaceName:      cassandraKeyspaceNameFlag.Value(),
		CreateKeyspace:    cassandraCreateKeyspaceFlag.Value(),
		SslEnabled:        cassandraSslEnabledFlag.Value(),
		SslHostValidation: cassandraSslHostValidationFlag.Value(),
		SslCAPath:         cassandraSslCAPathFlag.Value(),
		SslCertPath:       cassandraSslCertPathFlag.Value(),
		SslKeyPath:        cassandraSslKeyPathFlag.Value(),
	}
}

// Cassandra keeps the session alive, holds the active configuration and the
// sweep id to tag the metadata with.
type Cassandra struct {
	sweepID string
	config  CassandraConfig
	session *gocql.Session
}

// NewCassandra returns the Metadata helper from a sweep id and configuration.
func NewCassandra(sweepID string, config CassandraConfig) (Metadata, error) {
	metadata := &Cassandra{
		sweepID: sweepID,
		config:  config,
	}
	if err := metadata.connect(); err != nil {
		return nil, err
	}

	return metadata, nil
}

func sslOptions(config CassandraConfig) *gocql.SslOptions {
	options := &gocql.SslOptions{
		EnableHostVerification: config.SslHostValidation,
	}

	if config.SslCAPath != "" {
		options.CaPath = config.SslCAPath
	}

	if config.SslCertPath != "" {
		options.CertPath = config.SslCertPath
	}

	if config.SslKeyPath != "" {
		options.KeyPath = config.SslKeyPath
	}

	return options
}

func (m *Cassandra) clusterConfig() *gocql.ClusterConfig {
	cluster := gocql.NewCluster(m.config.Address)

	cluster.Port = m.config.Port
	cluster.Consistency = gocql.LocalOne
	cluster.SerialConsistency = gocql.LocalSerial
	cluster.ProtoVersion = 4

	if m.config.ConnectionTimeout > 0 {
		cluster.ConnectTimeout = m.config.ConnectionTimeout
	}
	if m.config.Timeout > 0 {
		cluster.Timeout = m.config.Timeout
	}

	return cluster
}

func (m *Cassandra) createKeyspace(cluster *gocql.ClusterConfig) error {
	// The keyspace cannot be created from a session bound to it, hence the
	// separate keyspace-less session.
	keyspaceless := *cluster
	keyspaceless.Keyspace = ""

	session, err := keyspaceless.CreateSession()
	if err != nil {
		return errors.Wrap(err, "cannot create session for creating keyspace")
	}
	defer session.Close()

	query := fmt.Sprintf("CREATE KEYSPACE IF NOT EXISTS %s WITH REPLICATION = {'class': 'SimpleStrategy', 'replication_factor': 1};", m.config.KeyspaceName)

	return errors.Wrap(session.Query(query).Exec(), "cannot create keyspace")
}

// connect creates a session to the Cassandra cluster. It is called once, from
// NewCassandra.
func (m *Cassandra) connect() error {
	cluster := m.clusterConfig()
	cluster.Keyspace = m.config.KeyspaceName

	if m.config.Username != "" && m.config.Password != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: m.config.Username,
			Password: m.config.Password,
		}
	}

	if m.config.SslEnabled {
		cluster.SslOpts = sslOptions(m.config)
	}

	if m.config.CreateKeyspace {
		if err := m.createKeyspace(cluster); err != nil {
			return err
		}
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return errors.Wrap(err, "cannot connect to Cassandra")
	}

	m.session = session

	return session.Query("CREATE TABLE IF NOT EXISTS metadata (sweep_id text, kind text, time timestamp, timeuuid TIMEUUID, metadata map<text,text>, PRIMARY KEY ((sweep_id), timeuuid)) WITH CLUSTERING ORDER BY (timeuuid DESC);").Exec()
}

func (m *Cassandra) storeMap(metadata map[string]string, kind string) error {
	err := m.session.Query(`INSERT INTO metadata (sweep_id, kind, time, timeuuid, metadata) VALUES (?, ?, ?, ?, ?)`, m.sweepID, kind, time.Now(), gocql.TimeUUID(), metadata).Exec()
	return errors.Wrapf(err, "cannot publish metadata of kind %q", kind)
}

// Record stores a key and value and associates it with the sweep id.
func (m *Cassandra) Record(key, value, kind string) error {
	return m.storeMap(map[string]string{key: value}, kind)
}

// RecordMap stores a key-value map and associates it with the sweep id.
func (m *Cassandra) RecordMap(metadata map[string]string, kind string) error {
	return m.storeMap(metadata, kind)
}

// GetByKind retrieves a single kind from the database. It returns an error
// unless exactly one map of that kind exists for the sweep id.
func (m *Cassandra) GetByKind(kind string) (map[string]string, error) {
	var metadata map[string]string

	maps := []map[string]string{}

	iter := m.session.Query(`SELECT metadata FROM metadata WHERE sweep_id = ? AND kind = ? ALLOW FILTERING`, m.sweepID, kind).Iter()
	for iter.Scan(&metadata) {
		maps = append(maps, metadata)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	if len(maps) != 1 {
		return nil, errors.Errorf("cannot retrieve metadata for sweep id %q and kind %q", m.sweepID, kind)
	}
	return maps[0], nil
}

// Clear deletes all metadata entries associated with the sweep id.
func (m *Cassandra) Clear() error {
	err := m.session.Query(`DELETE FROM metadata WHERE sweep_id = ?`, m.sweepID).Exec()
	return errors.Wrapf(err, "cannot clear metadata for sweep id %q", m.sweepID)
}
