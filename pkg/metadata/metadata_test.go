package metadata

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"

	"github.com/Gawiiiii/fast-compress/pkg/metadata/mocks"
)

func TestBackendSelection(t *testing.T) {
	Convey("While selecting a metadata backend", t, func() {
		Convey("The backend flag should default to none", func() {
			So(DBFlag.Value(), ShouldEqual, "none")
		})

		Convey("An unsupported backend should yield an error", func() {
			backend, err := NewDefault("sweep-id")
			So(backend, ShouldBeNil)
			So(err.Error(), ShouldContainSubstring, "unsupported database")
		})
	})
}

func TestDefaultConfigs(t *testing.T) {
	Convey("While using the metadata package", t, func() {
		Convey("The Cassandra default config should follow the flag defaults", func() {
			config := DefaultCassandraConfig()
			So(config.Address, ShouldEqual, "127.0.0.1")
			So(config.Port, ShouldEqual, 9042)
			So(config.KeyspaceName, ShouldEqual, "fastcompress")
			So(config.CreateKeyspace, ShouldBeTrue)
			So(config.SslEnabled, ShouldBeFalse)
		})

		Convey("The InfluxDB default config should follow the flag defaults", func() {
			config := DefaultInfluxDBConfig()
			So(config.dbName, ShouldEqual, "fastcompress")
			So(config.httpConfig.Addr, ShouldEqual, "http://127.0.0.1:8086")
		})
	})
}

func TestRecordRuntimeEnv(t *testing.T) {
	Convey("While recording the runtime environment", t, func() {
		backend := new(mocks.Metadata)
		backend.On("RecordMap", mock.Anything, TypeFlags).Return(nil).Once()
		backend.On("RecordMap", mock.Anything, TypeEnviron).Return(nil).Once()
		backend.On("RecordMap", mock.Anything, TypeEmpty).Return(nil).Once()
		backend.On("RecordMap", mock.Anything, TypePlatform).Return(nil).Once()

		err := RecordRuntimeEnv(backend, time.Now())

		Convey("All four metadata kinds should be stored", func() {
			So(err, ShouldBeNil)
			So(backend.AssertExpectations(t), ShouldBeTrue)
		})
	})
}
