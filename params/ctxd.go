package params

import (
	"os"
	"time"

	"github.com/ethereum/go-ethereum/metrics"
)

func init() {
	metrics.Enabled = true
}

var DefaultDedupeCacheSize = 10_000
var DefaultTickMeterInterval = 30 * time.Second
var DefaultRuleMemoSize = 1_000

// Tracker registry TTL: an engine untouched this long is evicted and its
// state re-learned on the next tick from that tracker.
var TrackerTTL = 1 * time.Hour

// InfluxDB connection for offline label-accuracy review. Left empty, the
// export command refuses to run; the engine itself never touches these.
var (
	INFLUXDB_URL    = os.Getenv("INFLUXDB_URL")
	INFLUXDB_TOKEN  = os.Getenv("INFLUXDB_TOKEN")
	INFLUXDB_ORG    = os.Getenv("INFLUXDB_ORG")
	INFLUXDB_BUCKET = os.Getenv("INFLUXDB_BUCKET")
)
