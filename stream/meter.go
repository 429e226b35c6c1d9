package stream

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/metrics"

	"github.com/aethermon/ctxd/common"
)

// TickMeter rates and logs a tick stream while it runs: ticks per second,
// bytes per second, and the set of trackers seen. One meter per scan.
type TickMeter struct {
	mu       sync.Mutex
	label    time.Time // any value, eg tick.time
	started  time.Time
	ticker   *time.Ticker
	trackers []string

	reg        metrics.Registry
	count      metrics.Counter
	size       metrics.Counter
	countMeter metrics.Meter
	sizeMeter  metrics.Meter
}

func NewTickMeter(interval time.Duration) *TickMeter {
	// Enable metrics package.
	// Won't work without this global setting.
	metrics.Enabled = true

	reg := metrics.NewRegistry()
	m := &TickMeter{
		reg:        reg,
		started:    time.Now(),
		count:      metrics.NewCounter(),
		size:       metrics.NewCounter(),
		countMeter: metrics.NewMeter(),
		sizeMeter:  metrics.NewMeter(),
	}
	if err := reg.Register("count.count", m.count); err != nil {
		panic(err)
	}
	if err := reg.Register("size.count", m.size); err != nil {
		panic(err)
	}
	if err := reg.Register("line.meter", m.countMeter); err != nil {
		panic(err)
	}
	if err := reg.Register("size.meter", m.sizeMeter); err != nil {
		panic(err)
	}
	m.ticker = time.NewTicker(interval)
	go func() {
		for range m.ticker.C {
			m.log()
		}
	}()
	return m
}

// Mark accounts one tick. label is any per-tick timestamp, shown in the
// periodic log line as read.last.
func (m *TickMeter) Mark(label time.Time, data []byte) {
	m.mu.Lock()
	m.label = label
	m.mu.Unlock()
	m.count.Inc(1)
	m.size.Inc(int64(len(data)))
	m.countMeter.Mark(1)
	m.sizeMeter.Mark(int64(len(data)))
}

func (m *TickMeter) SawTracker(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.trackers {
		if t == id {
			return
		}
	}
	m.trackers = append(m.trackers, id)
}

func (m *TickMeter) log() {
	countSnap := m.countMeter.Snapshot()
	sizeSnap := m.sizeMeter.Snapshot()

	m.mu.Lock()
	label := m.label
	trackers := strings.Join(m.trackers, ",")
	m.mu.Unlock()

	slog.Info("Read ticks", "n", humanize.Comma(countSnap.Count()),
		"trackers", trackers,
		"read.last", label.Format(time.DateTime),
		"tps", common.DecimalToFixed(countSnap.Rate1(), 0),
		"bps", humanize.Bytes(uint64(sizeSnap.Rate1())),
		"total.bytes", humanize.Bytes(uint64(sizeSnap.Count())),
		"running", time.Since(m.started).Round(time.Second))
}

// Count returns the total ticks marked so far.
func (m *TickMeter) Count() int64 {
	return m.countMeter.Snapshot().Count()
}

func (m *TickMeter) Stop() {
	if m == nil || m.ticker == nil {
		return
	}
	m.ticker.Stop()
	m.countMeter.Stop()
	m.sizeMeter.Stop()
}
