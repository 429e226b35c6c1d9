package stream

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/tidwall/gjson"

	"github.com/aethermon/ctxd/params"
)

const AttrTrackerID = "trackerId"
const AttrTime = "now"

var ErrMissingTrackerID = errors.New("missing trackerId in read line")

// TrackerCh pairs a tracker ID with its raw-line channel. Each tracker
// gets one channel, and should get one worker.
type TrackerCh struct {
	ID string
	Ch chan []byte
}

// ScanTrackerLines reads NDJSON ticks from reader and demuxes them onto
// per-tracker channels of raw bytes, emitted once per (re)opened tracker
// on the returned channel. Malformed lines are logged and skipped. A tracker
// not seen for staleAfter lines has its channel closed; meeting it again
// opens a fresh one. The quit channel interrupts the read loop.
// Classification is stateful per tracker, so lines for one tracker must be
// consumed in order; the per-tracker channel guarantees that even with many
// workers.
func ScanTrackerLines(reader io.Reader, quit <-chan struct{},
	workersN, chanCap, staleAfter int, whitelist []string) (chan TrackerCh, chan error) {

	out := make(chan TrackerCh, workersN)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(out)
		scanner := bufio.NewScanner(reader)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

		// tracker -> line index last seen on
		lastSeen := map[string]uint64{}
		chans := map[string]chan []byte{}
		defer func() {
			for _, ch := range chans {
				close(ch)
			}
		}()

		met := NewTickMeter(params.DefaultTickMeterInterval)
		defer met.Stop()
		trackerCount := 0
		defer func() {
			slog.Info("Demux done", "trackers", trackerCount,
				"lines", met.Count(), "running", time.Since(met.started).Round(time.Second))
		}()

		n := uint64(0)
		for scanner.Scan() {
			select {
			case <-quit:
				slog.Info("Demux received quit")
				return
			default:
			}
			if len(scanner.Bytes()) == 0 {
				continue
			}
			if !gjson.ValidBytes(scanner.Bytes()) {
				slog.Warn("Demux skipping malformed line", "line.len", len(scanner.Bytes()))
				continue
			}
			// Workers hold lines past the next Scan; copy out of the
			// scanner's buffer.
			msg := make([]byte, len(scanner.Bytes()))
			copy(msg, scanner.Bytes())
			n++

			idRes := gjson.GetBytes(msg, AttrTrackerID)
			if !idRes.Exists() || idRes.String() == "" {
				select {
				case errs <- ErrMissingTrackerID:
				default:
				}
				continue
			}
			id := idRes.String()
			if len(whitelist) > 0 && !contains(whitelist, id) {
				continue
			}

			met.Mark(gjson.GetBytes(msg, AttrTime).Time(), msg)
			met.SawTracker(id)

			// Reap trackers gone quiet; their workers finish and exit.
			for tid, seen := range lastSeen {
				if n-seen <= uint64(staleAfter) {
					continue
				}
				if ch, ok := chans[tid]; ok {
					close(ch)
					delete(chans, tid)
				}
				delete(lastSeen, tid)
			}
			lastSeen[id] = n

			ch, ok := chans[id]
			if !ok {
				ch = make(chan []byte, chanCap)
				chans[id] = ch
				trackerCount++
				select {
				case <-quit:
					return
				case out <- TrackerCh{ID: id, Ch: ch}:
				}
			}
			select {
			case <-quit:
				return
			case ch <- msg:
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case errs <- err:
			default:
			}
		}
	}()
	return out, errs
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
