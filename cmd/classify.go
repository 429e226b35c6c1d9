/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/aethermon/ctxd/common"
	"github.com/aethermon/ctxd/engine"
	"github.com/aethermon/ctxd/exposure"
	"github.com/aethermon/ctxd/params"
	"github.com/aethermon/ctxd/stream"
	"github.com/aethermon/ctxd/types/record"
	"github.com/aethermon/ctxd/types/snapshot"
)

var optWorkersN int
var optTrackerChanCap int
var optTrackerStaleLines int
var optTrackers []string

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify sensor ticks from stdin stream",
	Long: `

Ticks from mixed trackers ARE supported.

Ticks are decoded as JSON lines from stdin and demuxed per tracker before
classification. Classification is stateful per tracker (signal window,
cooking detector, label stickiness), so each tracker gets one worker and
its lines are consumed strictly in input order. Different trackers run in
parallel.

Classified records are written back to stdout as JSON lines. A per-label
exposure summary is logged at exit.

Examples:

  zcat ticks.json.gz | ctxd classify --workers 8 | gzip > labeled.json.gz
  ctxd classify --trackers ada,kit < ticks.json
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		defer slog.Info("Classify done")

		registry := engine.NewRegistry(engine.Config{})
		defer registry.Stop()
		pass := snapshot.NewDedupeLRUFunc(params.DefaultDedupeCacheSize)
		var passMu sync.Mutex

		acc := exposure.NewAccumulator()

		enc := json.NewEncoder(os.Stdout)
		var encMu sync.Mutex
		emit := func(r record.Record) {
			encMu.Lock()
			defer encMu.Unlock()
			if err := enc.Encode(r); err != nil {
				slog.Error("Failed to encode record", "error", err)
			}
		}

		quit := make(chan struct{})
		trackerChs, errs := stream.ScanTrackerLines(os.Stdin, quit,
			optWorkersN, optTrackerChanCap, optTrackerStaleLines, optTrackers)

		interrupt := common.Interrupted()
		go func() {
			for i := 0; i < 2; i++ {
				sig := <-interrupt
				slog.Warn("Received signal", "signal", sig, "i", i)
				if i == 0 {
					close(quit)
				} else {
					log.Fatalln("Force exit")
				}
			}
		}()

		workersWG := new(sync.WaitGroup)
		for tc := range trackerChs {
			workersWG.Add(1)
			go func(tc stream.TrackerCh) {
				defer workersWG.Done()
				eng := registry.For(tc.ID)
				var lastAt time.Time
				for data := range tc.Ch {
					t := snapshot.Tick{}
					if err := json.Unmarshal(data, &t); err != nil {
						slog.Error("Failed to unmarshal tick", "tracker", tc.ID, "error", err)
						continue
					}
					passMu.Lock()
					ok := pass(t.Snapshot, t.Extras)
					passMu.Unlock()
					if !ok {
						slog.Debug("Dropped dupe tick", "tracker", tc.ID)
						continue
					}

					d := eng.Evaluate(t.Snapshot, t.Extras)
					r := record.Record{
						TrackerID:  tc.ID,
						Time:       t.Extras.Now,
						Label:      d.Label,
						Fork:       d.Fork.String(),
						Confidence: d.Confidence,
						SpeedKmh:   t.Snapshot.Movement.SpeedKmh,
						PM25:       t.Extras.PM25,
						PM10:       t.Extras.PM10,
					}
					if d.Fork == engine.ForkIndoor {
						r.CookingState = d.Cooking.State.String()
					}
					emit(r)

					if !lastAt.IsZero() {
						if dur := t.Extras.Now.Sub(lastAt); dur > 0 && dur < 5*time.Minute {
							acc.Add(d.Label, dur, t.Extras.PM25)
						}
					}
					lastAt = t.Extras.Now
				}
			}(tc)
		}

		for err := range errs {
			if err == nil {
				continue
			}
			if errors.Is(err, stream.ErrMissingTrackerID) {
				slog.Warn("Skipped line", "error", err)
				continue
			}
			slog.Error("Scan error", "error", err)
		}

		slog.Info("Waiting on workers")
		workersWG.Wait()

		for _, e := range acc.Report() {
			slog.Info("Exposure", "label", e.Label,
				"duration", e.Duration.Round(time.Second),
				"dose.ugm3min", e.DoseUgM3Min.StringFixed(1),
				"pm25.mean", common.DecimalToFixed(e.MeanPM25, 1),
				"samples", e.Samples)
		}
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.PersistentFlags().IntVar(&optWorkersN, "workers", runtime.NumCPU(), "Number of workers to run parallel")
	classifyCmd.PersistentFlags().IntVar(&optTrackerChanCap, "tracker-cap", 1024, "Per-tracker channel buffer")
	classifyCmd.PersistentFlags().IntVar(&optTrackerStaleLines, "stale-after", 100_000, "Lines of inactivity before a tracker's channel is recycled")
	classifyCmd.PersistentFlags().StringSliceVar(&optTrackers, "trackers", nil, "Only classify these tracker IDs")
}
