package influxdb

import (
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/aethermon/ctxd/params"
	"github.com/aethermon/ctxd/types/record"
)

// ExportRecords posts classified ticks to an InfluxDB Write API.
// Because it accepts a slice, use batches. The Write API will buffer and flush.
// The last error encountered is returned.
func ExportRecords(records []record.Record) error {
	opts := influxdb2.DefaultOptions()
	opts.SetPrecision(time.Second)
	client := influxdb2.NewClientWithOptions(params.INFLUXDB_URL, params.INFLUXDB_TOKEN, opts)
	writeAPI := client.WriteAPI(params.INFLUXDB_ORG, params.INFLUXDB_BUCKET)

	// Errors returns a channel for reading errors which occurs during async writes.
	// Must be called before performing any writes for errors to be collected.
	// The chan is unbuffered and must be drained or the writer will block.
	errorsCh := writeAPI.Errors()
	var err error
	wait := sync.WaitGroup{}
	wait.Add(1)
	go func() {
		defer wait.Done()
		for e := range errorsCh {
			if e != nil {
				err = e
			}
		}
	}()

	for _, r := range records {
		p := influxdb2.NewPointWithMeasurement("context").
			SetTime(r.Time).
			AddTag("tracker", r.TrackerID).
			AddTag("label", string(r.Label)).
			AddTag("fork", r.Fork).
			AddField("confidence", r.Confidence).
			// Label again as a field so it can be selected, not just grouped.
			AddField("label", string(r.Label))

		if r.CookingState != "" {
			p.AddTag("cooking_state", r.CookingState)
		}
		if r.SpeedKmh != nil {
			p.AddField("speed_kmh", *r.SpeedKmh)
		}
		if r.PM25 != nil {
			p.AddField("pm25", *r.PM25)
		}
		if r.PM10 != nil {
			p.AddField("pm10", *r.PM10)
		}

		writeAPI.WritePoint(p)
	}

	writeAPI.Flush()
	client.Close()
	wait.Wait()
	return err
}
