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
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aethermon/ctxd/metrics/influxdb"
	"github.com/aethermon/ctxd/params"
	"github.com/aethermon/ctxd/stream"
	"github.com/aethermon/ctxd/types/record"
)

var optExportBatchSize int

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export classified records from stdin to InfluxDB",
	Long: `Reads classified records as JSON lines from stdin (the output of
classify) and posts them to the InfluxDB configured by INFLUXDB_URL,
INFLUXDB_TOKEN, INFLUXDB_ORG, INFLUXDB_BUCKET.

Example:

  zcat labeled.json.gz | ctxd export --batch-size 10000
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		if params.INFLUXDB_URL == "" || params.INFLUXDB_TOKEN == "" {
			log.Fatalln("INFLUXDB_URL and INFLUXDB_TOKEN must be set")
		}

		ctx := context.Background()
		n := 0
		batches := stream.Batched(ctx, optExportBatchSize,
			stream.NDJSON[record.Record](ctx, os.Stdin))
		for batch := range batches {
			if err := influxdb.ExportRecords(batch); err != nil {
				log.Fatalln(err)
			}
			n += len(batch)
			slog.Info("Exported records", "n", n)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.PersistentFlags().IntVar(&optExportBatchSize, "batch-size", 10_000, "Records per write batch")
}
