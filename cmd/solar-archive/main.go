// solar-archive - Archive cleaned country measurements into ClickHouse
//
// Loads the selected countries' cleaned CSVs and inserts the combined
// rows into ClickHouse with native columnar batches, keeping the country
// label attached to every row. Intended for heavier downstream analysis
// than the in-process dashboard views.
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/solar-archive ./cmd/solar-archive

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ClickHouse/ch-go"
	"github.com/ClickHouse/ch-go/proto"
	"github.com/joho/godotenv"

	"github.com/Yoheniy/solar-challenge-week1/internal/analysis"
	"github.com/Yoheniy/solar-challenge-week1/internal/common"
	"github.com/Yoheniy/solar-challenge-week1/internal/loader"
)

// Version can be overridden at build time via -ldflags
var Version = "1.0.0"

// archivedFields are the measurement columns carried into ClickHouse.
var archivedFields = []string{"GHI", "DNI", "DHI", "Tamb", "RH", "WS"}

// MeasurementBatch holds column data for native insert.
type MeasurementBatch struct {
	Time    *proto.ColDateTime
	Country *proto.ColStr
	Values  map[string]*proto.ColFloat32
}

func NewMeasurementBatch() *MeasurementBatch {
	b := &MeasurementBatch{
		Time:    new(proto.ColDateTime),
		Country: new(proto.ColStr),
		Values:  make(map[string]*proto.ColFloat32, len(archivedFields)),
	}
	for _, f := range archivedFields {
		b.Values[f] = new(proto.ColFloat32)
	}
	return b
}

func (b *MeasurementBatch) Reset() {
	b.Time.Reset()
	b.Country.Reset()
	for _, col := range b.Values {
		col.Reset()
	}
}

func (b *MeasurementBatch) Len() int {
	return b.Country.Rows()
}

func (b *MeasurementBatch) Input() proto.Input {
	input := proto.Input{
		{Name: "time", Data: b.Time},
		{Name: "country", Data: b.Country},
	}
	for _, f := range archivedFields {
		input = append(input, proto.InputColumn{Name: strings.ToLower(f), Data: b.Values[f]})
	}
	return input
}

// AddRow appends one record. NaN cells are stored as ClickHouse zero;
// the archive table is for bulk trend queries, not cell-level audit.
func (b *MeasurementBatch) AddRow(ts time.Time, country string, values map[string]float64) {
	b.Time.Append(ts)
	b.Country.Append(country)
	for _, f := range archivedFields {
		v := values[f]
		if math.IsNaN(v) {
			v = 0
		}
		b.Values[f].Append(float32(v))
	}
}

func flushBatch(ctx context.Context, conn *ch.Client, tableFQN string, batch *MeasurementBatch) error {
	if batch.Len() == 0 {
		return nil
	}
	cols := []string{"time", "country"}
	for _, f := range archivedFields {
		cols = append(cols, strings.ToLower(f))
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES", tableFQN, strings.Join(cols, ", "))
	return conn.Do(ctx, ch.Query{
		Body:  query,
		Input: batch.Input(),
	})
}

func main() {
	_ = godotenv.Load()
	cfg := common.DefaultConfig()

	chHost := flag.String("ch-host", cfg.ClickHouseHost, "ClickHouse address")
	chDB := flag.String("ch-db", cfg.ClickHouseDatabase, "ClickHouse database")
	chTable := flag.String("ch-table", cfg.ClickHouseTable, "ClickHouse table")
	dataDir := flag.String("data-dir", cfg.DataDir, "Directory holding <country>_clean.csv files")
	countriesArg := flag.String("countries", "", "Comma-separated country identifiers (default: all available)")
	batchSize := flag.Int("batch-size", cfg.BatchSize, "Rows per insert batch")
	truncate := flag.Bool("truncate", false, "Truncate table before insert")
	silent := flag.Bool("silent", false, "Suppress progress output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "solar-archive v%s - Measurement Archiver\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Archives cleaned country measurement CSVs into ClickHouse.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.Println("=========================================================")
	log.Printf("Solar Archive v%s", Version)
	log.Println("=========================================================")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nShutdown requested...")
		cancel()
	}()

	telemetry := common.NewTelemetry()
	telemetry.SetSilent(*silent)

	ld := loader.New(*dataDir)
	ld.SetTelemetry(telemetry)

	countries := splitList(*countriesArg)
	if len(countries) == 0 {
		countries = ld.Available()
	}
	if len(countries) == 0 {
		log.Fatalf("No countries selected and none found in %s", *dataDir)
	}

	log.Printf("Connecting to ClickHouse at %s...", *chHost)
	conn, err := ch.Dial(ctx, ch.Options{
		Address:     *chHost,
		Database:    *chDB,
		Compression: ch.CompressionLZ4,
	})
	if err != nil {
		log.Fatalf("ClickHouse connection failed: %v", err)
	}
	defer conn.Close()

	tableFQN := fmt.Sprintf("%s.%s", *chDB, *chTable)
	log.Printf("Table: %s", tableFQN)

	if *truncate {
		log.Printf("Truncating table %s...", tableFQN)
		if err := conn.Do(ctx, ch.Query{Body: fmt.Sprintf("TRUNCATE TABLE %s", tableFQN)}); err != nil {
			log.Printf("Truncate warning: %v", err)
		}
	}

	startTime := time.Now()
	telemetry.StartReporter()

	combined, failures := analysis.Combine(ld, countries)
	for _, f := range failures {
		log.Printf("Skipped %s: %s", f.Country, f.Kind)
	}
	if combined.Empty() {
		telemetry.StopReporter()
		log.Fatal("No data to archive")
	}

	batch := NewMeasurementBatch()
	totalRows := 0
	values := make(map[string]float64, len(archivedFields))

	for _, ds := range combined.Segments() {
		select {
		case <-ctx.Done():
			log.Fatal("Cancelled")
		default:
		}

		for i, ts := range ds.Timestamps() {
			for _, f := range archivedFields {
				values[f] = ds.Value(f, i)
			}
			batch.AddRow(ts, ds.Country(), values)
			totalRows++

			if batch.Len() >= *batchSize {
				if err := flushBatch(ctx, conn, tableFQN, batch); err != nil {
					log.Fatalf("Insert error: %v", err)
				}
				batch.Reset()
			}
		}
		log.Printf("[%s] Queued %d records", ds.Country(), ds.Len())
	}

	if err := flushBatch(ctx, conn, tableFQN, batch); err != nil {
		log.Fatalf("Insert error: %v", err)
	}

	telemetry.StopReporter()
	elapsed := time.Since(startTime)

	log.Println()
	log.Println("=========================================================")
	log.Println("Final Statistics")
	log.Println("=========================================================")
	log.Printf("Countries:     %d (skipped %d)", len(combined.Segments()), len(failures))
	log.Printf("Total Records: %d", totalRows)
	log.Printf("Elapsed:       %v", elapsed.Round(time.Millisecond))
	log.Printf("Rate:          %.0f records/sec", float64(totalRows)/elapsed.Seconds())
	log.Println("=========================================================")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
