// solar-parquet - Export combined country measurements to Parquet
//
// Loads the selected countries' cleaned CSVs and writes the combined,
// country-labeled rows to a single Parquet file for downstream tooling.
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/solar-parquet ./cmd/solar-parquet

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/parquet-go/parquet-go"

	"github.com/Yoheniy/solar-challenge-week1/internal/analysis"
	"github.com/Yoheniy/solar-challenge-week1/internal/common"
	"github.com/Yoheniy/solar-challenge-week1/internal/loader"
)

// Version can be overridden at build time via -ldflags
var Version = "1.0.0"

// writeChunk keeps Write calls bounded for large countries.
const writeChunk = 100_000

// MeasurementRow mirrors the cleaned export columns plus the synthesized
// country label. NaN cells survive as Parquet doubles.
type MeasurementRow struct {
	Timestamp int64   `parquet:"timestamp"`
	Country   string  `parquet:"country"`
	GHI       float64 `parquet:"ghi"`
	DNI       float64 `parquet:"dni"`
	DHI       float64 `parquet:"dhi"`
	Tamb      float64 `parquet:"tamb"`
	RH        float64 `parquet:"rh"`
	WS        float64 `parquet:"ws"`
}

func main() {
	_ = godotenv.Load()
	cfg := common.DefaultConfig()

	dataDir := flag.String("data-dir", cfg.DataDir, "Directory holding <country>_clean.csv files")
	countriesArg := flag.String("countries", "", "Comma-separated country identifiers (default: all available)")
	outPath := flag.String("out", "combined.parquet", "Output Parquet file")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "solar-parquet v%s - Parquet Exporter\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Exports combined country measurements as Parquet.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.Println("=========================================================")
	log.Printf("Solar Parquet Export v%s", Version)
	log.Println("=========================================================")

	ld := loader.New(*dataDir)
	countries := splitList(*countriesArg)
	if len(countries) == 0 {
		countries = ld.Available()
	}
	if len(countries) == 0 {
		log.Fatalf("No countries selected and none found in %s", *dataDir)
	}

	startTime := time.Now()

	combined, failures := analysis.Combine(ld, countries)
	for _, f := range failures {
		log.Printf("Skipped %s: %s", f.Country, f.Kind)
	}
	if combined.Empty() {
		log.Fatal("No data to export")
	}

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("Cannot create %s: %v", *outPath, err)
	}
	defer f.Close()

	writer := parquet.NewGenericWriter[MeasurementRow](f)
	totalRows := 0
	rows := make([]MeasurementRow, 0, writeChunk)

	flush := func() {
		if len(rows) == 0 {
			return
		}
		if _, err := writer.Write(rows); err != nil {
			log.Fatalf("Parquet write error: %v", err)
		}
		totalRows += len(rows)
		rows = rows[:0]
	}

	for _, ds := range combined.Segments() {
		for i, ts := range ds.Timestamps() {
			rows = append(rows, MeasurementRow{
				Timestamp: ts.Unix(),
				Country:   ds.Country(),
				GHI:       ds.Value("GHI", i),
				DNI:       ds.Value("DNI", i),
				DHI:       ds.Value("DHI", i),
				Tamb:      ds.Value("Tamb", i),
				RH:        ds.Value("RH", i),
				WS:        ds.Value("WS", i),
			})
			if len(rows) >= writeChunk {
				flush()
			}
		}
		log.Printf("[%s] Queued %d records", ds.Country(), ds.Len())
	}
	flush()

	if err := writer.Close(); err != nil {
		log.Fatalf("Parquet close error: %v", err)
	}

	elapsed := time.Since(startTime)
	log.Println("=========================================================")
	log.Printf("Output:        %s", *outPath)
	log.Printf("Total Records: %d", totalRows)
	log.Printf("Elapsed:       %v", elapsed.Round(time.Millisecond))
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
