// solar-report - Ranked country comparison report on the terminal
//
// Loads the selected countries, prints the per-country summary table
// ranked by mean of the chosen metric, and optionally writes each
// country's daily-average series to a gzip-compressed CSV.
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/solar-report ./cmd/solar-report

package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/klauspost/compress/gzip"
	"github.com/schollz/progressbar/v3"

	"github.com/Yoheniy/solar-challenge-week1/internal/analysis"
	"github.com/Yoheniy/solar-challenge-week1/internal/common"
	"github.com/Yoheniy/solar-challenge-week1/internal/dataset"
	"github.com/Yoheniy/solar-challenge-week1/internal/loader"
)

// Version can be overridden at build time via -ldflags
var Version = "1.0.0"

func main() {
	_ = godotenv.Load()
	cfg := common.DefaultConfig()

	dataDir := flag.String("data-dir", cfg.DataDir, "Directory holding <country>_clean.csv files")
	countriesArg := flag.String("countries", "", "Comma-separated country identifiers (default: all available)")
	metric := flag.String("metric", cfg.DefaultMetric, "Measurement field to summarize")
	dailyDir := flag.String("daily-out", "", "Directory for per-country daily series CSVs (gzip); empty disables")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "solar-report v%s - Solar Comparison Report\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	ld := loader.New(*dataDir)

	countries := splitList(*countriesArg)
	if len(countries) == 0 {
		countries = ld.Available()
	}
	if len(countries) == 0 {
		log.Fatalf("No countries selected and none found in %s", *dataDir)
	}

	log.Println("=========================================================")
	log.Printf("Solar Report v%s", Version)
	log.Println("=========================================================")
	log.Printf("Data directory: %s", *dataDir)
	log.Printf("Countries:      %s", strings.Join(countries, ", "))
	log.Printf("Metric:         %s", *metric)

	startTime := time.Now()

	bar := progressbar.Default(int64(len(countries)))
	var sets []*dataset.Dataset
	var failures []*loader.SourceError
	for _, country := range countries {
		ds, err := ld.Load(country)
		if err != nil {
			var se *loader.SourceError
			if errors.As(err, &se) {
				failures = append(failures, se)
			}
			log.Printf("skip %s: %v", country, err)
		} else {
			sets = append(sets, ds)
		}
		_ = bar.Add(1)
	}

	combined := dataset.Concat(sets...)
	rows, err := analysis.Summarize(combined, *metric)
	if err != nil {
		log.Fatalf("Nothing to report: %v", err)
	}

	unit := ""
	if m, ok := dataset.LookupMetric(*metric); ok {
		unit = " (" + m.Unit + ")"
	}

	fmt.Println()
	fmt.Printf("%-4s %-14s %12s %12s %12s %10s\n", "Rank", "Country",
		"Mean"+unit, "Median"+unit, "StdDev"+unit, "Records")
	for _, r := range rows {
		fmt.Printf("%-4d %-14s %12.2f %12.2f %12.2f %10d\n",
			r.Rank, r.Country, r.Mean, r.Median, r.StdDev, r.Records)
	}

	if *dailyDir != "" {
		if err := os.MkdirAll(*dailyDir, 0755); err != nil {
			log.Fatalf("Cannot create %s: %v", *dailyDir, err)
		}
		for _, ds := range combined.Segments() {
			if err := writeDailySeries(*dailyDir, ds, *metric); err != nil {
				log.Printf("daily export %s: %v", ds.Country(), err)
			}
		}
	}

	elapsed := time.Since(startTime)
	fmt.Println()
	log.Println("=========================================================")
	log.Printf("Countries loaded: %d (skipped %d)", len(sets), len(failures))
	log.Printf("Records:          %d", combined.Len())
	log.Printf("Elapsed:          %v", elapsed.Round(time.Millisecond))
	log.Println("=========================================================")
}

// writeDailySeries writes one country's daily means as <country>_daily_<metric>.csv.gz.
func writeDailySeries(dir string, ds *dataset.Dataset, metric string) error {
	points, err := analysis.ResampleDaily(ds, metric)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_daily_%s.csv.gz",
		loader.Normalize(ds.Country()), strings.ToLower(dataset.CanonicalMetric(metric))))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	w := csv.NewWriter(gz)

	if err := w.Write([]string{"Day", "Mean", "Records"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			p.Day.Format("2006-01-02"),
			strconv.FormatFloat(p.Mean, 'f', 4, 64),
			strconv.Itoa(p.Count),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	log.Printf("Wrote %s (%d days)", path, len(points))
	return nil
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
