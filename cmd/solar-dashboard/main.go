// solar-dashboard - HTTP JSON API for cross-country solar analysis
//
// Serves the three dashboard views over the cleaned per-country CSVs:
//   - /api/v1/summary       ranked per-country mean/median/std table
//   - /api/v1/series        daily-average time series for one country
//   - /api/v1/distribution  per-country value distributions (box plot)
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/solar-dashboard ./cmd/solar-dashboard

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Yoheniy/solar-challenge-week1/internal/api"
	"github.com/Yoheniy/solar-challenge-week1/internal/common"
	"github.com/Yoheniy/solar-challenge-week1/internal/loader"
)

// Version can be overridden at build time via -ldflags
var Version = "1.0.0"

func main() {
	// .env is optional; environment wins over defaults, flags win over both
	_ = godotenv.Load()
	cfg := common.DefaultConfig()

	dataDir := flag.String("data-dir", cfg.DataDir, "Directory holding <country>_clean.csv files")
	listen := flag.String("listen", cfg.ListenAddr, "HTTP listen address")
	metric := flag.String("metric", cfg.DefaultMetric, "Default measurement field")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "solar-dashboard v%s - Solar Analysis API\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Serves ranked summaries, daily series, and distributions\n")
		fmt.Fprintf(os.Stderr, "over cleaned per-country measurement CSVs.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.Println("=========================================================")
	log.Printf("Solar Dashboard v%s", Version)
	log.Println("=========================================================")
	log.Printf("Data directory: %s", *dataDir)
	log.Printf("Default metric: %s", *metric)

	ld := loader.New(*dataDir)
	if ids := ld.Available(); len(ids) > 0 {
		log.Printf("Countries available: %v", ids)
	} else {
		log.Printf("Warning: no cleaned data files found in %s", *dataDir)
	}

	srv := api.NewServer(ld, *metric)
	log.Printf("Listening on %s", *listen)
	if err := srv.Run(*listen); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
