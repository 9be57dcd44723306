// Package loader reads cleaned per-country measurement CSVs into datasets.
//
// One file per country, named by the lowercase space-stripped country
// identifier plus "_clean.csv" (optionally gzip-compressed with a ".gz"
// suffix). The first row is a header; the Timestamp column is the record
// index, every other column is a numeric measurement field. The country
// label is synthesized at load time, it is never present in the file.
package loader

import (
	"encoding/csv"
	"errors"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/pgzip"

	"github.com/Yoheniy/solar-challenge-week1/internal/common"
	"github.com/Yoheniy/solar-challenge-week1/internal/dataset"
)

const (
	// FileSuffix is the fixed suffix of cleaned per-country files.
	FileSuffix = "_clean.csv"

	// TimestampColumn is the index column of the cleaned exports.
	TimestampColumn = "Timestamp"

	// MaxErrorsToLog throttles per-row parse error logging.
	MaxErrorsToLog = 10
)

// Timestamp layouts seen across the station exports, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02",
	"1/2/2006 15:04",
}

// LoadStats holds per-load row accounting.
type LoadStats struct {
	RowsRead    int64
	RowsLoaded  int64
	RowsSkipped int64
}

// Loader reads country datasets from a single data directory. The
// directory is injected at construction; nothing is resolved relative to
// the caller's location.
type Loader struct {
	dataDir   string
	telemetry *common.Telemetry
}

// New creates a Loader over the given data directory.
func New(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// DataDir returns the backing data directory.
func (l *Loader) DataDir() string { return l.dataDir }

// SetTelemetry attaches a telemetry sink for bulk loads. May be nil.
func (l *Loader) SetTelemetry(t *common.Telemetry) { l.telemetry = t }

// Normalize converts a country name to its file identifier: lowercase
// with spaces stripped ("Sierra Leone" -> "sierraleone").
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
}

// Capitalize produces the country label attached to loaded records:
// first rune upper, remainder lower ("sierraleone" -> "Sierraleone").
func Capitalize(id string) string {
	if id == "" {
		return ""
	}
	return strings.ToUpper(id[:1]) + strings.ToLower(id[1:])
}

// Available scans the data directory for cleaned country files and
// returns their identifiers sorted. A missing directory yields nil.
func (l *Loader) Available() []string {
	entries, err := os.ReadDir(l.dataDir)
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".gz")
		if !strings.HasSuffix(name, FileSuffix) {
			continue
		}
		id := strings.TrimSuffix(name, FileSuffix)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Load reads one country's dataset. Failures come back as *SourceError;
// nothing panics past this boundary and the returned dataset is non-empty
// whenever err is nil.
func (l *Loader) Load(country string) (*dataset.Dataset, error) {
	id := Normalize(country)
	if id == "" {
		return nil, &SourceError{Kind: SourceMissing, Country: country}
	}
	label := Capitalize(id)

	path := filepath.Join(l.dataDir, id+FileSuffix)
	compressed := false
	if _, err := os.Stat(path); err != nil {
		gzPath := path + ".gz"
		if _, gzErr := os.Stat(gzPath); gzErr != nil {
			return nil, &SourceError{Kind: SourceMissing, Country: label, Path: path, Err: err}
		}
		path = gzPath
		compressed = true
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Kind: SourceUnreadable, Country: label, Path: path, Err: err}
	}
	defer f.Close()

	var reader io.Reader = &countingReader{r: f, sink: l.telemetry}
	if compressed {
		gz, err := pgzip.NewReader(reader)
		if err != nil {
			return nil, &SourceError{Kind: SourceUnreadable, Country: label, Path: path, Err: err}
		}
		defer gz.Close()
		reader = gz
	}

	ds, stats, err := l.parse(reader, label)
	if err != nil {
		return nil, &SourceError{Kind: SourceUnreadable, Country: label, Path: path, Err: err}
	}
	if stats.RowsSkipped > 0 {
		log.Printf("[%s] Skipped %d of %d rows (bad timestamps)", filepath.Base(path), stats.RowsSkipped, stats.RowsRead)
	}
	if ds.Empty() {
		return nil, &SourceError{Kind: SourceEmpty, Country: label, Path: path}
	}
	return ds, nil
}

// parse consumes the CSV stream into a labeled dataset. Rows with an
// unparseable timestamp are skipped; unparseable numeric cells become NaN.
func (l *Loader) parse(r io.Reader, label string) (*dataset.Dataset, *LoadStats, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := csvReader.Read()
	if err != nil {
		if err == io.EOF {
			// header-less file: zero usable rows
			return dataset.New(label, nil), &LoadStats{}, nil
		}
		return nil, nil, err
	}

	tsCol := -1
	var fields []string
	fieldCols := make([]int, 0, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if tsCol < 0 && strings.EqualFold(name, TimestampColumn) {
			tsCol = i
			continue
		}
		// duplicate or blank column names cannot be addressed; first wins
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		fields = append(fields, name)
		fieldCols = append(fieldCols, i)
	}
	if tsCol < 0 {
		return nil, nil, errors.New("no Timestamp column in header")
	}

	ds := dataset.New(label, fields)
	stats := &LoadStats{}
	errorCount := 0
	values := make([]float64, len(fields))

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.RowsSkipped++
			errorCount++
			if errorCount <= MaxErrorsToLog {
				log.Printf("[%s] CSV read error (row %d): %v", label, stats.RowsRead, err)
			}
			continue
		}
		stats.RowsRead++
		if len(record) == 0 || (len(record) == 1 && record[0] == "") {
			continue
		}
		if tsCol >= len(record) {
			stats.RowsSkipped++
			continue
		}

		ts, err := parseTimestamp(record[tsCol])
		if err != nil {
			stats.RowsSkipped++
			errorCount++
			if errorCount <= MaxErrorsToLog {
				log.Printf("[%s] Bad timestamp (row %d): %v", label, stats.RowsRead, err)
			}
			continue
		}

		for i, col := range fieldCols {
			values[i] = math.NaN()
			if col < len(record) {
				if v, err := parseFloat(record[col]); err == nil {
					values[i] = v
				}
			}
		}
		ds.AppendRow(ts, values)
		stats.RowsLoaded++
		if l.telemetry != nil {
			l.telemetry.AddRows(1)
		}
	}

	if errorCount > MaxErrorsToLog {
		log.Printf("[%s] ... and %d more parse errors (suppressed)", label, errorCount-MaxErrorsToLog)
	}
	return ds, stats, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), errors.New("empty cell")
	}
	return strconv.ParseFloat(s, 64)
}

// countingReader forwards raw byte counts to the telemetry sink.
type countingReader struct {
	r    io.Reader
	sink *common.Telemetry
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 && c.sink != nil {
		c.sink.AddBytes(uint64(n))
	}
	return n, err
}
