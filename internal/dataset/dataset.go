// Package dataset provides the in-memory representation of per-country
// solar measurement data and the derived summary types.
//
// Data is held columnar: one timestamp slice plus one float64 slice per
// named measurement field. Cells that were missing or unparseable in the
// source are NaN. Timestamps are not required to be unique or sorted;
// downstream grouping treats them as bucketing keys only.
package dataset

import (
	"math"
	"time"
)

// Dataset holds one country's measurement records.
type Dataset struct {
	country    string
	timestamps []time.Time
	fields     []string
	columns    map[string][]float64
}

// New creates an empty Dataset for the given (already capitalized) country
// label with the given measurement field order.
func New(country string, fields []string) *Dataset {
	cols := make(map[string][]float64, len(fields))
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, dup := cols[f]; dup || f == "" {
			continue
		}
		cols[f] = nil
		names = append(names, f)
	}
	return &Dataset{
		country: country,
		fields:  names,
		columns: cols,
	}
}

// Country returns the country label attached at load time.
func (d *Dataset) Country() string { return d.country }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.timestamps) }

// Empty reports whether the dataset holds no records.
func (d *Dataset) Empty() bool { return d == nil || len(d.timestamps) == 0 }

// Fields returns the measurement field names in source column order.
func (d *Dataset) Fields() []string { return d.fields }

// HasField reports whether the named measurement field exists.
func (d *Dataset) HasField(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.columns[name]
	return ok
}

// Timestamps returns the record timestamps in source order.
func (d *Dataset) Timestamps() []time.Time { return d.timestamps }

// Column returns the values for one measurement field, aligned with
// Timestamps. Returns nil if the field is absent.
func (d *Dataset) Column(name string) []float64 {
	if d == nil {
		return nil
	}
	return d.columns[name]
}

// Value returns one cell. NaN if the field is absent or the cell missing.
func (d *Dataset) Value(name string, row int) float64 {
	col := d.Column(name)
	if col == nil || row < 0 || row >= len(col) {
		return math.NaN()
	}
	return col[row]
}

// AppendRow appends one record. values must be aligned with Fields();
// short rows are padded with NaN, excess values are dropped.
func (d *Dataset) AppendRow(ts time.Time, values []float64) {
	d.timestamps = append(d.timestamps, ts)
	for i, f := range d.fields {
		v := math.NaN()
		if i < len(values) {
			v = values[i]
		}
		d.columns[f] = append(d.columns[f], v)
	}
}

// Combined is the ordered concatenation of per-country datasets. Segments
// keep their load-request order; there is no cross-country sort or dedup.
type Combined struct {
	segments []*Dataset
}

// Concat builds a Combined from the given datasets, omitting nil and empty
// ones. Zero usable inputs yield an empty (non-nil) Combined.
func Concat(sets ...*Dataset) *Combined {
	c := &Combined{}
	for _, ds := range sets {
		if ds.Empty() {
			continue
		}
		c.segments = append(c.segments, ds)
	}
	return c
}

// Segments returns the per-country datasets in concatenation order.
func (c *Combined) Segments() []*Dataset {
	if c == nil {
		return nil
	}
	return c.segments
}

// Len returns the total record count across all segments.
func (c *Combined) Len() int {
	n := 0
	for _, ds := range c.Segments() {
		n += ds.Len()
	}
	return n
}

// Empty reports whether no segment holds records.
func (c *Combined) Empty() bool { return c.Len() == 0 }

// Countries returns the distinct country labels in first-appearance order.
func (c *Combined) Countries() []string {
	seen := make(map[string]bool)
	var out []string
	for _, ds := range c.Segments() {
		if !seen[ds.Country()] {
			seen[ds.Country()] = true
			out = append(out, ds.Country())
		}
	}
	return out
}

// HasField reports whether any segment carries the named field. Segments
// without the field simply contribute no values, matching concat semantics
// over heterogeneous sources.
func (c *Combined) HasField(name string) bool {
	for _, ds := range c.Segments() {
		if ds.HasField(name) {
			return true
		}
	}
	return false
}

// SummaryRow is one line of the ranked per-country summary table.
type SummaryRow struct {
	Rank    int     `json:"rank"`
	Country string  `json:"country"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	StdDev  float64 `json:"std_dev"`
	Records int     `json:"records"`
}

// DailyPoint is one calendar-day bucket of a resampled series.
type DailyPoint struct {
	Day   time.Time `json:"day"`
	Mean  float64   `json:"mean"`
	Count int       `json:"count"`
}
