// Package analysis implements the comparison operations over loaded
// country datasets: combining, ranked summarization, distribution
// shaping, and daily resampling. All operations are pure functions of
// their inputs; nothing is cached or mutated.
package analysis

import (
	"errors"
	"log"
	"sort"

	"github.com/Yoheniy/solar-challenge-week1/internal/dataset"
	"github.com/Yoheniy/solar-challenge-week1/internal/loader"
)

// Combine loads the given countries in order and concatenates the
// results. Countries that fail to load are skipped and reported in the
// returned failure list; one missing source never aborts the rest. An
// empty identifier list, or all loads failing, yields an empty Combined
// and no error beyond the per-country failures.
func Combine(l *loader.Loader, countries []string) (*dataset.Combined, []*loader.SourceError) {
	var sets []*dataset.Dataset
	var failures []*loader.SourceError

	for _, country := range countries {
		ds, err := l.Load(country)
		if err != nil {
			var se *loader.SourceError
			if !errors.As(err, &se) {
				se = &loader.SourceError{Kind: loader.SourceUnreadable, Country: country, Err: err}
			}
			failures = append(failures, se)
			log.Printf("combine: skipping %s: %v", country, err)
			continue
		}
		sets = append(sets, ds)
	}
	return dataset.Concat(sets...), failures
}

// Summarize groups the combined dataset by country label and computes
// mean, median, and sample standard deviation of the given field per
// group, ranked 1..N by descending mean. Equal means rank in ascending
// lexicographic order of the country label, so output order is
// deterministic regardless of load order.
//
// Empty input or a field present in no segment yields a typed no-data
// error rather than a partial table.
func Summarize(c *dataset.Combined, field string) ([]dataset.SummaryRow, error) {
	if c.Empty() {
		return nil, &loader.SourceError{Kind: loader.SourceEmpty, Field: field}
	}
	field = dataset.CanonicalMetric(field)
	if !c.HasField(field) {
		return nil, &loader.SourceError{Kind: loader.FieldMissing, Field: field}
	}

	// Accumulate finite values per label, keeping first-appearance order.
	order := make([]string, 0, len(c.Segments()))
	groups := make(map[string][]float64)
	for _, ds := range c.Segments() {
		col := ds.Column(field)
		if col == nil {
			continue
		}
		if _, seen := groups[ds.Country()]; !seen {
			order = append(order, ds.Country())
		}
		groups[ds.Country()] = append(groups[ds.Country()], dataset.Finite(col)...)
	}

	rows := make([]dataset.SummaryRow, 0, len(order))
	for _, country := range order {
		values := groups[country]
		if len(values) == 0 {
			continue
		}
		rows = append(rows, dataset.SummaryRow{
			Country: country,
			Mean:    dataset.Mean(values),
			Median:  dataset.Median(values),
			StdDev:  dataset.StdDev(values),
			Records: len(values),
		})
	}
	if len(rows) == 0 {
		return nil, &loader.SourceError{Kind: loader.FieldMissing, Field: field}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Mean != rows[j].Mean {
			return rows[i].Mean > rows[j].Mean
		}
		return rows[i].Country < rows[j].Country
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

// CountryValues holds one country's finite values for a field, used by
// the distribution (box plot) view.
type CountryValues struct {
	Country string    `json:"country"`
	Values  []float64 `json:"values"`
}

// Distribution returns the per-country finite value slices for the given
// field, in concatenation order. Countries without the field or without
// finite values are omitted; no remaining countries is a no-data error.
func Distribution(c *dataset.Combined, field string) ([]CountryValues, error) {
	if c.Empty() {
		return nil, &loader.SourceError{Kind: loader.SourceEmpty, Field: field}
	}
	field = dataset.CanonicalMetric(field)
	if !c.HasField(field) {
		return nil, &loader.SourceError{Kind: loader.FieldMissing, Field: field}
	}

	var out []CountryValues
	for _, ds := range c.Segments() {
		values := dataset.Finite(ds.Column(field))
		if len(values) == 0 {
			continue
		}
		out = append(out, CountryValues{Country: ds.Country(), Values: values})
	}
	if len(out) == 0 {
		return nil, &loader.SourceError{Kind: loader.FieldMissing, Field: field}
	}
	return out, nil
}
