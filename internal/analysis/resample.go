package analysis

import (
	"sort"
	"time"

	"github.com/Yoheniy/solar-challenge-week1/internal/dataset"
	"github.com/Yoheniy/solar-challenge-week1/internal/loader"
)

// ResampleDaily buckets one country's records by UTC calendar day and
// computes the arithmetic mean of the given field per day, ascending.
// Days with no records produce no output row; NaN cells do not count
// toward a day's mean. Duplicate and unsorted timestamps are fine, the
// timestamp is a bucketing key only. The input dataset is not modified.
//
// An empty dataset or an absent field yields a typed no-data error.
func ResampleDaily(ds *dataset.Dataset, field string) ([]dataset.DailyPoint, error) {
	if ds.Empty() {
		return nil, &loader.SourceError{Kind: loader.SourceEmpty, Field: field}
	}
	field = dataset.CanonicalMetric(field)
	col := ds.Column(field)
	if col == nil {
		return nil, &loader.SourceError{Kind: loader.FieldMissing, Country: ds.Country(), Field: field}
	}

	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[time.Time]*bucket)
	for i, ts := range ds.Timestamps() {
		v := col[i]
		if v != v { // NaN cell
			continue
		}
		day := dayOf(ts)
		b := buckets[day]
		if b == nil {
			b = &bucket{}
			buckets[day] = b
		}
		b.sum += v
		b.count++
	}
	if len(buckets) == 0 {
		return nil, &loader.SourceError{Kind: loader.SourceEmpty, Country: ds.Country(), Field: field}
	}

	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	points := make([]dataset.DailyPoint, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		points = append(points, dataset.DailyPoint{
			Day:   day,
			Mean:  b.sum / float64(b.count),
			Count: b.count,
		})
	}
	return points, nil
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
