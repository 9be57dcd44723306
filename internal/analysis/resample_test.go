package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/Yoheniy/solar-challenge-week1/internal/dataset"
	"github.com/Yoheniy/solar-challenge-week1/internal/loader"
)

func at(day, hour int) time.Time {
	return time.Date(2021, 8, day, hour, 0, 0, 0, time.UTC)
}

func TestResampleDailyMeans(t *testing.T) {
	ds := dataset.New("Benin", []string{"GHI"})
	ds.AppendRow(at(9, 6), []float64{100})
	ds.AppendRow(at(9, 12), []float64{300})
	ds.AppendRow(at(10, 12), []float64{500})

	points, err := ResampleDaily(ds, "GHI")
	if err != nil {
		t.Fatalf("ResampleDaily failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("Expected 2 day buckets, got %d", len(points))
	}
	if !points[0].Day.Equal(at(9, 0)) || points[0].Mean != 200 || points[0].Count != 2 {
		t.Errorf("Day 1 = %+v, want mean 200 of 2 records", points[0])
	}
	if !points[1].Day.Equal(at(10, 0)) || points[1].Mean != 500 {
		t.Errorf("Day 2 = %+v, want mean 500", points[1])
	}
}

func TestResampleOmitsEmptyDays(t *testing.T) {
	// records on day 9 only, dataset range notionally spans two days
	ds := dataset.New("Benin", []string{"GHI"})
	ds.AppendRow(at(9, 6), []float64{100})
	ds.AppendRow(at(9, 18), []float64{300})

	points, err := ResampleDaily(ds, "GHI")
	if err != nil {
		t.Fatalf("ResampleDaily failed: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("Expected exactly 1 bucket, got %d", len(points))
	}
	if points[0].Mean != 200 {
		t.Errorf("Mean = %v, want 200", points[0].Mean)
	}
}

func TestResampleUnsortedDuplicateTimestamps(t *testing.T) {
	ds := dataset.New("Benin", []string{"GHI"})
	ds.AppendRow(at(10, 0), []float64{500})
	ds.AppendRow(at(9, 0), []float64{100})
	ds.AppendRow(at(9, 0), []float64{300})

	points, err := ResampleDaily(ds, "GHI")
	if err != nil {
		t.Fatalf("ResampleDaily failed: %v", err)
	}
	if len(points) != 2 || !points[0].Day.Before(points[1].Day) {
		t.Fatalf("Buckets not ascending: %+v", points)
	}
	if points[0].Mean != 200 || points[0].Count != 2 {
		t.Errorf("Duplicate timestamps not bucketed together: %+v", points[0])
	}
}

func TestResampleSkipsNaNCells(t *testing.T) {
	ds := dataset.New("Benin", []string{"GHI"})
	ds.AppendRow(at(9, 0), []float64{100})
	ds.AppendRow(at(9, 1), []float64{math.NaN()})

	points, err := ResampleDaily(ds, "GHI")
	if err != nil {
		t.Fatalf("ResampleDaily failed: %v", err)
	}
	if points[0].Mean != 100 || points[0].Count != 1 {
		t.Errorf("NaN cell counted: %+v", points[0])
	}
}

func TestResampleNoData(t *testing.T) {
	empty := dataset.New("Benin", []string{"GHI"})
	if _, err := ResampleDaily(empty, "GHI"); loader.ErrKind(err) != loader.SourceEmpty {
		t.Errorf("Expected SourceEmpty for empty dataset, got %v", err)
	}

	ds := dataset.New("Benin", []string{"GHI"})
	ds.AppendRow(at(9, 0), []float64{100})
	if _, err := ResampleDaily(ds, "NoSuchField"); loader.ErrKind(err) != loader.FieldMissing {
		t.Errorf("Expected FieldMissing, got %v", err)
	}

	all := dataset.New("Benin", []string{"GHI"})
	all.AppendRow(at(9, 0), []float64{math.NaN()})
	if _, err := ResampleDaily(all, "GHI"); !loader.IsNoData(err) {
		t.Errorf("Expected no-data error for all-NaN column, got %v", err)
	}
}

func TestResampleDoesNotMutateInput(t *testing.T) {
	ds := dataset.New("Benin", []string{"GHI"})
	ds.AppendRow(at(9, 0), []float64{100})
	ds.AppendRow(at(9, 1), []float64{300})
	before := append([]float64(nil), ds.Column("GHI")...)

	if _, err := ResampleDaily(ds, "GHI"); err != nil {
		t.Fatalf("ResampleDaily failed: %v", err)
	}
	after := ds.Column("GHI")
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("Input mutated at %d: %v != %v", i, before[i], after[i])
		}
	}
}
