package loader

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

const beninCSV = `Timestamp,GHI,DNI,Tamb
2021-08-09 00:00:00,240.5,120.0,25.1
2021-08-09 01:00:00,310.0,150.5,26.3
2021-08-09 02:00:00,280.2,,27.0
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestLoadValidSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "benin_clean.csv", beninCSV)

	ds, err := New(dir).Load("Benin")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("Expected 3 records, got %d", ds.Len())
	}
	if ds.Country() != "Benin" {
		t.Errorf("Expected label Benin, got %q", ds.Country())
	}
	if got := ds.Value("GHI", 1); got != 310.0 {
		t.Errorf("GHI[1] = %v, want 310.0", got)
	}
	if got := ds.Value("DNI", 2); !math.IsNaN(got) {
		t.Errorf("Empty cell should be NaN, got %v", got)
	}
}

func TestLoadMissingSource(t *testing.T) {
	ld := New(t.TempDir())

	_, err := ld.Load("togo")
	if err == nil {
		t.Fatal("Expected error for missing source")
	}
	var se *SourceError
	if !errors.As(err, &se) || se.Kind != SourceMissing {
		t.Errorf("Expected SourceMissing, got %v", err)
	}
	if !IsNoData(err) {
		t.Error("IsNoData should be true for SourceMissing")
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	ld := New(filepath.Join(t.TempDir(), "nope"))

	_, err := ld.Load("benin")
	if ErrKind(err) != SourceMissing {
		t.Errorf("Expected SourceMissing for absent directory, got %v", err)
	}
}

func TestLoadEmptySource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "togo_clean.csv", "Timestamp,GHI\n")

	_, err := New(dir).Load("togo")
	if ErrKind(err) != SourceEmpty {
		t.Errorf("Expected SourceEmpty for header-only file, got %v", err)
	}

	writeFile(t, dir, "benin_clean.csv", "")
	_, err = New(dir).Load("benin")
	if ErrKind(err) != SourceEmpty {
		t.Errorf("Expected SourceEmpty for zero-byte file, got %v", err)
	}
}

func TestLoadNoTimestampColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "togo_clean.csv", "GHI,DNI\n1.0,2.0\n")

	_, err := New(dir).Load("togo")
	if ErrKind(err) != SourceUnreadable {
		t.Errorf("Expected SourceUnreadable without Timestamp column, got %v", err)
	}
}

func TestLoadSkipsBadTimestamps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "togo_clean.csv",
		"Timestamp,GHI\nnot-a-date,1.0\n2021-08-09 00:00:00,2.0\n")

	ds, err := New(dir).Load("togo")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ds.Len() != 1 {
		t.Errorf("Expected 1 usable record, got %d", ds.Len())
	}
}

func TestLoadGzipSource(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "sierraleone_clean.csv.gz"))
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(beninCSV)); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	f.Close()

	ds, err := New(dir).Load("Sierra Leone")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ds.Country() != "Sierraleone" {
		t.Errorf("Expected label Sierraleone, got %q", ds.Country())
	}
	if ds.Len() != 3 {
		t.Errorf("Expected 3 records, got %d", ds.Len())
	}
}

func TestNormalizeAndCapitalize(t *testing.T) {
	if got := Normalize("Sierra Leone"); got != "sierraleone" {
		t.Errorf("Normalize = %q", got)
	}
	if got := Normalize("  Benin "); got != "benin" {
		t.Errorf("Normalize with spaces = %q", got)
	}
	if got := Capitalize("sierraleone"); got != "Sierraleone" {
		t.Errorf("Capitalize = %q", got)
	}
	if got := Capitalize(""); got != "" {
		t.Errorf("Capitalize empty = %q", got)
	}
}

func TestAvailable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "togo_clean.csv", beninCSV)
	writeFile(t, dir, "benin_clean.csv", beninCSV)
	writeFile(t, dir, "notes.txt", "ignore me")

	got := New(dir).Available()
	if len(got) != 2 || got[0] != "benin" || got[1] != "togo" {
		t.Errorf("Available = %v", got)
	}

	if got := New(filepath.Join(dir, "nope")).Available(); got != nil {
		t.Errorf("Available on missing dir = %v, want nil", got)
	}
}
