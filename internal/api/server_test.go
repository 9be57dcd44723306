package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Yoheniy/solar-challenge-week1/internal/loader"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	fixtures := map[string]string{
		"benin": "Timestamp,GHI,Tamb\n" +
			"2021-08-09 00:00:00,500,25\n2021-08-10 00:00:00,500,26\n",
		"togo": "Timestamp,GHI,Tamb\n" +
			"2021-08-09 00:00:00,300,28\n2021-08-09 01:00:00,300,29\n",
	}
	for country, csv := range fixtures {
		path := filepath.Join(dir, country+"_clean.csv")
		if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	return NewServer(loader.New(dir), "GHI")
}

func doGet(t *testing.T, s *Server, url string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	body := make(map[string]json.RawMessage)
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON from %s: %v", url, err)
	}
	return w, body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, _ := doGet(t, s, "/health")
	if w.Code != http.StatusOK {
		t.Errorf("Status = %d", w.Code)
	}
}

func TestCountriesEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, body := doGet(t, s, "/api/v1/countries")

	var countries []string
	if err := json.Unmarshal(body["countries"], &countries); err != nil {
		t.Fatalf("decode countries: %v", err)
	}
	if len(countries) != 2 || countries[0] != "benin" || countries[1] != "togo" {
		t.Errorf("countries = %v", countries)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	s := newTestServer(t)
	w, body := doGet(t, s, "/api/v1/summary?countries=togo,benin&metric=GHI")
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}

	var rows []struct {
		Rank    int     `json:"rank"`
		Country string  `json:"country"`
		Mean    float64 `json:"mean"`
	}
	if err := json.Unmarshal(body["rows"], &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Country != "Benin" || rows[0].Rank != 1 || rows[0].Mean != 500 {
		t.Errorf("Row 0 = %+v", rows[0])
	}
}

func TestSummaryMissingParam(t *testing.T) {
	s := newTestServer(t)
	w, _ := doGet(t, s, "/api/v1/summary")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", w.Code)
	}
}

func TestSummaryUnknownCountryDegrades(t *testing.T) {
	s := newTestServer(t)
	w, body := doGet(t, s, "/api/v1/summary?countries=ghana")
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200 (degrade, not fail)", w.Code)
	}
	if _, ok := body["diagnostic"]; !ok {
		t.Error("Expected diagnostic for all-failed selection")
	}

	var failures []struct {
		Country string `json:"country"`
		Kind    string `json:"kind"`
	}
	if err := json.Unmarshal(body["failures"], &failures); err != nil {
		t.Fatalf("decode failures: %v", err)
	}
	if len(failures) != 1 || failures[0].Kind != "source missing" {
		t.Errorf("failures = %+v", failures)
	}
}

func TestSeriesEndpoint(t *testing.T) {
	s := newTestServer(t)
	w, body := doGet(t, s, "/api/v1/series?country=benin&metric=GHI")
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}

	var points []struct {
		Mean  float64 `json:"mean"`
		Count int     `json:"count"`
	}
	if err := json.Unmarshal(body["points"], &points); err != nil {
		t.Fatalf("decode points: %v", err)
	}
	if len(points) != 2 {
		t.Errorf("Expected 2 daily points, got %d", len(points))
	}
}

func TestSeriesUnknownFieldDegrades(t *testing.T) {
	s := newTestServer(t)
	w, body := doGet(t, s, "/api/v1/series?country=benin&metric=NoSuchField")
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}
	if _, ok := body["diagnostic"]; !ok {
		t.Error("Expected diagnostic for unknown field")
	}
}

func TestSeriesMissingParam(t *testing.T) {
	s := newTestServer(t)
	w, _ := doGet(t, s, "/api/v1/series")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", w.Code)
	}
}

func TestDistributionEndpoint(t *testing.T) {
	s := newTestServer(t)
	w, body := doGet(t, s, "/api/v1/distribution?countries=benin,togo")
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}

	var dist []struct {
		Country string    `json:"country"`
		Values  []float64 `json:"values"`
	}
	if err := json.Unmarshal(body["countries"], &dist); err != nil {
		t.Fatalf("decode distribution: %v", err)
	}
	if len(dist) != 2 || dist[0].Country != "Benin" || len(dist[0].Values) != 2 {
		t.Errorf("distribution = %+v", dist)
	}
}
