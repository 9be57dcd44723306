// Package api exposes the dashboard views over HTTP as JSON.
//
// The handlers are a thin presentation layer: they translate query
// parameters into loader/analysis calls and render whatever comes back.
// No-data results from the core are never surfaced as server errors;
// they become empty payloads with a diagnostic string the client can
// display, so a missing or malformed source file degrades exactly like
// an empty selection.
package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Yoheniy/solar-challenge-week1/internal/analysis"
	"github.com/Yoheniy/solar-challenge-week1/internal/dataset"
	"github.com/Yoheniy/solar-challenge-week1/internal/loader"
)

// Server wires the loader into the HTTP routes.
type Server struct {
	loader        *loader.Loader
	defaultMetric string
	engine        *gin.Engine
}

// NewServer creates the API server around a configured loader.
func NewServer(l *loader.Loader, defaultMetric string) *Server {
	if defaultMetric == "" {
		defaultMetric = dataset.DefaultMetric
	}
	s := &Server{
		loader:        l,
		defaultMetric: defaultMetric,
		engine:        gin.Default(),
	}

	s.engine.GET("/health", s.handleHealth)
	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/countries", s.handleCountries)
		v1.GET("/metrics", s.handleMetrics)
		v1.GET("/summary", s.handleSummary)
		v1.GET("/series", s.handleSeries)
		v1.GET("/distribution", s.handleDistribution)
	}
	return s
}

// Engine returns the underlying router, used by tests.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Run blocks serving on addr.
func (s *Server) Run(addr string) error { return s.engine.Run(addr) }

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data_dir": s.loader.DataDir()})
}

func (s *Server) handleCountries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"countries": s.loader.Available()})
}

func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"metrics": dataset.KnownMetrics()})
}

// failureInfo serializes one skipped country for client diagnostics.
type failureInfo struct {
	Country string `json:"country"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func failureList(failures []*loader.SourceError) []failureInfo {
	out := make([]failureInfo, 0, len(failures))
	for _, f := range failures {
		out = append(out, failureInfo{
			Country: f.Country,
			Kind:    f.Kind.String(),
			Message: f.Error(),
		})
	}
	return out
}

func (s *Server) handleSummary(c *gin.Context) {
	countries, ok := s.countriesParam(c)
	if !ok {
		return
	}
	metric := s.metricParam(c)

	combined, failures := analysis.Combine(s.loader, countries)
	rows, err := analysis.Summarize(combined, metric)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"metric":     metric,
			"rows":       []dataset.SummaryRow{},
			"failures":   failureList(failures),
			"diagnostic": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"metric":   metric,
		"rows":     rows,
		"failures": failureList(failures),
	})
}

func (s *Server) handleSeries(c *gin.Context) {
	country := strings.TrimSpace(c.Query("country"))
	if country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "country required"})
		return
	}
	metric := s.metricParam(c)

	ds, err := s.loader.Load(country)
	var points []dataset.DailyPoint
	if err == nil {
		points, err = analysis.ResampleDaily(ds, metric)
	}
	if err != nil {
		if !loader.IsNoData(err) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"country":    loader.Capitalize(loader.Normalize(country)),
			"metric":     metric,
			"points":     []dataset.DailyPoint{},
			"diagnostic": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"country": ds.Country(),
		"metric":  metric,
		"points":  points,
	})
}

func (s *Server) handleDistribution(c *gin.Context) {
	countries, ok := s.countriesParam(c)
	if !ok {
		return
	}
	metric := s.metricParam(c)

	combined, failures := analysis.Combine(s.loader, countries)
	dist, err := analysis.Distribution(combined, metric)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"metric":     metric,
			"countries":  []analysis.CountryValues{},
			"failures":   failureList(failures),
			"diagnostic": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"metric":    metric,
		"countries": dist,
		"failures":  failureList(failures),
	})
}

func (s *Server) countriesParam(c *gin.Context) ([]string, bool) {
	raw := c.Query("countries")
	var countries []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			countries = append(countries, part)
		}
	}
	if len(countries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "countries required (comma-separated)"})
		return nil, false
	}
	return countries, true
}

func (s *Server) metricParam(c *gin.Context) string {
	metric := strings.TrimSpace(c.Query("metric"))
	if metric == "" {
		metric = s.defaultMetric
	}
	return dataset.CanonicalMetric(metric)
}
