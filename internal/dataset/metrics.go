package dataset

// metrics.go - Measurement field catalog for the cleaned station exports.
//
// The cleaned per-country CSVs share the Solar Radiation Measurement Data
// column set. The catalog drives metric listing and axis labeling in the
// presentation tools; unknown columns still load and aggregate, they just
// render without a unit.

import "strings"

// DefaultMetric is the field the comparison views open with.
const DefaultMetric = "GHI"

// MetricInfo describes one measurement field.
type MetricInfo struct {
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
}

var metricCatalog = []MetricInfo{
	{Name: "GHI", Unit: "W/m²", Description: "Global horizontal irradiance"},
	{Name: "DNI", Unit: "W/m²", Description: "Direct normal irradiance"},
	{Name: "DHI", Unit: "W/m²", Description: "Diffuse horizontal irradiance"},
	{Name: "ModA", Unit: "W/m²", Description: "Module A sensor irradiance"},
	{Name: "ModB", Unit: "W/m²", Description: "Module B sensor irradiance"},
	{Name: "Tamb", Unit: "°C", Description: "Ambient temperature"},
	{Name: "TModA", Unit: "°C", Description: "Module A temperature"},
	{Name: "TModB", Unit: "°C", Description: "Module B temperature"},
	{Name: "RH", Unit: "%", Description: "Relative humidity"},
	{Name: "WS", Unit: "m/s", Description: "Wind speed"},
	{Name: "WSgust", Unit: "m/s", Description: "Wind gust speed"},
	{Name: "WSstdev", Unit: "m/s", Description: "Wind speed std deviation"},
	{Name: "WD", Unit: "°N", Description: "Wind direction"},
	{Name: "BP", Unit: "hPa", Description: "Barometric pressure"},
	{Name: "Precipitation", Unit: "mm/min", Description: "Precipitation rate"},
}

// KnownMetrics returns the full catalog in display order.
func KnownMetrics() []MetricInfo {
	out := make([]MetricInfo, len(metricCatalog))
	copy(out, metricCatalog)
	return out
}

// LookupMetric finds catalog info for a field name, case-insensitive.
func LookupMetric(name string) (MetricInfo, bool) {
	for _, m := range metricCatalog {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return MetricInfo{}, false
}

// CanonicalMetric maps a case-insensitive field name onto its catalog
// spelling. Unknown names pass through unchanged so ad-hoc columns remain
// addressable.
func CanonicalMetric(name string) string {
	if m, ok := LookupMetric(name); ok {
		return m.Name
	}
	return name
}
