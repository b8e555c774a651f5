package api

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"strings"

	"addon-catalog/core/analysis"
	"addon-catalog/core/output"
	"addon-catalog/core/types"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("index.html.tmpl").
		Funcs(template.FuncMap{
			"join":     strings.Join,
			"dashWhen": dashWhenEmpty,
		}).
		ParseFS(templateFS, "templates/index.html.tmpl"),
)

// pageFilters are the display filters from query parameters. They narrow
// the latest-version table only; the underlying summary is untouched.
type pageFilters struct {
	Platform     string
	OSType       string
	Architecture string
}

// page is the template model for the dashboard.
type page struct {
	URL         string
	Error       string
	HasSummary  bool
	Summary     *analysis.Summary
	CatalogPath string
	Filters     pageFilters
	Filtered    []types.Addon

	PlatformChart template.JS
	OSChart       template.JS
	ArchChart     template.JS
	MonthlyChart  template.JS
}

// buildPage assembles the template model. report may be nil when the
// fetch failed and no fallback exists yet.
func buildPage(report *output.Report, url, errMsg string, filters pageFilters) *page {
	p := &page{
		URL:     url,
		Error:   errMsg,
		Filters: filters,
	}
	if report == nil {
		return p
	}

	p.HasSummary = true
	p.Summary = report.Summary
	p.CatalogPath = report.CatalogPath
	p.Filtered = filterAddons(report.Summary.LatestAddons, filters)
	p.PlatformChart = chartJSON(analysis.SortedCounts(report.Summary.PlatformCounts))
	p.OSChart = chartJSON(analysis.SortedCounts(report.Summary.OSTypeCounts))
	p.ArchChart = chartJSON(analysis.SortedCounts(report.Summary.ArchitectureCounts))
	p.MonthlyChart = chartJSON(analysis.SortedPeriods(report.Summary.ReleasePeriodCounts))
	return p
}

// filterAddons narrows the latest-details list: membership checks for
// platform and OS type, equality for architecture. Empty filters match
// everything.
func filterAddons(addons []types.Addon, filters pageFilters) []types.Addon {
	matched := make([]types.Addon, 0, len(addons))
	for _, addon := range addons {
		if filters.Platform != "" && !contains(addon.Platforms, filters.Platform) {
			continue
		}
		if filters.OSType != "" && !contains(addon.OSTypes, filters.OSType) {
			continue
		}
		if filters.Architecture != "" && filters.Architecture != addon.Architecture {
			continue
		}
		matched = append(matched, addon)
	}
	return matched
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

// chartJSON produces the chart-ready payload for one distribution,
// preserving the distribution's display order.
func chartJSON(entries []analysis.CountEntry) template.JS {
	payload := struct {
		Labels []string `json:"labels"`
		Values []int    `json:"values"`
	}{
		Labels: make([]string, 0, len(entries)),
		Values: make([]int, 0, len(entries)),
	}
	for _, e := range entries {
		payload.Labels = append(payload.Labels, e.Label)
		payload.Values = append(payload.Values, e.Count)
	}
	data, _ := json.Marshal(payload)
	return template.JS(data)
}

func dashWhenEmpty(value string) string {
	if value == "" {
		return "—"
	}
	return value
}

func renderPage(w io.Writer, p *page) error {
	return pageTemplate.Execute(w, p)
}
