package output

import (
	"bytes"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addon-catalog/core/analysis"
	"addon-catalog/core/types"
)

func sampleReport() *Report {
	jan := types.NewDate(2025, time.January, 10)
	feb := types.NewDate(2025, time.February, 1)
	addons := []types.Addon{
		{ID: "pkg-1", Description: "Printer Driver", Version: "1.0.0", AvailableDate: &jan,
			Platforms: []string{"t630"}, OSTypes: []string{"ThinPro"}, Architecture: "x64"},
		{ID: "pkg-1", Description: "Printer Driver", Version: "1.1.0", AvailableDate: &feb,
			Platforms: []string{"t630", "t640"}, OSTypes: []string{"ThinPro"}, Architecture: "x64"},
		{ID: "pkg-2", Version: "0.9.0"},
	}
	return &Report{
		Summary:     analysis.Summarize(addons),
		CatalogPath: ".cache/addon_catalog.xml",
		URL:         "https://example.com/catalog.xml",
	}
}

func TestNewFormatter(t *testing.T) {
	text, err := New(FormatText)
	require.NoError(t, err)
	assert.Equal(t, FormatText, text.Format())

	js, err := New(FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, js.Format())

	_, err = New(Format("yaml"))
	require.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	report := sampleReport()

	var buf bytes.Buffer
	formatter, err := New(FormatJSON)
	require.NoError(t, err)
	require.NoError(t, formatter.Render(&buf, report))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, report.TotalAddons, decoded.TotalAddons)
	assert.Equal(t, report.PlatformCounts, decoded.PlatformCounts)
	assert.Equal(t, report.OSTypeCounts, decoded.OSTypeCounts)
	assert.Equal(t, report.ArchitectureCounts, decoded.ArchitectureCounts)
	assert.Equal(t, report.ReleasePeriodCounts, decoded.ReleasePeriodCounts)
	assert.Equal(t, report.LatestVersions, decoded.LatestVersions)
	assert.Equal(t, report.CatalogPath, decoded.CatalogPath)
	assert.Equal(t, report.URL, decoded.URL)

	keys := make([]string, 0, len(decoded.LatestVersions))
	for key := range decoded.LatestVersions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"Printer Driver", "pkg-2"}, keys)

	require.Len(t, decoded.LatestAddons, 2)
	require.NotNil(t, decoded.LatestAddons[0].AvailableDate)
	assert.Equal(t, "2025-02-01", decoded.LatestAddons[0].AvailableDate.String())
}

func TestJSONSchemaFields(t *testing.T) {
	var buf bytes.Buffer
	formatter, _ := New(FormatJSON)
	require.NoError(t, formatter.Render(&buf, sampleReport()))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))

	for _, field := range []string{
		"total_addons", "unique_platforms", "unique_os_types",
		"unique_architectures", "latest_versions", "latest_addons",
		"platform_counts", "os_type_counts", "architecture_counts",
		"release_period_counts", "catalog_path", "url",
	} {
		assert.Contains(t, raw, field)
	}
}

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	formatter, _ := New(FormatText)
	require.NoError(t, formatter.Render(&buf, sampleReport()))
	text := buf.String()

	assert.Contains(t, text, "Catalog path: .cache/addon_catalog.xml")
	assert.Contains(t, text, "Source URL: https://example.com/catalog.xml")
	assert.Contains(t, text, "Total add-ons: 3")
	assert.Contains(t, text, "Unique platforms: t630, t640")
	assert.Contains(t, text, "Unique OS types: ThinPro")
	assert.Contains(t, text, "- Printer Driver: 1.1.0")
	assert.Contains(t, text, "- pkg-2: 0.9.0")
	// the dateless record lands in the unspecified bucket with its share
	assert.Contains(t, text, "- unspecified: 1 (33.33%)")
}

func TestTextOutputEmptySummary(t *testing.T) {
	var buf bytes.Buffer
	formatter, _ := New(FormatText)
	report := &Report{
		Summary:     analysis.Summarize(nil),
		CatalogPath: "cache.xml",
		URL:         "https://example.com/catalog.xml",
	}
	require.NoError(t, formatter.Render(&buf, report))

	assert.Contains(t, buf.String(), "Total add-ons: 0")
	assert.Contains(t, buf.String(), "Unique platforms: None")
	assert.Contains(t, buf.String(), "(none)")
}
