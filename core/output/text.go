package output

import (
	"fmt"
	"io"
	"strings"

	"addon-catalog/core/analysis"
)

// TextFormatter renders a summary as plain console text.
type TextFormatter struct{}

// Format returns the format type
func (f *TextFormatter) Format() Format {
	return FormatText
}

// Render writes the report as plain text
func (f *TextFormatter) Render(w io.Writer, report *Report) error {
	s := report.Summary

	fmt.Fprintf(w, "Catalog path: %s\n", report.CatalogPath)
	fmt.Fprintf(w, "Source URL: %s\n", report.URL)
	fmt.Fprintf(w, "Total add-ons: %d\n", s.TotalAddons)
	fmt.Fprintf(w, "Unique platforms: %s\n", joinOrNone(s.UniquePlatforms))
	fmt.Fprintf(w, "Unique OS types: %s\n", joinOrNone(s.UniqueOSTypes))
	fmt.Fprintf(w, "Unique architectures: %s\n", joinOrNone(s.UniqueArchitectures))

	writeDistribution(w, "Platform counts", analysis.SortedCounts(s.PlatformCounts), s.TotalAddons)
	writeDistribution(w, "OS type counts", analysis.SortedCounts(s.OSTypeCounts), s.TotalAddons)
	writeDistribution(w, "Architecture counts", analysis.SortedCounts(s.ArchitectureCounts), s.TotalAddons)
	writeDistribution(w, "Releases by month", analysis.SortedPeriods(s.ReleasePeriodCounts), s.TotalAddons)

	fmt.Fprintln(w, "Latest versions by description:")
	if len(s.LatestAddons) == 0 {
		fmt.Fprintln(w, "  (none)")
		return nil
	}
	for _, addon := range s.LatestAddons {
		fmt.Fprintf(w, "  - %s: %s\n", addon.GroupKey(), addon.Version)
	}
	return nil
}

func writeDistribution(w io.Writer, title string, entries []analysis.CountEntry, total int) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, e := range entries {
		fmt.Fprintf(w, "  - %s: %d (%s%%)\n", e.Label, e.Count, analysis.Share(e.Count, total))
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
