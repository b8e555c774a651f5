// Package analysis reduces parsed catalog records into a summary.
// The reduction is a single pass and a total function: malformed records
// fall into "unspecified"/"unknown" buckets, never errors.
package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"addon-catalog/core/types"
)

const (
	// UnspecifiedBucket collects records with no value for a dimension
	UnspecifiedBucket = "unspecified"

	// UnknownPeriod collects records with no availability date
	UnknownPeriod = "unknown"

	// periodLayout is the release-period granularity (year-month)
	periodLayout = "2006-01"
)

// Summary is the aggregation result. All fields are derived once from the
// full record list and never mutated afterwards.
type Summary struct {
	// TotalAddons is the input record count
	TotalAddons int `json:"total_addons"`

	// UniquePlatforms lists every platform label seen, sorted
	UniquePlatforms []string `json:"unique_platforms"`

	// UniqueOSTypes lists every OS type label seen, sorted
	UniqueOSTypes []string `json:"unique_os_types"`

	// UniqueArchitectures lists every architecture label seen, sorted
	UniqueArchitectures []string `json:"unique_architectures"`

	// LatestVersions maps grouping key to the selected latest version
	LatestVersions map[string]string `json:"latest_versions"`

	// LatestAddons holds the full winner record per grouping key,
	// ordered by grouping key ascending
	LatestAddons []types.Addon `json:"latest_addons"`

	// PlatformCounts counts occurrences per platform label
	PlatformCounts map[string]int `json:"platform_counts"`

	// OSTypeCounts counts occurrences per OS type label
	OSTypeCounts map[string]int `json:"os_type_counts"`

	// ArchitectureCounts counts occurrences per architecture label
	ArchitectureCounts map[string]int `json:"architecture_counts"`

	// ReleasePeriodCounts counts releases per year-month
	ReleasePeriodCounts map[string]int `json:"release_period_counts"`
}

// Summarize reduces the record list into a Summary in one pass.
// The empty list yields a summary with total 0 and empty sets and maps.
func Summarize(addons []types.Addon) *Summary {
	platforms := map[string]struct{}{}
	osTypes := map[string]struct{}{}
	architectures := map[string]struct{}{}
	platformCounts := map[string]int{}
	osTypeCounts := map[string]int{}
	architectureCounts := map[string]int{}
	periodCounts := map[string]int{}
	latest := map[string]types.Addon{}

	for _, addon := range addons {
		countLabels(addon.Platforms, platforms, platformCounts)
		countLabels(addon.OSTypes, osTypes, osTypeCounts)

		if addon.Architecture != "" {
			architectures[addon.Architecture] = struct{}{}
			architectureCounts[addon.Architecture]++
		} else {
			architectureCounts[UnspecifiedBucket]++
		}

		if addon.AvailableDate != nil {
			periodCounts[addon.AvailableDate.Format(periodLayout)]++
		} else {
			periodCounts[UnknownPeriod]++
		}

		key := addon.GroupKey()
		if current, ok := latest[key]; ok {
			latest[key] = selectLatest(current, addon)
		} else {
			latest[key] = addon
		}
	}

	keys := make([]string, 0, len(latest))
	for key := range latest {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	latestVersions := make(map[string]string, len(keys))
	latestAddons := make([]types.Addon, 0, len(keys))
	for _, key := range keys {
		winner := latest[key]
		latestVersions[key] = winner.Version
		latestAddons = append(latestAddons, winner)
	}

	return &Summary{
		TotalAddons:         len(addons),
		UniquePlatforms:     sortedKeys(platforms),
		UniqueOSTypes:       sortedKeys(osTypes),
		UniqueArchitectures: sortedKeys(architectures),
		LatestVersions:      latestVersions,
		LatestAddons:        latestAddons,
		PlatformCounts:      platformCounts,
		OSTypeCounts:        osTypeCounts,
		ArchitectureCounts:  architectureCounts,
		ReleasePeriodCounts: periodCounts,
	}
}

// countLabels records each listed label in the unique set and count map.
// An empty list contributes exactly one count to the unspecified bucket;
// the bucket never appears in the unique set.
func countLabels(labels []string, set map[string]struct{}, counts map[string]int) {
	if len(labels) == 0 {
		counts[UnspecifiedBucket]++
		return
	}
	for _, label := range labels {
		set[label] = struct{}{}
		counts[label]++
	}
}

// selectLatest is the pairwise tie-break between the current winner and a
// new candidate for the same grouping key. A candidate with a strictly
// later date wins; on equal dates (including both absent) the
// lexicographically greater version wins; otherwise the current winner
// stays. Applied as an incremental left-fold over input order.
func selectLatest(current, candidate types.Addon) types.Addon {
	cur, cand := current.AvailableDate, candidate.AvailableDate
	if cand != nil && (cur == nil || cand.After(cur.Time)) {
		return candidate
	}
	if datesEqual(cur, cand) && candidate.Version > current.Version {
		return candidate
	}
	return current
}

func datesEqual(a, b *types.Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b.Time)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CountEntry is one bucket of a distribution in display order.
type CountEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SortedCounts orders a distribution by count descending, then label
// ascending.
func SortedCounts(counts map[string]int) []CountEntry {
	entries := make([]CountEntry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, CountEntry{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

// SortedPeriods orders the release-period distribution chronologically,
// with the unknown bucket forced last.
func SortedPeriods(counts map[string]int) []CountEntry {
	entries := make([]CountEntry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, CountEntry{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Label == UnknownPeriod {
			return false
		}
		if entries[j].Label == UnknownPeriod {
			return true
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

// Share returns a bucket's share of the total as a percentage string with
// two decimal places, e.g. "28.57". Zero total yields "0.00".
func Share(count, total int) string {
	if total == 0 {
		return decimal.Zero.StringFixed(2)
	}
	return decimal.NewFromInt(int64(count)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		StringFixed(2)
}
