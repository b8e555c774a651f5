package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addon-catalog/core/types"
)

func datePtr(year int, month time.Month, day int) *types.Date {
	d := types.NewDate(year, month, day)
	return &d
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.TotalAddons)
	assert.Empty(t, summary.UniquePlatforms)
	assert.Empty(t, summary.UniqueOSTypes)
	assert.Empty(t, summary.UniqueArchitectures)
	assert.Empty(t, summary.LatestVersions)
	assert.Empty(t, summary.LatestAddons)
	assert.Empty(t, summary.PlatformCounts)
	assert.Empty(t, summary.OSTypeCounts)
	assert.Empty(t, summary.ArchitectureCounts)
	assert.Empty(t, summary.ReleasePeriodCounts)
}

func TestTotalMatchesInputLength(t *testing.T) {
	addons := []types.Addon{
		{ID: "a", Version: "1.0"},
		{ID: "b", Version: "1.0"},
		{ID: "c", Version: "1.0"},
	}
	assert.Equal(t, 3, Summarize(addons).TotalAddons)
}

func TestGroupKeyFallsBackToID(t *testing.T) {
	addons := []types.Addon{
		{ID: "pkg-1", Description: "Printer Driver", Version: "1.0"},
		{ID: "pkg-2", Description: "", Version: "2.0"},
	}
	summary := Summarize(addons)

	require.Len(t, summary.LatestVersions, 2)
	assert.Equal(t, "1.0", summary.LatestVersions["Printer Driver"])
	assert.Equal(t, "2.0", summary.LatestVersions["pkg-2"])
}

func TestLaterDateWinsRegardlessOfOrder(t *testing.T) {
	older := types.Addon{ID: "x", Description: "Tool", Version: "1.0.0", AvailableDate: datePtr(2025, time.January, 1)}
	newer := types.Addon{ID: "x", Description: "Tool", Version: "1.1.0", AvailableDate: datePtr(2025, time.February, 1)}

	for _, addons := range [][]types.Addon{{older, newer}, {newer, older}} {
		summary := Summarize(addons)
		assert.Equal(t, "1.1.0", summary.LatestVersions["Tool"])
	}
}

func TestEqualDatesFallBackToLexicographicVersion(t *testing.T) {
	date := datePtr(2025, time.March, 15)
	a := types.Addon{ID: "x", Description: "Tool", Version: "1.0.0", AvailableDate: date}
	b := types.Addon{ID: "x", Description: "Tool", Version: "1.1.0", AvailableDate: date}

	for _, addons := range [][]types.Addon{{a, b}, {b, a}} {
		summary := Summarize(addons)
		assert.Equal(t, "1.1.0", summary.LatestVersions["Tool"])
	}
}

func TestBothDatesAbsentComparesVersions(t *testing.T) {
	a := types.Addon{ID: "x", Description: "Tool", Version: "2.0"}
	b := types.Addon{ID: "x", Description: "Tool", Version: "10.0"}

	// plain string comparison: "2.0" > "10.0"
	summary := Summarize([]types.Addon{a, b})
	assert.Equal(t, "2.0", summary.LatestVersions["Tool"])
}

func TestDatelessCandidateNeverBeatsDatedWinner(t *testing.T) {
	dated := types.Addon{ID: "x", Description: "Tool", Version: "1.0", AvailableDate: datePtr(2024, time.June, 1)}
	dateless := types.Addon{ID: "x", Description: "Tool", Version: "9.9"}

	summary := Summarize([]types.Addon{dated, dateless})
	assert.Equal(t, "1.0", summary.LatestVersions["Tool"])
}

func TestWinnerIsWholeRecordNotMerge(t *testing.T) {
	older := types.Addon{ID: "x", Description: "Tool", Version: "1.0", Architecture: "x86", AvailableDate: datePtr(2025, time.January, 1)}
	newer := types.Addon{ID: "x", Description: "Tool", Version: "2.0", AvailableDate: datePtr(2025, time.February, 1)}

	summary := Summarize([]types.Addon{older, newer})
	require.Len(t, summary.LatestAddons, 1)
	// the winner carries its own (empty) architecture, not the loser's
	assert.Equal(t, "", summary.LatestAddons[0].Architecture)
	assert.Equal(t, "2.0", summary.LatestAddons[0].Version)
}

func TestEmptyPlatformsCountedAsUnspecified(t *testing.T) {
	addons := []types.Addon{
		{ID: "a", Version: "1.0", Platforms: []string{"t630", "t640"}},
		{ID: "b", Version: "1.0"},
	}
	summary := Summarize(addons)

	assert.Equal(t, 1, summary.PlatformCounts[UnspecifiedBucket])
	assert.Equal(t, 1, summary.PlatformCounts["t630"])
	assert.Equal(t, 1, summary.PlatformCounts["t640"])
	// the unique set holds real labels only
	assert.Equal(t, []string{"t630", "t640"}, summary.UniquePlatforms)
}

func TestArchitectureSingleValueBuckets(t *testing.T) {
	addons := []types.Addon{
		{ID: "a", Version: "1.0", Architecture: "x64"},
		{ID: "b", Version: "1.0", Architecture: "x64"},
		{ID: "c", Version: "1.0"},
	}
	summary := Summarize(addons)

	assert.Equal(t, 2, summary.ArchitectureCounts["x64"])
	assert.Equal(t, 1, summary.ArchitectureCounts[UnspecifiedBucket])
	assert.Equal(t, []string{"x64"}, summary.UniqueArchitectures)
}

func TestReleasePeriodsAreYearMonth(t *testing.T) {
	addons := []types.Addon{
		{ID: "a", Version: "1.0", AvailableDate: datePtr(2025, time.January, 5)},
		{ID: "b", Version: "1.0", AvailableDate: datePtr(2025, time.January, 20)},
		{ID: "c", Version: "1.0", AvailableDate: datePtr(2024, time.December, 1)},
		{ID: "d", Version: "1.0"},
	}
	summary := Summarize(addons)

	assert.Equal(t, 2, summary.ReleasePeriodCounts["2025-01"])
	assert.Equal(t, 1, summary.ReleasePeriodCounts["2024-12"])
	assert.Equal(t, 1, summary.ReleasePeriodCounts[UnknownPeriod])
}

func TestLatestAddonsSortedByGroupKey(t *testing.T) {
	addons := []types.Addon{
		{ID: "z", Description: "Zeta", Version: "1.0"},
		{ID: "a", Description: "Alpha", Version: "1.0"},
		{ID: "m", Description: "Mid", Version: "1.0"},
	}
	summary := Summarize(addons)

	require.Len(t, summary.LatestAddons, 3)
	assert.Equal(t, "Alpha", summary.LatestAddons[0].GroupKey())
	assert.Equal(t, "Mid", summary.LatestAddons[1].GroupKey())
	assert.Equal(t, "Zeta", summary.LatestAddons[2].GroupKey())
}

func TestSortedCountsDescendingThenAlpha(t *testing.T) {
	entries := SortedCounts(map[string]int{"a": 1, "b": 2, "c": 2})

	require.Len(t, entries, 3)
	assert.Equal(t, CountEntry{Label: "b", Count: 2}, entries[0])
	assert.Equal(t, CountEntry{Label: "c", Count: 2}, entries[1])
	assert.Equal(t, CountEntry{Label: "a", Count: 1}, entries[2])
}

func TestSortedPeriodsChronologicalWithUnknownLast(t *testing.T) {
	entries := SortedPeriods(map[string]int{
		"2025-02":     1,
		UnknownPeriod: 3,
		"2024-11":     2,
	})

	require.Len(t, entries, 3)
	assert.Equal(t, "2024-11", entries[0].Label)
	assert.Equal(t, "2025-02", entries[1].Label)
	assert.Equal(t, UnknownPeriod, entries[2].Label)
}

func TestShare(t *testing.T) {
	assert.Equal(t, "33.33", Share(1, 3))
	assert.Equal(t, "50.00", Share(1, 2))
	assert.Equal(t, "0.00", Share(0, 5))
	assert.Equal(t, "0.00", Share(0, 0))
}
