package services

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/jrnl/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insightsEntry(date time.Time, rating int, tags []string, improve string) models.Entry {
	return models.Entry{
		ID:     date.Format(time.RFC3339Nano),
		Title:  "t",
		Date:   date,
		Rating: rating,
		Tags:   tags,
		Reflection: models.Reflection{
			CouldImprove: improve,
		},
	}
}

func TestComputeInsights_Empty(t *testing.T) {
	ins := ComputeInsights(nil, time.Now())

	assert.Equal(t, 0, ins.TotalEntries)
	assert.Zero(t, ins.AverageRating)
	assert.Equal(t, -1, ins.MostProductiveHour)
	assert.Empty(t, ins.TimeOfDay)
	assert.Equal(t, 0, ins.CurrentStreak)
}

func TestComputeInsights_RatingsAndDistribution(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	all := []models.Entry{
		insightsEntry(now, 4, nil, ""),
		insightsEntry(now.Add(-time.Hour), 2, nil, ""),
		insightsEntry(now.Add(-2*time.Hour), 4, nil, ""),
		insightsEntry(now.Add(-3*time.Hour), 0, nil, ""), // unrated, excluded
	}

	ins := ComputeInsights(all, now)

	assert.Equal(t, 4, ins.TotalEntries)
	assert.InDelta(t, 10.0/3.0, ins.AverageRating, 1e-9)
	assert.Equal(t, 2, ins.RatingDistribution[4])
	assert.Equal(t, 1, ins.RatingDistribution[2])
	assert.Zero(t, ins.RatingDistribution[0])
}

func TestComputeInsights_MonthlyTrends(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	all := []models.Entry{
		insightsEntry(time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC), 2, nil, ""),
		insightsEntry(time.Date(2026, 7, 15, 9, 0, 0, 0, time.UTC), 5, nil, ""),
		insightsEntry(time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC), 3, nil, ""),
	}

	ins := ComputeInsights(all, now)

	require.Len(t, ins.MonthlyTrends, 2)
	assert.Equal(t, MonthCount{Month: "Jul 2026", Count: 2, AverageRating: 3.5}, ins.MonthlyTrends[0])
	assert.Equal(t, MonthCount{Month: "Aug 2026", Count: 1, AverageRating: 3}, ins.MonthlyTrends[1])
}

func TestComputeInsights_MonthlyTrends_UnratedMonth(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	all := []models.Entry{
		insightsEntry(time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC), 0, nil, ""),
	}

	ins := ComputeInsights(all, now)

	require.Len(t, ins.MonthlyTrends, 1)
	assert.Equal(t, MonthCount{Month: "Aug 2026", Count: 1}, ins.MonthlyTrends[0])
}

func TestComputeInsights_TopTagsLimitAndOrder(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	var all []models.Entry
	// "busy" appears three times, "quiet" once, plus eleven one-off tags
	for i := 0; i < 3; i++ {
		all = append(all, insightsEntry(now.Add(-time.Duration(i)*time.Hour), 3, []string{"busy"}, ""))
	}
	all = append(all, insightsEntry(now.Add(-24*time.Hour), 3, []string{"quiet"}, ""))
	for _, tag := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
		all = append(all, insightsEntry(now.Add(-48*time.Hour), 3, []string{tag}, ""))
	}

	ins := ComputeInsights(all, now)

	require.Len(t, ins.TopTags, 10)
	assert.Equal(t, TagCount{Tag: "busy", Count: 3}, ins.TopTags[0])
	// ties break alphabetically
	assert.Equal(t, "a", ins.TopTags[1].Tag)
}

func TestComputeInsights_Streak(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	var all []models.Entry
	for i := 0; i < 5; i++ {
		all = append(all, insightsEntry(now.AddDate(0, 0, -i), 3, nil, ""))
	}
	ins := ComputeInsights(all, now)
	assert.Equal(t, 5, ins.CurrentStreak)
	assert.Equal(t, 5, ins.WritingDays)
}

func TestComputeInsights_StreakForgivesToday(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	// entries yesterday and the day before, nothing yet today
	all := []models.Entry{
		insightsEntry(now.AddDate(0, 0, -1), 3, nil, ""),
		insightsEntry(now.AddDate(0, 0, -2), 3, nil, ""),
	}
	ins := ComputeInsights(all, now)
	assert.Equal(t, 2, ins.CurrentStreak)
}

func TestComputeInsights_StreakBrokenByGap(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	all := []models.Entry{
		insightsEntry(now, 3, nil, ""),
		insightsEntry(now.AddDate(0, 0, -3), 3, nil, ""),
	}
	ins := ComputeInsights(all, now)
	assert.Equal(t, 1, ins.CurrentStreak)
}

func TestComputeInsights_MostProductiveHour(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)
	all := []models.Entry{
		insightsEntry(time.Date(2026, 8, 29, 9, 15, 0, 0, time.UTC), 3, nil, ""),
		insightsEntry(time.Date(2026, 8, 30, 9, 45, 0, 0, time.UTC), 3, nil, ""),
		insightsEntry(time.Date(2026, 8, 31, 22, 0, 0, 0, time.UTC), 3, nil, ""),
	}

	ins := ComputeInsights(all, now)
	assert.Equal(t, 9, ins.MostProductiveHour)
	assert.Equal(t, "morning", ins.TimeOfDay)
}

func TestTimeOfDayBuckets(t *testing.T) {
	cases := map[int]string{
		3:  "early morning",
		7:  "morning",
		13: "afternoon",
		19: "evening",
		22: "night",
	}
	for hour, want := range cases {
		assert.Equal(t, want, timeOfDay(hour), "hour %d", hour)
	}
	assert.Empty(t, timeOfDay(-1))
}

func TestComputeInsights_RecentImprovements(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	var all []models.Entry
	for i := 0; i < 12; i++ {
		improve := ""
		if i != 0 { // newest entry has no improvement note
			improve = now.AddDate(0, 0, -i).Format("2006-01-02")
		}
		all = append(all, insightsEntry(now.AddDate(0, 0, -i), 3, nil, improve))
	}

	ins := ComputeInsights(all, now)

	require.Len(t, ins.RecentImprovements, 10)
	// newest improvement first
	assert.Equal(t, now.AddDate(0, 0, -1).Format("2006-01-02"), ins.RecentImprovements[0])
}
