package services

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/jrnl/internal/client/models"
)

// TagCount is one entry of the top-tags ranking.
type TagCount struct {
	Tag   string
	Count int
}

// MonthCount aggregates one calendar month: how many entries were written
// and their average rating (zero when no entry that month was rated).
type MonthCount struct {
	Month         string // formatted as "Jan 2006"
	Count         int
	AverageRating float64
}

// monthAgg accumulates per-month figures before they are flattened into
// MonthCount values.
type monthAgg struct {
	count       int
	ratingSum   int
	ratingCount int
}

// Insights aggregates statistics over the entry collection.
type Insights struct {
	TotalEntries       int
	AverageRating      float64
	RatingDistribution map[int]int // rating 1..5 -> count
	MonthlyTrends      []MonthCount
	TopTags            []TagCount
	WritingDays        int // distinct days with at least one entry
	CurrentStreak      int // consecutive days with entries, counted back from today
	MostProductiveHour int // -1 when unknown
	TimeOfDay          string
	RecentImprovements []string
}

const (
	topTagsLimit     = 10
	improvementLimit = 10
	streakWindow     = 30 // days
)

// ComputeInsights derives Insights from the given entries. The entries do
// not need to be sorted; now anchors the streak calculation.
func ComputeInsights(all []models.Entry, now time.Time) *Insights {
	ins := &Insights{
		RatingDistribution: make(map[int]int),
		MostProductiveHour: -1,
	}
	ins.TotalEntries = len(all)
	if len(all) == 0 {
		return ins
	}

	var (
		ratingSum   int
		ratingCount int
		months      = make(map[string]*monthAgg)
		tags        = make(map[string]int)
		days        = make(map[string]bool)
		hours       = make(map[int]int)
	)

	sorted := make([]models.Entry, len(all))
	copy(sorted, all)
	models.SortByDateDesc(sorted)

	for _, e := range sorted {
		month := months[e.Date.Format("Jan 2006")]
		if month == nil {
			month = &monthAgg{}
			months[e.Date.Format("Jan 2006")] = month
		}
		month.count++

		if e.Rating >= 1 && e.Rating <= 5 {
			ratingSum += e.Rating
			ratingCount++
			ins.RatingDistribution[e.Rating]++
			month.ratingSum += e.Rating
			month.ratingCount++
		}
		for _, t := range e.Tags {
			tags[t]++
		}
		days[e.Date.Format("2006-01-02")] = true
		hours[e.Date.Hour()]++

		if e.Reflection.CouldImprove != "" && len(ins.RecentImprovements) < improvementLimit {
			ins.RecentImprovements = append(ins.RecentImprovements, e.Reflection.CouldImprove)
		}
	}

	if ratingCount > 0 {
		ins.AverageRating = float64(ratingSum) / float64(ratingCount)
	}
	ins.MonthlyTrends = monthlyTrends(months)
	ins.TopTags = topTags(tags)
	ins.WritingDays = len(days)
	ins.CurrentStreak = streak(days, now)
	ins.MostProductiveHour = busiestHour(hours)
	ins.TimeOfDay = timeOfDay(ins.MostProductiveHour)

	return ins
}

func monthlyTrends(months map[string]*monthAgg) []MonthCount {
	result := make([]MonthCount, 0, len(months))
	for m, agg := range months {
		mc := MonthCount{Month: m, Count: agg.count}
		if agg.ratingCount > 0 {
			mc.AverageRating = float64(agg.ratingSum) / float64(agg.ratingCount)
		}
		result = append(result, mc)
	}
	sort.Slice(result, func(i, j int) bool {
		ti, _ := time.Parse("Jan 2006", result[i].Month)
		tj, _ := time.Parse("Jan 2006", result[j].Month)
		return ti.Before(tj)
	})
	return result
}

func topTags(tags map[string]int) []TagCount {
	result := make([]TagCount, 0, len(tags))
	for t, c := range tags {
		result = append(result, TagCount{Tag: t, Count: c})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag < result[j].Tag
	})
	if len(result) > topTagsLimit {
		result = result[:topTagsLimit]
	}
	return result
}

// streak counts consecutive days with at least one entry, walking back from
// today. A gap today is forgiven if yesterday has an entry. Capped at the
// streak window.
func streak(days map[string]bool, now time.Time) int {
	day := now
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}

	count := 0
	for count < streakWindow && days[day.Format("2006-01-02")] {
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count
}

func busiestHour(hours map[int]int) int {
	best, bestCount := -1, 0
	for h := 0; h < 24; h++ {
		if hours[h] > bestCount {
			best, bestCount = h, hours[h]
		}
	}
	return best
}

func timeOfDay(hour int) string {
	switch {
	case hour < 0:
		return ""
	case hour < 6:
		return "early morning"
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	case hour < 21:
		return "evening"
	default:
		return "night"
	}
}
