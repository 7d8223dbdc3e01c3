package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) insights(ctx context.Context) {
	ins, err := a.entryService.Insights(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	if ins.TotalEntries == 0 {
		fmt.Fprintln(a.out, "No entries yet")
		return
	}

	fmt.Fprintf(a.out, "Entries:         %d\n", ins.TotalEntries)
	if ins.AverageRating > 0 {
		fmt.Fprintf(a.out, "Average rating:  %.1f/5\n", ins.AverageRating)
	}
	fmt.Fprintf(a.out, "Writing days:    %d\n", ins.WritingDays)
	if ins.CurrentStreak > 0 {
		fmt.Fprintf(a.out, "Current streak:  %d day(s)\n", ins.CurrentStreak)
	}
	if ins.TimeOfDay != "" {
		fmt.Fprintf(a.out, "Most productive: %s (around %02d:00)\n", ins.TimeOfDay, ins.MostProductiveHour)
	}

	if len(ins.MonthlyTrends) > 0 {
		fmt.Fprintln(a.out, "By month:")
		for _, m := range ins.MonthlyTrends {
			if m.AverageRating > 0 {
				fmt.Fprintf(a.out, "  %-9s %d (avg %.1f/5)\n", m.Month, m.Count, m.AverageRating)
			} else {
				fmt.Fprintf(a.out, "  %-9s %d\n", m.Month, m.Count)
			}
		}
	}

	if len(ins.TopTags) > 0 {
		fmt.Fprintln(a.out, "Top tags:")
		for _, t := range ins.TopTags {
			fmt.Fprintf(a.out, "  %-20s %d\n", t.Tag, t.Count)
		}
	}

	if len(ins.RecentImprovements) > 0 {
		fmt.Fprintln(a.out, "Recent things to improve:")
		for _, s := range ins.RecentImprovements {
			fmt.Fprintf(a.out, "  - %s\n", s)
		}
	}
}
