package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jrnl/internal/client/models"
)

func (a *App) list(ctx context.Context) {
	entries, err := a.entryService.List(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	a.printEntries(entries)
}

// search accepts free text mixed with "tag:<name>" and "rating:<1-5>"
// tokens, e.g. "search retro tag:one-on-one rating:4".
func (a *App) search(ctx context.Context, args []string) {
	query, tags, rating, err := parseSearchArgs(args)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	entries, err := a.entryService.Search(ctx, query, tags, rating)
	if err != nil {
		log.Println(err.Error())
		return
	}
	a.printEntries(entries)
}

func parseSearchArgs(args []string) (query string, tags []string, rating int, err error) {
	var words []string
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "tag:"):
			if tag := strings.TrimPrefix(arg, "tag:"); tag != "" {
				tags = append(tags, tag)
			}
		case strings.HasPrefix(arg, "rating:"):
			rating, err = strconv.Atoi(strings.TrimPrefix(arg, "rating:"))
			if err != nil || rating < 1 || rating > 5 {
				return "", nil, 0, fmt.Errorf("rating filter must be a number from 1 to 5")
			}
		default:
			words = append(words, arg)
		}
	}
	return strings.Join(words, " "), tags, rating, nil
}

func (a *App) printEntries(entries []models.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No entries")
		return
	}
	for _, e := range entries {
		fmt.Fprintln(a.out, formatOverview(e))
	}
}

func formatOverview(e models.Entry) string {
	rating := "-"
	if e.Rating > 0 {
		rating = fmt.Sprintf("%d/5", e.Rating)
	}
	s := fmt.Sprintf("%s  %s  %-4s %s", e.ID, e.Date.Format("2006-01-02"), rating, e.Title)
	if len(e.Tags) > 0 {
		s += "  [" + strings.Join(e.Tags, ", ") + "]"
	}
	return s
}
