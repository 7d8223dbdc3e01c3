package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dmitrijs2005/jrnl/internal/client/models"
	"github.com/dmitrijs2005/jrnl/internal/common"
)

func (a *App) show(ctx context.Context, id string) {
	entry, err := a.entryService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintf(a.out, "Entry %s not found\n", id)
			return
		}
		log.Println(err.Error())
		return
	}
	fmt.Fprint(a.out, formatEntry(*entry))
}

func formatEntry(e models.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title:       %s\n", e.Title)
	fmt.Fprintf(&b, "Date:        %s\n", e.Date.Format("2006-01-02 15:04"))
	if e.Participant != "" {
		fmt.Fprintf(&b, "With:        %s\n", e.Participant)
	}
	if e.Context != "" {
		fmt.Fprintf(&b, "Context:     %s\n", e.Context)
	}
	if e.Rating > 0 {
		fmt.Fprintf(&b, "Rating:      %d/5\n", e.Rating)
	}
	if e.Reflection.DidWell != "" {
		fmt.Fprintf(&b, "Went well:   %s\n", e.Reflection.DidWell)
	}
	if e.Reflection.CouldImprove != "" {
		fmt.Fprintf(&b, "To improve:  %s\n", e.Reflection.CouldImprove)
	}
	if e.Reflection.Learned != "" {
		fmt.Fprintf(&b, "Learned:     %s\n", e.Reflection.Learned)
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(&b, "Tags:        %s\n", strings.Join(e.Tags, ", "))
	}
	return b.String()
}
