package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/jrnl/internal/client/models"
	"github.com/dmitrijs2005/jrnl/internal/client/services"
)

func (a *App) add(ctx context.Context) {

	title, err := GetSimpleText(a.reader, "- Enter title", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	participant, err := GetSimpleText(a.reader, "- Who was it with", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	entryContext, err := GetSimpleText(a.reader, "- Context (meeting, 1:1, review, ...)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	rating, err := GetInt(a.reader, "- Rating 1-5 (Enter to skip)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	didWell, err := GetMultiline(a.reader, "- What went well?", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	couldImprove, err := GetMultiline(a.reader, "- What could be improved?", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	learned, err := GetMultiline(a.reader, "- What did you learn?", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	tags, err := GetTags(a.reader, "- Tags (comma separated, Enter to skip)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	draft := models.Draft{
		Title:       title,
		Participant: participant,
		Context:     entryContext,
		Rating:      rating,
		Reflection: models.Reflection{
			DidWell:      didWell,
			CouldImprove: couldImprove,
			Learned:      learned,
		},
		Tags: tags,
	}

	entry, err := a.entryService.Save(ctx, draft)
	if err != nil {
		if errors.Is(err, services.ErrSavedNotSynced) {
			fmt.Printf("Saved %s locally; sync to remote storage failed and will be retried.\n", entry.ID)
			return
		}
		log.Printf("error: %v", err)
		return
	}

	fmt.Printf("Saved %s\n", entry.ID)
}
