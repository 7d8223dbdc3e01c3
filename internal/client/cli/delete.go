package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/jrnl/internal/client/services"
)

func (a *App) delete(ctx context.Context, id string) {
	err := a.entryService.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrSavedNotSynced) {
			fmt.Println("Deleted locally; sync to remote storage failed and will be retried.")
			return
		}
		log.Println(err.Error())
		return
	}
	fmt.Println("Deleted")
}

func (a *App) deleteAll(ctx context.Context) {
	answer, err := GetSimpleText(a.reader, "This removes ALL journal data. Type 'yes' to confirm", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if answer != "yes" {
		fmt.Println("Cancelled")
		return
	}

	if err := a.entryService.DeleteAllData(ctx); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("All journal data removed")
}
