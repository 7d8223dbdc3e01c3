package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrijs2005/jrnl/internal/client/auth"
	"github.com/dmitrijs2005/jrnl/internal/client/client"
	"github.com/dmitrijs2005/jrnl/internal/client/config"
	"github.com/dmitrijs2005/jrnl/internal/client/models"
	"github.com/dmitrijs2005/jrnl/internal/client/services"
	"github.com/dmitrijs2005/jrnl/internal/client/session"
	"github.com/dmitrijs2005/jrnl/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	// ModeLocal keeps entries in the local database only.
	ModeLocal Mode = "local"
	// ModeSynced mirrors entries to the remote backend.
	ModeSynced Mode = "synced"
)

type App struct {
	config       *config.Config
	db           *sql.DB
	logger       logging.Logger
	authService  services.AuthService
	entryService services.EntryService
	session      *models.Session
	Mode         Mode
	reader       *bufio.Reader
	out          io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.Default())
	sessions := session.NewStore(db, c.SessionTTL)
	provider := auth.NewOAuthProvider(c.ClientID, c.ClientSecret, c.AuthEndpoint, c.TokenEndpoint)

	as := services.NewAuthService(provider, sessions, c.ProfileEndpoint)

	return &App{
		config:       c,
		db:           db,
		logger:       logger,
		authService:  as,
		entryService: services.NewEntryService(db, nil, logger),
		Mode:         ModeLocal,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isSignedIn() bool {
	return a.session != nil
}

// remoteStore builds the remote backend selected by the configuration,
// bound to the given access credential.
func (a *App) remoteStore(ctx context.Context, accessToken string) (client.RemoteStore, error) {
	switch a.config.RemoteBackend {
	case "s3":
		return client.NewS3Client(ctx, client.S3Options{
			Bucket:       a.config.S3Bucket,
			Region:       a.config.S3Region,
			BaseEndpoint: a.config.S3BaseEndpoint,
			AccessKey:    a.config.S3AccessKey,
			SecretKey:    a.config.S3SecretKey,
			FolderName:   a.config.FolderName,
		})
	default:
		d := client.NewDriveClient(accessToken, a.config.FolderName)
		if a.config.DriveAPIBase != "" {
			d.APIBase = a.config.DriveAPIBase
		}
		if a.config.DriveUploadBase != "" {
			d.UploadBase = a.config.DriveUploadBase
		}
		return d, nil
	}
}

// applySession switches the entry service to the remote strategy and loads
// the collection, migrating pre-sign-in entries on first use.
func (a *App) applySession(ctx context.Context, sess *models.Session) error {
	remote, err := a.remoteStore(ctx, sess.AccessToken)
	if err != nil {
		return err
	}

	es := services.NewEntryService(a.db, remote, a.logger)
	entries, err := es.LoadOnAuth(ctx)
	if err != nil {
		return err
	}

	a.session = sess
	a.entryService = es
	a.setMode(ModeSynced)
	fmt.Fprintf(a.out, "Signed in as %s. %d entries loaded.\n", sess.User.Name, len(entries))
	return nil
}

// dropSession returns the app to the signed-out, local-only state.
func (a *App) dropSession() {
	a.session = nil
	a.entryService = services.NewEntryService(a.db, nil, a.logger)
	a.setMode(ModeLocal)
}

// StartSessionWatcher periodically re-validates the persisted session. When
// it expires between commands the app drops back to local mode instead of
// issuing requests with a stale credential.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.isSignedIn() {
				continue
			}
			checkCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			sess, err := a.authService.Restore(checkCtx)
			cancel()

			if err != nil {
				log.Printf("session check failed: %s", err.Error())
				continue
			}
			if sess == nil {
				log.Println("Session expired, please sign in again")
				a.dropSession()
			}

		case <-ctx.Done():
			return
		}
	}
}
