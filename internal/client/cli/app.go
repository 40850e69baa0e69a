package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/avetikov/cityreport/internal/client/api"
	"github.com/avetikov/cityreport/internal/client/config"
	"github.com/avetikov/cityreport/internal/client/db"
	"github.com/avetikov/cityreport/internal/client/services"
	"github.com/avetikov/cityreport/internal/client/tokenstore"
	"github.com/avetikov/cityreport/internal/logging"
)

// App wires the CLI together: config, token store, API client, session.
type App struct {
	config  *config.Config
	client  api.Client
	session services.SessionService
	reader  *bufio.Reader
	out     io.Writer
	log     logging.Logger

	database *sql.DB
}

// NewApp builds the application. With a configured database path the
// tokens persist across runs; with an empty one they live in memory only.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	var store tokenstore.Store
	var database *sql.DB
	if cfg.TokenDBPath == "" {
		store = tokenstore.NewInMemory()
	} else {
		d, err := db.Open(ctx, cfg.TokenDBPath)
		if err != nil {
			return nil, err
		}
		database = d
		store = tokenstore.NewSQLiteStore(d)
	}

	apiClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.HTTPTimeout, store, log)
	session := services.NewSessionService(apiClient, store, log)

	return &App{
		config:   cfg,
		client:   apiClient,
		session:  session,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		log:      log,
		database: database,
	}, nil
}

// Run restores a persisted session, then hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "could not restore previous session", "error", err.Error())
	}

	a.Root(ctx)
}

func (a *App) Close() {
	if a.client != nil {
		a.client.Close()
	}
	if a.database != nil {
		a.database.Close()
	}
}
