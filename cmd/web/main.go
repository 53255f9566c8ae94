package main

import (
	"context"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/kritsada/personaguess/internal/corpus"
	"github.com/kritsada/personaguess/internal/envstruct"
	"github.com/kritsada/personaguess/internal/errors"
	"github.com/kritsada/personaguess/internal/game"
	"github.com/kritsada/personaguess/internal/logging"
	"github.com/kritsada/personaguess/internal/modes"
	"github.com/kritsada/personaguess/internal/pprofserver"
	"github.com/kritsada/personaguess/internal/similarity"
	"github.com/kritsada/personaguess/internal/sqlite"
	"log/slog"
	"os"
	"time"
)

type application struct {
	logger         *slog.Logger
	index          *corpus.Index
	strategy       similarity.Strategy
	catalog        *modes.Catalog
	games          *game.Manager
	sessionManager *scs.SessionManager
	htmx           *htmx.HTMX
}

type config struct {
	// Addr is the address the server listens on, e.g. "localhost:4000".
	Addr string `env:"PERSONAGUESS_ADDR" envDefault:"localhost:4000"`
	// SQLiteURL is the SQLite database file, ":memory:" runs without a file.
	SQLiteURL string `env:"PERSONAGUESS_SQLITE_URL" envDefault:"./personaguess.sqlite"`
	// PprofAddr exposes pprof on localhost when non-empty.
	PprofAddr string `env:"PERSONAGUESS_PPROF_ADDR" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cfg config
		err error
	)
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	if cfg.PprofAddr != "" {
		pprofserver.Launch(cfg.PprofAddr, logger)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SQLiteURL))
	}

	index, err := corpus.Load(ctx, db, logger)
	if err != nil {
		return errors.Wrap(err, "load corpus")
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = 12 * time.Hour
	sessionManager.Cookie.Secure = true

	strategy := similarity.Select(ctx, index, logger)
	catalog := modes.NewCatalog()

	app := application{
		logger:         logger,
		index:          index,
		strategy:       strategy,
		catalog:        catalog,
		games:          game.NewManager(index, strategy, catalog, game.NewMemoryStore(), logger),
		sessionManager: sessionManager,
		htmx:           htmx.New(),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

func main() {
	ctx := context.Background()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	})))

	// Missing .env is fine, the defaults and the environment take over.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.LogAttrs(ctx, slog.LevelWarn, "load .env", errors.SlogError(err))
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server failed", errors.SlogError(err))
		os.Exit(1)
	}
}
