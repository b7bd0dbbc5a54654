package main

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/myrjola/fitplan/internal/envstruct"
	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/flightrecorder"
	"github.com/myrjola/fitplan/internal/history"
	"github.com/myrjola/fitplan/internal/localstore"
	"github.com/myrjola/fitplan/internal/logging"
	"github.com/myrjola/fitplan/internal/planner"
	"github.com/myrjola/fitplan/internal/sqlite"
	"github.com/myrjola/fitplan/internal/wizard"
)

type application struct {
	logger         *slog.Logger
	db             *sqlite.Database
	sessionManager *scs.SessionManager
	pages          map[string]*template.Template
	wizard         *wizard.Service
	// loadingInterval is how often the loading page refreshes and rotates its message.
	loadingInterval time.Duration
	// flightRecorder is nil unless FITPLAN_TRACES_DIR is set.
	flightRecorder *flightrecorder.Recorder
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"FITPLAN_ADDR" envDefault:"localhost:8081"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"FITPLAN_SQLITE_URL" envDefault:"./fitplan.sqlite3"`
	// TemplatePath is the path to the directory containing the HTML templates.
	TemplatePath string `env:"FITPLAN_TEMPLATE_PATH" envDefault:""`
	// OpenAIAPIKey authenticates the plan generation requests.
	OpenAIAPIKey string `env:"FITPLAN_OPENAI_API_KEY" envDefault:""`
	// OpenAIBaseURL points the plan generator to an OpenAI compatible API. Empty means the OpenAI API.
	OpenAIBaseURL string `env:"FITPLAN_OPENAI_BASE_URL" envDefault:""`
	OpenAIModel   string `env:"FITPLAN_OPENAI_MODEL" envDefault:"gpt-4o-2024-08-06"`
	// MaxConcurrentGenerations bounds the plan generations running at the same time across all profiles.
	MaxConcurrentGenerations int64         `env:"FITPLAN_MAX_CONCURRENT_GENERATIONS" envDefault:"4"`
	LoadingInterval          time.Duration `env:"FITPLAN_LOADING_INTERVAL" envDefault:"2s"`
	// OptimizeSchedule is the cron schedule of the database maintenance job.
	OptimizeSchedule string `env:"FITPLAN_OPTIMIZE_SCHEDULE" envDefault:"@hourly"`
	// TracesDir enables the flight recorder. A trace is written there when a request times out.
	TracesDir string `env:"FITPLAN_TRACES_DIR" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	if cfg.OpenAIAPIKey == "" {
		logger.LogAttrs(ctx, slog.LevelWarn, "FITPLAN_OPENAI_API_KEY is not set, plan generation will fail")
	}

	var htmlTemplatePath string
	if htmlTemplatePath, err = resolveUIPath(cfg.TemplatePath, "templates"); err != nil {
		return errors.Wrap(err, "resolve template path")
	}
	pages, err := parsePages(os.DirFS(htmlTemplatePath))
	if err != nil {
		return errors.Wrap(err, "parse templates", slog.String("path", htmlTemplatePath))
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close db", errors.SlogError(closeErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	if err = db.StartOptimizer(ctx, cfg.OptimizeSchedule); err != nil {
		return errors.Wrap(err, "start optimizer", slog.String("schedule", cfg.OptimizeSchedule))
	}

	store := localstore.NewSQLiteStore(db)
	generator := planner.NewClient(planner.Config{
		APIKey:        cfg.OpenAIAPIKey,
		BaseURL:       cfg.OpenAIBaseURL,
		Model:         cfg.OpenAIModel,
		MaxConcurrent: cfg.MaxConcurrentGenerations,
	}, logger)
	recorder := history.NewRecorder(store, logger)

	app := application{
		logger:          logger,
		db:              db,
		sessionManager:  initializeSessionManager(db),
		pages:           pages,
		wizard:          wizard.NewService(store, generator, recorder, logger),
		loadingInterval: cfg.LoadingInterval,
		flightRecorder:  nil,
	}
	if cfg.TracesDir != "" {
		if app.flightRecorder, err = flightrecorder.New(logger, cfg.TracesDir, flightrecorder.Options{}); err != nil { //nolint:exhaustruct // defaults.
			return errors.Wrap(err, "create flight recorder")
		}
		if err = app.flightRecorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer app.flightRecorder.Stop(ctx)
	}

	var handler http.Handler
	if handler, err = app.routes(); err != nil {
		return errors.Wrap(err, "configure routes")
	}
	if err = app.serve(ctx, cfg.Addr, handler); err != nil {
		return errors.Wrap(err, "start server")
	}
	// Let running generations store their outcome before the database closes.
	app.wizard.Wait()
	return nil
}

// profileIDSessionKey holds the anonymous profile of the browser.
const profileIDSessionKey = "profileID"

func initializeSessionManager(dbs *sqlite.Database) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	// The profile lives as long as browser local storage would, so the session is long-lived.
	sessionManager.Lifetime = 365 * 24 * time.Hour   //nolint:mnd // a year
	sessionManager.IdleTimeout = 90 * 24 * time.Hour //nolint:mnd // three months
	sessionManager.Cookie.Name = "fitplan_session"
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
