// Package server wires configuration, storage, the directory source and the
// auth gate together and runs the HTTP API until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/listing"
	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/dmitrijs2005/userdesk/internal/server/auth"
	"github.com/dmitrijs2005/userdesk/internal/server/config"
	"github.com/dmitrijs2005/userdesk/internal/server/httpapi"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userdesk/internal/server/services"
	"github.com/dmitrijs2005/userdesk/internal/server/sources"
)

type App struct {
	config           *config.Config
	logger           logging.Logger
	db               *sql.DB
	authService      *services.AuthService
	directoryService *services.DirectoryService
}

// seams for tests
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newRepoManager = func() repomanager.RepositoryManager {
		return repomanager.NewPostgresRepositoryManager()
	}
)

func needsDatabase(c *config.Config) bool {
	return c.DataSource == config.DataSourcePostgres || c.CredentialStore == config.CredentialStorePostgres
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, c, logging.NewJSONLogger(os.Stdout, level))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	app := &App{config: c, logger: logger}

	var rm repomanager.RepositoryManager
	if needsDatabase(c) {
		db, err := openDB(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db ping error: %w", err)
		}
		rm = newRepoManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations error: %w", err)
		}
		app.db = db
	}

	lang, err := listing.ParseLanguage(c.CollationLanguage)
	if err != nil {
		app.Close()
		return nil, err
	}

	src, err := sources.FromConfig(ctx, c, app.db, rm)
	if err != nil {
		app.Close()
		return nil, err
	}

	verifier, err := newVerifier(c, app.db, rm)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.authService = services.NewAuthService(verifier, app.db, rm, c, logger)
	app.directoryService = services.NewDirectoryService(src, listing.New(lang), logger)

	if err := app.bootstrapOperator(ctx); err != nil {
		app.Close()
		return nil, err
	}

	logger.Info(ctx, "App configured",
		"data_source", c.DataSource,
		"credential_store", c.CredentialStore,
		"collation", lang.String(),
	)

	return app, nil
}

func newVerifier(c *config.Config, db *sql.DB, rm repomanager.RepositoryManager) (auth.CredentialVerifier, error) {
	switch c.CredentialStore {
	case config.CredentialStoreStatic:
		return auth.NewStaticVerifier(c.StaticUserID, c.StaticUsername, c.StaticPassword), nil
	case config.CredentialStorePostgres:
		if db == nil || rm == nil {
			return nil, fmt.Errorf("credential store %q needs a database", c.CredentialStore)
		}
		return auth.NewStoreVerifier(rm.Operators(db)), nil
	default:
		return nil, fmt.Errorf("unknown credential store %q", c.CredentialStore)
	}
}

// bootstrapOperator creates the operator named in the config, generating a
// password when none is given.
func (app *App) bootstrapOperator(ctx context.Context) error {
	name := app.config.BootstrapOperator
	if name == "" {
		return nil
	}
	if app.config.CredentialStore != config.CredentialStorePostgres {
		app.logger.Warn(ctx, "bootstrap operator ignored, credential store is not postgres", "username", name)
		return nil
	}

	password := app.config.BootstrapPassword
	if password == "" {
		var err error
		password, err = common.MakeRandHexString(12)
		if err != nil {
			return err
		}
		app.logger.Warn(ctx, "generated bootstrap operator password", "username", name, "password", password)
	}

	if _, err := app.authService.RegisterOperator(ctx, name, password); err != nil {
		return fmt.Errorf("bootstrap operator: %w", err)
	}
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.authService, app.directoryService, app.config.TokenValidityDuration)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until the server stops, either on a signal or on ctx.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
}

// Close releases the database handle, if any.
func (app *App) Close() {
	if app.db != nil {
		_ = app.db.Close()
	}
}
