package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/config"
	"github.com/dmitrijs2005/userdesk/internal/client/services"
	"github.com/dmitrijs2005/userdesk/internal/filex"
	"github.com/dmitrijs2005/userdesk/internal/listing"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config    *config.Config
	db        *sql.DB
	api       client.Client
	session   services.SessionService
	directory *services.DirectoryService
	userName  string
	loggedIn  bool
	reader    *bufio.Reader
	out       io.Writer

	// mode is written by the online watcher goroutine as well as the REPL.
	modeMu sync.Mutex
	mode   Mode
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	lang, err := listing.ParseLanguage(c.CollationLanguage)
	if err != nil {
		return nil, err
	}

	dbPath, err := filex.EnsureParentDir(c.LocalDBPath)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	api := client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout)
	return newApp(c, db, api, listing.New(lang), bufio.NewReader(os.Stdin), os.Stdout), nil
}

func newApp(c *config.Config, db *sql.DB, api client.Client, p *listing.Pipeline, r *bufio.Reader, w io.Writer) *App {
	return &App{
		config:    c,
		db:        db,
		api:       api,
		session:   services.NewSessionService(api, db),
		directory: services.NewDirectoryService(api, p),
		reader:    r,
		out:       w,
	}
}

func (app *App) setMode(mode Mode) {
	app.modeMu.Lock()
	changed := app.mode != mode
	app.mode = mode
	app.modeMu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
}

// Mode reports the last known connectivity state.
func (app *App) Mode() Mode {
	app.modeMu.Lock()
	defer app.modeMu.Unlock()
	return app.mode
}

// Run restores a stored session (or asks for credentials) and then serves
// the REPL until the user quits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to userdesk (type 'help' for commands)")
	a.start(ctx)

	if a.config.OnlineCheckInterval > 0 {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if mode := a.Mode(); mode != "" {
		s = s + string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
