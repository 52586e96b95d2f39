package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/client/config"
	"github.com/dmitrijs2005/lifedash/internal/client/features"
	"github.com/dmitrijs2005/lifedash/internal/client/localstore"
	"github.com/dmitrijs2005/lifedash/internal/cryptox"
	"github.com/dmitrijs2005/lifedash/internal/logging"
	"github.com/dmitrijs2005/lifedash/internal/mirror/remote"
	"github.com/dmitrijs2005/lifedash/internal/timex"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

const (
	pingTimeout   = 3 * time.Second
	reminderEvery = 24 * time.Hour
	defaultSalt   = "lifedash"
)

type App struct {
	config  *config.Config
	session *features.Session
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	st      styles
	now     func() time.Time
	closers []func() error

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the local cache at cfg.DBPath, connects the configured
// mirror and builds the session. A mirror that cannot be reached at startup
// is reported and the app runs local-only.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Nop{}
	}

	storage, closeDB, err := openStorage(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open local cache: %w", err)
	}

	var sealer *cryptox.Sealer
	if cfg.Encrypt {
		pw, err := GetPassphrase(os.Stdout)
		if err != nil {
			_ = closeDB()
			return nil, fmt.Errorf("read passphrase: %w", err)
		}
		if sealer, err = cryptox.NewSealer(pw, saltAccount(cfg)); err != nil {
			_ = closeDB()
			return nil, err
		}
	}

	m, err := remote.Open(ctx, cfg.Remote, logger)
	if err != nil {
		fmt.Fprintf(os.Stdout, "Mirror unavailable, working offline: %v\n", err)
	}

	session, err := features.NewSession(storage, m, features.SessionOptions{
		Logger:       logger,
		Sealer:       sealer,
		FetchTimeout: cfg.FetchTimeout,
		PushTimeout:  cfg.PushTimeout,
	})
	if err != nil {
		_ = m.Close()
		_ = closeDB()
		return nil, err
	}

	a := newApp(session, cfg, os.Stdin, os.Stdout, logger)
	a.closers = append(a.closers, closeDB)
	return a, nil
}

// openStorage opens the SQLite cache at path, or a throwaway in-process
// store when path is config.MemoryDB.
func openStorage(ctx context.Context, path string) (localstore.Storage, func() error, error) {
	if path == config.MemoryDB {
		return localstore.NewMemoryStorage(), func() error { return nil }, nil
	}
	storage, db, err := localstore.InitDatabase(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return storage, db.Close, nil
}

func newApp(session *features.Session, cfg *config.Config, in io.Reader, out io.Writer, logger logging.Logger) *App {
	a := &App{
		config:  cfg,
		session: session,
		logger:  logger.With("module", "cli"),
		reader:  bufio.NewReader(in),
		out:     out,
		st:      newStyles(out),
		now:     time.Now,
		mode:    ModeDisabled,
	}
	if session.Remote().Configured() {
		a.mode = ModeOffline
	}
	return a
}

func saltAccount(cfg *config.Config) string {
	if cfg.Remote.Account != "" {
		return cfg.Remote.Account
	}
	return defaultSalt
}

func (a *App) today() string {
	return timex.FormatDate(a.now())
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "mode changed", "mode", mode)
		fmt.Fprintf(a.out, "\nSwitched to %s mode\n", mode)
	}
}

// checkOnline pings the mirror once and updates the mode.
func (a *App) checkOnline(ctx context.Context) {
	if !a.session.Remote().Configured() {
		a.setMode(ctx, ModeDisabled)
		return
	}
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.session.Remote().Ping(pctx)
	cancel()

	if err != nil {
		a.logger.Debug(ctx, "mirror ping failed", "err", err)
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the mirror every interval until ctx is
// done. It returns at once when no mirror is configured.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if !a.session.Remote().Configured() {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			wasOnline := a.Mode() == ModeOnline
			a.checkOnline(ctx)
			if !wasOnline && a.Mode() == ModeOnline {
				// back online: pick up what other devices pushed meanwhile
				a.session.LoadAll(ctx)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Run loads every collection, starts the watcher and blocks in the REPL
// until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	fmt.Fprintln(a.out, a.st.Title.Render("Welcome to lifedash")+" (type 'help' for commands)")
	a.session.LoadAll(ctx)
	a.checkOnline(ctx)
	a.remind(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

// remind prints today's open routines at most once per reminderEvery.
func (a *App) remind(ctx context.Context) {
	prefs := a.session.Prefs
	if !prefs.ReminderDue(ctx, a.now(), reminderEvery) {
		return
	}
	today := a.today()
	open := 0
	for _, r := range features.RoutinesInOrder(a.session.Routines.Active()) {
		if !r.Data.Done(today) {
			open++
		}
	}
	if open > 0 {
		fmt.Fprintln(a.out, a.st.Warning.Render(fmt.Sprintf("Reminder: %d routine(s) open today", open)))
	}
	prefs.MarkReminderShown(ctx, a.now())
}

func (a *App) status() string {
	return fmt.Sprintf("(%s)", a.Mode())
}

// Close waits for background pushes and releases the mirror and the cache.
func (a *App) Close() {
	ctx := context.Background()
	if err := a.session.Close(); err != nil {
		a.logger.Warn(ctx, "close mirror", "err", err)
	}
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn(ctx, "close", "err", err)
		}
	}
	a.closers = nil
}
