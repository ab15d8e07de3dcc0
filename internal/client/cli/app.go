package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/client"
	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/config"
	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/services"
	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single watcher probe.
const pingTimeout = 3 * time.Second

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	api    *client.HTTPClient

	authService       *services.AuthService
	chatService       *services.ChatService
	contentService    *services.ContentService
	curriculumService *services.CurriculumService
	assessmentService *services.AssessmentService
	healthService     *services.HealthService

	reader *bufio.Reader
	out    io.Writer

	mu   sync.RWMutex
	mode Mode
}

// NewApp opens the session database and wires the services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	app, err := newApp(c, log, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(c *config.Config, log logging.Logger, db *sql.DB) (*App, error) {
	sessions := services.NewSessionStore(db)

	api, err := client.NewHTTPClient(c.APIBaseURL, sessions, client.WithLogger(log))
	if err != nil {
		return nil, err
	}

	auth := services.NewAuthService(api, sessions, log)
	api.OnUnauthorized(auth.HandleUnauthorized)

	// Health endpoints are public and polled from the watcher goroutine, so they
	// are called without the credential and a 401 on them never ends the session.
	healthAPI, err := client.NewHTTPClient(c.APIBaseURL, nil, client.WithLogger(log))
	if err != nil {
		return nil, err
	}

	return &App{
		config:            c,
		log:               log,
		db:                db,
		api:               api,
		authService:       auth,
		chatService:       services.NewChatService(api),
		contentService:    services.NewContentService(api),
		curriculumService: services.NewCurriculumService(api),
		assessmentService: services.NewAssessmentService(api),
		healthService:     services.NewHealthService(healthAPI),
		reader:            bufio.NewReader(os.Stdin),
		out:               os.Stdout,
	}, nil
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

// Run restores the session and runs the REPL until exit. The database is
// closed on return.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	fmt.Fprintln(a.out, "Welcome to Tutor Stack CLI (type 'help' for commands)")

	if err := a.authService.Restore(ctx); err != nil {
		fmt.Fprintln(a.out, "Error:", a.authService.State().Err())
	}
	a.checkOnline(ctx)

	watchCtx, stop := context.WithCancel(ctx)
	defer stop()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.authService.State().IsAuthenticated()
}

// getStatus renders the prompt annotation, e.g. "(ann@example.com online)".
func (a *App) getStatus() string {
	var parts []string
	if id := a.authService.State().Identity(); id != nil {
		parts = append(parts, id.Email)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// StartOnlineStatusWatcher pings the backend every interval and updates the
// mode until ctx is done. A non-positive interval disables it.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
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
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.healthService.Ping(pctx); err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
