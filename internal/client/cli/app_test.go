package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/client"
	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/config"
	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*App
	out *bytes.Buffer
}

func newTestApp(t *testing.T, h http.Handler) *testApp {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL
	cfg.OnlineCheckInterval = 10 * time.Millisecond

	app, err := newApp(cfg, logging.Discard(), db)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	app.out = out
	app.reader = bufio.NewReader(strings.NewReader(""))
	return &testApp{App: app, out: out}
}

func (ta *testApp) input(s string) {
	ta.reader = bufio.NewReader(strings.NewReader(s))
}

// stubPrompts answers text prompts from answers in order and returns
// password for password prompts.
func stubPrompts(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		i++
		return answers[i-1], nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func TestNewApp_InvalidBaseURL(t *testing.T) {
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = newApp(&config.Config{APIBaseURL: "not a url"}, logging.Discard(), db)
	assert.Error(t, err)
}

func TestSetModeAndStatus(t *testing.T) {
	app := newTestApp(t, http.NotFoundHandler())

	assert.Equal(t, "", app.getStatus())
	app.setMode(context.Background(), ModeOnline)
	assert.Equal(t, ModeOnline, app.Mode())
	assert.Equal(t, "(online)", app.getStatus())
}

func TestOnlineStatusWatcher(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return app.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)
	healthy.Store(false)
	require.Eventually(t, func() bool { return app.Mode() == ModeOffline }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestRun_RestoresAndExits(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	_, err := app.db.Exec(`INSERT INTO storage(key, value) VALUES ('auth_token', 'tok'), ('user', '{"email":""}')`)
	require.NoError(t, err)
	app.input("exit\n")
	capturePrint(t)

	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, app.out.String(), "failed to restore session - invalid data format")
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, ModeOnline, app.Mode())
}

func TestOnlineCheck_SendsNoCredential(t *testing.T) {
	var authSeen atomic.Bool
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			authSeen.Store(true)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	_, err := app.db.Exec(`INSERT INTO storage(key, value) VALUES ('auth_token', 'tok'), ('user', '{"email":"a@b.c"}')`)
	require.NoError(t, err)
	require.NoError(t, app.authService.Restore(context.Background()))

	app.checkOnline(context.Background())

	assert.Equal(t, ModeOffline, app.Mode())
	assert.False(t, authSeen.Load())
	assert.True(t, app.isLoggedIn())
}
