package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/client"
	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/models"
	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/logging"
)

var (
	ErrMissingToken       = errors.New("no access token received from server")
	ErrSessionCorrupted   = errors.New("failed to restore session - invalid data format")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthAPI is the part of the API client the session controller talks to.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error)
	CurrentUser(ctx context.Context) ([]byte, error)
	CurrentUserWithToken(ctx context.Context, token string) ([]byte, error)
	GoogleAuthorizeURL() string
}

// AuthService is the session controller. It owns the durable session entries
// and every transition of State.
//
// Register HandleUnauthorized with the HTTP client so that a 401 on any call
// ends the session:
//
//	httpClient.OnUnauthorized(auth.HandleUnauthorized)
type AuthService struct {
	api      AuthAPI
	sessions *SessionStore
	state    *State
	log      logging.Logger
}

func NewAuthService(api AuthAPI, sessions *SessionStore, log logging.Logger) *AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &AuthService{
		api:      api,
		sessions: sessions,
		state:    NewState(),
		log:      log,
	}
}

// State returns the session state shared with the view layer.
func (a *AuthService) State() *State {
	return a.state
}

// Restore loads the persisted session. Intended to run once at startup.
//
// A complete and valid session becomes Authenticated. A stored identity that
// fails validation discards both entries and records ErrSessionCorrupted. An
// empty store, or a lone entry without its counterpart, ends Unauthenticated
// without an error.
func (a *AuthService) Restore(ctx context.Context) error {
	defer a.state.setLoading(false)

	token, raw, err := a.sessions.Load(ctx)
	if err != nil {
		a.state.reset()
		a.state.setErr(err.Error())
		return err
	}

	if token == "" || raw == nil {
		if token != "" || raw != nil {
			a.log.Info(ctx, "discarding incomplete stored session")
			a.clearStore(ctx)
		}
		a.state.reset()
		return nil
	}

	identity, err := models.DecodeIdentity(raw)
	if err != nil {
		a.log.Warn(ctx, "stored identity rejected", "error", err)
		a.clearStore(ctx)
		a.state.reset()
		a.state.setErr(ErrSessionCorrupted.Error())
		return fmt.Errorf("%w: %w", ErrSessionCorrupted, err)
	}

	a.state.authenticate(token, identity)
	return nil
}

// Login authenticates with email and password.
//
// Once a token is obtained the login succeeds even if the profile cannot be
// fetched or fails validation; a placeholder identity carrying the email is
// used instead. A 401 from the profile endpoint is the exception: the
// unauthorized hook has already ended the session and the login fails.
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	req := &models.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := models.Validate(req); err != nil {
		return nil, a.fail(fmt.Errorf("%w: %w", ErrInvalidCredentials, err))
	}

	a.state.setLoading(true)
	defer a.state.setLoading(false)

	tok, err := a.api.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, a.fail(err)
	}

	identity, err := a.establish(ctx, tok, func() *models.Identity {
		return models.LoginPlaceholder(req.Email)
	})
	if err != nil {
		return nil, a.fail(err)
	}
	a.log.Info(ctx, "logged in", "email", identity.Email)
	return identity, nil
}

// Register creates an account and logs into it with the same fallback rules
// as Login.
func (a *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Identity, error) {
	r := *req
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if err := models.Validate(&r); err != nil {
		return nil, a.fail(fmt.Errorf("%w: %w", ErrInvalidCredentials, err))
	}

	a.state.setLoading(true)
	defer a.state.setLoading(false)

	tok, err := a.api.Register(ctx, &r)
	if err != nil {
		return nil, a.fail(err)
	}

	identity, err := a.establish(ctx, tok, func() *models.Identity {
		return models.RegistrationPlaceholder(&r)
	})
	if err != nil {
		return nil, a.fail(err)
	}
	a.log.Info(ctx, "registered", "email", identity.Email)
	return identity, nil
}

// AdoptToken starts a session from a token obtained outside the CLI, such as
// the result of the Google sign-in flow. Without an email there is nothing to
// build a placeholder from, so the profile fetch must succeed.
//
// The token is checked against the profile endpoint before anything is
// stored; if that fails the current session, if any, is left as it was.
func (a *AuthService) AdoptToken(ctx context.Context, token string) (*models.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, a.fail(ErrMissingToken)
	}

	a.state.setLoading(true)
	defer a.state.setLoading(false)

	raw, err := a.api.CurrentUserWithToken(ctx, token)
	if err != nil {
		return nil, a.fail(err)
	}
	identity, err := models.DecodeIdentity(raw)
	if err != nil {
		return nil, a.fail(err)
	}

	if err := a.sessions.SaveToken(ctx, token); err != nil {
		return nil, a.fail(err)
	}
	if err := a.persistIdentity(ctx, token, identity); err != nil {
		return nil, a.fail(err)
	}
	return identity, nil
}

// Logout forgets the session locally. The backend is not contacted.
func (a *AuthService) Logout(ctx context.Context) error {
	err := a.sessions.Clear(ctx)
	a.state.reset()
	a.state.setErr("")
	if err != nil {
		a.log.Error(ctx, "logout: clearing stored session failed", "error", err)
		return err
	}
	return nil
}

// LoginWithGoogle returns the authorization URL to open in a browser.
func (a *AuthService) LoginWithGoogle() string {
	return a.api.GoogleAuthorizeURL()
}

func (a *AuthService) ClearError() {
	a.state.setErr("")
}

// HandleUnauthorized ends the session after the backend rejected the
// credential. Storage errors are logged only.
func (a *AuthService) HandleUnauthorized(ctx context.Context) {
	a.log.Info(ctx, "credential rejected, clearing session")
	a.clearStore(ctx)
	a.state.reset()
}

// establish persists tok, then the fetched identity or the placeholder.
func (a *AuthService) establish(ctx context.Context, tok *models.TokenResponse, placeholder func() *models.Identity) (*models.Identity, error) {
	if tok == nil || tok.AccessToken == "" {
		return nil, ErrMissingToken
	}
	if err := a.sessions.SaveToken(ctx, tok.AccessToken); err != nil {
		return nil, err
	}

	identity, err := a.fetchIdentity(ctx)
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return nil, err
	case err != nil:
		a.log.Warn(ctx, "profile unavailable, using placeholder identity", "error", err)
		identity = placeholder()
	}

	if err := a.persistIdentity(ctx, tok.AccessToken, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

func (a *AuthService) fetchIdentity(ctx context.Context) (*models.Identity, error) {
	raw, err := a.api.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return models.DecodeIdentity(raw)
}

// persistIdentity writes the identity and adopts the session. If the write
// fails the token is removed too so no half session is left on disk.
func (a *AuthService) persistIdentity(ctx context.Context, token string, identity *models.Identity) error {
	data, err := identity.Marshal()
	if err == nil {
		err = a.sessions.SaveIdentity(ctx, data)
	}
	if err != nil {
		a.clearStore(ctx)
		a.state.reset()
		return fmt.Errorf("save identity: %w", err)
	}
	a.state.authenticate(token, identity)
	return nil
}

func (a *AuthService) clearStore(ctx context.Context) {
	if err := a.sessions.Clear(ctx); err != nil {
		a.log.Error(ctx, "clearing stored session failed", "error", err)
	}
}

// fail records err as the last error and returns it.
func (a *AuthService) fail(err error) error {
	a.state.setErr(err.Error())
	return err
}
