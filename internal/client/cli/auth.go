package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/models"
	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/common"
)

// Register prompts for email, password and optional names and creates the
// account. The new account is logged in on success.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	firstName, err := getSimpleText(a.reader, "First name (optional)", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name (optional)", a.out)
	if err != nil {
		return err
	}

	id, err := a.authService.Register(ctx, &models.RegisterRequest{
		Email:     email,
		Password:  string(password),
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", displayName(id))
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", id.Email)
	if id.ID == models.UnknownIdentityID {
		fmt.Fprintln(a.out, "Profile could not be loaded; some details are unavailable.")
	}
	return nil
}

func (a *App) LoginWithGoogle(ctx context.Context) error {
	fmt.Fprintln(a.out, "Open this URL in your browser to sign in with Google:")
	fmt.Fprintln(a.out, "  "+a.authService.LoginWithGoogle())
	fmt.Fprintln(a.out, "Then run: token <access_token>")
	return nil
}

// AdoptToken logs in with an access token obtained outside the CLI.
func (a *App) AdoptToken(ctx context.Context, args []string) error {
	token := strings.Join(args, "")
	if token == "" {
		var err error
		if token, err = getSimpleText(a.reader, "Paste access token", a.out); err != nil {
			return err
		}
	}

	id, err := a.authService.AdoptToken(ctx, token)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", id.Email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.chatService.Clear()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Whoami prints the current identity and what can be read from the token.
func (a *App) Whoami(ctx context.Context) error {
	snap := a.authService.State().Snapshot()
	id := snap.Identity
	if id == nil {
		return errors.New("no identity loaded")
	}

	fmt.Fprintf(a.out, "Email:   %s\n", id.Email)
	fmt.Fprintf(a.out, "Name:    %s\n", displayName(id))
	fmt.Fprintf(a.out, "Role:    %s\n", id.DisplayRole())
	fmt.Fprintf(a.out, "ID:      %s\n", id.ID)
	if id.Grade != "" {
		fmt.Fprintf(a.out, "Grade:   %s\n", id.Grade)
	}
	fmt.Fprintf(a.out, "Active:  %t\n", id.IsActive)
	fmt.Fprintf(a.out, "Expires: %s\n", tokenExpiry(snap.Token, time.Now()))
	return nil
}

// Session prints the session controller's state, including the last error.
func (a *App) Session(ctx context.Context) error {
	snap := a.authService.State().Snapshot()

	fmt.Fprintf(a.out, "Status: %s\n", snap.Status)
	if snap.Identity != nil {
		fmt.Fprintf(a.out, "User:   %s\n", snap.Identity.Email)
	}
	fmt.Fprintf(a.out, "Server: %s (%s)\n", a.api.BaseURL(), a.Mode())
	if snap.Err != "" {
		fmt.Fprintf(a.out, "Last error: %s\n", snap.Err)
	}
	return nil
}

func (a *App) ClearError(ctx context.Context) error {
	a.authService.ClearError()
	fmt.Fprintln(a.out, "Error cleared")
	return nil
}

func displayName(id *models.Identity) string {
	name := strings.TrimSpace(id.FirstName + " " + id.LastName)
	if name == "" {
		return id.Email
	}
	return name
}

func tokenExpiry(token string, now time.Time) string {
	claims, err := models.ParseTokenClaims(token)
	if err != nil || claims.ExpiresAt.IsZero() {
		return "unknown"
	}
	if claims.Expired(now) {
		return claims.ExpiresAt.Local().Format(time.RFC1123) + " (expired)"
	}
	return claims.ExpiresAt.Local().Format(time.RFC1123)
}
