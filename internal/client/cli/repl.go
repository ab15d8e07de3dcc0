package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	LoginWithGoogle(ctx context.Context) error
	AdoptToken(ctx context.Context, args []string) error
	Session(ctx context.Context) error
	Status(ctx context.Context) error
	ClearError(ctx context.Context) error

	Whoami(ctx context.Context) error
	Logout(ctx context.Context) error
	Chat(ctx context.Context) error
	Ask(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Files(ctx context.Context) error
	Grades(ctx context.Context) error
	Curriculum(ctx context.Context, args []string) error
	Concepts(ctx context.Context, args []string) error
	Ingest(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Grade(ctx context.Context) error
	Notify(ctx context.Context, args []string) error
}

const (
	anonymousHelp     = "Available commands: login, register, google, token, session, status, clear, exit"
	authenticatedHelp = "Available commands: whoami, chat, ask, upload, files, grades, curriculum, concepts, ingest, search, grade, notify, status, session, clear, logout, exit"
)

// protected lists the commands that need a session.
var protected = map[string]bool{
	"whoami": true, "logout": true, "chat": true, "ask": true, "upload": true,
	"files": true, "grades": true, "curriculum": true, "concepts": true,
	"ingest": true, "search": true, "grade": true, "notify": true,
}

// runREPL reads commands from reader and dispatches them to a until EOF,
// "exit" or "quit", or until ctx is cancelled.
//
// Arguments are split on whitespace; double quotes group words, so
// `concepts "Grade 1" "Term 1" Math` passes three arguments.
//
// Handler errors are printed as "Error: ...". If a command ends the session
// (a 401 from the backend), the user is told to log in again.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("tutor %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := splitArgs(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if protected[cmd] && !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}

		wasLoggedIn := a.isLoggedIn()
		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", err)
		}
		if wasLoggedIn && !a.isLoggedIn() && cmd != "logout" {
			printlnFn("Your session has ended. Please log in again.")
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(authenticatedHelp)
		} else {
			printlnFn(anonymousHelp)
		}
		return nil

	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "google":
		return a.LoginWithGoogle(ctx)
	case "token":
		return a.AdoptToken(ctx, args)
	case "session":
		return a.Session(ctx)
	case "status":
		return a.Status(ctx)
	case "clear":
		return a.ClearError(ctx)

	case "whoami":
		return a.Whoami(ctx)
	case "logout":
		return a.Logout(ctx)
	case "chat":
		return a.Chat(ctx)
	case "ask":
		return a.Ask(ctx, args)
	case "upload":
		return a.Upload(ctx, args)
	case "files":
		return a.Files(ctx)
	case "grades":
		return a.Grades(ctx)
	case "curriculum":
		return a.Curriculum(ctx, args)
	case "concepts":
		return a.Concepts(ctx, args)
	case "ingest":
		return a.Ingest(ctx)
	case "search":
		return a.Search(ctx, args)
	case "grade":
		return a.Grade(ctx)
	case "notify":
		return a.Notify(ctx, args)
	}

	printlnFn("Unknown command:", cmd)
	return nil
}

// splitArgs splits line on whitespace, keeping double-quoted runs together.
// An unterminated quote runs to the end of the line.
func splitArgs(line string) []string {
	var (
		out     []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			if started {
				out = append(out, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		out = append(out, cur.String())
	}
	return out
}
