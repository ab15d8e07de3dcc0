package cli

import (
	"context"
	"fmt"
	"strings"
)

// Chat runs a multi-turn conversation until an empty line.
func (a *App) Chat(ctx context.Context) error {
	fmt.Fprintln(a.out, "Chat with your AI tutor (empty line to finish)")
	for {
		q, err := getSimpleText(a.reader, "You:", a.out)
		if err != nil || q == "" {
			return nil
		}

		reply, err := a.chatService.Ask(ctx, q)
		fmt.Fprintln(a.out, "Tutor:", reply.Text)
		if err != nil {
			a.log.Warn(ctx, "chat request failed", "error", err)
		}
		if ctx.Err() != nil || !a.isLoggedIn() {
			return nil
		}
	}
}

// Ask sends a single question, taken from args or prompted for.
func (a *App) Ask(ctx context.Context, args []string) error {
	q := strings.Join(args, " ")
	if q == "" {
		var err error
		if q, err = getSimpleText(a.reader, "Question", a.out); err != nil {
			return err
		}
	}

	reply, err := a.chatService.Ask(ctx, q)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, reply.Text)
	return nil
}
