package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
)

// Status probes every backend service and prints a table.
func (a *App) Status(ctx context.Context) error {
	statuses, err := a.healthService.Check(ctx)
	if err != nil {
		return err
	}

	online := 0
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SERVICE\tENDPOINT\tSTATUS\tDETAIL")
	for _, st := range statuses {
		state, detail := "offline", st.Error
		if st.Online {
			online++
			state, detail = "online", strings.TrimSpace(string(st.Data))
		} else if st.StatusCode != 0 {
			detail = fmt.Sprintf("%d %s", st.StatusCode, st.Error)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", st.Name, st.Endpoint, state, detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d/%d services online\n", online, len(statuses))
	return nil
}

func (a *App) Grade(ctx context.Context) error {
	answer, err := getMultiline(a.reader, "Answer to grade", a.out)
	if err != nil {
		return err
	}
	out, err := a.assessmentService.Grade(ctx, answer)
	if err != nil {
		return err
	}
	printJSON(a.out, out)
	return nil
}

// Notify sends a notification on behalf of the current user.
func (a *App) Notify(ctx context.Context, args []string) error {
	msg := strings.Join(args, " ")
	if msg == "" {
		var err error
		if msg, err = getSimpleText(a.reader, "Message", a.out); err != nil {
			return err
		}
	}

	userID := ""
	if id := a.authService.State().Identity(); id != nil {
		userID = string(id.ID)
	}
	out, err := a.assessmentService.Notify(ctx, msg, "", userID)
	if err != nil {
		return err
	}
	printJSON(a.out, out)
	return nil
}
