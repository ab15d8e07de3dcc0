package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
)

// Upload sends a PDF: upload <path> [description...].
func (a *App) Upload(ctx context.Context, args []string) error {
	var path, description string
	if len(args) > 0 {
		path, description = args[0], strings.Join(args[1:], " ")
	} else {
		var err error
		if path, err = getSimpleText(a.reader, "Path to PDF", a.out); err != nil {
			return err
		}
		if description, err = getSimpleText(a.reader, "Description (optional)", a.out); err != nil {
			return err
		}
	}

	if err := a.contentService.UploadPDF(ctx, path, description); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "File uploaded successfully")
	return nil
}

func (a *App) Files(ctx context.Context) error {
	files, err := a.contentService.UploadedFiles(ctx)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(a.out, "No files uploaded yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILENAME\tSIZE\tSTATUS\tUPLOADED\tDESCRIPTION")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.Filename, formatSize(f.Size), f.Status, f.UploadedAt, f.Description)
	}
	return tw.Flush()
}

func (a *App) Ingest(ctx context.Context) error {
	text, err := getMultiline(a.reader, "Text to ingest", a.out)
	if err != nil {
		return err
	}
	out, err := a.contentService.Ingest(ctx, text)
	if err != nil {
		return err
	}
	printJSON(a.out, out)
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		var err error
		if text, err = getSimpleText(a.reader, "Search for", a.out); err != nil {
			return err
		}
	}
	out, err := a.contentService.Search(ctx, text)
	if err != nil {
		return err
	}
	printJSON(a.out, out)
	return nil
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
