package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// printJSON pretty-prints raw, or writes it as is if it is not valid JSON.
func printJSON(w io.Writer, raw json.RawMessage) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		fmt.Fprintln(w, string(raw))
		return
	}
	fmt.Fprintln(w, buf.String())
}
