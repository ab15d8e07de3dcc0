// Package cli provides the interactive Tutor Stack command-line client.
//
// It wires configuration, the local session store, the API client and the
// services into a REPL. Startup restores the persisted session, starts a
// background watcher that flips the prompt between online and offline, and
// then reads commands until the user exits.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// ctx is cancelled. See App, StartOnlineStatusWatcher and runREPL for details.
package cli
