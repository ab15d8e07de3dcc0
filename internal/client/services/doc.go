// Package services holds the client-side application logic the REPL drives:
// the session controller with its durable store and in-memory state, and the
// thin per-screen services for chat, content, curriculum, assessment and
// backend health.
package services
