// Package client talks to the Tutor Stack HTTP API.
//
// # Overview
//
//  1. HTTPClient.Do is the one place requests are issued. It prefixes the
//     configured base URL, attaches the stored bearer credential (read through
//     a TokenSource on every call), tags the request with an X-Request-ID and,
//     on a 401 response, runs the hooks registered with OnUnauthorized before
//     returning the error.
//  2. Typed endpoint methods (Login, Register, CurrentUser, Answer, UploadPDF,
//     Concepts, ...) encode requests and decode responses on top of Do. The
//     Client interface lists them.
//  3. InitDatabase opens the local SQLite session database and applies the
//     embedded goose migrations.
//
// Requests are attempted once: no retry, no backoff and no client-side
// timeout. Cancel through the context.
//
// # Error Handling
//
// Non-2xx responses come back as *APIError carrying the server's "detail"
// message. Use errors.Is with ErrUnauthorized (401) and ErrUnavailable
// (502/503/504 and network failures) to classify them.
package client
