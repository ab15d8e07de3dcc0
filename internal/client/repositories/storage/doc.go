// Package storage is the durable key/value table behind the client session.
// Values are opaque bytes; callers decide the encoding.
package storage
