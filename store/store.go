// Package store is the SQL query layer between the HTTP handlers and
// the sqlite database. Every function runs a single statement (or a
// count + select pair) against db.DB; absent records are reported as
// ErrNotFound.
package store

import "errors"

var ErrNotFound = errors.New("record not found")
