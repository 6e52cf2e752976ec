// Package store holds the ordered in-memory entity collections. The
// whole data set is transient: it lives for the lifetime of the
// process, insertion order is display order, and search always filters
// a copy without touching the underlying slice.
package store

import (
	"errors"
	"strings"
)

var (
	ErrDuplicateID = errors.New("identifier already exists in collection")
	ErrNotFound    = errors.New("record not found")
)

// containsFold reports whether any of the fields contains q as a
// case-insensitive substring. An empty query matches everything.
func containsFold(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
