// Package id generates run identifiers.
package id

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// New returns a ULID for t. Run IDs sort by creation time, so the journal
// lists newest runs with a plain ORDER BY. IDs minted in the same
// millisecond still increase.
func New(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t.UTC()), ulid.DefaultEntropy()).String()
}

// Time returns the creation time embedded in a run ID.
func Time(s string) (time.Time, error) {
	id, err := ulid.ParseStrict(strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(id.Time()).UTC(), nil
}

// Valid reports whether s is a well formed run ID.
func Valid(s string) bool {
	_, err := Time(s)
	return err == nil
}
