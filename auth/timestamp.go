package auth

import (
	"fmt"
	"time"
)

// timestampLayout is the wire layout of signature timestamps. The zone
// suffix is literal text: timestamps are always rendered in UTC, so the
// offset is the constant +0000.
const timestampLayout = "20060102T15:04:05+0000"

// Timestamp is a signature timestamp with second precision, rendered in UTC
// as yyyyMMddTHH:mm:ss+0000.
//
// The zero value means "not pinned": a Signer holding a zero Timestamp
// generates a fresh one for each signature.
type Timestamp struct {
	t time.Time
}

// NewTimestamp returns the Timestamp for the given instant, truncated to
// second precision in UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t.UTC().Truncate(time.Second)}
}

// ParseTimestamp parses a wire-format timestamp. It returns an error
// wrapping ErrMalformedTimestamp when the value does not match the layout.
func ParseTimestamp(value string) (Timestamp, error) {
	t, err := time.Parse(timestampLayout, value)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
	}

	return Timestamp{t: t.UTC()}, nil
}

// IsZero reports whether the timestamp is the zero value.
func (ts Timestamp) IsZero() bool {
	return ts.t.IsZero()
}

// Time returns the instant the timestamp represents, in UTC.
func (ts Timestamp) Time() time.Time {
	return ts.t
}

// String renders the timestamp in the wire layout.
func (ts Timestamp) String() string {
	return ts.t.UTC().Format(timestampLayout)
}
