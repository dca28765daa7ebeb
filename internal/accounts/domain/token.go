package domain

import "time"

// IssuedToken is a signed ticket or session token handed to a client.
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// ExpiresIn is the remaining lifetime at now, rounded down to seconds.
func (t IssuedToken) ExpiresIn(now time.Time) int64 {
	d := t.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}
