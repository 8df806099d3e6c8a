package interfaces

import "time"

// TimeProvider is the source of current time. Production uses the real
// clock; tests inject a fixed one.
type TimeProvider interface {
	Now() time.Time
}
