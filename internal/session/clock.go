package session

import "time"

type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Implementations must run callbacks on the goroutine
// that drives the session, since the session is not safe for concurrent use.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}
