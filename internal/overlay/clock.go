package overlay

import "time"

// Clock supplies the current time to a session. Sessions step their fade
// sequencer with Clock timestamps, which lets tests drive the state machine
// without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock used outside tests.
var SystemClock Clock = systemClock{}
