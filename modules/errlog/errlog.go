// Package errlog provides logging/error-reporting glue for the
// orchestrator: operations that want their failure both logged and
// returned to a caller go through Errorf, and long-running steps
// (fetch, push) can report elapsed time through a Tracker.
package errlog

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// Location reports the function name and line number skip frames above
// Location itself: skip 1 is the function that called Location, skip 2
// that function's caller.
func Location(skip int) (string, int) {
	pc, _, line, ok := runtime.Caller(skip)
	if !ok {
		return "?", line
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "?", line
	}
	return fn.Name(), line
}

// Errorf logs the formatted message at the caller's location and
// returns it as an error.
func Errorf(format string, a ...any) error {
	fn, line := Location(2)
	msg := fmt.Sprintf(format, a...)
	logrus.WithField("at", fmt.Sprintf("%s:%d", fn, line)).Error(msg)
	return fmt.Errorf("%s", msg)
}

// Tracker reports elapsed time between named steps at debug level, only
// when debug mode is on.
type Tracker struct {
	debug bool
	last  time.Time
}

// NewTracker returns a Tracker that logs step timings only if debugMode
// is true.
func NewTracker(debugMode bool) *Tracker {
	return &Tracker{debug: debugMode, last: time.Now()}
}

// StepNext logs the formatted step name and the time elapsed since the
// previous call (or since NewTracker).
func (t *Tracker) StepNext(format string, a ...any) {
	if !t.debug {
		return
	}
	now := time.Now()
	logrus.Debugf("%s use time: %v", fmt.Sprintf(format, a...), now.Sub(t.last))
	t.last = now
}
