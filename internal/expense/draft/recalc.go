package draft

import "time"

// Scheduler defers fn by the given delay and returns a cancel
// function. Injected so tests can fire the debounce deterministically.
type Scheduler func(delay time.Duration, fn func()) (cancel func())

// TimerScheduler is the production scheduler, backed by time.AfterFunc.
func TimerScheduler(delay time.Duration, fn func()) func() {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}
