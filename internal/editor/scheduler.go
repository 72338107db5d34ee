package editor

import "time"

// TimeScheduler schedules with time.AfterFunc. The action runs on its own
// goroutine, so UI code must wrap it to hop back onto the UI thread.
type TimeScheduler struct {
	// Wrap, when set, is applied to every action before it is scheduled
	Wrap func(f func()) func()
}

// AfterFunc implements Scheduler
func (s TimeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	if s.Wrap != nil {
		f = s.Wrap(f)
	}
	return time.AfterFunc(d, f)
}
