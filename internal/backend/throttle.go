package backend

import (
	"sync"
	"time"
)

// throttle ensures a minimum interval between successive reads.
type throttle struct {
	interval time.Duration
	now      func() time.Time
	sleep    func(time.Duration)

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	t := &throttle{now: time.Now, sleep: time.Sleep}
	if interval > 0 {
		t.interval = interval
	}
	return t
}

func (t *throttle) wait() {
	if t == nil || t.interval <= 0 {
		return
	}
	for {
		t.mu.Lock()
		wait := t.next.Sub(t.now())
		if wait <= 0 {
			t.next = t.now().Add(t.interval)
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()
		t.sleep(min(wait, t.interval))
	}
}
