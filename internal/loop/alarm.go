package loop

import (
	"container/heap"
	"time"
)

// Handle identifies an alarm or periodic timer.
type Handle uint64

type alarm struct {
	handle Handle
	at     time.Time
	seq    uint64
	fn     func()
	index  int
}

// alarmQueue orders alarms by deadline, then by the order they were set.
type alarmQueue []*alarm

func (q alarmQueue) Len() int { return len(q) }

func (q alarmQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q alarmQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *alarmQueue) Push(x any) {
	a := x.(*alarm)
	a.index = len(*q)
	*q = append(*q, a)
}

func (q *alarmQueue) Pop() any {
	old := *q
	n := len(old)
	a := old[n-1]
	old[n-1] = nil
	a.index = -1
	*q = old[:n-1]
	return a
}

const minPeriod = time.Millisecond

type periodic struct {
	period  time.Duration
	fn      func() bool
	alarm   Handle
	stopped bool
}

// SetAlarm runs fn once after d. Alarms due at the same time run in the order
// they were set.
func (l *Loop) SetAlarm(d time.Duration, fn func()) Handle {
	l.next++
	l.seq++
	a := &alarm{handle: l.next, at: l.now().Add(d), seq: l.seq, fn: fn}
	heap.Push(&l.alarms, a)
	l.byHandle[a.handle] = a
	return a.handle
}

// RemoveAlarm cancels a pending alarm and reports whether it was pending.
func (l *Loop) RemoveAlarm(h Handle) bool {
	a, ok := l.byHandle[h]
	if !ok {
		return false
	}
	delete(l.byHandle, h)
	heap.Remove(&l.alarms, a.index)
	return true
}

// StartPeriodic calls fn every period until fn returns false or the timer is
// stopped.
func (l *Loop) StartPeriodic(period time.Duration, fn func() bool) Handle {
	if period < minPeriod {
		period = minPeriod
	}
	l.next++
	h := l.next
	p := &periodic{period: period, fn: fn}
	l.periodics[h] = p
	l.schedule(h, p)
	return h
}

func (l *Loop) schedule(h Handle, p *periodic) {
	p.alarm = l.SetAlarm(p.period, func() {
		if p.stopped {
			return
		}
		if !p.fn() {
			l.StopPeriodic(h)
			return
		}
		if !p.stopped {
			l.schedule(h, p)
		}
	})
}

// StopPeriodic stops a periodic timer. Stopping an unknown or already
// stopped timer does nothing.
func (l *Loop) StopPeriodic(h Handle) {
	p, ok := l.periodics[h]
	if !ok {
		return
	}
	p.stopped = true
	l.RemoveAlarm(p.alarm)
	delete(l.periodics, h)
}

// nextDeadline returns the earliest pending alarm time.
func (l *Loop) nextDeadline() (time.Time, bool) {
	if len(l.alarms) == 0 {
		return time.Time{}, false
	}
	return l.alarms[0].at, true
}

// fireDue runs every alarm whose deadline has passed, including alarms set by
// the callbacks themselves with no delay. It reports whether any ran.
func (l *Loop) fireDue() bool {
	fired := false
	for len(l.alarms) > 0 && !l.alarms[0].at.After(l.now()) {
		a := heap.Pop(&l.alarms).(*alarm)
		delete(l.byHandle, a.handle)
		a.fn()
		fired = true
	}
	return fired
}
