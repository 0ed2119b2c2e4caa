package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/cellkit/internal/logging/events"
)

// Kind represents the type of data carried by a feed event.
type Kind int

const (
	KindLine Kind = iota
	KindStatus
)

func (k Kind) String() string {
	if k == KindStatus {
		return "status"
	}
	return "line"
}

// Event conveys a line or a status change from a feed.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Status is the Data of a KindStatus event.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusFollowing Status = "following"
	StatusFailed    Status = "failed"
	StatusStopped   Status = "stopped"
)

const minPollInterval = 20 * time.Millisecond

// Follower tails a file and pushes every complete line appended after it
// started. A missing file is waited for; a truncated file is read again from
// the start.
type Follower struct {
	path     string
	interval time.Duration
	queue    *Queue[Event]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	offset  int64
	partial string
	status  Status
	started bool
}

// NewFollower starts following path, polling every interval.
func NewFollower(path string, interval time.Duration, queue *Queue[Event]) *Follower {
	ctx, cancel := context.WithCancel(context.Background())
	f := &Follower{
		path:     path,
		interval: max(interval, minPollInterval),
		queue:    queue,
		ctx:      ctx,
		cancel:   cancel,
	}
	f.wg.Add(1)
	go f.poll()
	return f
}

func (f *Follower) Path() string { return f.path }

// Stop cancels the follower. It exits after its current read; use Wait if a
// clean shutdown is required.
func (f *Follower) Stop() {
	f.cancel()
}

// Wait blocks until the follower goroutine has exited.
func (f *Follower) Wait() {
	f.wg.Wait()
}

// Done is closed once the follower has been stopped.
func (f *Follower) Done() <-chan struct{} {
	return f.ctx.Done()
}

func (f *Follower) poll() {
	defer f.wg.Done()
	defer f.setStatus(StatusStopped, nil)

	throttle := newThrottle(minPollInterval)
	f.read()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-f.ctx.Done():
			return
		case <-ticker.C:
			throttle.wait()
			f.read()
		}
	}
}

func (f *Follower) setStatus(s Status, err error) {
	if s == f.status {
		return
	}
	f.status = s
	events.Feed.Status(f.path, string(s))
	f.queue.Push(Event{Kind: KindStatus, Data: s, Err: err})
}

func (f *Follower) read() {
	info, err := os.Stat(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.started = true
		f.offset = 0
		f.partial = ""
		f.setStatus(StatusWaiting, nil)
		return
	}
	if err != nil {
		f.setStatus(StatusFailed, err)
		return
	}
	size := info.Size()
	if !f.started {
		// existing content is history, only follow what comes next
		f.started = true
		f.offset = size
	}
	if size < f.offset {
		f.offset = 0
		f.partial = ""
	}
	if size == f.offset {
		f.setStatus(StatusFollowing, nil)
		return
	}
	data, err := readRange(f.path, f.offset, size-f.offset)
	if err != nil {
		f.setStatus(StatusFailed, err)
		return
	}
	f.setStatus(StatusFollowing, nil)
	f.offset += int64(len(data))
	text := f.partial + string(data)
	lines := strings.Split(text, "\n")
	f.partial = lines[len(lines)-1]
	for _, line := range lines[:len(lines)-1] {
		f.queue.Push(Event{Kind: KindLine, Data: strings.TrimSuffix(line, "\r")})
	}
}

func readRange(path string, offset, n int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", path, err)
	}
	return io.ReadAll(io.LimitReader(file, n))
}
