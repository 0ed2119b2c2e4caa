package events

import "github.com/atomicstack/cellkit/internal/logging"

type LogTracer struct{}

type FeedTracer struct{}

var (
	Log  = LogTracer{}
	Feed = FeedTracer{}
)

func (LogTracer) MirrorError(target string, err error) {
	if err == nil {
		return
	}
	logging.Trace("log.mirror-error", map[string]interface{}{"target": target, "error": err.Error()})
}

func (LogTracer) Evicted(capacity int) {
	logging.Trace("log.evicted", map[string]interface{}{"capacity": capacity})
}

func (FeedTracer) Status(path, status string) {
	logging.Trace("feed.status", map[string]interface{}{"path": path, "status": status})
}

func (FeedTracer) Drained(count int) {
	logging.Trace("feed.drained", map[string]interface{}{"count": count})
}
