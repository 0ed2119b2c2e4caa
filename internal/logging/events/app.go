package events

import "github.com/atomicstack/cellkit/internal/logging"

type AppTracer struct{}

type LoopTracer struct{}

var (
	App  = AppTracer{}
	Loop = LoopTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

// Enter records a nested pump starting at the given depth.
func (LoopTracer) Enter(depth int) {
	logging.Trace("loop.enter", map[string]interface{}{"depth": depth})
}

func (LoopTracer) Exit(depth int, err error) {
	payload := map[string]interface{}{"depth": depth}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("loop.exit", payload)
}
