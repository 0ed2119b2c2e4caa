package events

import "github.com/atomicstack/cellkit/internal/logging"

type TabTracer struct{}

type MenuTracer struct{}

var (
	Tab  = TabTracer{}
	Menu = MenuTracer{}
)

func (TabTracer) Select(oldIndex int, oldName string, newIndex int, newName string) {
	logging.Trace("tab.select", map[string]interface{}{
		"old":      oldIndex,
		"old_name": oldName,
		"new":      newIndex,
		"new_name": newName,
	})
}

func (MenuTracer) Select(item string) {
	logging.Trace("menu.select", map[string]interface{}{"item": item})
}
