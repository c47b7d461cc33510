package output

import (
	"github.com/abatilo/tasks/internal/storage"
	"github.com/abatilo/tasks/internal/task"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatTask(t *task.Task) string
	FormatTaskList(tasks []*task.Task) string
	FormatStats(st storage.Stats) string
	FormatError(err error) string
	FormatMessage(msg string) string
}

// New returns the JSON formatter when asJSON is set, the human one otherwise.
func New(asJSON bool) Formatter {
	if asJSON {
		return NewJSONFormatter()
	}
	return NewHumanFormatter()
}
