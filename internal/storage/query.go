package storage

import (
	"strings"

	"github.com/abatilo/tasks/internal/task"
)

// Filter selects tasks by priority and status. A zero field matches
// every task.
type Filter struct {
	Priority task.Priority
	Status   task.Status
}

// Matches returns true if t satisfies every set criterion.
func (f Filter) Matches(t *task.Task) bool {
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	return true
}

// Stats aggregates the current collection.
type Stats struct {
	Total             int
	Completed         int
	Pending           int
	ByPriority        map[task.Priority]int
	PendingByPriority map[task.Priority]int
}

// Search returns tasks whose title or description contains text,
// ignoring case. Empty text matches every task.
func (s *Store) Search(text string) []*task.Task {
	needle := strings.ToLower(text)
	return s.collect(func(t *task.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle)
	})
}

// Filter returns the tasks matching f in insertion order.
func (s *Store) Filter(f Filter) []*task.Task {
	return s.collect(f.Matches)
}

// Statistics counts the current collection. Every priority is present in
// the maps, with zero when no task has it.
func (s *Store) Statistics() Stats {
	st := Stats{
		ByPriority:        make(map[task.Priority]int, len(task.Priorities())),
		PendingByPriority: make(map[task.Priority]int, len(task.Priorities())),
	}
	for _, p := range task.Priorities() {
		st.ByPriority[p] = 0
		st.PendingByPriority[p] = 0
	}

	for _, t := range s.tasks {
		st.Total++
		st.ByPriority[t.Priority]++
		if t.IsCompleted() {
			st.Completed++
		} else {
			st.Pending++
			st.PendingByPriority[t.Priority]++
		}
	}
	return st
}
