package task

import (
	"strings"
	"time"
)

// DateLayout is the text form of a due date.
const DateLayout = "2006-01-02"

// Status represents the current state of a task.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// Priority represents the importance level of a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists every priority from most to least important.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// PriorityOrder returns the sort order for a priority (lower = higher priority).
func PriorityOrder(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Task represents a tracked to-do item.
type Task struct {
	ID          int
	Title       string
	Description string
	Priority    Priority
	DueDate     *time.Time
	Status      Status
	CreatedAt   time.Time
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}

// IsCompleted reports whether the task is done.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// DueString returns the due date as YYYY-MM-DD, or "" when unset.
func (t *Task) DueString() string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.Format(DateLayout)
}

// Draft holds the fields supplied when adding a task.
// DueDate is YYYY-MM-DD text; empty means no due date.
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     string
}

// Patch holds the fields to change on an existing task. Nil slots are left
// untouched. A DueDate of "" clears the due date. Status is changed through
// the store's SetStatus only.
type Patch struct {
	Title       *string
	Description *string
	Priority    *Priority
	DueDate     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.DueDate == nil
}

// IsValidStatus checks if a status string is valid.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsValidPriority checks if a priority string is valid.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParsePriority maps user input such as "high" to its canonical Priority.
func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities() {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, true
		}
	}
	return "", false
}

// ParseStatus maps user input such as "completed" to its canonical Status.
func ParseStatus(s string) (Status, bool) {
	for _, st := range []Status{StatusPending, StatusCompleted} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// ParseDate parses a YYYY-MM-DD calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
