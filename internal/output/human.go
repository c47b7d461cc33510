package output

import (
	"fmt"
	"strings"

	"github.com/abatilo/tasks/internal/storage"
	"github.com/abatilo/tasks/internal/task"
)

const (
	titleWidth = 30
	noDueDate  = "-"
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct{}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(t *task.Task) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%d] %s\n", t.ID, t.Title)
	fmt.Fprintf(&sb, "  Status:   %s\n", t.Status)
	fmt.Fprintf(&sb, "  Priority: %s\n", t.Priority)
	if t.DueDate != nil {
		fmt.Fprintf(&sb, "  Due:      %s\n", t.DueString())
	}
	fmt.Fprintf(&sb, "  Created:  %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04"))

	if t.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(t.Description)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatTaskList formats a list of tasks as a table.
func (f *HumanFormatter) FormatTaskList(tasks []*task.Task) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-5s %-4s %-*s %-8s %s\n", "ID", "", titleWidth, "TITLE", "PRIORITY", "DUE")
	for _, t := range tasks {
		sb.WriteString(f.formatTaskLine(t))
	}
	fmt.Fprintf(&sb, "Total: %d task(s)\n", len(tasks))
	return sb.String()
}

// formatTaskLine formats a single task as a compact table row.
func (f *HumanFormatter) formatTaskLine(t *task.Task) string {
	due := t.DueString()
	if due == "" {
		due = noDueDate
	}
	return fmt.Sprintf("%-5d %-4s %-*s %-8s %s\n",
		t.ID, f.statusIcon(t.Status), titleWidth, truncate(t.Title, titleWidth), t.Priority, due)
}

func (f *HumanFormatter) statusIcon(s task.Status) string {
	switch s {
	case task.StatusPending:
		return "[ ]"
	case task.StatusCompleted:
		return "[x]"
	default:
		return "[?]"
	}
}

// FormatStats formats task statistics.
func (f *HumanFormatter) FormatStats(st storage.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total:     %d\n", st.Total)
	fmt.Fprintf(&sb, "Completed: %d\n", st.Completed)
	fmt.Fprintf(&sb, "Pending:   %d\n", st.Pending)
	sb.WriteString("\nBy priority (pending / all):\n")
	for _, p := range task.Priorities() {
		fmt.Fprintf(&sb, "  %-7s %d / %d\n", p+":", st.PendingByPriority[p], st.ByPriority[p])
	}
	return sb.String()
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
