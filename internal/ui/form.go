package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abatilo/tasks/internal/task"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
	fieldDue
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Priority", "Due"} //nolint:gochecknoglobals // fixed form layout

// form edits the fields of a new or existing task.
type form struct {
	editID int // 0 when adding
	inputs [fieldCount]textinput.Model
	focus  int
}

// newForm returns a form prefilled from t, or a blank add form when t is nil.
func newForm(t *task.Task) form {
	var f form
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		f.inputs[i] = in
	}
	f.inputs[fieldPriority].Placeholder = "High, Medium, Low"
	f.inputs[fieldDue].Placeholder = task.DateLayout

	if t == nil {
		f.inputs[fieldPriority].SetValue(string(task.PriorityMedium))
	} else {
		f.editID = t.ID
		f.inputs[fieldTitle].SetValue(t.Title)
		f.inputs[fieldDescription].SetValue(t.Description)
		f.inputs[fieldPriority].SetValue(string(t.Priority))
		f.inputs[fieldDue].SetValue(t.DueString())
	}
	return f
}

// focusField moves input focus to field i.
func (f *form) focusField(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) value(i int) string {
	return f.inputs[i].Value()
}

// priority maps the priority field to a Priority. Unrecognized text is passed
// through unchanged so the store reports it.
func (f form) priority() task.Priority {
	raw := f.value(fieldPriority)
	if p, ok := task.ParsePriority(raw); ok {
		return p
	}
	return task.Priority(strings.TrimSpace(raw))
}

func (f form) draft() task.Draft {
	return task.Draft{
		Title:       f.value(fieldTitle),
		Description: f.value(fieldDescription),
		Priority:    f.priority(),
		DueDate:     strings.TrimSpace(f.value(fieldDue)),
	}
}

// patch sets every field. An empty due field clears the due date.
func (f form) patch() task.Patch {
	title := f.value(fieldTitle)
	description := f.value(fieldDescription)
	priority := f.priority()
	due := strings.TrimSpace(f.value(fieldDue))
	return task.Patch{
		Title:       &title,
		Description: &description,
		Priority:    &priority,
		DueDate:     &due,
	}
}

func (f form) view(theme Theme) string {
	var b strings.Builder
	if f.editID == 0 {
		b.WriteString(theme.Label.Render("New task"))
	} else {
		b.WriteString(theme.Label.Render(fmt.Sprintf("Edit task %d", f.editID)))
	}
	b.WriteString("\n\n")

	for i, label := range fieldLabels {
		marker := "  "
		if i == f.focus {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%-12s %s\n", marker, label, f.inputs[i].View())
	}
	return b.String()
}
