package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/abatilo/tasks/internal/logging"
	"github.com/abatilo/tasks/internal/storage"
	"github.com/abatilo/tasks/internal/task"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
	modeConfirmDelete
)

// view selects which tasks the list shows.
type view int

const (
	viewAll view = iota
	viewPending
	viewCompleted
	viewHigh
	viewMedium
	viewLow
	viewCount
)

func (v view) String() string {
	switch v {
	case viewPending:
		return "Pending"
	case viewCompleted:
		return "Completed"
	case viewHigh:
		return "High"
	case viewMedium:
		return "Medium"
	case viewLow:
		return "Low"
	default:
		return "All"
	}
}

func (v view) filter() storage.Filter {
	switch v {
	case viewPending:
		return storage.Filter{Status: task.StatusPending}
	case viewCompleted:
		return storage.Filter{Status: task.StatusCompleted}
	case viewHigh:
		return storage.Filter{Priority: task.PriorityHigh}
	case viewMedium:
		return storage.Filter{Priority: task.PriorityMedium}
	case viewLow:
		return storage.Filter{Priority: task.PriorityLow}
	default:
		return storage.Filter{}
	}
}

func (v view) next() view {
	return (v + 1) % viewCount
}

// Model is the bubbletea model for the task browser. All reads and writes
// go through the store; failures are shown on the status line.
type Model struct {
	store  *storage.Store
	logger *log.Logger
	keys   KeyMap
	theme  Theme
	help   help.Model

	mode   mode
	view   view
	query  string
	search textinput.Model
	form   form

	tasks  []*task.Task
	stats  storage.Stats
	cursor int

	status    string
	statusErr bool

	width  int
	height int
}

// NewModel creates a browser over store. A nil logger discards.
func NewModel(store *storage.Store, logger *log.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search title or description"

	m := Model{
		store:  store,
		logger: logger,
		keys:   DefaultKeyMap(),
		theme:  DefaultTheme(),
		help:   help.New(),
		search: search,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modeBrowse:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.keys.Add):
		m.form = newForm(nil)
		m.mode = modeForm
		return m, m.form.focusField(fieldTitle)
	case key.Matches(msg, m.keys.Edit):
		if t := m.selected(); t != nil {
			m.form = newForm(t)
			m.mode = modeForm
			return m, m.form.focusField(fieldTitle)
		}
	case key.Matches(msg, m.keys.Delete):
		if m.selected() != nil {
			m.mode = modeConfirmDelete
		}
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Clear):
		if m.query != "" {
			m.query = ""
			m.refresh()
		}
	case key.Matches(msg, m.keys.Filter):
		m.view = m.view.next()
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// updateSearch filters live as the query is typed. Enter keeps the query,
// esc drops it.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.search.Blur()
		m.query = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = m.search.Value()
	m.cursor = 0
	m.refresh()
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.setInfo("Cancelled")
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.focusField(m.form.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.focusField(m.form.focus - 1)
	case key.Matches(msg, m.keys.Submit):
		m.submitForm()
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	t := m.selected()
	if t == nil {
		return m, nil
	}
	if !key.Matches(msg, m.keys.Confirm) {
		m.setInfo(fmt.Sprintf("Kept task %d", t.ID))
		return m, nil
	}
	if err := m.store.Delete(t.ID); err != nil {
		m.setError(err)
		return m, nil
	}
	m.setInfo(fmt.Sprintf("Removed task %d", t.ID))
	m.refresh()
	return m, nil
}

// submitForm saves the form. On failure the form stays open with the error
// on the status line.
func (m *Model) submitForm() {
	var (
		t   *task.Task
		err error
	)
	if m.form.editID == 0 {
		t, err = m.store.Add(m.form.draft())
	} else {
		t, err = m.store.Update(m.form.editID, m.form.patch())
	}
	if err != nil {
		m.setError(err)
		return
	}

	m.mode = modeBrowse
	if m.form.editID == 0 {
		m.setInfo(fmt.Sprintf("Added task %d", t.ID))
	} else {
		m.setInfo(fmt.Sprintf("Updated task %d", t.ID))
	}
	m.refresh()
	m.selectID(t.ID)
}

func (m *Model) toggleSelected() {
	t := m.selected()
	if t == nil {
		return
	}
	target := task.StatusCompleted
	if t.IsCompleted() {
		target = task.StatusPending
	}
	updated, err := m.store.SetStatus(t.ID, target)
	if err != nil {
		m.setError(err)
		return
	}
	m.setInfo(fmt.Sprintf("Task %d is now %s", updated.ID, updated.Status))
	m.refresh()
	m.selectID(updated.ID)
}

// refresh reloads the visible tasks and statistics from the store.
func (m *Model) refresh() {
	criteria := m.view.filter()
	var visible []*task.Task
	for _, t := range m.store.Search(m.query) {
		if criteria.Matches(t) {
			visible = append(visible, t)
		}
	}
	m.tasks = visible
	m.stats = m.store.Statistics()
	if m.cursor >= len(m.tasks) {
		m.cursor = max(len(m.tasks)-1, 0)
	}
}

func (m *Model) selectID(id int) {
	for i, t := range m.tasks {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m Model) selected() *task.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.cursor]
}

func (m *Model) setInfo(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.logger.Debug("store operation failed", "err", err)
	m.status = err.Error()
	m.statusErr = true
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.mode == modeForm {
		b.WriteString(m.form.view(m.theme))
	} else {
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	if line := m.renderStatus(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	header := m.theme.Header.Render("Tasks") + " " + m.theme.Faint.Render("view: "+m.view.String())
	if m.mode == modeSearch {
		header += "  " + m.search.View()
	} else if m.query != "" {
		header += "  " + m.theme.Faint.Render(fmt.Sprintf("search: %q", m.query))
	}
	return header
}

func (m Model) renderList() string {
	if len(m.tasks) == 0 {
		return m.theme.Faint.Render("No tasks found.") + "\n"
	}

	var b strings.Builder
	for i, t := range m.tasks {
		check := "[ ]"
		titleStyle := m.theme.Normal
		if t.IsCompleted() {
			check = "[x]"
			titleStyle = m.theme.Completed
		}
		due := ""
		if t.DueDate != nil {
			due = "  due " + t.DueString()
		}

		line := fmt.Sprintf("%s %3d  %s  %s%s",
			check,
			t.ID,
			titleStyle.Render(t.Title),
			m.theme.PriorityStyle(t.Priority).Render(string(t.Priority)),
			m.theme.Faint.Render(due),
		)
		if i == m.cursor {
			line = m.theme.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStats() string {
	st := m.stats
	return m.theme.Faint.Render(fmt.Sprintf(
		"%d total · %d completed · %d pending · High %d · Medium %d · Low %d",
		st.Total, st.Completed, st.Pending,
		st.ByPriority[task.PriorityHigh], st.ByPriority[task.PriorityMedium], st.ByPriority[task.PriorityLow],
	))
}

func (m Model) renderStatus() string {
	if m.mode == modeConfirmDelete {
		if t := m.selected(); t != nil {
			return m.theme.Error.Render(fmt.Sprintf("Delete task %d (%s)? y/n", t.ID, t.Title))
		}
	}
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.theme.Error.Render(m.status)
	}
	return m.theme.Info.Render(m.status)
}

func (m Model) renderHelp() string {
	if m.mode == modeForm {
		return m.help.ShortHelpView(m.keys.formHelp())
	}
	return m.help.View(m.keys)
}
