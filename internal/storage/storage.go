package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	taskerrors "github.com/abatilo/tasks/internal/errors"
	"github.com/abatilo/tasks/internal/logging"
	"github.com/abatilo/tasks/internal/task"
)

// DefaultFileName is the tasks file used when no path is configured.
const DefaultFileName = "tasks.json"

// Store is the single source of truth for tasks. It keeps the whole
// collection in memory and rewrites the backing file after every mutation.
// A Store assumes one caller at a time.
type Store struct {
	path   string
	tasks  []*task.Task
	nextID int
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger routes store diagnostics to logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the source of created_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open loads the tasks file at path. A missing file yields an empty store;
// the file is created on the first mutation. A file that exists but cannot
// be parsed yields a CorruptStateError.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		nextID: 1,
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no tasks file yet", "path", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	tasks, nextID, err := decodeDocument(data)
	if err != nil {
		return nil, taskerrors.CorruptStateError{Path: path, Err: err}
	}
	s.tasks = tasks
	s.nextID = nextID
	s.logger.Debug("loaded tasks", "path", path, "count", len(tasks), "next_id", nextID)
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Add validates d and appends a new pending task.
func (s *Store) Add(d task.Draft) (*task.Task, error) {
	title, err := validateTitle(d.Title)
	if err != nil {
		return nil, err
	}
	if err = validatePriority(d.Priority); err != nil {
		return nil, err
	}
	due, err := parseDueDate(d.DueDate)
	if err != nil {
		return nil, err
	}

	t := &task.Task{
		ID:          s.nextID,
		Title:       title,
		Description: d.Description,
		Priority:    d.Priority,
		DueDate:     due,
		Status:      task.StatusPending,
		CreatedAt:   s.now().UTC().Truncate(time.Second),
	}

	next := append(slices.Clone(s.tasks), t)
	if err = s.commit(next, s.nextID+1); err != nil {
		return nil, err
	}
	s.logger.Info("added task", "id", t.ID)
	return t.Clone(), nil
}

// Import adds tasks read from elsewhere, such as a markdown export. Each task
// gets a fresh id; title, description, priority, due date, status and
// created_at are kept. A zero created_at is stamped with the current time.
// If any task is invalid nothing is added.
func (s *Store) Import(tasks []*task.Task) ([]*task.Task, error) {
	next := slices.Clone(s.tasks)
	nextID := s.nextID
	imported := make([]*task.Task, 0, len(tasks))
	for _, in := range tasks {
		title, err := validateTitle(in.Title)
		if err != nil {
			return nil, err
		}
		if err = validatePriority(in.Priority); err != nil {
			return nil, err
		}
		if err = validateStatus(in.Status); err != nil {
			return nil, err
		}

		t := in.Clone()
		t.ID = nextID
		t.Title = title
		if t.CreatedAt.IsZero() {
			t.CreatedAt = s.now().UTC().Truncate(time.Second)
		} else {
			t.CreatedAt = t.CreatedAt.UTC()
		}
		next = append(next, t)
		imported = append(imported, t)
		nextID++
	}

	if err := s.commit(next, nextID); err != nil {
		return nil, err
	}
	s.logger.Info("imported tasks", "count", len(imported))
	out := make([]*task.Task, len(imported))
	for i, t := range imported {
		out[i] = t.Clone()
	}
	return out, nil
}

// Update applies the non-nil slots of p to the task with the given id.
// Every supplied field is validated before anything changes.
func (s *Store) Update(id int, p task.Patch) (*task.Task, error) {
	i, err := s.index(id)
	if err != nil {
		return nil, err
	}

	updated := s.tasks[i].Clone()
	if p.Title != nil {
		title, titleErr := validateTitle(*p.Title)
		if titleErr != nil {
			return nil, titleErr
		}
		updated.Title = title
	}
	if p.Description != nil {
		updated.Description = *p.Description
	}
	if p.Priority != nil {
		if err = validatePriority(*p.Priority); err != nil {
			return nil, err
		}
		updated.Priority = *p.Priority
	}
	if p.DueDate != nil {
		due, dueErr := parseDueDate(*p.DueDate)
		if dueErr != nil {
			return nil, dueErr
		}
		updated.DueDate = due
	}

	if err = s.replace(i, updated); err != nil {
		return nil, err
	}
	s.logger.Info("updated task", "id", id)
	return updated.Clone(), nil
}

// SetStatus sets the status of the task with the given id. Setting the
// status a task already has succeeds and changes nothing observable.
func (s *Store) SetStatus(id int, status task.Status) (*task.Task, error) {
	i, err := s.index(id)
	if err != nil {
		return nil, err
	}
	if err = validateStatus(status); err != nil {
		return nil, err
	}

	updated := s.tasks[i].Clone()
	updated.Status = status
	if err = s.replace(i, updated); err != nil {
		return nil, err
	}
	s.logger.Info("set task status", "id", id, "status", status)
	return updated.Clone(), nil
}

// Delete removes the task with the given id.
func (s *Store) Delete(id int) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}

	next := slices.Delete(slices.Clone(s.tasks), i, i+1)
	if err = s.commit(next, s.nextID); err != nil {
		return err
	}
	s.logger.Info("deleted task", "id", id)
	return nil
}

// Get returns the task with the given id.
func (s *Store) Get(id int) (*task.Task, error) {
	i, err := s.index(id)
	if err != nil {
		return nil, err
	}
	return s.tasks[i].Clone(), nil
}

// List returns every task in insertion order.
func (s *Store) List() []*task.Task {
	return s.collect(func(*task.Task) bool { return true })
}

func (s *Store) index(id int) (int, error) {
	for i, t := range s.tasks {
		if t.ID == id {
			return i, nil
		}
	}
	return -1, taskerrors.NotFoundError{ID: id}
}

func (s *Store) collect(keep func(*task.Task) bool) []*task.Task {
	out := make([]*task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

func (s *Store) replace(i int, t *task.Task) error {
	next := slices.Clone(s.tasks)
	next[i] = t
	return s.commit(next, s.nextID)
}

// commit writes the candidate state to disk and only then adopts it, so a
// failed write leaves the in-memory collection untouched.
func (s *Store) commit(tasks []*task.Task, nextID int) error {
	data, err := encodeDocument(tasks, nextID)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err = writeFileAtomic(s.path, data); err != nil {
		return err
	}
	s.tasks = tasks
	s.nextID = nextID
	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

// writeFileAtomic replaces path with data via a temp file and rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	//nolint:gosec // G301: 0755 is appropriate for a user data directory
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create tasks dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write tasks file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync tasks file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close tasks file: %w", err)
	}
	//nolint:gosec // G302: 0644 is appropriate for user-readable task files
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod tasks file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace tasks file: %w", err)
	}
	return nil
}

func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", taskerrors.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return trimmed, nil
}

func validatePriority(p task.Priority) error {
	if !task.IsValidPriority(p) {
		return taskerrors.ValidationError{
			Field:  "priority",
			Value:  string(p),
			Reason: "must be one of High, Medium, Low",
		}
	}
	return nil
}

func validateStatus(st task.Status) error {
	if !task.IsValidStatus(st) {
		return taskerrors.ValidationError{
			Field:  "status",
			Value:  string(st),
			Reason: "must be one of Pending, Completed",
		}
	}
	return nil
}

func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil //nolint:nilnil // no due date is a valid outcome
	}
	d, err := task.ParseDate(s)
	if err != nil {
		return nil, taskerrors.ValidationError{
			Field:  "due_date",
			Value:  s,
			Reason: "must be a calendar date in YYYY-MM-DD form",
		}
	}
	return &d, nil
}
