package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abatilo/tasks/internal/task"
)

// fileDocument is the JSON layout of the tasks file.
type fileDocument struct {
	NextID int          `json:"next_id"`
	Tasks  []taskRecord `json:"tasks"`
}

// taskRecord is the JSON-serializable form of a task.
type taskRecord struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    task.Priority `json:"priority"`
	DueDate     *string       `json:"due_date,omitempty"`
	Status      task.Status   `json:"status"`
	CreatedAt   string        `json:"created_at"`
}

func toRecord(t *task.Task) taskRecord {
	r := taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if t.DueDate != nil {
		s := t.DueDate.Format(task.DateLayout)
		r.DueDate = &s
	}
	return r
}

func fromRecord(r taskRecord) (*task.Task, error) {
	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("task %d: invalid created_at: %w", r.ID, err)
	}

	t := &task.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		CreatedAt:   createdAt.UTC(),
	}
	if r.DueDate != nil {
		d, err := task.ParseDate(*r.DueDate)
		if err != nil {
			return nil, fmt.Errorf("task %d: invalid due_date: %w", r.ID, err)
		}
		t.DueDate = &d
	}
	return t, nil
}

// encodeDocument serializes the full collection with 2-space indentation.
func encodeDocument(tasks []*task.Task, nextID int) ([]byte, error) {
	doc := fileDocument{
		NextID: nextID,
		Tasks:  make([]taskRecord, len(tasks)),
	}
	for i, t := range tasks {
		doc.Tasks[i] = toRecord(t)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// decodeDocument parses and checks file contents. Every error it returns
// means the file cannot be trusted.
func decodeDocument(data []byte) ([]*task.Task, int, error) {
	if err := validateSchema(data); err != nil {
		return nil, 0, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc fileDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, 0, fmt.Errorf("decode: %w", err)
	}

	tasks := make([]*task.Task, 0, len(doc.Tasks))
	seen := make(map[int]bool, len(doc.Tasks))
	for _, r := range doc.Tasks {
		if seen[r.ID] {
			return nil, 0, fmt.Errorf("duplicate task id %d", r.ID)
		}
		seen[r.ID] = true

		t, err := fromRecord(r)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}

	return tasks, task.NextID(tasks, doc.NextID), nil
}
