package storage

import (
	"bytes"
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abatilo/tasks/internal/task"
)

const (
	frontmatterDelimiter = "---"
	markdownExt          = ".md"
)

// taskFrontmatter is the YAML-serializable portion of an exported task.
type taskFrontmatter struct {
	ID        int           `yaml:"id"`
	Title     string        `yaml:"title"`
	Status    task.Status   `yaml:"status"`
	Priority  task.Priority `yaml:"priority"`
	DueDate   *string       `yaml:"due_date,omitempty"`
	CreatedAt string        `yaml:"created_at"`
}

// ExportMarkdown writes one <id>.md file per task into dir, creating dir if
// needed. It returns the paths written.
func ExportMarkdown(dir string, tasks []*task.Task) ([]string, error) {
	//nolint:gosec // G301: 0755 is appropriate for a user export directory
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	paths := make([]string, 0, len(tasks))
	for _, t := range tasks {
		content, err := SerializeMarkdown(t)
		if err != nil {
			return paths, fmt.Errorf("serialize task %d: %w", t.ID, err)
		}
		path := filepath.Join(dir, strconv.Itoa(t.ID)+markdownExt)
		//nolint:gosec // G306: 0644 is appropriate for user-readable exports
		if err = os.WriteFile(path, content, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ReadMarkdownDir parses every .md file in dir, as written by ExportMarkdown.
// Tasks are returned in ascending order of their exported id.
func ReadMarkdownDir(dir string) ([]*task.Task, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read import dir: %w", err)
	}

	var tasks []*task.Task
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != markdownExt {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, readErr := os.ReadFile(path) //nolint:gosec // G304: path comes from the user's import dir
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		t, parseErr := ParseMarkdown(content)
		if parseErr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, parseErr)
		}
		tasks = append(tasks, t)
	}

	slices.SortStableFunc(tasks, func(a, b *task.Task) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return tasks, nil
}

// SerializeMarkdown converts a Task to markdown with YAML frontmatter.
func SerializeMarkdown(t *task.Task) ([]byte, error) {
	fm := taskFrontmatter{
		ID:        t.ID,
		Title:     t.Title,
		Status:    t.Status,
		Priority:  t.Priority,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if t.DueDate != nil {
		s := t.DueString()
		fm.DueDate = &s
	}

	var buf bytes.Buffer
	buf.WriteString(frontmatterDelimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	buf.WriteString(frontmatterDelimiter + "\n")

	if t.Description != "" {
		buf.WriteString("\n")
		buf.WriteString(t.Description)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ParseMarkdown parses an exported markdown file back into a Task.
func ParseMarkdown(content []byte) (*task.Task, error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return nil, &parseError{"missing YAML frontmatter"}
	}

	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			frontmatterEnd = i
			break
		}
	}
	if frontmatterEnd == 0 {
		return nil, &parseError{"unclosed YAML frontmatter"}
	}

	// Everything between the delimiters is frontmatter; the rest is the description.
	yamlContent := strings.Join(lines[1:frontmatterEnd], "\n")
	var fm taskFrontmatter
	if err := yaml.Unmarshal([]byte(yamlContent), &fm); err != nil {
		return nil, &parseError{"invalid YAML: " + err.Error()}
	}

	createdAt, err := time.Parse(time.RFC3339, fm.CreatedAt)
	if err != nil {
		return nil, &parseError{"invalid created_at: " + err.Error()}
	}

	t := &task.Task{
		ID:        fm.ID,
		Title:     fm.Title,
		Status:    fm.Status,
		Priority:  fm.Priority,
		CreatedAt: createdAt.UTC(),
	}
	if fm.DueDate != nil {
		d, dueErr := task.ParseDate(*fm.DueDate)
		if dueErr != nil {
			return nil, &parseError{"invalid due_date: " + dueErr.Error()}
		}
		t.DueDate = &d
	}

	if frontmatterEnd+1 < len(lines) {
		t.Description = strings.TrimSpace(strings.Join(lines[frontmatterEnd+1:], "\n"))
	}
	return t, nil
}

// parseError represents a markdown parsing error.
type parseError struct {
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}
