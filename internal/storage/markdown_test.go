//nolint:testpackage // Tests require internal access for thorough testing
package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abatilo/tasks/internal/task"
)

func TestParseMarkdown(t *testing.T) {
	content := []byte(`---
id: 2
title: Pay rent
status: Pending
priority: High
due_date: "2025-01-01"
created_at: 2024-01-15T10:30:00Z
---

due monthly
`)

	tk, err := ParseMarkdown(content)
	if err != nil {
		t.Fatalf("ParseMarkdown failed: %v", err)
	}

	if tk.ID != 2 {
		t.Errorf("ID = %d, want 2", tk.ID)
	}
	if tk.Title != "Pay rent" {
		t.Errorf("Title = %q, want %q", tk.Title, "Pay rent")
	}
	if tk.Status != task.StatusPending {
		t.Errorf("Status = %q, want %q", tk.Status, task.StatusPending)
	}
	if tk.Priority != task.PriorityHigh {
		t.Errorf("Priority = %q, want %q", tk.Priority, task.PriorityHigh)
	}
	if tk.DueString() != "2025-01-01" {
		t.Errorf("DueDate = %q, want %q", tk.DueString(), "2025-01-01")
	}
	if tk.Description != "due monthly" {
		t.Errorf("Description = %q, want %q", tk.Description, "due monthly")
	}
}

func TestParseMarkdownErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no frontmatter", "just text\n"},
		{"unclosed frontmatter", "---\nid: 1\n"},
		{"bad created_at", "---\nid: 1\ntitle: a\ncreated_at: soon\n---\n"},
		{"bad due_date", "---\nid: 1\ntitle: a\ndue_date: \"2025-02-30\"\ncreated_at: 2024-01-15T10:30:00Z\n---\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMarkdown([]byte(tt.content)); err == nil {
				t.Error("ParseMarkdown should fail")
			}
		})
	}
}

func TestSerializeMarkdownRoundTrip(t *testing.T) {
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := &task.Task{
		ID:          7,
		Title:       "Test task",
		Description: "Description here",
		Priority:    task.PriorityLow,
		DueDate:     &due,
		Status:      task.StatusCompleted,
		CreatedAt:   time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}

	data, err := SerializeMarkdown(orig)
	if err != nil {
		t.Fatalf("SerializeMarkdown failed: %v", err)
	}

	parsed, err := ParseMarkdown(data)
	if err != nil {
		t.Fatalf("ParseMarkdown failed: %v", err)
	}

	if parsed.ID != orig.ID || parsed.Title != orig.Title || parsed.Description != orig.Description {
		t.Errorf("Round-trip = %+v, want %+v", parsed, orig)
	}
	if parsed.Status != orig.Status || parsed.Priority != orig.Priority {
		t.Errorf("Round-trip enums = %q/%q, want %q/%q", parsed.Status, parsed.Priority, orig.Status, orig.Priority)
	}
	if parsed.DueString() != "2025-01-01" || !parsed.CreatedAt.Equal(orig.CreatedAt) {
		t.Errorf("Round-trip dates = %s/%v", parsed.DueString(), parsed.CreatedAt)
	}
}

func TestExportMarkdown(t *testing.T) {
	store, _ := newTestStore(t)
	for _, title := range []string{"Buy milk", "Pay rent"} {
		if _, err := store.Add(task.Draft{Title: title, Priority: task.PriorityMedium}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	dir := filepath.Join(t.TempDir(), "export")
	paths, err := ExportMarkdown(dir, store.List())
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("wrote %d files, want 2", len(paths))
	}
	if filepath.Base(paths[1]) != "2.md" {
		t.Errorf("second file = %s, want 2.md", filepath.Base(paths[1]))
	}

	data, err := os.ReadFile(paths[1])
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	tk, err := ParseMarkdown(data)
	if err != nil {
		t.Fatalf("ParseMarkdown failed: %v", err)
	}
	if tk.Title != "Pay rent" {
		t.Errorf("exported title = %q, want %q", tk.Title, "Pay rent")
	}
}

func TestReadMarkdownDir(t *testing.T) {
	store, _ := newTestStore(t)
	for _, title := range []string{"Buy milk", "Pay rent", "Stretch"} {
		if _, err := store.Add(task.Draft{Title: title, Priority: task.PriorityLow}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	dir := t.TempDir()
	if _, err := ExportMarkdown(dir, store.List()); err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	// Files that are not markdown, and subdirectories, are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.md"), 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	tasks, err := ReadMarkdownDir(dir)
	if err != nil {
		t.Fatalf("ReadMarkdownDir failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("read %d tasks, want 3", len(tasks))
	}
	for i, want := range []string{"Buy milk", "Pay rent", "Stretch"} {
		if tasks[i].ID != i+1 || tasks[i].Title != want {
			t.Errorf("tasks[%d] = %d %q, want %d %q", i, tasks[i].ID, tasks[i].Title, i+1, want)
		}
	}
}

func TestReadMarkdownDirErrors(t *testing.T) {
	if _, err := ReadMarkdownDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing dir")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "1.md"), []byte("no frontmatter\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := ReadMarkdownDir(dir); err == nil {
		t.Error("expected error for malformed markdown file")
	}
}
