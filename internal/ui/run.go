// Package ui provides the interactive terminal front-end for the task store.
package ui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/abatilo/tasks/internal/storage"
)

// ErrNoTTY is returned by Run when stdin or stdout is not a terminal.
var ErrNoTTY = errors.New("ui requires an interactive terminal")

// Run opens the task browser and blocks until the user quits or ctx ends.
func Run(ctx context.Context, store *storage.Store, logger *log.Logger) error {
	if !IsTTY(os.Stdin) || !IsTTY(os.Stdout) {
		return ErrNoTTY
	}
	if ctx == nil {
		ctx = context.Background()
	}

	program := tea.NewProgram(NewModel(store, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd fits in int
}
