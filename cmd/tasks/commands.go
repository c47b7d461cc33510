package main

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abatilo/tasks/internal/storage"
	"github.com/abatilo/tasks/internal/task"
	"github.com/abatilo/tasks/internal/ui"
)

// addCmd implements 'tasks add'.
func addCmd(a *app) *cobra.Command {
	var description, due string
	priority := priorityFlag{value: task.PriorityMedium}
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.store.Add(task.Draft{
				Title:       args[0],
				Description: description,
				Priority:    priority.value,
				DueDate:     due,
			})
			if err != nil {
				return err
			}
			a.print(cmd, a.formatter.FormatTask(t))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().VarP(&priority, "priority", "p", "Priority (high, medium, low)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	return cmd
}

// listCmd implements 'tasks list'.
func listCmd(a *app) *cobra.Command {
	var (
		status   statusFlag
		priority priorityFlag
		order    sortFlag
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks := a.store.Filter(storage.Filter{Priority: priority.value, Status: status.value})
			sortTasks(tasks, order.value)
			a.print(cmd, a.formatter.FormatTaskList(tasks))
			return nil
		},
	}
	cmd.Flags().Var(&status, "status", "Show only tasks with this status (pending, completed)")
	cmd.Flags().VarP(&priority, "priority", "p", "Show only tasks with this priority (high, medium, low)")
	cmd.Flags().Var(&order, "sort", "Order by insertion, priority, or due")
	return cmd
}

// sortTasks reorders tasks in place. Ties keep insertion order.
func sortTasks(tasks []*task.Task, mode sortMode) {
	switch mode {
	case sortPriority:
		slices.SortStableFunc(tasks, func(x, y *task.Task) int {
			return cmp.Compare(task.PriorityOrder(x.Priority), task.PriorityOrder(y.Priority))
		})
	case sortDue:
		// Tasks without a due date go last.
		slices.SortStableFunc(tasks, func(x, y *task.Task) int {
			switch {
			case x.DueDate == nil && y.DueDate == nil:
				return 0
			case x.DueDate == nil:
				return 1
			case y.DueDate == nil:
				return -1
			default:
				return x.DueDate.Compare(*y.DueDate)
			}
		})
	case sortInsertion:
		// Store order is insertion order.
	}
}

// showCmd implements 'tasks show'.
func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.store.Get(id)
			if err != nil {
				return err
			}
			a.print(cmd, a.formatter.FormatTask(t))
			return nil
		},
	}
}

// updateCmd implements 'tasks update'.
func updateCmd(a *app) *cobra.Command {
	var title, description, due string
	var priority priorityFlag
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the title, description, priority, or due date of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var p task.Patch
			flags := cmd.Flags()
			if flags.Changed("title") {
				p.Title = &title
			}
			if flags.Changed("description") {
				p.Description = &description
			}
			if flags.Changed("priority") {
				p.Priority = &priority.value
			}
			if flags.Changed("due") {
				p.DueDate = &due
			}
			if p.IsEmpty() {
				return usageError{err: errors.New("nothing to update; set at least one of --title, --description, --priority, --due")}
			}

			t, err := a.store.Update(id, p)
			if err != nil {
				return err
			}
			a.print(cmd, a.formatter.FormatTask(t))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().VarP(&priority, "priority", "p", "New priority (high, medium, low)")
	cmd.Flags().StringVar(&due, "due", "", `New due date (YYYY-MM-DD, "" clears it)`)
	return cmd
}

// doneCmd implements 'tasks done'.
func doneCmd(a *app) *cobra.Command {
	return setStatusCmd(a, "done <id>", "Mark a task completed", task.StatusCompleted)
}

// undoCmd implements 'tasks undo'.
func undoCmd(a *app) *cobra.Command {
	return setStatusCmd(a, "undo <id>", "Mark a task pending again", task.StatusPending)
}

func setStatusCmd(a *app, use, short string, status task.Status) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.store.SetStatus(id, status)
			if err != nil {
				return err
			}
			a.print(cmd, a.formatter.FormatTask(t))
			return nil
		},
	}
}

// rmCmd implements 'tasks rm'.
func rmCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			t, err := a.store.Get(id)
			if err != nil {
				return err
			}

			if !yes {
				fmt.Fprintf(cmd.ErrOrStderr(), "Delete task %d (%s)? [y/N] ", t.ID, t.Title)
				if !confirm(bufio.NewReader(cmd.InOrStdin())) {
					a.printMessage(cmd, "Kept task %d", t.ID)
					return nil
				}
			}

			if err = a.store.Delete(id); err != nil {
				return err
			}
			a.printMessage(cmd, "Removed task %d", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")
	return cmd
}

// confirm reads one line and reports whether it is an affirmative answer.
func confirm(r *bufio.Reader) bool {
	line, _ := r.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// searchCmd implements 'tasks search'.
func searchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Find tasks whose title or description contains text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.print(cmd, a.formatter.FormatTaskList(a.store.Search(args[0])))
			return nil
		},
	}
}

// statsCmd implements 'tasks stats'.
func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.print(cmd, a.formatter.FormatStats(a.store.Statistics()))
			return nil
		},
	}
}

// exportCmd implements 'tasks export'.
func exportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write each task as a markdown file into dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := storage.ExportMarkdown(args[0], a.store.List())
			if err != nil {
				return err
			}
			a.printMessage(cmd, "Exported %d task(s) to %s", len(paths), args[0])
			return nil
		},
	}
}

// importCmd implements 'tasks import'.
func importCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Add the tasks from markdown files in dir",
		Long:  "Read every .md file written by 'tasks export' in dir and add each as a new task.\nImported tasks get fresh ids; status and creation time are kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := storage.ReadMarkdownDir(args[0])
			if err != nil {
				return err
			}
			imported, err := a.store.Import(parsed)
			if err != nil {
				return err
			}
			a.printMessage(cmd, "Imported %d task(s) from %s", len(imported), args[0])
			return nil
		},
	}
}

// uiCmd implements 'tasks ui'.
func uiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive task browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ui.Run(cmd.Context(), a.store, a.logger)
		},
	}
}
