package main

import (
	"strings"

	"github.com/spf13/pflag"

	taskerrors "github.com/abatilo/tasks/internal/errors"
	"github.com/abatilo/tasks/internal/task"
)

// priorityFlag accepts a priority name in any case.
type priorityFlag struct {
	value task.Priority
}

var _ pflag.Value = (*priorityFlag)(nil)

func (f *priorityFlag) String() string { return string(f.value) }

func (f *priorityFlag) Set(s string) error {
	p, ok := task.ParsePriority(s)
	if !ok {
		return taskerrors.ValidationError{Field: "priority", Value: s, Reason: "must be one of High, Medium, Low"}
	}
	f.value = p
	return nil
}

func (f *priorityFlag) Type() string { return "priority" }

// statusFlag accepts a status name in any case. The zero value matches any status.
type statusFlag struct {
	value task.Status
}

var _ pflag.Value = (*statusFlag)(nil)

func (f *statusFlag) String() string { return string(f.value) }

func (f *statusFlag) Set(s string) error {
	st, ok := task.ParseStatus(s)
	if !ok {
		return taskerrors.ValidationError{Field: "status", Value: s, Reason: "must be one of Pending, Completed"}
	}
	f.value = st
	return nil
}

func (f *statusFlag) Type() string { return "status" }

type sortMode string

const (
	sortInsertion sortMode = "insertion"
	sortPriority  sortMode = "priority"
	sortDue       sortMode = "due"
)

// sortFlag selects the ordering used by list.
type sortFlag struct {
	value sortMode
}

var _ pflag.Value = (*sortFlag)(nil)

func (f *sortFlag) String() string {
	if f.value == "" {
		return string(sortInsertion)
	}
	return string(f.value)
}

func (f *sortFlag) Set(s string) error {
	switch m := sortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case sortInsertion, sortPriority, sortDue:
		f.value = m
		return nil
	default:
		return taskerrors.ValidationError{Field: "sort", Value: s, Reason: "must be one of insertion, priority, due"}
	}
}

func (f *sortFlag) Type() string { return "order" }
