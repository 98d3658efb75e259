package service

import (
	"fmt"
	"sort"

	"habit-planner/internal/model"
)

// IsDueOn reports whether the task is due on the given local calendar
// date. weekday must be the weekday of that same date (0=Sunday),
// precomputed by the caller so evaluation stays string-only.
//
// Pure: never mutates the task, identical inputs always yield the
// same answer. Malformed descriptors are never due; they are surfaced
// to operators by callers via DescribeInvalid, not by panicking here.
func IsDueOn(task model.Task, date string, weekday int) bool {
	if !task.Recurring {
		// Exact string equality, no fuzzy matching.
		return task.Date != "" && task.Date == date
	}

	if task.Frequency == model.FrequencyEveryOtherDay {
		if task.StartDate == "" {
			return false
		}
		diff, ok := DayDiff(task.StartDate, date)
		if !ok {
			return false
		}
		// Dates before the anchor are never due.
		return diff >= 0 && diff%2 == 0
	}

	// Weekly, and any unknown frequency, use the stored day set.
	return task.HasDay(weekday)
}

// DescribeInvalid returns a non-nil error when the task's recurrence
// descriptor cannot be evaluated. Read paths log it; the evaluator
// itself just reports not-due for such tasks.
func DescribeInvalid(task model.Task) error {
	if !task.Recurring {
		if task.Date == "" {
			return fmt.Errorf("non-recurring task without a date")
		}
		if !ValidDate(task.Date) {
			return fmt.Errorf("malformed date %q", task.Date)
		}
		return nil
	}
	if task.Frequency == model.FrequencyEveryOtherDay {
		if task.StartDate == "" {
			return fmt.Errorf("everyOtherDay task without a start date")
		}
		if !ValidDate(task.StartDate) {
			return fmt.Errorf("malformed start date %q", task.StartDate)
		}
		return nil
	}
	if len(task.Days) == 0 {
		return fmt.Errorf("weekly task with an empty day set")
	}
	return nil
}

// SortByPriority orders tasks for display: priority ascending, ties
// keep insertion order.
func SortByPriority(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority < tasks[j].Priority
	})
}

// SortByCategory groups tasks by category name (lexicographic,
// uncategorized last) and orders by priority within each group.
func SortByCategory(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		ci, cj := tasks[i].Category, tasks[j].Category
		if ci != cj {
			if ci == "" {
				return false
			}
			if cj == "" {
				return true
			}
			return ci < cj
		}
		return tasks[i].Priority < tasks[j].Priority
	})
}
