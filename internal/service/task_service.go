package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"habit-planner/internal/model"
)

// TaskStore is the task persistence surface the services consume.
// *repository.TaskRepository implements it.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	ListByUser(ctx context.Context, userID uint) ([]model.Task, error)
	FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error)
	Save(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, userID, taskID uint) error
}

// CategoryStore is implemented by *repository.CategoryRepository.
type CategoryStore interface {
	GetOrCreate(ctx context.Context, userID uint, name, color string) (*model.Category, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Category, error)
	Delete(ctx context.Context, userID, categoryID uint) error
}

// TaskInput represents data required to create or update a task.
type TaskInput struct {
	Text         string
	Recurring    bool
	Frequency    string
	Days         []int
	StartDate    string
	Date         string
	Priority     int
	Category     string
	AlertEnabled bool
	AlertTime    string
	AlertMode    string
}

// TaskService wraps task-related business logic.
type TaskService struct {
	tasks      TaskStore
	categories CategoryStore
	log        zerolog.Logger
}

func NewTaskService(tasks TaskStore, categories CategoryStore, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, categories: categories, log: log}
}

// CreateTask validates the recurrence descriptor and stores the task.
// Exactly one of the descriptor fields must hold: a day set for
// weekly, a start date for everyOtherDay, a date for one-offs.
func (s *TaskService) CreateTask(ctx context.Context, user *model.User, input TaskInput) (*model.Task, error) {
	if input.Text == "" {
		return nil, fmt.Errorf("text is required")
	}

	task := model.Task{
		UserID:       user.ID,
		Text:         input.Text,
		Recurring:    input.Recurring,
		Priority:     input.Priority,
		Category:     input.Category,
		AlertEnabled: input.AlertEnabled,
		AlertTime:    input.AlertTime,
		AlertMode:    input.AlertMode,
	}

	if input.Recurring {
		frequency := input.Frequency
		if frequency == "" {
			frequency = model.FrequencyWeekly
		}
		task.Frequency = frequency
		if frequency == model.FrequencyEveryOtherDay {
			if !ValidDate(input.StartDate) {
				return nil, fmt.Errorf("everyOtherDay requires a start date in YYYY-MM-DD form")
			}
			task.StartDate = input.StartDate
			// Days kept for display only.
			task.Days = normalizeDays(input.Days)
		} else {
			days := normalizeDays(input.Days)
			if len(days) == 0 {
				return nil, fmt.Errorf("weekly recurrence requires at least one weekday")
			}
			task.Days = days
		}
	} else {
		if !ValidDate(input.Date) {
			return nil, fmt.Errorf("one-off task requires a date in YYYY-MM-DD form")
		}
		task.Date = input.Date
	}

	if input.AlertEnabled {
		if !ValidClock(input.AlertTime) {
			return nil, fmt.Errorf("alert time must be zero-padded HH:mm")
		}
		if task.AlertMode == "" {
			task.AlertMode = model.AlertModeBoth
		}
	}

	if task.Category != "" {
		if _, err := s.categories.GetOrCreate(ctx, user.ID, task.Category, ""); err != nil {
			return nil, err
		}
	}

	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListDueOn returns the user's tasks due on the given local date,
// ordered for display. With groupByCategory the tasks come grouped by
// category name with priority as the tie-break inside a group;
// otherwise priority alone decides. Both orderings are stable.
// Tasks with descriptors that cannot be evaluated are logged and
// reported as not due.
func (s *TaskService) ListDueOn(ctx context.Context, userID uint, local LocalTime, groupByCategory bool) ([]model.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	due := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if err := DescribeInvalid(task); err != nil {
			s.log.Warn().Uint("task_id", task.ID).Uint("user_id", userID).
				Err(err).Msg("skipping task with invalid recurrence descriptor")
			continue
		}
		if IsDueOn(task, local.Date, local.Weekday) {
			due = append(due, task)
		}
	}

	if groupByCategory {
		SortByCategory(due)
	} else {
		SortByPriority(due)
	}
	return due, nil
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	return s.tasks.FindByID(ctx, userID, taskID)
}

// CompleteOn records the task as done for one local calendar date.
// Recurring tasks complete independently per due day; repeating the
// same date is a no-op.
func (s *TaskService) CompleteOn(ctx context.Context, userID, taskID uint, date string) (*model.Task, error) {
	if !ValidDate(date) {
		return nil, fmt.Errorf("completion date must be YYYY-MM-DD")
	}

	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.CompletedOn(date) {
		return task, nil
	}

	task.CompletedDates = append(task.CompletedDates, date)
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UncompleteOn removes a completion mark for one date.
func (s *TaskService) UncompleteOn(ctx context.Context, userID, taskID uint, date string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if !task.CompletedOn(date) {
		return task, nil
	}

	kept := task.CompletedDates[:0]
	for _, d := range task.CompletedDates {
		if d != date {
			kept = append(kept, d)
		}
	}
	task.CompletedDates = kept
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Reorder updates the priority of a batch of tasks in one pass,
// following the order of the given IDs.
func (s *TaskService) Reorder(ctx context.Context, userID uint, taskIDs []uint) error {
	for i, id := range taskIDs {
		task, err := s.tasks.FindByID(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("reorder task %d: %w", id, err)
		}
		if task.Priority == i {
			continue
		}
		task.Priority = i
		if err := s.tasks.Save(ctx, task); err != nil {
			return fmt.Errorf("reorder task %d: %w", id, err)
		}
	}
	return nil
}

// DeleteTask removes a task completely.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uint) error {
	return s.tasks.Delete(ctx, userID, taskID)
}

// normalizeDays collapses duplicates, drops out-of-range values and
// sorts ascending. Order is irrelevant for evaluation; sorting just
// keeps the stored form canonical.
func normalizeDays(days []int) []int {
	seen := [7]bool{}
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}
