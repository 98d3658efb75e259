package service

import (
	"reflect"
	"testing"

	"habit-planner/internal/model"
)

func TestWeeklyDueMatchesDaySet(t *testing.T) {
	t.Parallel()
	// Every subset of weekdays, including the empty and full sets.
	for mask := 0; mask < 1<<7; mask++ {
		var days []int
		for d := 0; d < 7; d++ {
			if mask&(1<<d) != 0 {
				days = append(days, d)
			}
		}
		task := model.Task{Recurring: true, Frequency: model.FrequencyWeekly, Days: days}
		for weekday := 0; weekday < 7; weekday++ {
			want := mask&(1<<weekday) != 0
			if got := IsDueOn(task, "2024-06-05", weekday); got != want {
				t.Fatalf("days=%v weekday=%d: due = %v, want %v", days, weekday, got, want)
			}
		}
	}
}

func TestWeeklyScenarioMonWedFri(t *testing.T) {
	t.Parallel()
	task := model.Task{Recurring: true, Frequency: model.FrequencyWeekly, Days: []int{1, 3, 5}}

	// 2024-06-05 is a Wednesday, 2024-06-06 a Thursday.
	if !IsDueOn(task, "2024-06-05", 3) {
		t.Error("expected due on Wednesday")
	}
	if IsDueOn(task, "2024-06-06", 4) {
		t.Error("expected not due on Thursday")
	}
}

func TestEveryOtherDayCadence(t *testing.T) {
	t.Parallel()
	task := model.Task{Recurring: true, Frequency: model.FrequencyEveryOtherDay, StartDate: "2024-01-01"}

	tests := []struct {
		date    string
		weekday int
		due     bool
	}{
		{"2024-01-01", 1, true},
		{"2024-01-02", 2, false},
		{"2024-01-03", 3, true},
		{"2024-01-04", 4, false},
		{"2024-01-31", 3, true}, // even offset across the month
		// Anything before the anchor is never due, even on the cadence.
		{"2023-12-31", 0, false},
		{"2023-12-30", 6, false},
	}
	for _, tt := range tests {
		if got := IsDueOn(task, tt.date, tt.weekday); got != tt.due {
			t.Errorf("IsDueOn(%s) = %v, want %v", tt.date, got, tt.due)
		}
	}
}

func TestNonRecurringExactDateOnly(t *testing.T) {
	t.Parallel()
	task := model.Task{Recurring: false, Date: "2024-05-10"}

	if !IsDueOn(task, "2024-05-10", 5) {
		t.Error("expected due on its own date")
	}
	for _, date := range []string{"2024-05-09", "2024-05-11", "2025-05-10", ""} {
		if IsDueOn(task, date, 5) {
			t.Errorf("expected not due on %q", date)
		}
	}

	// A task without a date matches nothing, not even an empty query.
	empty := model.Task{Recurring: false}
	if IsDueOn(empty, "", 0) {
		t.Error("dateless task must never be due")
	}
}

func TestUnknownFrequencyUsesWeeklySemantics(t *testing.T) {
	t.Parallel()
	for _, freq := range []string{"", "daily", "fortnightly"} {
		task := model.Task{Recurring: true, Frequency: freq, Days: []int{0, 1, 2, 3, 4, 5, 6}}
		for weekday := 0; weekday < 7; weekday++ {
			if !IsDueOn(task, "2024-06-05", weekday) {
				t.Errorf("frequency %q with full day set: not due on weekday %d", freq, weekday)
			}
		}
	}
}

func TestMalformedDescriptorsNeverDue(t *testing.T) {
	t.Parallel()
	tasks := []model.Task{
		{Recurring: true, Frequency: model.FrequencyEveryOtherDay},                          // missing anchor
		{Recurring: true, Frequency: model.FrequencyEveryOtherDay, StartDate: "yesterday"},  // unparseable anchor
		{Recurring: true, Frequency: model.FrequencyEveryOtherDay, StartDate: "2024-13-40"}, // impossible date
	}
	for _, task := range tasks {
		for weekday := 0; weekday < 7; weekday++ {
			if IsDueOn(task, "2024-06-05", weekday) {
				t.Errorf("malformed task %+v reported due", task)
			}
		}
		if DescribeInvalid(task) == nil {
			t.Errorf("DescribeInvalid(%+v) = nil, want error", task)
		}
	}
}

func TestDescribeInvalidAcceptsWellFormedTasks(t *testing.T) {
	t.Parallel()
	tasks := []model.Task{
		{Recurring: false, Date: "2024-05-10"},
		{Recurring: true, Frequency: model.FrequencyWeekly, Days: []int{2}},
		{Recurring: true, Frequency: model.FrequencyEveryOtherDay, StartDate: "2024-01-01"},
	}
	for _, task := range tasks {
		if err := DescribeInvalid(task); err != nil {
			t.Errorf("DescribeInvalid(%+v) = %v, want nil", task, err)
		}
	}
}

func TestIsDueOnIsPure(t *testing.T) {
	t.Parallel()
	task := model.Task{
		Recurring:      true,
		Frequency:      model.FrequencyEveryOtherDay,
		StartDate:      "2024-01-01",
		Days:           []int{1, 2},
		CompletedDates: []string{"2024-01-01"},
	}
	snapshot := task
	snapshot.Days = append([]int(nil), task.Days...)
	snapshot.CompletedDates = append([]string(nil), task.CompletedDates...)

	first := IsDueOn(task, "2024-01-03", 3)
	for i := 0; i < 10; i++ {
		if IsDueOn(task, "2024-01-03", 3) != first {
			t.Fatal("repeated evaluation changed its answer")
		}
	}
	if !reflect.DeepEqual(task, snapshot) {
		t.Fatalf("task mutated by evaluation: %+v != %+v", task, snapshot)
	}
}

func TestSortByPriorityStable(t *testing.T) {
	t.Parallel()
	tasks := []model.Task{
		{ID: 1, Priority: 2},
		{ID: 2, Priority: 0},
		{ID: 3, Priority: 2}, // same priority as ID 1, must stay after it
		{ID: 4, Priority: 1},
	}
	SortByPriority(tasks)

	want := []uint{2, 4, 1, 3}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Fatalf("position %d: got ID %d, want %d (order %v)", i, tasks[i].ID, id, tasks)
		}
	}
}

func TestSortByCategoryGroupsWithPriorityTieBreak(t *testing.T) {
	t.Parallel()
	tasks := []model.Task{
		{ID: 1, Priority: 1, Category: "work"},
		{ID: 2, Priority: 0, Category: ""},
		{ID: 3, Priority: 0, Category: "health"},
		{ID: 4, Priority: 0, Category: "work"},
		{ID: 5, Priority: 0, Category: "health"}, // equal to ID 3, keeps input order
	}
	SortByCategory(tasks)

	want := []uint{3, 5, 4, 1, 2} // health group, work group, uncategorized last
	for i, id := range want {
		if tasks[i].ID != id {
			t.Fatalf("position %d: got ID %d, want %d (order %v)", i, tasks[i].ID, id, tasks)
		}
	}
}
