package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"studypal/internal/core"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	s.now = func() time.Time { return testNow }
	return s
}

func validSchedule() core.Schedule {
	return core.Schedule{
		Subject: "math",
		Topic:   "linear equations",
		Date:    "2025-06-20",
		Time:    "14:30",
	}
}

func TestCreateScheduleDefaults(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateSchedule(context.Background(), "user-1", validSchedule())
	if err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}

	if created.ID == "" {
		t.Error("created schedule should have an ID")
	}
	if created.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", created.UserID)
	}
	if created.Priority != core.PriorityMedium {
		t.Errorf("Priority = %q, want medium default", created.Priority)
	}
	if created.Status != core.StatusPending {
		t.Errorf("Status = %q, want pending", created.Status)
	}
	if !created.CreatedAt.Equal(testNow) || !created.UpdatedAt.Equal(testNow) {
		t.Errorf("timestamps = %v/%v, want %v", created.CreatedAt, created.UpdatedAt, testNow)
	}
}

func TestCreateScheduleValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*core.Schedule)
	}{
		{"past date", func(sc *core.Schedule) { sc.Date = "2025-06-14" }},
		{"bad date format", func(sc *core.Schedule) { sc.Date = "06/20/2025" }},
		{"bad time", func(sc *core.Schedule) { sc.Time = "25:99" }},
		{"short subject", func(sc *core.Schedule) { sc.Subject = "x" }},
		{"short topic", func(sc *core.Schedule) { sc.Topic = "y" }},
		{"bad priority", func(sc *core.Schedule) { sc.Priority = "urgent" }},
	}

	for _, tt := range tests {
		sched := validSchedule()
		tt.mutate(&sched)
		if _, err := s.CreateSchedule(ctx, "user-1", sched); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: got %v, want ErrInvalidInput", tt.name, err)
		}
	}
}

func TestCreateScheduleAcceptsToday(t *testing.T) {
	s := newTestStore(t)

	sched := validSchedule()
	sched.Date = "2025-06-15"
	if _, err := s.CreateSchedule(context.Background(), "user-1", sched); err != nil {
		t.Fatalf("today's date should be accepted: %v", err)
	}
}

func TestListSchedulesOrderAndFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seed := []core.Schedule{
		{Subject: "math", Topic: "algebra", Date: "2025-06-22", Time: "09:00"},
		{Subject: "physics", Topic: "optics", Date: "2025-06-20", Time: "16:00"},
		{Subject: "math", Topic: "geometry", Date: "2025-06-20", Time: "08:00"},
	}
	for _, sched := range seed {
		if _, err := s.CreateSchedule(ctx, "user-1", sched); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	// Another user's schedule must not leak into results.
	if _, err := s.CreateSchedule(ctx, "user-2", validSchedule()); err != nil {
		t.Fatalf("seed other user: %v", err)
	}

	all, err := s.ListSchedules(ctx, "user-1", ScheduleFilter{})
	if err != nil {
		t.Fatalf("ListSchedules: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d schedules, want 3", len(all))
	}
	wantTopics := []string{"geometry", "optics", "algebra"}
	for i, want := range wantTopics {
		if all[i].Topic != want {
			t.Errorf("position %d: topic = %q, want %q", i, all[i].Topic, want)
		}
	}

	math, err := s.ListSchedules(ctx, "user-1", ScheduleFilter{Subject: "math"})
	if err != nil {
		t.Fatalf("ListSchedules subject filter: %v", err)
	}
	if len(math) != 2 {
		t.Errorf("subject filter: got %d, want 2", len(math))
	}

	byDate, err := s.ListSchedules(ctx, "user-1", ScheduleFilter{Date: "2025-06-20"})
	if err != nil {
		t.Fatalf("ListSchedules date filter: %v", err)
	}
	if len(byDate) != 2 {
		t.Errorf("date filter: got %d, want 2", len(byDate))
	}

	limited, err := s.ListSchedules(ctx, "user-1", ScheduleFilter{Limit: 1})
	if err != nil {
		t.Fatalf("ListSchedules limit: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit 1: got %d schedules", len(limited))
	}
}

func TestGetScheduleOwnership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateSchedule(ctx, "user-1", validSchedule())
	if err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}

	got, err := s.GetSchedule(ctx, "user-1", created.ID)
	if err != nil {
		t.Fatalf("GetSchedule: %v", err)
	}
	if got.Topic != created.Topic {
		t.Errorf("Topic = %q, want %q", got.Topic, created.Topic)
	}

	if _, err := s.GetSchedule(ctx, "user-2", created.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("other user's get: got %v, want ErrNotOwner", err)
	}
	if _, err := s.GetSchedule(ctx, "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: got %v, want ErrNotFound", err)
	}
}

func TestUpdateSchedulePartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateSchedule(ctx, "user-1", validSchedule())
	if err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}

	status := core.StatusCompleted
	updated, err := s.UpdateSchedule(ctx, "user-1", created.ID, ScheduleUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateSchedule: %v", err)
	}
	if updated.Status != core.StatusCompleted {
		t.Errorf("Status = %q, want completed", updated.Status)
	}
	if updated.Subject != created.Subject {
		t.Errorf("Subject changed unexpectedly to %q", updated.Subject)
	}

	bad := "someday"
	if _, err := s.UpdateSchedule(ctx, "user-1", created.ID, ScheduleUpdate{Date: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad date update: got %v, want ErrInvalidInput", err)
	}

	if _, err := s.UpdateSchedule(ctx, "user-2", created.ID, ScheduleUpdate{Status: &status}); !errors.Is(err, ErrNotOwner) {
		t.Errorf("other user's update: got %v, want ErrNotOwner", err)
	}
}

func TestDeleteSchedule(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateSchedule(ctx, "user-1", validSchedule())
	if err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}

	if err := s.DeleteSchedule(ctx, "user-2", created.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("other user's delete: got %v, want ErrNotOwner", err)
	}

	if err := s.DeleteSchedule(ctx, "user-1", created.ID); err != nil {
		t.Fatalf("DeleteSchedule: %v", err)
	}
	if _, err := s.GetSchedule(ctx, "user-1", created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: got %v, want ErrNotFound", err)
	}
}

func TestUpcomingTasksWindow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inWindow := validSchedule()
	inWindow.Date = "2025-06-18"
	created, err := s.CreateSchedule(ctx, "user-1", inWindow)
	if err != nil {
		t.Fatalf("seed in-window: %v", err)
	}

	beyond := validSchedule()
	beyond.Date = "2025-06-30"
	if _, err := s.CreateSchedule(ctx, "user-1", beyond); err != nil {
		t.Fatalf("seed beyond-window: %v", err)
	}

	done := validSchedule()
	done.Date = "2025-06-17"
	doneCreated, err := s.CreateSchedule(ctx, "user-1", done)
	if err != nil {
		t.Fatalf("seed completed: %v", err)
	}
	status := core.StatusCompleted
	if _, err := s.UpdateSchedule(ctx, "user-1", doneCreated.ID, ScheduleUpdate{Status: &status}); err != nil {
		t.Fatalf("complete task: %v", err)
	}

	tasks, err := s.UpcomingTasks(ctx, "user-1")
	if err != nil {
		t.Fatalf("UpcomingTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d upcoming tasks, want 1", len(tasks))
	}
	if tasks[0].ID != created.ID {
		t.Errorf("upcoming task ID = %q, want %q", tasks[0].ID, created.ID)
	}
}

func TestScheduleStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	subjects := []string{"math", "math", "physics"}
	var ids []string
	for _, subject := range subjects {
		sched := validSchedule()
		sched.Subject = subject
		created, err := s.CreateSchedule(ctx, "user-1", sched)
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		ids = append(ids, created.ID)
	}

	status := core.StatusCompleted
	if _, err := s.UpdateSchedule(ctx, "user-1", ids[0], ScheduleUpdate{Status: &status}); err != nil {
		t.Fatalf("complete task: %v", err)
	}

	stats, err := s.ScheduleStats(ctx, "user-1")
	if err != nil {
		t.Fatalf("ScheduleStats: %v", err)
	}

	if stats.TotalSchedules != 3 {
		t.Errorf("TotalSchedules = %d, want 3", stats.TotalSchedules)
	}
	if stats.PendingTasks != 2 || stats.CompletedTasks != 1 || stats.MissedTasks != 0 {
		t.Errorf("status counts = %d/%d/%d, want 2/1/0",
			stats.PendingTasks, stats.CompletedTasks, stats.MissedTasks)
	}
	if stats.SubjectBreakdown["math"] != 2 || stats.SubjectBreakdown["physics"] != 1 {
		t.Errorf("subject breakdown = %v", stats.SubjectBreakdown)
	}
}
