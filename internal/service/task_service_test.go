package service

import (
	"context"
	"errors"
	"testing"

	"kanban/internal/domain"
)

type taskFixture struct {
	svc   *TaskService
	store *memoryStore
	sink  *recordingSink
	alice *domain.User
	bob   *domain.User
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	store := newMemoryStore()
	sink := &recordingSink{}
	svc := NewTaskService(memoryTasks{store}, NewAuditServiceWithSink(sink))
	svc.now = stepClock()

	users := memoryUsers{store}
	alice := &domain.User{Username: "alice", PasswordHash: "x"}
	bob := &domain.User{Username: "bob", PasswordHash: "x"}
	for _, u := range []*domain.User{alice, bob} {
		if err := users.Create(context.Background(), u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	return &taskFixture{svc: svc, store: store, sink: sink, alice: alice, bob: bob}
}

func (f *taskFixture) create(t *testing.T, owner *domain.User, title string) *domain.Task {
	t.Helper()
	task, err := f.svc.Create(context.Background(), owner, domain.TaskInput{
		Title:    title,
		Status:   "todo",
		Priority: "low",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func TestAuthorize(t *testing.T) {
	owner := &domain.User{ID: 1}
	other := &domain.User{ID: 2}
	task := &domain.Task{ID: 10, AuthorID: 1}

	if got, err := Authorize(task, owner); err != nil || got != task {
		t.Fatalf("owner: got %v, %v", got, err)
	}
	if _, err := Authorize(task, other); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("other: expected ErrForbidden, got %v", err)
	}
	if _, err := Authorize(nil, owner); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("nil task: expected ErrNotFound, got %v", err)
	}
	if _, err := Authorize(task, nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("nil principal: expected ErrForbidden, got %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	f := newTaskFixture(t)

	cases := []struct {
		name string
		in   domain.TaskInput
		want string
	}{
		{"missing title", domain.TaskInput{Status: "todo"}, "Title is required."},
		{"missing status", domain.TaskInput{Title: "x"}, "Status is required."},
		{"unknown status", domain.TaskInput{Title: "x", Status: "later"}, "Status must be one of todo, doing, done."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), f.alice, tc.in)
			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) || vErr.Message != tc.want {
				t.Fatalf("got %v; want %q", err, tc.want)
			}
		})
	}

	if len(f.store.tasks) != 0 {
		t.Fatalf("expected no tasks persisted, got %d", len(f.store.tasks))
	}
}

func TestList_OnlyOwnTasksOldestFirst(t *testing.T) {
	f := newTaskFixture(t)

	first := f.create(t, f.alice, "first")
	f.create(t, f.bob, "bob's")
	second := f.create(t, f.alice, "second")

	tasks, err := f.svc.List(context.Background(), f.alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != first.ID || tasks[1].ID != second.ID {
		t.Fatalf("unexpected order: %d, %d", tasks[0].ID, tasks[1].ID)
	}
	for _, task := range tasks {
		if task.AuthorID != f.alice.ID {
			t.Fatalf("listed task %d belongs to %d", task.ID, task.AuthorID)
		}
	}
}

func TestUpdate_ResortsAndOverwrites(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	first := f.create(t, f.alice, "first")
	f.create(t, f.alice, "second")

	updated, err := f.svc.Update(ctx, f.alice, first.ID, domain.TaskInput{
		Title:       "first updated",
		Description: "desc",
		Status:      "doing",
		Priority:    "high",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.StatusDoing || updated.Priority != "high" || updated.Description != "desc" {
		t.Fatalf("fields not overwritten: %+v", updated)
	}

	tasks, err := f.svc.List(ctx, f.alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tasks[len(tasks)-1].ID != first.ID {
		t.Fatalf("updated task should sort last")
	}
}

func TestUpdate_Errors(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	task := f.create(t, f.alice, "mine")

	_, err := f.svc.Update(ctx, f.alice, task.ID, domain.TaskInput{Status: "todo"})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	_, err = f.svc.Update(ctx, f.alice, task.ID, domain.TaskInput{Title: "x"})
	if !errors.As(err, &vErr) || vErr.Message != "Status is required." {
		t.Fatalf("empty status: got %v", err)
	}

	if _, err := f.svc.Update(ctx, f.bob, task.ID, domain.TaskInput{Title: "stolen", Status: "done"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.Update(ctx, f.alice, 999, domain.TaskInput{Title: "x", Status: "done"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	stored := f.store.tasks[task.ID]
	if stored.Title != "mine" {
		t.Fatalf("task changed after rejected updates: %q", stored.Title)
	}
}

func TestSetStatus_AnyTransition(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	task := f.create(t, f.alice, "flow")

	steps := []struct {
		do   func() error
		want domain.Status
	}{
		{func() error { return f.svc.MarkDone(ctx, f.alice, task.ID) }, domain.StatusDone},
		{func() error { return f.svc.MarkDoing(ctx, f.alice, task.ID) }, domain.StatusDoing},
		{func() error { return f.svc.SetStatus(ctx, f.alice, task.ID, domain.StatusTodo) }, domain.StatusTodo},
	}

	prev := f.store.tasks[task.ID].Created
	for i, step := range steps {
		if err := step.do(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		got := f.store.tasks[task.ID]
		if got.Status != step.want {
			t.Fatalf("step %d: status = %s; want %s", i, got.Status, step.want)
		}
		if !got.Created.After(prev) {
			t.Fatalf("step %d: created not refreshed", i)
		}
		prev = got.Created
	}
}

func TestSetStatus_Forbidden(t *testing.T) {
	f := newTaskFixture(t)
	task := f.create(t, f.alice, "mine")

	if err := f.svc.MarkDone(context.Background(), f.bob, task.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if f.store.tasks[task.ID].Status != domain.StatusTodo {
		t.Fatalf("status changed by non-owner")
	}
}

func TestDelete(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	task := f.create(t, f.alice, "gone")

	if err := f.svc.Delete(ctx, f.bob, task.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.svc.Delete(ctx, f.alice, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.svc.Delete(ctx, f.alice, task.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	want := []string{
		domain.AuditActionTaskCreate,
		domain.AuditActionTaskDenied,
		domain.AuditActionTaskDelete,
	}
	got := f.sink.actions()
	if len(got) != len(want) {
		t.Fatalf("audit actions = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("audit actions = %v; want %v", got, want)
		}
	}
}
