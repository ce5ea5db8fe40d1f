package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kanban/internal/domain"
)

const (
	msgTitleRequired  = "Title is required."
	msgStatusRequired = "Status is required."
	msgStatusInvalid  = "Status must be one of todo, doing, done."
)

// TaskService holds the board operations. Every call is made on behalf of
// an authenticated principal and only ever touches that principal's tasks.
type TaskService struct {
	tasks TaskStore
	audit *AuditService
	now   func() time.Time
}

func NewTaskService(tasks TaskStore, audit *AuditService) *TaskService {
	return &TaskService{
		tasks: tasks,
		audit: audit,
		now:   time.Now,
	}
}

// Authorize is the ownership check shared by every single-task operation.
func Authorize(task *domain.Task, principal *domain.User) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrNotFound
	}
	if principal == nil || task.AuthorID != principal.ID {
		return nil, domain.ErrForbidden
	}
	return task, nil
}

// List returns the principal's tasks, oldest first.
func (s *TaskService) List(ctx context.Context, principal *domain.User) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByAuthor(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Get loads a task and checks that principal owns it.
func (s *TaskService) Get(ctx context.Context, principal *domain.User, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	task, err = Authorize(task, principal)
	if err != nil {
		s.audit.LogTask(ctx, principal.ID, domain.AuditActionTaskDenied, id, nil)
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, principal *domain.User, in domain.TaskInput) (*domain.Task, error) {
	if in.Title == "" {
		return nil, &domain.ValidationError{Message: msgTitleRequired}
	}
	if in.Status == "" {
		return nil, &domain.ValidationError{Message: msgStatusRequired}
	}
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, &domain.ValidationError{Message: msgStatusInvalid}
	}

	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    in.Priority,
		AuthorID:    principal.ID,
		Created:     s.now().UTC(),
		Username:    principal.Username,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.audit.LogTask(ctx, principal.ID, domain.AuditActionTaskCreate, task.ID, map[string]any{"status": task.Status.String()})
	return task, nil
}

// Update overwrites every editable field and moves the task to the end of
// the created ordering.
func (s *TaskService) Update(ctx context.Context, principal *domain.User, id int64, in domain.TaskInput) (*domain.Task, error) {
	task, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if in.Title == "" {
		return nil, &domain.ValidationError{Message: msgTitleRequired}
	}
	if in.Status == "" {
		return nil, &domain.ValidationError{Message: msgStatusRequired}
	}
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, &domain.ValidationError{Message: msgStatusInvalid}
	}

	task.Title = in.Title
	task.Description = in.Description
	task.Status = status
	task.Priority = in.Priority
	task.AuthorID = principal.ID
	task.Created = s.now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.audit.LogTask(ctx, principal.ID, domain.AuditActionTaskUpdate, task.ID, map[string]any{"status": task.Status.String()})
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, principal *domain.User, id int64) error {
	if _, err := s.Get(ctx, principal, id); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.audit.LogTask(ctx, principal.ID, domain.AuditActionTaskDelete, id, nil)
	return nil
}

// SetStatus moves a task to another column. Any transition is allowed.
func (s *TaskService) SetStatus(ctx context.Context, principal *domain.User, id int64, status domain.Status) error {
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return &domain.ValidationError{Message: msgStatusInvalid}
	}
	if _, err := s.Get(ctx, principal, id); err != nil {
		return err
	}

	if err := s.tasks.SetStatus(ctx, id, status, s.now().UTC()); err != nil {
		return fmt.Errorf("set task status: %w", err)
	}

	s.audit.LogTask(ctx, principal.ID, domain.AuditActionTaskStatus, id, map[string]any{"status": status.String()})
	return nil
}

func (s *TaskService) MarkDoing(ctx context.Context, principal *domain.User, id int64) error {
	return s.SetStatus(ctx, principal, id, domain.StatusDoing)
}

func (s *TaskService) MarkDone(ctx context.Context, principal *domain.User, id int64) error {
	return s.SetStatus(ctx, principal, id, domain.StatusDone)
}
