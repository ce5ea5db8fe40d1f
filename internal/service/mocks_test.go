package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"kanban/internal/domain"
)

// memoryStore is an in-process UserStore/TaskStore used by the service tests.
type memoryStore struct {
	mu     sync.Mutex
	users  map[int64]*domain.User
	tasks  map[int64]*domain.Task
	nextID int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users: make(map[int64]*domain.User),
		tasks: make(map[int64]*domain.Task),
	}
}

type memoryUsers struct{ *memoryStore }

type memoryTasks struct{ *memoryStore }

func (s memoryUsers) Create(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return domain.ErrUsernameTaken
		}
	}
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s memoryUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s memoryUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s memoryTasks) ListByAuthor(_ context.Context, authorID int64) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []*domain.Task
	for _, t := range s.tasks {
		if t.AuthorID == authorID {
			cp := *t
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Created.Equal(res[j].Created) {
			return res[i].ID < res[j].ID
		}
		return res[i].Created.Before(res[j].Created)
	})
	return res, nil
}

func (s memoryTasks) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s memoryTasks) Create(_ context.Context, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	t.ID = s.nextID
	cp := *t
	s.tasks[t.ID] = &cp
	return nil
}

func (s memoryTasks) Update(_ context.Context, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	s.tasks[t.ID] = &cp
	return nil
}

func (s memoryTasks) SetStatus(_ context.Context, id int64, status domain.Status, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Status = status
	t.Created = at
	return nil
}

func (s memoryTasks) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// recordingSink collects audit events instead of logging them.
type recordingSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *recordingSink) Record(_ context.Context, ev domain.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingSink) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

// stepClock returns strictly increasing times so ordering by created is stable.
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}
