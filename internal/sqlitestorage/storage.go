package sqlitestorage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"kanban/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

type Storage struct {
	db *sqlx.DB
}

// New opens (creating if needed) the SQLite file at path and makes sure the
// schema exists.
func New(path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("sqlx.Connect: %w", err)
	}
	// a single writer avoids "database is locked" under concurrent requests
	db.SetMaxOpenConns(1)

	s := &Storage{db: db}

	if err := s.tryCreateTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("tryCreateTables: %w", err)
	}

	return s, nil
}

func (s *Storage) tryCreateTables() error {
	if _, err := s.db.Exec(createTablesQuery); err != nil {
		return fmt.Errorf("table create: %w", err)
	}

	if _, err := s.db.Exec(createIndexQuery); err != nil {
		return fmt.Errorf("index create: %w", err)
	}

	return nil
}

// Reset drops both tables and recreates them empty.
func (s *Storage) Reset() error {
	if _, err := s.db.Exec(dropTablesQuery); err != nil {
		return fmt.Errorf("table drop: %w", err)
	}
	return s.tryCreateTables()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Create(ctx context.Context, u *domain.User) error {
	res, err := s.db.ExecContext(ctx, insertUserQuery, u.Username, u.PasswordHash)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("insertUser failed: %w", domain.ErrUsernameTaken)
		}
		return fmt.Errorf("insertUser failed: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting LastInsertId failed: %w", err)
	}
	u.ID = id

	return nil
}

func (s *Storage) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User

	if err := s.db.GetContext(ctx, &u, getUserByUsernameQuery, username); err != nil {
		return nil, fmt.Errorf("selectUser failed: %w", notFound(err))
	}

	return &u, nil
}

func (s *Storage) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User

	if err := s.db.GetContext(ctx, &u, getUserByIdQuery, id); err != nil {
		return nil, fmt.Errorf("selectUser failed: %w", notFound(err))
	}

	return &u, nil
}

// Tasks exposes the task half of the storage. User and task stores share
// method names, so they cannot both be satisfied by the same receiver.
func (s *Storage) Tasks() *TaskStorage {
	return &TaskStorage{db: s.db}
}

type TaskStorage struct {
	db *sqlx.DB
}

func (s *TaskStorage) ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Task, error) {
	var tasks []*domain.Task

	if err := s.db.SelectContext(ctx, &tasks, listTasksByAuthorQuery, authorID); err != nil {
		return nil, fmt.Errorf("selectTasks failed: %w", err)
	}

	return tasks, nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task

	if err := s.db.GetContext(ctx, &task, getTaskByIdQuery, id); err != nil {
		return nil, fmt.Errorf("selectTask failed: %w", notFound(err))
	}

	return &task, nil
}

func (s *TaskStorage) Create(ctx context.Context, t *domain.Task) error {
	res, err := s.db.ExecContext(ctx, insertTaskQuery,
		t.Title, t.Description, string(t.Status), t.Priority, t.AuthorID, t.Created.UTC())
	if err != nil {
		return fmt.Errorf("insertTask failed: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting LastInsertId failed: %w", err)
	}
	t.ID = id

	return nil
}

func (s *TaskStorage) Update(ctx context.Context, t *domain.Task) error {
	res, err := s.db.ExecContext(ctx, updateTaskQuery,
		t.Title, t.Description, string(t.Status), t.Priority, t.AuthorID, t.Created.UTC(), t.ID)
	if err != nil {
		return fmt.Errorf("updateTask failed: %w", err)
	}

	return checkAffected(res, t.ID)
}

func (s *TaskStorage) SetStatus(ctx context.Context, id int64, status domain.Status, at time.Time) error {
	res, err := s.db.ExecContext(ctx, setTaskStatusQuery, string(status), at.UTC(), id)
	if err != nil {
		return fmt.Errorf("setTaskStatus failed: %w", err)
	}

	return checkAffected(res, id)
}

func (s *TaskStorage) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, deleteTaskQuery, id)
	if err != nil {
		return fmt.Errorf("deleteTask failed: %w", err)
	}

	return checkAffected(res, id)
}

func checkAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting RowsAffected failed: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("task %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
