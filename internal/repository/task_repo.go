package repository

import (
	"context"
	"fmt"
	"time"

	"kanban/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `t.id, t.title, t.description, t.status, t.priority, t.author_id, t.created, u.username`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListByAuthor returns the author's tasks, oldest first.
func (r *TaskRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+`
		 FROM "task" t JOIN "user" u ON t.author_id = u.id
		 WHERE t.author_id = $1
		 ORDER BY t.created ASC, t.id ASC`,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+taskColumns+`
		 FROM "task" t JOIN "user" u ON t.author_id = u.id
		 WHERE t.id = $1`,
		id,
	)
	t, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("select task: %w", translate(err))
	}
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO "task" (title, description, status, priority, author_id, created)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		t.Title, t.Description, string(t.Status), t.Priority, t.AuthorID, t.Created,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of the task.
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE "task"
		 SET title = $1, description = $2, status = $3, priority = $4, author_id = $5, created = $6
		 WHERE id = $7`,
		t.Title, t.Description, string(t.Status), t.Priority, t.AuthorID, t.Created, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update task %d: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *TaskRepository) SetStatus(ctx context.Context, id int64, status domain.Status, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE "task" SET status = $1, created = $2 WHERE id = $3`,
		string(status), at, id,
	)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update task %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM "task" WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete task %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t      domain.Task
		status string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &t.Priority, &t.AuthorID, &t.Created, &t.Username); err != nil {
		return nil, err
	}
	t.Status = domain.Status(status)
	return &t, nil
}
