package domain

import (
	"fmt"
	"time"
)

// Status is the kanban column a task sits in.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Statuses lists every column in board order.
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone}

// ParseStatus maps a form value onto the closed set of statuses.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusTodo, StatusDoing, StatusDone:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func (s Status) String() string { return string(s) }

type Task struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Status      Status    `db:"status"`
	Priority    string    `db:"priority"`
	AuthorID    int64     `db:"author_id"`
	Created     time.Time `db:"created"`

	// filled by the join with the user table
	Username string `db:"username"`
}

// TaskInput carries the editable fields of a task as submitted by a form.
type TaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
}
