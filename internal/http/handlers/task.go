package handlers

import (
	"context"
	"errors"
	"net/http"

	"kanban/internal/domain"

	"github.com/gin-gonic/gin"
)

type taskForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Status      string `form:"status"`
	Priority    string `form:"priority"`
}

func (f taskForm) input() domain.TaskInput {
	return domain.TaskInput{
		Title:       f.Title,
		Description: f.Description,
		Status:      f.Status,
		Priority:    f.Priority,
	}
}

func formFromTask(t *domain.Task) taskForm {
	return taskForm{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		Priority:    t.Priority,
	}
}

type boardColumn struct {
	Status domain.Status
	Label  string
	Tasks  []*domain.Task
}

var columnLabels = map[domain.Status]string{
	domain.StatusTodo:  "To Do",
	domain.StatusDoing: "Doing",
	domain.StatusDone:  "Done",
}

// groupByStatus splits the list into board columns keeping the list order.
func groupByStatus(tasks []*domain.Task) []boardColumn {
	columns := make([]boardColumn, 0, len(domain.Statuses))
	index := make(map[domain.Status]int, len(domain.Statuses))
	for i, s := range domain.Statuses {
		columns = append(columns, boardColumn{Status: s, Label: columnLabels[s]})
		index[s] = i
	}
	for _, t := range tasks {
		if i, ok := index[t.Status]; ok {
			columns[i].Tasks = append(columns[i].Tasks, t)
		}
	}
	return columns
}

func (h *Handler) Index(c *gin.Context) {
	tasks, err := h.Tasks.List(c.Request.Context(), principal(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "index.html", gin.H{
		"columns": groupByStatus(tasks),
	})
}

func (h *Handler) CreateForm(c *gin.Context) {
	h.render(c, http.StatusOK, "create.html", gin.H{
		"form": taskForm{Status: domain.StatusTodo.String()},
	})
}

func (h *Handler) Create(c *gin.Context) {
	var form taskForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "create.html", gin.H{"form": form}, "Invalid form.")
		return
	}

	_, err := h.Tasks.Create(c.Request.Context(), principal(c), form.input())
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			h.render(c, http.StatusOK, "create.html", gin.H{"form": form}, vErr.Message)
			return
		}
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) UpdateForm(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		h.fail(c, domain.ErrNotFound)
		return
	}

	task, err := h.Tasks.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "update.html", gin.H{
		"task": task,
		"form": formFromTask(task),
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		h.fail(c, domain.ErrNotFound)
		return
	}

	var form taskForm
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	_, err := h.Tasks.Update(ctx, principal(c), id, form.input())
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			// re-show the stored task, the rejected input was never written
			task, getErr := h.Tasks.Get(ctx, principal(c), id)
			if getErr != nil {
				h.fail(c, getErr)
				return
			}
			h.render(c, http.StatusOK, "update.html", gin.H{"task": task, "form": form}, vErr.Message)
			return
		}
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		h.fail(c, domain.ErrNotFound)
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), principal(c), id); err != nil {
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) MarkDoing(c *gin.Context) {
	h.transition(c, h.Tasks.MarkDoing)
}

func (h *Handler) MarkDone(c *gin.Context) {
	h.transition(c, h.Tasks.MarkDone)
}

func (h *Handler) transition(c *gin.Context, apply func(context.Context, *domain.User, int64) error) {
	id, ok := taskID(c)
	if !ok {
		h.fail(c, domain.ErrNotFound)
		return
	}

	if err := apply(c.Request.Context(), principal(c), id); err != nil {
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}
