package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/existflow/taskapi/internal/model"
)

// TaskInput holds the mutable fields of a task
type TaskInput struct {
	Title     string
	Notes     *string
	DueDate   *time.Time
	Status    model.Status
	ProjectID int64
}

// TaskFilter narrows and orders a task listing. Nil fields are not filtered.
type TaskFilter struct {
	ProjectID *int64
	Status    *model.Status
	Search    string
	OrderBy   string
	Page      int
	PageSize  int
}

const taskColumns = `id, title, notes, due_date, status, is_deleted, created_at, updated_at, project_id`

// taskOrderings maps the accepted orderBy values to ORDER BY clauses
var taskOrderings = map[string]string{
	"duedate": "due_date ASC NULLS FIRST, id DESC",
	"status":  "status ASC, id DESC",
	"created": "created_at DESC, id DESC",
}

const defaultTaskOrdering = "id DESC"

// taskQuery accumulates WHERE conditions for task reads
type taskQuery struct {
	conds []string
	args  []any
}

// activeTasks starts every default task read. It carries the soft-delete
// predicate, so no read built from it can return a deleted row.
func activeTasks() *taskQuery {
	return &taskQuery{conds: []string{"NOT is_deleted"}}
}

func (tq *taskQuery) where(cond string, args ...any) *taskQuery {
	tq.conds = append(tq.conds, "("+cond+")")
	tq.args = append(tq.args, args...)
	return tq
}

func (tq *taskQuery) whereIn(column string, values []any) *taskQuery {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	return tq.where(column+" IN ("+marks+")", values...)
}

func (tq *taskQuery) clause() string {
	return " WHERE " + strings.Join(tq.conds, " AND ")
}

// ListTasks returns one filtered, ordered page of active tasks
func (db *DB) ListTasks(ctx context.Context, f TaskFilter) (Page[model.Task], error) {
	page, pageSize := NormalizePage(f.Page, f.PageSize)
	result := Page[model.Task]{Page: page, PageSize: pageSize, Items: []model.Task{}}

	tq := activeTasks()
	if f.ProjectID != nil {
		tq.where("project_id = ?", *f.ProjectID)
	}
	if f.Status != nil {
		tq.where("status = ?", *f.Status)
	}
	if strings.TrimSpace(f.Search) != "" {
		tq.where(db.dialect.containsExpr("title")+" OR "+db.dialect.containsExpr("notes"),
			f.Search, f.Search)
	}

	if err := db.queryRow(ctx, db, `SELECT COUNT(*) FROM tasks`+tq.clause(), tq.args...).Scan(&result.Total); err != nil {
		return result, fmt.Errorf("failed to count tasks: %w", err)
	}

	order, ok := taskOrderings[strings.ToLower(f.OrderBy)]
	if !ok {
		order = defaultTaskOrdering
	}

	tasks, err := db.selectTasks(ctx, db, tq, order, pageSize, offset(page, pageSize))
	if err != nil {
		return result, err
	}
	result.Items = append(result.Items, tasks...)
	return result, nil
}

// GetTask returns an active task
func (db *DB) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	return db.getTask(ctx, db, id)
}

// CreateTask persists a new task after checking its project exists
func (db *DB) CreateTask(ctx context.Context, in TaskInput) (*model.Task, error) {
	t := model.NewTask(in.ProjectID, in.Title)
	applyTaskInput(&t, in)

	err := db.withTx(ctx, func(q queryer) error {
		if err := db.checkProject(ctx, q, in.ProjectID); err != nil {
			return err
		}
		return db.saveTask(ctx, q, &t)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTask replaces the mutable fields of an active task
func (db *DB) UpdateTask(ctx context.Context, id int64, in TaskInput) error {
	return db.withTx(ctx, func(q queryer) error {
		t, err := db.getTask(ctx, q, id)
		if err != nil {
			return err
		}
		if err := db.checkProject(ctx, q, in.ProjectID); err != nil {
			return err
		}
		applyTaskInput(t, in)
		return db.saveTask(ctx, q, t)
	})
}

// DeleteTask soft-deletes an active task. The row stays in storage.
func (db *DB) DeleteTask(ctx context.Context, id int64) error {
	return db.withTx(ctx, func(q queryer) error {
		t, err := db.getTask(ctx, q, id)
		if err != nil {
			return err
		}
		t.IsDeleted = true
		return db.saveTask(ctx, q, t)
	})
}

// saveTask is the only write path for task rows
func (db *DB) saveTask(ctx context.Context, q queryer, t *model.Task) error {
	insert := t.ID == 0
	db.stamp(&t.Timestamps, insert)
	if t.DueDate != nil {
		due := t.DueDate.UTC()
		t.DueDate = &due
	}

	if insert {
		err := db.queryRow(ctx, q, `
			INSERT INTO tasks (title, notes, due_date, status, is_deleted, created_at, updated_at, project_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			t.Title, t.Notes, t.DueDate, t.Status, t.IsDeleted, t.CreatedAt, t.UpdatedAt, t.ProjectID,
		).Scan(&t.ID)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	}

	res, err := db.exec(ctx, q, `
		UPDATE tasks
		SET title = ?, notes = ?, due_date = ?, status = ?, is_deleted = ?, updated_at = ?, project_id = ?
		WHERE id = ?`,
		t.Title, t.Notes, t.DueDate, t.Status, t.IsDeleted, t.UpdatedAt, t.ProjectID, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return expectRow(res)
}

func (db *DB) getTask(ctx context.Context, q queryer, id int64) (*model.Task, error) {
	tasks, err := db.selectTasks(ctx, q, activeTasks().where("id = ?", id), defaultTaskOrdering, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, ErrNotFound
	}
	return &tasks[0], nil
}

// checkProject is the referential pre-check for a task's project
func (db *DB) checkProject(ctx context.Context, q queryer, projectID int64) error {
	ok, err := db.projectExists(ctx, q, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidProject
	}
	return nil
}

// selectTasks runs tq with the given ordering. limit 0 means no limit.
func (db *DB) selectTasks(ctx context.Context, q queryer, tq *taskQuery, order string, limit, off int) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks` + tq.clause() + ` ORDER BY ` + order
	args := tq.args
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args[:len(args):len(args)], limit, off)
	}

	rows, err := db.query(ctx, q, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return tasks, nil
}

func applyTaskInput(t *model.Task, in TaskInput) {
	t.Title = in.Title
	t.Notes = in.Notes
	t.DueDate = in.DueDate
	t.Status = in.Status
	t.ProjectID = in.ProjectID
}

func scanTask(s scanner) (*model.Task, error) {
	var t model.Task
	err := s.Scan(&t.ID, &t.Title, &t.Notes, &t.DueDate, &t.Status, &t.IsDeleted,
		&t.CreatedAt, &t.UpdatedAt, &t.ProjectID)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
