package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/existflow/taskapi/internal/model"
)

// ProjectInput holds the mutable fields of a project
type ProjectInput struct {
	Name        string
	Description *string
}

const projectColumns = `id, name, description, created_at, updated_at`

// ListProjects returns one page of projects, newest first, each with its tasks
func (db *DB) ListProjects(ctx context.Context, page, pageSize int) (Page[model.Project], error) {
	page, pageSize = NormalizePage(page, pageSize)
	result := Page[model.Project]{Page: page, PageSize: pageSize, Items: []model.Project{}}

	if err := db.queryRow(ctx, db, `SELECT COUNT(*) FROM projects`).Scan(&result.Total); err != nil {
		return result, fmt.Errorf("failed to count projects: %w", err)
	}

	rows, err := db.query(ctx, db,
		`SELECT `+projectColumns+` FROM projects ORDER BY id DESC LIMIT ? OFFSET ?`,
		pageSize, offset(page, pageSize))
	if err != nil {
		return result, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return result, fmt.Errorf("failed to scan project: %w", err)
		}
		result.Items = append(result.Items, *p)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("failed to list projects: %w", err)
	}

	if err := db.includeTasks(ctx, db, result.Items); err != nil {
		return result, err
	}
	return result, nil
}

// GetProject returns a project with its tasks
func (db *DB) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	p, err := db.getProject(ctx, db, id)
	if err != nil {
		return nil, err
	}

	projects := []model.Project{*p}
	if err := db.includeTasks(ctx, db, projects); err != nil {
		return nil, err
	}
	return &projects[0], nil
}

// CreateProject persists a new project
func (db *DB) CreateProject(ctx context.Context, in ProjectInput) (*model.Project, error) {
	p := &model.Project{
		Name:        in.Name,
		Description: in.Description,
		Tasks:       []model.Task{},
	}
	if err := db.saveProject(ctx, db, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProject replaces the mutable fields of a project
func (db *DB) UpdateProject(ctx context.Context, id int64, in ProjectInput) error {
	return db.withTx(ctx, func(q queryer) error {
		p, err := db.getProject(ctx, q, id)
		if err != nil {
			return err
		}
		p.Name = in.Name
		p.Description = in.Description
		return db.saveProject(ctx, q, p)
	})
}

// DeleteProject removes a project and every task it owns, soft-deleted ones
// included
func (db *DB) DeleteProject(ctx context.Context, id int64) error {
	return db.withTx(ctx, func(q queryer) error {
		if _, err := db.getProject(ctx, q, id); err != nil {
			return err
		}

		if _, err := db.exec(ctx, q, `DELETE FROM tasks WHERE project_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}
		if _, err := db.exec(ctx, q, `DELETE FROM projects WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		return nil
	})
}

// saveProject is the only write path for project rows
func (db *DB) saveProject(ctx context.Context, q queryer, p *model.Project) error {
	insert := p.ID == 0
	db.stamp(&p.Timestamps, insert)

	if insert {
		err := db.queryRow(ctx, q, `
			INSERT INTO projects (name, description, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			RETURNING id`,
			p.Name, p.Description, p.CreatedAt, p.UpdatedAt,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		return nil
	}

	res, err := db.exec(ctx, q, `
		UPDATE projects SET name = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return expectRow(res)
}

func (db *DB) getProject(ctx context.Context, q queryer, id int64) (*model.Project, error) {
	row := db.queryRow(ctx, q, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (db *DB) projectExists(ctx context.Context, q queryer, id int64) (bool, error) {
	var exists bool
	err := db.queryRow(ctx, q, `SELECT EXISTS (SELECT 1 FROM projects WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check project: %w", err)
	}
	return exists, nil
}

// includeTasks loads the active tasks of every project in one query
func (db *DB) includeTasks(ctx context.Context, q queryer, projects []model.Project) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]any, len(projects))
	index := make(map[int64]int, len(projects))
	for i := range projects {
		projects[i].Tasks = []model.Task{}
		ids[i] = projects[i].ID
		index[projects[i].ID] = i
	}

	tq := activeTasks().whereIn("project_id", ids)
	tasks, err := db.selectTasks(ctx, q, tq, "id ASC", 0, 0)
	if err != nil {
		return err
	}

	for _, t := range tasks {
		i := index[t.ProjectID]
		projects[i].Tasks = append(projects[i].Tasks, t)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*model.Project, error) {
	var p model.Project
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Tasks = []model.Task{}
	return &p, nil
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
