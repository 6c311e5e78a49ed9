package db

import (
	"context"
	"fmt"

	"github.com/existflow/taskapi/internal/model"
)

// Seed inserts a demo project with two tasks when the store has no projects.
// It reports whether anything was inserted.
func (db *DB) Seed(ctx context.Context) (bool, error) {
	seeded := false
	err := db.withTx(ctx, func(q queryer) error {
		var count int
		if err := db.queryRow(ctx, q, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
			return fmt.Errorf("failed to count projects: %w", err)
		}
		if count > 0 {
			return nil
		}

		p := model.DefaultSeedProject()
		if err := db.saveProject(ctx, q, &p); err != nil {
			return err
		}

		setup := model.NewTask(p.ID, "Configurar ambiente")
		endpoints := model.NewTask(p.ID, "Criar endpoints CRUD")
		endpoints.Status = model.StatusInProgress

		for _, t := range []*model.Task{&setup, &endpoints} {
			if err := db.saveTask(ctx, q, t); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	return seeded, err
}
