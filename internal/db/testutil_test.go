package db

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/existflow/taskapi/internal/model"
	"github.com/stretchr/testify/require"
)

// fakeClock hands out a fixed time that tests advance by hand
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// setupTestDB opens an in-memory store
func setupTestDB(t *testing.T, opts ...Option) *DB {
	t.Helper()
	db, err := Open(DriverSQLite, ":memory:", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTestProject(t *testing.T, db *DB, name string) *model.Project {
	t.Helper()
	p, err := db.CreateProject(context.Background(), ProjectInput{Name: name})
	require.NoError(t, err)
	return p
}

func createTestTask(t *testing.T, db *DB, projectID int64, title string, mods ...func(*TaskInput)) *model.Task {
	t.Helper()
	in := TaskInput{Title: title, ProjectID: projectID}
	for _, mod := range mods {
		mod(&in)
	}
	task, err := db.CreateTask(context.Background(), in)
	require.NoError(t, err)
	return task
}

func strPtr(s string) *string { return &s }

// rawTaskDeleted reads is_deleted straight from storage, bypassing the active filter
func rawTaskDeleted(t *testing.T, db *DB, id int64) (bool, bool) {
	t.Helper()
	var deleted bool
	err := db.QueryRow(`SELECT is_deleted FROM tasks WHERE id = ?`, id).Scan(&deleted)
	if err != nil {
		return false, false
	}
	return deleted, true
}
