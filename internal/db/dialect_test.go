package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	q := `SELECT id FROM tasks WHERE project_id = ? AND status = ? LIMIT ?`

	assert.Equal(t, q, dialectFor(DriverSQLite).rebind(q))
	assert.Equal(t,
		`SELECT id FROM tasks WHERE project_id = $1 AND status = $2 LIMIT $3`,
		dialectFor(DriverPostgres).rebind(q))
}

func TestContainsExpr(t *testing.T) {
	assert.Equal(t, "instr(COALESCE(notes, ''), ?) > 0", dialectFor(DriverSQLite).containsExpr("notes"))
	assert.Equal(t, "strpos(COALESCE(title, ''), ?) > 0", dialectFor(DriverPostgres).containsExpr("title"))
}

func TestActiveTasksAlwaysExcludesDeleted(t *testing.T) {
	tq := activeTasks().where("project_id = ?", 1).whereIn("status", []any{0, 1})

	assert.Equal(t, " WHERE NOT is_deleted AND (project_id = ?) AND (status IN (?, ?))", tq.clause())
	assert.Equal(t, []any{1, 0, 1}, tq.args)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t,
		"tasks.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite",
		sqliteDSN("tasks.db"))
	assert.Equal(t,
		"file:tasks.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite",
		sqliteDSN("file:tasks.db?mode=rwc"))
}
