package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"channels", "task_templates", "sub_task_templates", "plannings", "planning_items", "sub_task_items", "assignments"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_task_templates_channel",
		"idx_sub_task_templates_template",
		"idx_plannings_channel_date",
		"idx_plannings_date",
		"idx_planning_items_planning",
		"idx_sub_task_items_item",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory databases stay in "memory" journal mode.
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestMigrate_PlanningUniquePerChannelAndDate(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO channels (id, name, created_at, updated_at) VALUES ('c1', 'Kitchen', 'now', 'now')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO plannings (id, channel_id, date, created_at) VALUES ('p1', 'c1', '2026-10-12', 'now')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO plannings (id, channel_id, date, created_at) VALUES ('p2', 'c1', '2026-10-12', 'now')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO plannings (id, channel_id, date, created_at) VALUES ('p3', 'c1', '2026-10-13', 'now')`)
	assert.NoError(t, err)
}

func TestMigrate_AssignmentShiftChecked(t *testing.T) {
	db := openTestDB(t)

	for _, stmt := range []string{
		`INSERT INTO channels (id, name, created_at, updated_at) VALUES ('c1', 'Kitchen', 'now', 'now')`,
		`INSERT INTO plannings (id, channel_id, date, created_at) VALUES ('p1', 'c1', '2026-10-12', 'now')`,
		`INSERT INTO planning_items (id, planning_id, name, created_at) VALUES ('i1', 'p1', 'Dishes', 'now')`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	_, err := db.Exec(`INSERT INTO assignments (planning_item_id, shift, user_id, created_at) VALUES ('i1', 'night', 'u1', 'now')`)
	assert.Error(t, err)
}

func TestMigrate_UpgradeAddsSubTaskDone(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	// Schema as shipped before sub-task completion existed.
	legacy := []string{
		`CREATE TABLE channels (id TEXT PRIMARY KEY, name TEXT NOT NULL, sort_order INTEGER NOT NULL DEFAULT 0, removed INTEGER NOT NULL DEFAULT 0, created_at TEXT NOT NULL, updated_at TEXT NOT NULL)`,
		`CREATE TABLE plannings (id TEXT PRIMARY KEY, channel_id TEXT NOT NULL, date TEXT NOT NULL, locked INTEGER NOT NULL DEFAULT 0, created_at TEXT NOT NULL)`,
		`CREATE TABLE planning_items (id TEXT PRIMARY KEY, planning_id TEXT NOT NULL, template_id TEXT NOT NULL DEFAULT '', name TEXT NOT NULL, description TEXT NOT NULL DEFAULT '', position INTEGER NOT NULL DEFAULT 0, important INTEGER NOT NULL DEFAULT 0, morning_enabled INTEGER NOT NULL DEFAULT 0, morning_max INTEGER NOT NULL DEFAULT 0, afternoon_enabled INTEGER NOT NULL DEFAULT 0, afternoon_max INTEGER NOT NULL DEFAULT 0, evening_enabled INTEGER NOT NULL DEFAULT 0, evening_max INTEGER NOT NULL DEFAULT 0, created_at TEXT NOT NULL)`,
		`CREATE TABLE sub_task_items (id TEXT PRIMARY KEY, planning_item_id TEXT NOT NULL, name TEXT NOT NULL, position INTEGER NOT NULL DEFAULT 0, created_at TEXT NOT NULL)`,
		`INSERT INTO channels VALUES ('c1', 'Kitchen', 0, 0, 'now', 'now')`,
		`INSERT INTO plannings VALUES ('p1', 'c1', '2026-10-12', 0, 'now')`,
		`INSERT INTO planning_items (id, planning_id, name, created_at) VALUES ('i1', 'p1', 'Dishes', 'now')`,
		`INSERT INTO sub_task_items VALUES ('s1', 'i1', 'Rinse', 0, 'now')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var name string
	var done int
	require.NoError(t, db.QueryRow(`SELECT name, done FROM sub_task_items WHERE id = 's1'`).Scan(&name, &done))
	assert.Equal(t, "Rinse", name)
	assert.Equal(t, 0, done)

	var idx string
	require.NoError(t, db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_plannings_channel_date'`).Scan(&idx))
}
