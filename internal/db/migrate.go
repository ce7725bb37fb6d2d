package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and run on
// every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS channels (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		removed    INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS task_templates (
		id                TEXT PRIMARY KEY,
		channel_id        TEXT NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
		name              TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		priority          INTEGER NOT NULL DEFAULT 0,
		rule              TEXT NOT NULL,
		important         INTEGER NOT NULL DEFAULT 0,
		morning_enabled   INTEGER NOT NULL DEFAULT 0,
		morning_min       INTEGER NOT NULL DEFAULT 0 CHECK(morning_min >= 0),
		morning_max       INTEGER NOT NULL DEFAULT 0 CHECK(morning_max >= 0),
		afternoon_enabled INTEGER NOT NULL DEFAULT 0,
		afternoon_min     INTEGER NOT NULL DEFAULT 0 CHECK(afternoon_min >= 0),
		afternoon_max     INTEGER NOT NULL DEFAULT 0 CHECK(afternoon_max >= 0),
		evening_enabled   INTEGER NOT NULL DEFAULT 0,
		evening_min       INTEGER NOT NULL DEFAULT 0 CHECK(evening_min >= 0),
		evening_max       INTEGER NOT NULL DEFAULT 0 CHECK(evening_max >= 0),
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_task_templates_channel ON task_templates(channel_id)`,

	`CREATE TABLE IF NOT EXISTS sub_task_templates (
		id          TEXT PRIMARY KEY,
		template_id TEXT NOT NULL REFERENCES task_templates(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		position    INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sub_task_templates_template ON sub_task_templates(template_id, position)`,

	`CREATE TABLE IF NOT EXISTS plannings (
		id         TEXT PRIMARY KEY,
		channel_id TEXT NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		locked     INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_plannings_channel_date ON plannings(channel_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_plannings_date ON plannings(date)`,

	// template_id is not a foreign key: items are snapshots and outlive
	// their template.
	`CREATE TABLE IF NOT EXISTS planning_items (
		id                TEXT PRIMARY KEY,
		planning_id       TEXT NOT NULL REFERENCES plannings(id) ON DELETE CASCADE,
		template_id       TEXT NOT NULL DEFAULT '',
		name              TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		position          INTEGER NOT NULL DEFAULT 0,
		important         INTEGER NOT NULL DEFAULT 0,
		morning_enabled   INTEGER NOT NULL DEFAULT 0,
		morning_max       INTEGER NOT NULL DEFAULT 0,
		afternoon_enabled INTEGER NOT NULL DEFAULT 0,
		afternoon_max     INTEGER NOT NULL DEFAULT 0,
		evening_enabled   INTEGER NOT NULL DEFAULT 0,
		evening_max       INTEGER NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_planning_items_planning ON planning_items(planning_id, position)`,

	`CREATE TABLE IF NOT EXISTS sub_task_items (
		id               TEXT PRIMARY KEY,
		planning_item_id TEXT NOT NULL REFERENCES planning_items(id) ON DELETE CASCADE,
		name             TEXT NOT NULL,
		position         INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sub_task_items_item ON sub_task_items(planning_item_id, position)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		planning_item_id TEXT NOT NULL REFERENCES planning_items(id) ON DELETE CASCADE,
		shift            TEXT NOT NULL CHECK(shift IN ('morning','afternoon','evening')),
		user_id          TEXT NOT NULL,
		created_at       TEXT NOT NULL,
		PRIMARY KEY (planning_item_id, shift, user_id)
	)`,

	// Sub-task completion tracking.
	`ALTER TABLE sub_task_items ADD COLUMN done INTEGER NOT NULL DEFAULT 0`,
}
