package repository

import (
	"context"
	"fmt"

	"github.com/jlwbr/workplanner-sub000/internal/db"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

type SQLiteTemplateRepo struct {
	db db.DBTX
}

func NewSQLiteTemplateRepo(db db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: db}
}

const templateColumns = `id, channel_id, name, description, priority, rule, important,
	morning_enabled, morning_min, morning_max,
	afternoon_enabled, afternoon_min, afternoon_max,
	evening_enabled, evening_min, evening_max,
	created_at, updated_at`

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.TaskTemplate) error {
	query := `INSERT INTO task_templates (` + templateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ChannelID,
		t.Name,
		t.Description,
		t.Priority,
		t.Rule,
		boolToInt(t.Important),
		boolToInt(t.Morning.Enabled), t.Morning.Min, t.Morning.Max,
		boolToInt(t.Afternoon.Enabled), t.Afternoon.Min, t.Afternoon.Max,
		boolToInt(t.Evening.Enabled), t.Evening.Min, t.Evening.Max,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return r.insertSubTasks(ctx, t)
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.TaskTemplate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM task_templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if err != nil {
		return nil, notFound(err, "template", id)
	}
	if err := attachSubTasks(ctx, r.db, []*domain.TaskTemplate{t},
		`SELECT id, template_id, name, position FROM sub_task_templates
		WHERE template_id = ? ORDER BY position, id`, id); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTemplateRepo) ListByChannel(ctx context.Context, channelID string) ([]*domain.TaskTemplate, error) {
	templates, err := queryTemplates(ctx, r.db,
		`SELECT `+templateColumns+` FROM task_templates
		WHERE channel_id = ? ORDER BY priority, name, id`, channelID)
	if err != nil {
		return nil, err
	}
	if err := attachSubTasks(ctx, r.db, templates,
		`SELECT s.id, s.template_id, s.name, s.position FROM sub_task_templates s
		JOIN task_templates t ON t.id = s.template_id
		WHERE t.channel_id = ? ORDER BY s.template_id, s.position, s.id`, channelID); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *SQLiteTemplateRepo) Update(ctx context.Context, t *domain.TaskTemplate) error {
	query := `UPDATE task_templates SET name = ?, description = ?, priority = ?, rule = ?, important = ?,
		morning_enabled = ?, morning_min = ?, morning_max = ?,
		afternoon_enabled = ?, afternoon_min = ?, afternoon_max = ?,
		evening_enabled = ?, evening_min = ?, evening_max = ?,
		updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Description,
		t.Priority,
		t.Rule,
		boolToInt(t.Important),
		boolToInt(t.Morning.Enabled), t.Morning.Min, t.Morning.Max,
		boolToInt(t.Afternoon.Enabled), t.Afternoon.Min, t.Afternoon.Max,
		boolToInt(t.Evening.Enabled), t.Evening.Min, t.Evening.Max,
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating template: %w", err)
	}
	if err := requireAffected(res, "template", t.ID); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sub_task_templates WHERE template_id = ?`, t.ID); err != nil {
		return fmt.Errorf("clearing sub-task templates: %w", err)
	}
	return r.insertSubTasks(ctx, t)
}

func (r *SQLiteTemplateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return requireAffected(res, "template", id)
}

// insertSubTasks writes t.SubTasks in slice order; positions are rewritten
// to match so reads return the same order.
func (r *SQLiteTemplateRepo) insertSubTasks(ctx context.Context, t *domain.TaskTemplate) error {
	for i := range t.SubTasks {
		st := &t.SubTasks[i]
		st.TemplateID = t.ID
		st.Position = i
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO sub_task_templates (id, template_id, name, position) VALUES (?, ?, ?, ?)`,
			st.ID, st.TemplateID, st.Name, st.Position)
		if err != nil {
			return fmt.Errorf("inserting sub-task template %q: %w", st.Name, err)
		}
	}
	return nil
}

func queryTemplates(ctx context.Context, q db.DBTX, query string, args ...any) ([]*domain.TaskTemplate, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.TaskTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

// attachSubTasks runs query (which must select id, template_id, name,
// position ordered by template and position) and appends each row to its
// template. Rows for templates not in the slice are ignored.
func attachSubTasks(ctx context.Context, q db.DBTX, templates []*domain.TaskTemplate, query string, args ...any) error {
	if len(templates) == 0 {
		return nil
	}
	byID := make(map[string]*domain.TaskTemplate, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("listing sub-task templates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var st domain.SubTaskTemplate
		if err := rows.Scan(&st.ID, &st.TemplateID, &st.Name, &st.Position); err != nil {
			return fmt.Errorf("scanning sub-task template: %w", err)
		}
		if t, ok := byID[st.TemplateID]; ok {
			t.SubTasks = append(t.SubTasks, st)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating sub-task templates: %w", err)
	}
	return nil
}

func scanTemplate(s scanner) (*domain.TaskTemplate, error) {
	var t domain.TaskTemplate
	var important, mEnabled, aEnabled, eEnabled int
	var createdAt, updatedAt string
	err := s.Scan(
		&t.ID, &t.ChannelID, &t.Name, &t.Description, &t.Priority, &t.Rule, &important,
		&mEnabled, &t.Morning.Min, &t.Morning.Max,
		&aEnabled, &t.Afternoon.Min, &t.Afternoon.Max,
		&eEnabled, &t.Evening.Min, &t.Evening.Max,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Important = intToBool(important)
	t.Morning.Enabled = intToBool(mEnabled)
	t.Afternoon.Enabled = intToBool(aEnabled)
	t.Evening.Enabled = intToBool(eEnabled)
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
