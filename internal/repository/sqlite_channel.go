package repository

import (
	"context"
	"fmt"

	"github.com/jlwbr/workplanner-sub000/internal/db"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

type SQLiteChannelRepo struct {
	db db.DBTX
}

func NewSQLiteChannelRepo(db db.DBTX) *SQLiteChannelRepo {
	return &SQLiteChannelRepo{db: db}
}

const channelColumns = `id, name, sort_order, removed, created_at, updated_at`

func (r *SQLiteChannelRepo) Create(ctx context.Context, c *domain.Channel) error {
	query := `INSERT INTO channels (` + channelColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.SortOrder,
		boolToInt(c.Removed),
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting channel: %w", err)
	}
	return nil
}

func (r *SQLiteChannelRepo) GetByID(ctx context.Context, id string) (*domain.Channel, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+channelColumns+` FROM channels WHERE id = ?`, id)
	c, err := scanChannel(row)
	if err != nil {
		return nil, notFound(err, "channel", id)
	}
	return c, nil
}

func (r *SQLiteChannelRepo) List(ctx context.Context, includeRemoved bool) ([]*domain.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE removed = 0 ORDER BY sort_order, name`
	if includeRemoved {
		query = `SELECT ` + channelColumns + ` FROM channels ORDER BY sort_order, name`
	}
	return r.queryChannels(ctx, query)
}

func (r *SQLiteChannelRepo) Update(ctx context.Context, c *domain.Channel) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE channels SET name = ?, sort_order = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.SortOrder, formatTime(c.UpdatedAt), c.ID)
	if err != nil {
		return fmt.Errorf("updating channel: %w", err)
	}
	return requireAffected(res, "channel", c.ID)
}

func (r *SQLiteChannelRepo) SetRemoved(ctx context.Context, id string, removed bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE channels SET removed = ?, updated_at = ? WHERE id = ?`,
		boolToInt(removed), formatTime(nowUTC()), id)
	if err != nil {
		return fmt.Errorf("updating channel removed flag: %w", err)
	}
	return requireAffected(res, "channel", id)
}

func (r *SQLiteChannelRepo) ListActiveWithTemplates(ctx context.Context) ([]*domain.Channel, error) {
	channels, err := r.List(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return channels, nil
	}

	templates, err := queryTemplates(ctx, r.db,
		`SELECT `+prefixed("t.", templateColumns)+` FROM task_templates t
		JOIN channels c ON c.id = t.channel_id
		WHERE c.removed = 0
		ORDER BY t.channel_id, t.priority, t.name, t.id`)
	if err != nil {
		return nil, err
	}
	if err := attachSubTasks(ctx, r.db, templates,
		`SELECT s.id, s.template_id, s.name, s.position FROM sub_task_templates s
		JOIN task_templates t ON t.id = s.template_id
		JOIN channels c ON c.id = t.channel_id
		WHERE c.removed = 0
		ORDER BY s.template_id, s.position, s.id`); err != nil {
		return nil, err
	}

	byChannel := make(map[string]*domain.Channel, len(channels))
	for _, c := range channels {
		byChannel[c.ID] = c
	}
	for _, t := range templates {
		if c, ok := byChannel[t.ChannelID]; ok {
			c.Templates = append(c.Templates, t)
		}
	}
	return channels, nil
}

func (r *SQLiteChannelRepo) queryChannels(ctx context.Context, query string, args ...any) ([]*domain.Channel, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}
	defer rows.Close()

	var channels []*domain.Channel
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning channel: %w", err)
		}
		channels = append(channels, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating channels: %w", err)
	}
	return channels, nil
}

func scanChannel(s scanner) (*domain.Channel, error) {
	var c domain.Channel
	var removed int
	var createdAt, updatedAt string
	if err := s.Scan(&c.ID, &c.Name, &c.SortOrder, &removed, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.Removed = intToBool(removed)
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
