package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jlwbr/workplanner-sub000/internal/db"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

type SQLitePlanningRepo struct {
	db db.DBTX
}

func NewSQLitePlanningRepo(db db.DBTX) *SQLitePlanningRepo {
	return &SQLitePlanningRepo{db: db}
}

const (
	planningColumns = `id, channel_id, date, locked, created_at`
	itemColumns     = `id, planning_id, template_id, name, description, position, important,
	morning_enabled, morning_max, afternoon_enabled, afternoon_max, evening_enabled, evening_max,
	created_at`
	subTaskItemColumns = `id, planning_item_id, name, position, done, created_at`
)

func (r *SQLitePlanningRepo) Create(ctx context.Context, p *domain.Planning) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plannings (`+planningColumns+`) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.ChannelID, formatDate(p.Date), boolToInt(p.Locked), formatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting planning: %w", err)
	}
	return nil
}

func (r *SQLitePlanningRepo) CreateItem(ctx context.Context, item *domain.PlanningItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO planning_items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.PlanningID,
		item.TemplateID,
		item.Name,
		item.Description,
		item.Position,
		boolToInt(item.Important),
		boolToInt(item.Morning.Enabled), item.Morning.Max,
		boolToInt(item.Afternoon.Enabled), item.Afternoon.Max,
		boolToInt(item.Evening.Enabled), item.Evening.Max,
		formatTime(item.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting planning item %q: %w", item.Name, err)
	}
	return nil
}

func (r *SQLitePlanningRepo) CreateSubTaskItem(ctx context.Context, st *domain.SubTaskItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sub_task_items (`+subTaskItemColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		st.ID, st.PlanningItemID, st.Name, st.Position, boolToInt(st.Done), formatTime(st.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting sub-task item %q: %w", st.Name, err)
	}
	return nil
}

func (r *SQLitePlanningRepo) GetByID(ctx context.Context, id string) (*domain.Planning, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planningColumns+` FROM plannings WHERE id = ?`, id)
	p, err := scanPlanning(row)
	if err != nil {
		return nil, notFound(err, "planning", id)
	}
	if err := r.loadItems(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLitePlanningRepo) GetByChannelAndDate(ctx context.Context, channelID string, date time.Time) (*domain.Planning, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+planningColumns+` FROM plannings WHERE channel_id = ? AND date = ?`,
		channelID, formatDate(date))
	p, err := scanPlanning(row)
	if err != nil {
		return nil, notFound(err, "planning", channelID+"@"+formatDate(date))
	}
	if err := r.loadItems(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLitePlanningRepo) ExistsForChannelAndDate(ctx context.Context, channelID string, date time.Time) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM plannings WHERE channel_id = ? AND date = ?`,
		channelID, formatDate(date)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking planning: %w", err)
	}
	return n > 0, nil
}

// ListByDate returns the date's plannings in channel order, without items.
func (r *SQLitePlanningRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Planning, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+prefixed("p.", planningColumns)+` FROM plannings p
		JOIN channels c ON c.id = p.channel_id
		WHERE p.date = ? ORDER BY c.sort_order, c.name`, formatDate(date))
	if err != nil {
		return nil, fmt.Errorf("listing plannings: %w", err)
	}
	defer rows.Close()

	var plannings []*domain.Planning
	for rows.Next() {
		p, err := scanPlanning(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning planning: %w", err)
		}
		plannings = append(plannings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plannings: %w", err)
	}
	return plannings, nil
}

func (r *SQLitePlanningRepo) SetLocked(ctx context.Context, id string, locked bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE plannings SET locked = ? WHERE id = ?`, boolToInt(locked), id)
	if err != nil {
		return fmt.Errorf("updating planning lock: %w", err)
	}
	return requireAffected(res, "planning", id)
}

func (r *SQLitePlanningRepo) GetItem(ctx context.Context, id string) (*domain.PlanningItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM planning_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err != nil {
		return nil, notFound(err, "planning item", id)
	}
	return item, nil
}

func (r *SQLitePlanningRepo) SetSubTaskDone(ctx context.Context, id string, done bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE sub_task_items SET done = ? WHERE id = ?`, boolToInt(done), id)
	if err != nil {
		return fmt.Errorf("updating sub-task item: %w", err)
	}
	return requireAffected(res, "sub-task item", id)
}

func (r *SQLitePlanningRepo) SubTaskLocked(ctx context.Context, id string) (bool, error) {
	var locked int
	err := r.db.QueryRowContext(ctx,
		`SELECT p.locked FROM sub_task_items s
		JOIN planning_items i ON i.id = s.planning_item_id
		JOIN plannings p ON p.id = i.planning_id
		WHERE s.id = ?`, id).Scan(&locked)
	if err != nil {
		return false, notFound(err, "sub-task item", id)
	}
	return intToBool(locked), nil
}

func (r *SQLitePlanningRepo) loadItems(ctx context.Context, p *domain.Planning) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM planning_items WHERE planning_id = ? ORDER BY position, id`, p.ID)
	if err != nil {
		return fmt.Errorf("listing planning items: %w", err)
	}
	byID := make(map[string]*domain.PlanningItem)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			rows.Close()
			return fmt.Errorf("scanning planning item: %w", err)
		}
		p.Items = append(p.Items, item)
		byID[item.ID] = item
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return fmt.Errorf("iterating planning items: %w", err)
	}
	if len(p.Items) == 0 {
		return nil
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT `+prefixed("s.", subTaskItemColumns)+` FROM sub_task_items s
		JOIN planning_items i ON i.id = s.planning_item_id
		WHERE i.planning_id = ? ORDER BY s.planning_item_id, s.position, s.id`, p.ID)
	if err != nil {
		return fmt.Errorf("listing sub-task items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		st, err := scanSubTaskItem(rows)
		if err != nil {
			return fmt.Errorf("scanning sub-task item: %w", err)
		}
		if item, ok := byID[st.PlanningItemID]; ok {
			item.SubTasks = append(item.SubTasks, st)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating sub-task items: %w", err)
	}
	return nil
}

func scanPlanning(s scanner) (*domain.Planning, error) {
	var p domain.Planning
	var date, createdAt string
	var locked int
	if err := s.Scan(&p.ID, &p.ChannelID, &date, &locked, &createdAt); err != nil {
		return nil, err
	}
	p.Locked = intToBool(locked)
	var err error
	if p.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanItem(s scanner) (*domain.PlanningItem, error) {
	var item domain.PlanningItem
	var important, mEnabled, aEnabled, eEnabled int
	var createdAt string
	err := s.Scan(
		&item.ID, &item.PlanningID, &item.TemplateID, &item.Name, &item.Description, &item.Position, &important,
		&mEnabled, &item.Morning.Max, &aEnabled, &item.Afternoon.Max, &eEnabled, &item.Evening.Max,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	item.Important = intToBool(important)
	item.Morning.Enabled = intToBool(mEnabled)
	item.Afternoon.Enabled = intToBool(aEnabled)
	item.Evening.Enabled = intToBool(eEnabled)
	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func scanSubTaskItem(s scanner) (*domain.SubTaskItem, error) {
	var st domain.SubTaskItem
	var done int
	var createdAt string
	if err := s.Scan(&st.ID, &st.PlanningItemID, &st.Name, &st.Position, &done, &createdAt); err != nil {
		return nil, err
	}
	st.Done = intToBool(done)
	var err error
	if st.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &st, nil
}
