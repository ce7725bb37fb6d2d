package repository

import (
	"context"
	"fmt"

	"github.com/jlwbr/workplanner-sub000/internal/db"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

type SQLiteAssignmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssignmentRepo(db db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: db}
}

func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assignments (planning_item_id, shift, user_id, created_at) VALUES (?, ?, ?, ?)`,
		a.PlanningItemID, string(a.Shift), a.UserID, formatTime(a.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, itemID string, shift domain.Shift, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM assignments WHERE planning_item_id = ? AND shift = ? AND user_id = ?`,
		itemID, string(shift), userID)
	if err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	return requireAffected(res, "assignment", fmt.Sprintf("%s/%s/%s", itemID, shift, userID))
}

// ListByItem returns assignments grouped by shift in morning, afternoon,
// evening order, then by assignment time.
func (r *SQLiteAssignmentRepo) ListByItem(ctx context.Context, itemID string) ([]*domain.Assignment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT planning_item_id, shift, user_id, created_at FROM assignments
		WHERE planning_item_id = ?
		ORDER BY CASE shift WHEN 'morning' THEN 0 WHEN 'afternoon' THEN 1 ELSE 2 END, created_at, user_id`,
		itemID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var out []*domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		var shift, createdAt string
		if err := rows.Scan(&a.PlanningItemID, &shift, &a.UserID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		a.Shift = domain.Shift(shift)
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}

func (r *SQLiteAssignmentRepo) CountByItemAndShift(ctx context.Context, itemID string, shift domain.Shift) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assignments WHERE planning_item_id = ? AND shift = ?`,
		itemID, string(shift)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting assignments: %w", err)
	}
	return n, nil
}
