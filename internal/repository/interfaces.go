package repository

import (
	"context"
	"time"

	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

type ChannelRepo interface {
	Create(ctx context.Context, c *domain.Channel) error
	GetByID(ctx context.Context, id string) (*domain.Channel, error)
	List(ctx context.Context, includeRemoved bool) ([]*domain.Channel, error)
	Update(ctx context.Context, c *domain.Channel) error
	SetRemoved(ctx context.Context, id string, removed bool) error
	// ListActiveWithTemplates returns non-removed channels ordered by
	// sort_order then name, each with its templates and their sub-tasks.
	ListActiveWithTemplates(ctx context.Context) ([]*domain.Channel, error)
}

type TemplateRepo interface {
	// Create inserts the template together with its sub-task templates.
	Create(ctx context.Context, t *domain.TaskTemplate) error
	GetByID(ctx context.Context, id string) (*domain.TaskTemplate, error)
	ListByChannel(ctx context.Context, channelID string) ([]*domain.TaskTemplate, error)
	// Update rewrites the template row and replaces its sub-task templates.
	Update(ctx context.Context, t *domain.TaskTemplate) error
	Delete(ctx context.Context, id string) error
}

type PlanningRepo interface {
	Create(ctx context.Context, p *domain.Planning) error
	CreateItem(ctx context.Context, item *domain.PlanningItem) error
	CreateSubTaskItem(ctx context.Context, st *domain.SubTaskItem) error
	GetByID(ctx context.Context, id string) (*domain.Planning, error)
	// GetByChannelAndDate returns the planning with its items and sub-tasks.
	GetByChannelAndDate(ctx context.Context, channelID string, date time.Time) (*domain.Planning, error)
	ExistsForChannelAndDate(ctx context.Context, channelID string, date time.Time) (bool, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Planning, error)
	SetLocked(ctx context.Context, id string, locked bool) error
	GetItem(ctx context.Context, id string) (*domain.PlanningItem, error)
	SetSubTaskDone(ctx context.Context, id string, done bool) error
	// SubTaskLocked reports whether the planning owning the sub-task item
	// is locked.
	SubTaskLocked(ctx context.Context, id string) (bool, error)
}

type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.Assignment) error
	Delete(ctx context.Context, itemID string, shift domain.Shift, userID string) error
	ListByItem(ctx context.Context, itemID string) ([]*domain.Assignment, error)
	CountByItemAndShift(ctx context.Context, itemID string, shift domain.Shift) (int, error)
}
