package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

// Channel options
type ChannelOption func(*domain.Channel)

func WithSortOrder(n int) ChannelOption {
	return func(c *domain.Channel) {
		c.SortOrder = n
	}
}

func WithRemoved() ChannelOption {
	return func(c *domain.Channel) {
		c.Removed = true
	}
}

func NewTestChannel(name string, opts ...ChannelOption) *domain.Channel {
	now := time.Now().UTC().Truncate(time.Second)
	c := &domain.Channel{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TaskTemplate options
type TemplateOption func(*domain.TaskTemplate)

func WithRule(body string) TemplateOption {
	return func(t *domain.TaskTemplate) {
		t.Rule = body
	}
}

func WithPriority(p int) TemplateOption {
	return func(t *domain.TaskTemplate) {
		t.Priority = p
	}
}

func WithDescription(d string) TemplateOption {
	return func(t *domain.TaskTemplate) {
		t.Description = d
	}
}

func WithImportant() TemplateOption {
	return func(t *domain.TaskTemplate) {
		t.Important = true
	}
}

// WithShift enables a shift with the given bounds.
func WithShift(s domain.Shift, min, max int) TemplateOption {
	return func(t *domain.TaskTemplate) {
		c := domain.ShiftCapacity{Enabled: true, Min: min, Max: max}
		switch s {
		case domain.ShiftMorning:
			t.Morning = c
		case domain.ShiftAfternoon:
			t.Afternoon = c
		case domain.ShiftEvening:
			t.Evening = c
		}
	}
}

func WithSubTasks(names ...string) TemplateOption {
	return func(t *domain.TaskTemplate) {
		for _, n := range names {
			t.SubTasks = append(t.SubTasks, domain.SubTaskTemplate{ID: uuid.New().String(), Name: n})
		}
	}
}

// NewTestTemplate returns a template that is active every day unless a rule
// option says otherwise.
func NewTestTemplate(channelID, name string, opts ...TemplateOption) *domain.TaskTemplate {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.TaskTemplate{
		ID:        uuid.New().String(),
		ChannelID: channelID,
		Name:      name,
		Rule:      "today(X), X = X",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestPlanning returns an unlocked planning for the given date.
func NewTestPlanning(channelID string, date time.Time) *domain.Planning {
	return &domain.Planning{
		ID:        uuid.New().String(),
		ChannelID: channelID,
		Date:      domain.NormalizeDate(date),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// NewTestItem snapshots tmpl into an item of the given planning.
func NewTestItem(planningID string, tmpl *domain.TaskTemplate, position int) *domain.PlanningItem {
	item := tmpl.Snapshot()
	item.ID = uuid.New().String()
	item.PlanningID = planningID
	item.Position = position
	item.CreatedAt = time.Now().UTC().Truncate(time.Second)
	return item
}

// Date parses a YYYY-MM-DD literal and panics on malformed input.
func Date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
