package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ShiftCapacity bounds the number of assignees a template wants per shift.
// Max == 0 means unbounded.
type ShiftCapacity struct {
	Enabled bool
	Min     int
	Max     int
}

type SubTaskTemplate struct {
	ID         string
	TemplateID string
	Name       string
	Position   int
}

// TaskTemplate is a rule-gated definition of recurring work within a channel.
// Rule holds a Datalog clause body evaluated against the target date.
type TaskTemplate struct {
	ID          string
	ChannelID   string
	Name        string
	Description string
	Priority    int
	Rule        string
	Important   bool

	Morning   ShiftCapacity
	Afternoon ShiftCapacity
	Evening   ShiftCapacity

	SubTasks []SubTaskTemplate

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Capacity returns the template's capacity for the given shift.
func (t *TaskTemplate) Capacity(s Shift) ShiftCapacity {
	switch s {
	case ShiftMorning:
		return t.Morning
	case ShiftAfternoon:
		return t.Afternoon
	case ShiftEvening:
		return t.Evening
	}
	return ShiftCapacity{}
}

// Validate checks the template's structural fields. Rule syntax is checked
// separately by the rule evaluator.
func (t *TaskTemplate) Validate() error {
	var errs []error
	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}
	if t.ChannelID == "" {
		errs = append(errs, fmt.Errorf("template channel is required"))
	}
	if strings.TrimSpace(t.Rule) == "" {
		errs = append(errs, fmt.Errorf("template rule is required"))
	}
	for _, s := range Shifts {
		c := t.Capacity(s)
		if c.Min < 0 || c.Max < 0 {
			errs = append(errs, fmt.Errorf("%s: capacity must not be negative", s))
		}
		if c.Max > 0 && c.Min > c.Max {
			errs = append(errs, fmt.Errorf("%s: min %d exceeds max %d", s, c.Min, c.Max))
		}
	}
	for i, st := range t.SubTasks {
		if strings.TrimSpace(st.Name) == "" {
			errs = append(errs, fmt.Errorf("sub_task[%d]: name is required", i))
		}
	}
	return errors.Join(errs...)
}

// Snapshot copies the fields a PlanningItem freezes at generation time.
// The returned item has no IDs and no sub-tasks.
func (t *TaskTemplate) Snapshot() *PlanningItem {
	return &PlanningItem{
		TemplateID:  t.ID,
		Name:        t.Name,
		Description: t.Description,
		Important:   t.Important,
		Morning:     ShiftSlot{Enabled: t.Morning.Enabled, Max: t.Morning.Max},
		Afternoon:   ShiftSlot{Enabled: t.Afternoon.Enabled, Max: t.Afternoon.Max},
		Evening:     ShiftSlot{Enabled: t.Evening.Enabled, Max: t.Evening.Max},
	}
}
