package domain

import (
	"fmt"
	"time"
)

// Planning is the materialized snapshot of one channel's active templates
// for one date.
type Planning struct {
	ID        string
	ChannelID string
	Date      time.Time
	Locked    bool
	CreatedAt time.Time

	Items []*PlanningItem
}

// ShiftSlot is the capacity snapshot an item carries for one shift.
// Max == 0 means unbounded.
type ShiftSlot struct {
	Enabled bool
	Max     int
}

// HasRoom reports whether another assignee fits given the current count.
func (s ShiftSlot) HasRoom(assigned int) bool {
	return s.Max == 0 || assigned < s.Max
}

type PlanningItem struct {
	ID          string
	PlanningID  string
	TemplateID  string
	Name        string
	Description string
	Position    int
	Important   bool

	Morning   ShiftSlot
	Afternoon ShiftSlot
	Evening   ShiftSlot

	SubTasks  []*SubTaskItem
	CreatedAt time.Time
}

// Slot returns the item's capacity snapshot for the given shift.
func (i *PlanningItem) Slot(s Shift) ShiftSlot {
	switch s {
	case ShiftMorning:
		return i.Morning
	case ShiftAfternoon:
		return i.Afternoon
	case ShiftEvening:
		return i.Evening
	}
	return ShiftSlot{}
}

// CheckAssignable returns nil when one more user can be placed on the shift.
func (i *PlanningItem) CheckAssignable(s Shift, assigned int) error {
	slot := i.Slot(s)
	if !slot.Enabled {
		return fmt.Errorf("%s on %q: %w", s, i.Name, ErrShiftDisabled)
	}
	if !slot.HasRoom(assigned) {
		return fmt.Errorf("%s on %q (max %d): %w", s, i.Name, slot.Max, ErrShiftFull)
	}
	return nil
}

type SubTaskItem struct {
	ID             string
	PlanningItemID string
	Name           string
	Position       int
	Done           bool
	CreatedAt      time.Time
}

type Assignment struct {
	PlanningItemID string
	Shift          Shift
	UserID         string
	CreatedAt      time.Time
}

// NormalizeDate returns midnight UTC of t's calendar date in t's location.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
