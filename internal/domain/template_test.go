package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTemplate() *TaskTemplate {
	return &TaskTemplate{
		ID:        "t1",
		ChannelID: "c1",
		Name:      "Open the store",
		Rule:      "today(/monday)",
		Morning:   ShiftCapacity{Enabled: true, Min: 1, Max: 2},
	}
}

func TestTaskTemplateValidate_OK(t *testing.T) {
	assert.NoError(t, validTemplate().Validate())
}

func TestTaskTemplateValidate_CollectsAllErrors(t *testing.T) {
	tpl := validTemplate()
	tpl.Name = " "
	tpl.Rule = ""
	tpl.Evening = ShiftCapacity{Enabled: true, Min: 3, Max: 1}
	tpl.SubTasks = []SubTaskTemplate{{Name: ""}}

	err := tpl.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "rule is required")
	assert.Contains(t, err.Error(), "evening: min 3 exceeds max 1")
	assert.Contains(t, err.Error(), "sub_task[0]")
}

func TestTaskTemplateValidate_UnboundedMaxAllowsAnyMin(t *testing.T) {
	tpl := validTemplate()
	tpl.Afternoon = ShiftCapacity{Enabled: true, Min: 5, Max: 0}
	assert.NoError(t, tpl.Validate())
}

func TestTaskTemplateValidate_NegativeCapacity(t *testing.T) {
	tpl := validTemplate()
	tpl.Morning.Max = -1
	require.Error(t, tpl.Validate())
}

func TestSnapshot_CopiesCapacity(t *testing.T) {
	tpl := validTemplate()
	tpl.Important = true
	tpl.Description = "keys are in the safe"

	item := tpl.Snapshot()
	assert.Equal(t, "t1", item.TemplateID)
	assert.Equal(t, "Open the store", item.Name)
	assert.Equal(t, "keys are in the safe", item.Description)
	assert.True(t, item.Important)
	assert.Equal(t, ShiftSlot{Enabled: true, Max: 2}, item.Morning)
	assert.Equal(t, ShiftSlot{}, item.Evening)

	tpl.Morning.Max = 9
	assert.Equal(t, 2, item.Morning.Max, "snapshot must not follow template edits")
}

func TestCheckAssignable(t *testing.T) {
	item := &PlanningItem{
		Name:      "Till",
		Morning:   ShiftSlot{Enabled: true, Max: 1},
		Afternoon: ShiftSlot{Enabled: true},
	}

	require.NoError(t, item.CheckAssignable(ShiftMorning, 0))
	assert.ErrorIs(t, item.CheckAssignable(ShiftMorning, 1), ErrShiftFull)
	assert.NoError(t, item.CheckAssignable(ShiftAfternoon, 50), "max 0 is unbounded")
	assert.ErrorIs(t, item.CheckAssignable(ShiftEvening, 0), ErrShiftDisabled)
}

func TestParseShift(t *testing.T) {
	s, err := ParseShift("evening")
	require.NoError(t, err)
	assert.Equal(t, ShiftEvening, s)

	_, err = ParseShift("night")
	assert.ErrorIs(t, err, ErrInvalidShift)
}

func TestNormalizeDate(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	in := time.Date(2026, 10, 12, 1, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), NormalizeDate(in))
}
