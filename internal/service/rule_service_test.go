package service

import (
	"context"
	"testing"
	"time"

	"github.com/jlwbr/workplanner-sub000/internal/domain"
	"github.com/jlwbr/workplanner-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleService_ValidateRule(t *testing.T) {
	e := newEnv(t)
	rec := &recordingObserver{}
	svc := NewRuleService(e.evaluator, e.channels, rec).(*ruleService)
	svc.now = func() time.Time { return wednesday }

	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{"other weekday", "today(/monday)", true},
		{"always", "today(X), X = X", true},
		{"week parity", "week_parity(/even)", true},
		{"wrong arity", "week_parity(D, /even)", false},
		{"undefined predicate", "undefined_predicate(/x)", false},
		{"syntax error", "today(/monday", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := svc.ValidateRule(context.Background(), tt.body)
			assert.Equal(t, tt.valid, res.Success, res.Reason)
			if !tt.valid {
				assert.NotEmpty(t, res.Reason)
			}
			assert.Equal(t, tt.valid, rec.last(t).Fields["valid"])
		})
	}
}

func TestRuleService_EvaluateRule(t *testing.T) {
	e := newEnv(t)
	svc := e.ruleServiceAt(wednesday)
	ctx := context.Background()

	holds, err := svc.EvaluateRule(ctx, "today(/monday)", monday)
	require.NoError(t, err)
	assert.True(t, holds)

	holds, err = svc.EvaluateRule(ctx, "today(/monday)", tuesday)
	require.NoError(t, err)
	assert.False(t, holds)

	holds, err = svc.EvaluateRule(ctx, "today(/weekend)", saturday)
	require.NoError(t, err)
	assert.True(t, holds)

	_, err = svc.EvaluateRule(ctx, "nope(", monday)
	assert.ErrorIs(t, err, domain.ErrInvalidRule)
}

func TestRuleService_ActiveTemplates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	first := e.seedChannel(t, "first", testutil.WithSortOrder(1))
	second := e.seedChannel(t, "second", testutil.WithSortOrder(2))
	e.seedTemplate(t, second.ID, "s-daily", testutil.WithPriority(2))
	e.seedTemplate(t, first.ID, "f-monday", testutil.WithRule("today(/monday)"), testutil.WithPriority(3))
	e.seedTemplate(t, first.ID, "f-weekend", testutil.WithRule("today(/weekend)"))
	e.seedTemplate(t, first.ID, "f-daily", testutil.WithPriority(1))
	svc := e.ruleServiceAt(wednesday)

	got, err := svc.ActiveTemplates(ctx, monday)
	require.NoError(t, err)
	var names []string
	for _, tmpl := range got {
		names = append(names, tmpl.Name)
	}
	assert.Equal(t, []string{"f-daily", "f-monday", "s-daily"}, names)

	got, err = svc.ActiveTemplates(ctx, saturday)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "f-weekend", got[0].Name, "priority 0 sorts first")
}

func TestRuleService_ActiveTemplates_Empty(t *testing.T) {
	e := newEnv(t)
	got, err := e.ruleServiceAt(monday).ActiveTemplates(context.Background(), monday)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRuleService_Program(t *testing.T) {
	e := newEnv(t)
	ch := e.seedChannel(t, "c1")
	tmpl := e.seedTemplate(t, ch.ID, "t1", testutil.WithRule("today(/monday)"))

	program, err := e.ruleServiceAt(monday).Program(context.Background(), monday)
	require.NoError(t, err)
	assert.Contains(t, program, `task("`+tmpl.ID+`") :- today(/monday).`)
	assert.Contains(t, program, "target_date(")
	assert.Contains(t, program, "test_all(")
}
