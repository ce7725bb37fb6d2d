package rules

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/mangle/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monday   = day("2026-10-12")
	tuesday  = day("2026-10-13")
	saturday = day("2026-10-17")
	sunday   = day("2026-10-18")
)

func TestValidate(t *testing.T) {
	ev := NewEvaluator()
	ctx := context.Background()

	tests := []struct {
		name string
		body string
		want bool
	}{
		{"weekday name", "today(/monday)", true},
		{"weekday on another day", "today(/friday)", true},
		{"variable equality", "today(X), X = X", true},
		{"trailing period", "today(/weekend).", true},
		{"calendar supplement", "day_of_month(N), N = 12", true},
		{"undefined predicate", "undefined_predicate(/x)", false},
		{"syntax error", "today(/monday", false},
		{"empty", "   ", false},
		{"smuggled clause", "today(/monday). task(\"x\") :- today(/monday)", false},
		{"wrong arity", "today(/monday, /tuesday)", false},
		{"trailing comment", "today(/monday) # start of week", true},
		{"period then comment", "today(/monday). # start of week", true},
		{"only a comment", "# today(/monday)", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ev.Validate(ctx, tt.body, monday))
		})
	}
}

func TestValidate_Deterministic(t *testing.T) {
	ev := NewEvaluator()
	for _, body := range []string{"today(/monday)", "undefined_predicate(/x)"} {
		first := ev.Validate(context.Background(), body, tuesday)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, ev.Validate(context.Background(), body, tuesday), body)
		}
	}
}

func TestCheck_Holds(t *testing.T) {
	ev := NewEvaluator()
	ctx := context.Background()

	holds, err := ev.Check(ctx, "today(/monday)", monday)
	require.NoError(t, err)
	assert.True(t, holds)

	holds, err = ev.Check(ctx, "today(/monday)", tuesday)
	require.NoError(t, err)
	assert.False(t, holds)

	holds, err = ev.Check(ctx, "today(/weekend)", sunday)
	require.NoError(t, err)
	assert.True(t, holds)

	_, err = ev.Check(ctx, "undefined_predicate(/x)", monday)
	assert.Error(t, err)
}

func TestActiveTemplates_Weekdays(t *testing.T) {
	ev := NewEvaluator()
	rules := map[string]string{
		"t1": "today(/monday)",
		"t2": "today(/tuesday)",
	}

	assert.Equal(t, []string{"t1"}, ev.ActiveTemplates(context.Background(), rules, monday))
	assert.Equal(t, []string{"t2"}, ev.ActiveTemplates(context.Background(), rules, tuesday))
}

func TestActiveTemplates_AlwaysTrue(t *testing.T) {
	ev := NewEvaluator()
	rules := map[string]string{
		"t1": "today(/monday)",
		"t2": "today(X), X = X",
	}

	assert.ElementsMatch(t, []string{"t1", "t2"}, ev.ActiveTemplates(context.Background(), rules, monday))
	assert.Equal(t, []string{"t2"}, ev.ActiveTemplates(context.Background(), rules, tuesday))
}

func TestActiveTemplates_Weekend(t *testing.T) {
	ev := NewEvaluator()
	rules := map[string]string{
		"wk":  "today(/weekend)",
		"sat": "today(/saturday)",
	}

	assert.ElementsMatch(t, []string{"wk", "sat"}, ev.ActiveTemplates(context.Background(), rules, saturday))
	assert.Equal(t, []string{"wk"}, ev.ActiveTemplates(context.Background(), rules, sunday))
	assert.Empty(t, ev.ActiveTemplates(context.Background(), rules, monday))
}

func TestActiveTemplates_Empty(t *testing.T) {
	ev := NewEvaluator()
	assert.Empty(t, ev.ActiveTemplates(context.Background(), nil, monday))
	assert.Empty(t, ev.ActiveTemplates(context.Background(), map[string]string{}, monday))
}

func TestActiveTemplates_BrokenRuleExcluded(t *testing.T) {
	ev := NewEvaluator()
	rules := map[string]string{
		"good":   "today(/monday)",
		"broken": "undefined_predicate(/x)",
		"syntax": "today(",
	}

	assert.Equal(t, []string{"good"}, ev.ActiveTemplates(context.Background(), rules, monday))
}

func TestActiveTemplates_EvaluationFailureIsolated(t *testing.T) {
	ev := NewEvaluator()
	// Divides by zero on the 13th only, so it passes a check on the 12th.
	dateBound := "day_of_month(D), Y = fn:div(1, fn:minus(D, 13)), Y = 0"
	require.True(t, ev.Validate(context.Background(), dateBound, monday))

	rules := map[string]string{
		"good": "today(/tuesday)",
		"bad":  dateBound,
	}
	assert.Equal(t, []string{"good"}, ev.ActiveTemplates(context.Background(), rules, tuesday))
	assert.Empty(t, ev.ActiveTemplates(context.Background(), rules, monday))
}

func TestActiveTemplates_RuntimeErrorsNextToGoodRule(t *testing.T) {
	ev := NewEvaluator()
	for _, bad := range []string{
		"Y = fn:div(1, 0)",
		"day_of_month(D), Y = fn:plus(D, /monday)",
	} {
		t.Run(bad, func(t *testing.T) {
			rules := map[string]string{
				"a-good": "today(/monday)",
				"b-bad":  bad,
				"c-good": "today(X), X = X",
			}
			assert.Equal(t, []string{"a-good", "c-good"}, ev.ActiveTemplates(context.Background(), rules, monday))
		})
	}
}

func TestActiveTemplates_ConcurrentCallsIndependent(t *testing.T) {
	ev := NewEvaluator()
	rules := map[string]string{
		"t1": "today(/monday)",
		"t2": "today(/tuesday)",
	}

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			date := monday
			if i%2 == 1 {
				date = tuesday
			}
			results[i] = ev.ActiveTemplates(context.Background(), rules, date)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if i%2 == 0 {
			assert.Equal(t, []string{"t1"}, got)
		} else {
			assert.Equal(t, []string{"t2"}, got)
		}
	}
}

func TestSolveFirst_FactLimit(t *testing.T) {
	ev := NewEvaluator(WithFactLimit(50))
	program := "n(0).\nn(M) :- n(N), M = fn:plus(N, 1).\n"

	_, _, err := ev.solveFirst(context.Background(), program, ast.PredicateSym{Symbol: "n", Arity: 1})
	assert.Error(t, err)
}

func TestSolveFirst_CancelledContext(t *testing.T) {
	ev := NewEvaluator(WithTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Either the tiny program finishes first or the cancellation wins; both
	// must return promptly without hanging.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = ev.solveFirst(ctx, DateLibrary(monday), ast.PredicateSym{Symbol: "today", Arity: 1})
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("solveFirst did not return")
	}
}

func TestOptions_IgnoreInvalid(t *testing.T) {
	ev := NewEvaluator(WithTimeout(0), WithFactLimit(-1), WithLogger(nil))
	assert.Equal(t, DefaultTimeout, ev.timeout)
	assert.Equal(t, DefaultFactLimit, ev.factLimit)
	assert.NotNil(t, ev.logger)
}
