package rules

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	"github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
)

const (
	DefaultTimeout   = 2 * time.Second
	DefaultFactLimit = 100000
)

var errStop = errors.New("stop")

// Evaluator answers rule queries against a date. It keeps no program state
// between calls and is safe for concurrent use.
type Evaluator struct {
	logger    *slog.Logger
	timeout   time.Duration
	factLimit int
}

type Option func(*Evaluator)

func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTimeout bounds a single evaluation. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(e *Evaluator) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithFactLimit caps the number of facts one evaluation may derive.
func WithFactLimit(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.factLimit = n
		}
	}
}

func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout:   DefaultTimeout,
		factLimit: DefaultFactLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate reports whether body is a well-formed rule that evaluates to a
// definite answer for date. It never returns an error; any failure is false.
func (e *Evaluator) Validate(ctx context.Context, body string, date time.Time) bool {
	_, err := e.Check(ctx, body, date)
	return err == nil
}

// Check evaluates body in isolation and reports whether it holds on date.
// A non-nil error carries the reason the rule is rejected.
func (e *Evaluator) Check(ctx context.Context, body string, date time.Time) (holds bool, err error) {
	defer recoverInto(&err)

	if err := checkSingleClause(body); err != nil {
		return false, err
	}
	sym := ast.PredicateSym{Symbol: checkPredicate, Arity: 1}
	atom, found, err := e.solveFirst(ctx, BuildValidationProgram(body, date), sym)
	if err != nil {
		return false, err
	}
	if !found {
		return false, errors.New("rule has no solution")
	}
	c, isConst := atom.Args[0].(ast.Constant)
	if !isConst {
		return false, fmt.Errorf("unexpected answer %v", atom.Args[0])
	}
	yes, _ := ast.Name("/true")
	no, _ := ast.Name("/false")
	switch {
	case c.Equals(yes):
		return true, nil
	case c.Equals(no):
		return false, nil
	}
	return false, fmt.Errorf("unexpected answer %v", c)
}

// ActiveTemplates returns the IDs whose rule body holds on date. Rules that
// do not compile on their own are logged and left out. When the aggregate
// evaluation fails, every rule is evaluated alone and only the failing ones
// are dropped.
func (e *Evaluator) ActiveTemplates(ctx context.Context, rules map[string]string, date time.Time) (ids []string) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Warn("rule evaluation panicked", "date", date.Format(time.DateOnly), "panic", fmt.Sprint(p))
			ids = nil
		}
	}()

	usable := make(map[string]string, len(rules))
	for id, body := range rules {
		if err := e.compileRule(body, date); err != nil {
			e.logger.Warn("excluding rule", "template_id", id, "error", err)
			continue
		}
		usable[id] = body
	}
	if len(usable) == 0 {
		return nil
	}

	sym := ast.PredicateSym{Symbol: allPredicate, Arity: 1}
	atom, found, err := e.solveFirst(ctx, BuildProgram(usable, date), sym)
	if err != nil {
		e.logger.Warn("evaluating active templates", "date", date.Format(time.DateOnly), "error", err)
		return e.activeOneByOne(ctx, usable, date)
	}
	if !found {
		return nil
	}
	ids, err = DecodeIDList(atom.Args[0])
	if err != nil {
		e.logger.Warn("decoding active templates", "date", date.Format(time.DateOnly), "error", err)
		return nil
	}
	return ids
}

// activeOneByOne checks each rule in its own program, in ascending ID order.
func (e *Evaluator) activeOneByOne(ctx context.Context, rules map[string]string, date time.Time) []string {
	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var active []string
	for _, id := range ids {
		if ctx.Err() != nil {
			return nil
		}
		holds, err := e.Check(ctx, rules[id], date)
		if err != nil {
			e.logger.Warn("excluding rule", "template_id", id, "date", date.Format(time.DateOnly), "error", err)
			continue
		}
		if holds {
			active = append(active, id)
		}
	}
	return active
}

// compileRule parses and analyzes a body in isolation without evaluating it.
func (e *Evaluator) compileRule(body string, date time.Time) (err error) {
	defer recoverInto(&err)

	if err := checkSingleClause(body); err != nil {
		return err
	}
	unit, err := parse.Unit(strings.NewReader(BuildValidationProgram(body, date)))
	if err != nil {
		return fmt.Errorf("parsing rule: %w", err)
	}
	if _, err := analysis.AnalyzeOneUnit(unit, nil); err != nil {
		return fmt.Errorf("analyzing rule: %w", err)
	}
	return nil
}

// solveFirst evaluates program and returns the first fact of goal. The
// evaluation itself runs on its own goroutine so that the caller's context
// and the evaluator timeout are honored even while the fixpoint runs.
func (e *Evaluator) solveFirst(ctx context.Context, program string, goal ast.PredicateSym) (ast.Atom, bool, error) {
	unit, err := parse.Unit(strings.NewReader(program))
	if err != nil {
		return ast.Atom{}, false, fmt.Errorf("parsing program: %w", err)
	}
	info, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return ast.Atom{}, false, fmt.Errorf("analyzing program: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	store := factstore.NewSimpleInMemoryStore()
	done := make(chan error, 1)
	go func() {
		var evalErr error
		defer func() {
			if p := recover(); p != nil {
				evalErr = fmt.Errorf("evaluator panic: %v", p)
			}
			done <- evalErr
		}()
		_, evalErr = engine.EvalProgramWithStats(info, store, engine.WithCreatedFactLimit(e.factLimit))
	}()

	select {
	case err := <-done:
		if err != nil {
			return ast.Atom{}, false, fmt.Errorf("evaluating program: %w", err)
		}
	case <-ctx.Done():
		return ast.Atom{}, false, fmt.Errorf("evaluating program: %w", ctx.Err())
	}

	var first ast.Atom
	found := false
	err = store.GetFacts(ast.NewQuery(goal), func(a ast.Atom) error {
		first = a
		found = true
		return errStop
	})
	if err != nil && !errors.Is(err, errStop) {
		return ast.Atom{}, false, fmt.Errorf("reading %s: %w", goal.Symbol, err)
	}
	return first, found, nil
}

// checkSingleClause rejects bodies that close the clause early and smuggle
// further clauses or declarations into the program.
func checkSingleClause(body string) error {
	if trimBody(body) == "" {
		return errors.New("empty rule")
	}
	unit, err := parse.Unit(strings.NewReader(checkClause(body)))
	if err != nil {
		return fmt.Errorf("parsing rule: %w", err)
	}
	if len(unit.Clauses) != 1 {
		return fmt.Errorf("rule must be a single clause body, got %d clauses", len(unit.Clauses))
	}
	if unit.Clauses[0].Head.Predicate.Symbol != holdsPredicate {
		return errors.New("rule must be a single clause body")
	}
	return nil
}

func recoverInto(err *error) {
	if p := recover(); p != nil {
		*err = fmt.Errorf("evaluator panic: %v", p)
	}
}
