package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jlwbr/workplanner-sub000/internal/db"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
	"github.com/jlwbr/workplanner-sub000/internal/repository"
	"github.com/jlwbr/workplanner-sub000/internal/rules"
	"github.com/jlwbr/workplanner-sub000/internal/testutil"
	"github.com/stretchr/testify/require"
)

var (
	monday    = testutil.Date("2026-10-12")
	tuesday   = testutil.Date("2026-10-13")
	wednesday = testutil.Date("2026-10-14")
	saturday  = testutil.Date("2026-10-17")
)

type env struct {
	db          *sql.DB
	uow         db.UnitOfWork
	channels    *repository.SQLiteChannelRepo
	templates   *repository.SQLiteTemplateRepo
	plannings   *repository.SQLitePlanningRepo
	assignments *repository.SQLiteAssignmentRepo
	evaluator   *rules.Evaluator
}

func newEnv(t *testing.T) *env {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &env{
		db:          database,
		uow:         testutil.NewTestUoW(database),
		channels:    repository.NewSQLiteChannelRepo(database),
		templates:   repository.NewSQLiteTemplateRepo(database),
		plannings:   repository.NewSQLitePlanningRepo(database),
		assignments: repository.NewSQLiteAssignmentRepo(database),
		evaluator:   rules.NewEvaluator(),
	}
}

func (e *env) planningService(uow db.UnitOfWork, observers ...UseCaseObserver) PlanningService {
	if uow == nil {
		uow = e.uow
	}
	return NewPlanningService(e.channels, e.plannings, e.evaluator, uow, observers...)
}

// ruleServiceAt returns a rule service whose clock is fixed to day.
func (e *env) ruleServiceAt(day time.Time) RuleService {
	svc := NewRuleService(e.evaluator, e.channels).(*ruleService)
	svc.now = func() time.Time { return day }
	return svc
}

func (e *env) seedChannel(t *testing.T, name string, opts ...testutil.ChannelOption) *domain.Channel {
	t.Helper()
	c := testutil.NewTestChannel(name, opts...)
	require.NoError(t, e.channels.Create(context.Background(), c))
	return c
}

func (e *env) seedTemplate(t *testing.T, channelID, name string, opts ...testutil.TemplateOption) *domain.TaskTemplate {
	t.Helper()
	tmpl := testutil.NewTestTemplate(channelID, name, opts...)
	require.NoError(t, e.templates.Create(context.Background(), tmpl))
	return tmpl
}

func (e *env) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}
