package service

import (
	"context"
	"time"

	"github.com/jlwbr/workplanner-sub000/internal/domain"
	"github.com/jlwbr/workplanner-sub000/internal/importer"
)

// RuleEvaluator is the rule engine the services depend on; *rules.Evaluator
// satisfies it.
type RuleEvaluator interface {
	Check(ctx context.Context, body string, date time.Time) (bool, error)
	ActiveTemplates(ctx context.Context, rules map[string]string, date time.Time) []string
}

// ValidationResult is the authoring-surface answer for a rule body.
type ValidationResult struct {
	Success bool
	Reason  string
}

type RuleService interface {
	// ValidateRule checks body against today's date. It never fails.
	ValidateRule(ctx context.Context, body string) ValidationResult
	// EvaluateRule reports whether body holds on date. Invalid rules return
	// an error wrapping domain.ErrInvalidRule.
	EvaluateRule(ctx context.Context, body string, date time.Time) (bool, error)
	// ActiveTemplates returns the templates of non-removed channels whose
	// rule holds on date, in planning order.
	ActiveTemplates(ctx context.Context, date time.Time) ([]*domain.TaskTemplate, error)
	// Program renders the aggregate rule program evaluated for date.
	Program(ctx context.Context, date time.Time) (string, error)
}

// ChannelOutcome reports what generation did for one channel.
type ChannelOutcome struct {
	ChannelID   string
	ChannelName string
	PlanningID  string
	ItemCount   int
	SubTasks    int
	Skipped     bool
	Err         error
}

type GenerateResult struct {
	Date     time.Time
	Channels []ChannelOutcome
}

type PlanningService interface {
	GeneratePlanning(ctx context.Context, date time.Time) (*GenerateResult, error)
	GetPlanning(ctx context.Context, channelID string, date time.Time) (*domain.Planning, error)
	ListPlannings(ctx context.Context, date time.Time) ([]*domain.Planning, error)
	LockPlanning(ctx context.Context, id string) error
	UnlockPlanning(ctx context.Context, id string) error
	SetSubTaskDone(ctx context.Context, subTaskID string, done bool) error
}

type AssignmentService interface {
	Assign(ctx context.Context, itemID string, shift domain.Shift, userID string) error
	Unassign(ctx context.Context, itemID string, shift domain.Shift, userID string) error
	ListByItem(ctx context.Context, itemID string) ([]*domain.Assignment, error)
}

type ChannelService interface {
	Create(ctx context.Context, c *domain.Channel) error
	List(ctx context.Context, includeRemoved bool) ([]*domain.Channel, error)
	Get(ctx context.Context, id string) (*domain.Channel, error)
	Remove(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

type TemplateService interface {
	Create(ctx context.Context, t *domain.TaskTemplate) error
	Update(ctx context.Context, t *domain.TaskTemplate) error
	Get(ctx context.Context, id string) (*domain.TaskTemplate, error)
	ListByChannel(ctx context.Context, channelID string) ([]*domain.TaskTemplate, error)
	Delete(ctx context.Context, id string) error
}

type ImportResult struct {
	Channels      []*domain.Channel
	TemplateCount int
	SubTaskCount  int
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
