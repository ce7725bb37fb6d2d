package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jlwbr/workplanner-sub000/internal/db"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
	"github.com/jlwbr/workplanner-sub000/internal/repository"
)

type templateService struct {
	templates repository.TemplateRepo
	rules     RuleService
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewTemplateService(
	templates repository.TemplateRepo,
	rules RuleService,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TemplateService {
	return &templateService{
		templates: templates,
		rules:     rules,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) Create(ctx context.Context, t *domain.TaskTemplate) (err error) {
	startedAt := time.Now().UTC()
	defer s.observe(ctx, "create-template", startedAt, t, &err)

	if err = s.prepare(ctx, t); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := nowUTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	assignSubTaskIDs(t)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteChannelRepo(tx).GetByID(ctx, t.ChannelID); err != nil {
			return err
		}
		return repository.NewSQLiteTemplateRepo(tx).Create(ctx, t)
	})
}

// Update rewrites the template and its sub-task list. Plannings generated
// earlier keep their snapshots.
func (s *templateService) Update(ctx context.Context, t *domain.TaskTemplate) (err error) {
	startedAt := time.Now().UTC()
	defer s.observe(ctx, "update-template", startedAt, t, &err)

	if err = s.prepare(ctx, t); err != nil {
		return err
	}
	t.UpdatedAt = nowUTC()
	assignSubTaskIDs(t)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTemplateRepo(tx).Update(ctx, t)
	})
}

func (s *templateService) Get(ctx context.Context, id string) (*domain.TaskTemplate, error) {
	return s.templates.GetByID(ctx, id)
}

func (s *templateService) ListByChannel(ctx context.Context, channelID string) ([]*domain.TaskTemplate, error) {
	return s.templates.ListByChannel(ctx, channelID)
}

func (s *templateService) Delete(ctx context.Context, id string) error {
	return s.templates.Delete(ctx, id)
}

// prepare validates the fields and the rule before anything is written.
func (s *templateService) prepare(ctx context.Context, t *domain.TaskTemplate) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Rule = strings.TrimSpace(t.Rule)
	if err := t.Validate(); err != nil {
		return err
	}
	if res := s.rules.ValidateRule(ctx, t.Rule); !res.Success {
		return fmt.Errorf("%w: %s", domain.ErrInvalidRule, res.Reason)
	}
	return nil
}

func (s *templateService) observe(ctx context.Context, name string, startedAt time.Time, t *domain.TaskTemplate, err *error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   *err == nil,
		Err:       *err,
		Fields:    map[string]any{"template_id": t.ID, "channel_id": t.ChannelID},
	})
}

func assignSubTaskIDs(t *domain.TaskTemplate) {
	for i := range t.SubTasks {
		if t.SubTasks[i].ID == "" {
			t.SubTasks[i].ID = uuid.New().String()
		}
	}
}
