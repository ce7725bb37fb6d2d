package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jlwbr/workplanner-sub000/internal/db"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
	"github.com/jlwbr/workplanner-sub000/internal/repository"
)

type planningService struct {
	channels  repository.ChannelRepo
	plannings repository.PlanningRepo
	evaluator RuleEvaluator
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewPlanningService(
	channels repository.ChannelRepo,
	plannings repository.PlanningRepo,
	evaluator RuleEvaluator,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) PlanningService {
	return &planningService{
		channels:  channels,
		plannings: plannings,
		evaluator: evaluator,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// GeneratePlanning materializes the given date for every non-removed
// channel. Each channel is written in its own transactions, so a failure
// leaves earlier channels committed; all failures are returned joined.
// Channels that already have a planning for the date are skipped.
func (s *planningService) GeneratePlanning(ctx context.Context, date time.Time) (result *GenerateResult, err error) {
	startedAt := time.Now().UTC()
	date = domain.NormalizeDate(date)
	fields := map[string]any{"date": date.Format(dateLayout)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate-planning",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	channels, err := s.channels.ListActiveWithTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading channels: %w", err)
	}
	result = &GenerateResult{Date: date}

	ruleSet := collectRules(channels)
	fields["templates"] = len(ruleSet)
	if len(ruleSet) == 0 {
		return result, nil
	}
	active := idSet(s.evaluator.ActiveTemplates(ctx, ruleSet, date))
	fields["active"] = len(active)

	var errs []error
	created, skipped := 0, 0
	for _, ch := range channels {
		if ctxErr := ctx.Err(); ctxErr != nil {
			errs = append(errs, fmt.Errorf("generating plannings for %s: %w", date.Format(dateLayout), ctxErr))
			break
		}
		outcome := s.generateChannel(ctx, ch, active, date)
		if outcome.Err != nil {
			errs = append(errs, outcome.Err)
		}
		switch {
		case outcome.Skipped:
			skipped++
		case outcome.PlanningID != "" && outcome.Err == nil:
			created++
		}
		result.Channels = append(result.Channels, outcome)
	}
	fields["created"] = created
	fields["skipped"] = skipped
	fields["failed"] = len(errs)

	return result, errors.Join(errs...)
}

// generateChannel writes the planning and its items in one transaction and
// the sub-task items in a second one.
func (s *planningService) generateChannel(ctx context.Context, ch *domain.Channel, active map[string]bool, date time.Time) ChannelOutcome {
	outcome := ChannelOutcome{ChannelID: ch.ID, ChannelName: ch.Name}
	fail := func(err error) ChannelOutcome {
		outcome.Err = fmt.Errorf("channel %s on %s: %w", ch.ID, date.Format(dateLayout), err)
		return outcome
	}

	var picked []*domain.TaskTemplate
	for _, t := range ch.Templates {
		if active[t.ID] {
			picked = append(picked, t)
		}
	}
	sortForPlanning(picked)

	now := nowUTC()
	planning := &domain.Planning{
		ID:        uuid.New().String(),
		ChannelID: ch.ID,
		Date:      date,
		CreatedAt: now,
	}
	sources := make(map[string]*domain.TaskTemplate, len(picked))
	for i, t := range picked {
		item := t.Snapshot()
		item.ID = uuid.New().String()
		item.PlanningID = planning.ID
		item.Position = i
		item.CreatedAt = now
		planning.Items = append(planning.Items, item)
		sources[item.ID] = t
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlannings := repository.NewSQLitePlanningRepo(tx)

		exists, err := txPlannings.ExistsForChannelAndDate(ctx, ch.ID, date)
		if err != nil {
			return err
		}
		if exists {
			outcome.Skipped = true
			return nil
		}

		if err := txPlannings.Create(ctx, planning); err != nil {
			return err
		}
		for _, item := range planning.Items {
			if err := txPlannings.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fail(fmt.Errorf("creating planning: %w", err))
	}
	if outcome.Skipped {
		return outcome
	}
	outcome.PlanningID = planning.ID
	outcome.ItemCount = len(planning.Items)

	var subTasks []*domain.SubTaskItem
	for _, item := range planning.Items {
		for i, st := range sources[item.ID].SubTasks {
			subTasks = append(subTasks, &domain.SubTaskItem{
				ID:             uuid.New().String(),
				PlanningItemID: item.ID,
				Name:           st.Name,
				Position:       i,
				CreatedAt:      now,
			})
		}
	}
	if len(subTasks) == 0 {
		return outcome
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlannings := repository.NewSQLitePlanningRepo(tx)
		for _, st := range subTasks {
			if err := txPlannings.CreateSubTaskItem(ctx, st); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fail(fmt.Errorf("creating sub-task items: %w", err))
	}
	outcome.SubTasks = len(subTasks)
	return outcome
}

func (s *planningService) GetPlanning(ctx context.Context, channelID string, date time.Time) (*domain.Planning, error) {
	return s.plannings.GetByChannelAndDate(ctx, channelID, domain.NormalizeDate(date))
}

func (s *planningService) ListPlannings(ctx context.Context, date time.Time) ([]*domain.Planning, error) {
	return s.plannings.ListByDate(ctx, domain.NormalizeDate(date))
}

func (s *planningService) LockPlanning(ctx context.Context, id string) error {
	return s.plannings.SetLocked(ctx, id, true)
}

func (s *planningService) UnlockPlanning(ctx context.Context, id string) error {
	return s.plannings.SetLocked(ctx, id, false)
}

func (s *planningService) SetSubTaskDone(ctx context.Context, subTaskID string, done bool) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlannings := repository.NewSQLitePlanningRepo(tx)
		locked, err := txPlannings.SubTaskLocked(ctx, subTaskID)
		if err != nil {
			return err
		}
		if locked {
			return fmt.Errorf("sub-task %s: %w", subTaskID, domain.ErrPlanningLocked)
		}
		return txPlannings.SetSubTaskDone(ctx, subTaskID, done)
	})
}
