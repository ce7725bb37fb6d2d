package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jlwbr/workplanner-sub000/internal/db"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
	"github.com/jlwbr/workplanner-sub000/internal/repository"
)

type assignmentService struct {
	assignments repository.AssignmentRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewAssignmentService(assignments repository.AssignmentRepo, uow db.UnitOfWork, observers ...UseCaseObserver) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Assign places userID on the item's shift. The capacity check and the
// insert share one transaction.
func (s *assignmentService) Assign(ctx context.Context, itemID string, shift domain.Shift, userID string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "assign",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"item_id": itemID, "shift": string(shift), "user_id": userID},
		})
	}()

	if _, err := domain.ParseShift(string(shift)); err != nil {
		return err
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlannings := repository.NewSQLitePlanningRepo(tx)
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)

		item, err := txPlannings.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		planning, err := txPlannings.GetByID(ctx, item.PlanningID)
		if err != nil {
			return err
		}
		if planning.Locked {
			return fmt.Errorf("planning %s: %w", planning.ID, domain.ErrPlanningLocked)
		}

		current, err := txAssignments.ListByItem(ctx, itemID)
		if err != nil {
			return err
		}
		count := 0
		for _, a := range current {
			if a.Shift != shift {
				continue
			}
			if a.UserID == userID {
				return fmt.Errorf("%s on %s: %w", userID, shift, domain.ErrAlreadyAssigned)
			}
			count++
		}
		if err := item.CheckAssignable(shift, count); err != nil {
			return err
		}

		return txAssignments.Create(ctx, &domain.Assignment{
			PlanningItemID: itemID,
			Shift:          shift,
			UserID:         userID,
			CreatedAt:      nowUTC(),
		})
	})
}

func (s *assignmentService) Unassign(ctx context.Context, itemID string, shift domain.Shift, userID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlannings := repository.NewSQLitePlanningRepo(tx)
		item, err := txPlannings.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		planning, err := txPlannings.GetByID(ctx, item.PlanningID)
		if err != nil {
			return err
		}
		if planning.Locked {
			return fmt.Errorf("planning %s: %w", planning.ID, domain.ErrPlanningLocked)
		}
		return repository.NewSQLiteAssignmentRepo(tx).Delete(ctx, itemID, shift, userID)
	})
}

func (s *assignmentService) ListByItem(ctx context.Context, itemID string) ([]*domain.Assignment, error) {
	return s.assignments.ListByItem(ctx, itemID)
}
