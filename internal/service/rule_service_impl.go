package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jlwbr/workplanner-sub000/internal/domain"
	"github.com/jlwbr/workplanner-sub000/internal/repository"
	"github.com/jlwbr/workplanner-sub000/internal/rules"
)

type ruleService struct {
	evaluator RuleEvaluator
	channels  repository.ChannelRepo
	observer  UseCaseObserver
	now       func() time.Time
}

func NewRuleService(evaluator RuleEvaluator, channels repository.ChannelRepo, observers ...UseCaseObserver) RuleService {
	return &ruleService{
		evaluator: evaluator,
		channels:  channels,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
	}
}

func (s *ruleService) ValidateRule(ctx context.Context, body string) (result ValidationResult) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "validate-rule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   true,
			Fields:    map[string]any{"valid": result.Success},
		})
	}()

	if _, err := s.evaluator.Check(ctx, body, domain.NormalizeDate(s.now())); err != nil {
		return ValidationResult{Success: false, Reason: err.Error()}
	}
	return ValidationResult{Success: true}
}

func (s *ruleService) EvaluateRule(ctx context.Context, body string, date time.Time) (bool, error) {
	holds, err := s.evaluator.Check(ctx, body, domain.NormalizeDate(date))
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrInvalidRule, err)
	}
	return holds, nil
}

func (s *ruleService) ActiveTemplates(ctx context.Context, date time.Time) ([]*domain.TaskTemplate, error) {
	channels, err := s.channels.ListActiveWithTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading channels: %w", err)
	}
	ruleSet := collectRules(channels)
	if len(ruleSet) == 0 {
		return nil, nil
	}

	active := idSet(s.evaluator.ActiveTemplates(ctx, ruleSet, domain.NormalizeDate(date)))
	var out []*domain.TaskTemplate
	for _, ch := range channels {
		var picked []*domain.TaskTemplate
		for _, t := range ch.Templates {
			if active[t.ID] {
				picked = append(picked, t)
			}
		}
		sortForPlanning(picked)
		out = append(out, picked...)
	}
	return out, nil
}

func (s *ruleService) Program(ctx context.Context, date time.Time) (string, error) {
	channels, err := s.channels.ListActiveWithTemplates(ctx)
	if err != nil {
		return "", fmt.Errorf("loading channels: %w", err)
	}
	return rules.BuildProgram(collectRules(channels), domain.NormalizeDate(date)), nil
}
