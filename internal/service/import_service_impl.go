package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jlwbr/workplanner-sub000/internal/db"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
	"github.com/jlwbr/workplanner-sub000/internal/importer"
	"github.com/jlwbr/workplanner-sub000/internal/repository"
)

type importService struct {
	rules    RuleService
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(rules RuleService, uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		rules:    rules,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema validates the whole file, rules included, and writes every
// channel and template in a single transaction.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	errs := importer.ValidateImportSchema(schema)
	for i, ch := range schema.Channels {
		for j, t := range ch.Templates {
			if t.Rule == "" {
				continue
			}
			if res := s.rules.ValidateRule(ctx, t.Rule); !res.Success {
				errs = append(errs, fmt.Errorf("channels[%d].templates[%d].rule: %w: %s", i, j, domain.ErrInvalidRule, res.Reason))
			}
		}
	}
	if len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted := importer.Convert(schema)
	subTasks := 0
	for _, t := range converted.Templates {
		subTasks += len(t.SubTasks)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txChannels := repository.NewSQLiteChannelRepo(tx)
		txTemplates := repository.NewSQLiteTemplateRepo(tx)
		for _, ch := range converted.Channels {
			if err := txChannels.Create(ctx, ch); err != nil {
				return fmt.Errorf("creating channel %q: %w", ch.Name, err)
			}
		}
		for _, t := range converted.Templates {
			if err := txTemplates.Create(ctx, t); err != nil {
				return fmt.Errorf("creating template %q: %w", t.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["channels"] = len(converted.Channels)
	fields["templates"] = len(converted.Templates)
	return &ImportResult{
		Channels:      converted.Channels,
		TemplateCount: len(converted.Templates),
		SubTaskCount:  subTasks,
	}, nil
}
