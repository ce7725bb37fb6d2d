package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jlwbr/workplanner-sub000/internal/cli"
	"github.com/jlwbr/workplanner-sub000/internal/cli/formatter"
	"github.com/jlwbr/workplanner-sub000/internal/config"
	"github.com/jlwbr/workplanner-sub000/internal/db"
	"github.com/jlwbr/workplanner-sub000/internal/repository"
	"github.com/jlwbr/workplanner-sub000/internal/rules"
	"github.com/jlwbr/workplanner-sub000/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	channelRepo := repository.NewSQLiteChannelRepo(database)
	templateRepo := repository.NewSQLiteTemplateRepo(database)
	planningRepo := repository.NewSQLitePlanningRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	evaluator := rules.NewEvaluator(
		rules.WithLogger(logger.With("component", "rules")),
		rules.WithTimeout(cfg.RuleTimeout()),
		rules.WithFactLimit(cfg.RuleFactLimit),
	)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewSlogUseCaseObserver(logger)
	}

	// Wire services
	ruleSvc := service.NewRuleService(evaluator, channelRepo, observer)
	app := &cli.App{
		Channels:    service.NewChannelService(channelRepo),
		Templates:   service.NewTemplateService(templateRepo, ruleSvc, uow, observer),
		Rules:       ruleSvc,
		Plannings:   service.NewPlanningService(channelRepo, planningRepo, evaluator, uow, observer),
		Assignments: service.NewAssignmentService(assignmentRepo, uow, observer),
		Import:      service.NewImportService(ruleSvc, uow, observer),
	}

	// Piped output gets no borders.
	formatter.Plain = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
