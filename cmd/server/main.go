package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/taxpilot/tax-assistant/internal/ai"
	"github.com/taxpilot/tax-assistant/internal/config"
	"github.com/taxpilot/tax-assistant/internal/document"
	httpserver "github.com/taxpilot/tax-assistant/internal/interfaces/http"
	"github.com/taxpilot/tax-assistant/internal/report"
	"github.com/taxpilot/tax-assistant/internal/repository"
	"github.com/taxpilot/tax-assistant/internal/tax"
	"github.com/taxpilot/tax-assistant/pkg/database"
	"github.com/taxpilot/tax-assistant/pkg/utils"
)

func main() {
	// Load .env if present so OPENAI_API_KEY and friends are picked up
	// before the config layer binds environment variables.
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Tax Assistant",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Report.OutputDir, 0755); err != nil {
		logger.Fatal("Failed to create report output directory", zap.Error(err))
	}

	slabs := tax.DefaultSlabTable()
	caps := tax.DefaultDeductionCaps()
	catalog := tax.DefaultDocumentCatalog()

	if cfg.OpenAI.APIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set, AI extraction and chat run in fallback mode")
	}

	deps := httpserver.Dependencies{
		Documents:    repository.NewDocumentRepository(db.DB, logger),
		Profiles:     repository.NewProfileRepository(db.DB, logger),
		Chats:        repository.NewChatRepository(db.DB, logger),
		Deadlines:    repository.NewDeadlineRepository(db.DB, logger),
		HealthScores: repository.NewHealthScoreRepository(db.DB, logger),

		Catalog:    catalog,
		Aggregator: tax.NewAggregator(slabs, caps),
		Regimes:    tax.NewRegimeComparator(slabs, caps),
		Checker:    tax.NewConsistencyChecker(tax.DefaultCheckerConfig()),
		Gaps:       tax.NewGapAnalyzer(catalog),
		Insights:   tax.NewInsightsEngine(slabs, caps, nil),
		Health:     tax.NewHealthScorer(caps, nil),
		ITR:        tax.NewITRDraftBuilder(caps, nil),
		Calendar:   tax.NewDeadlineCalendar(nil),
		Checklist:  tax.NewChecklistBuilder(),

		Extractor: ai.NewExtractor(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Temperature, cfg.OpenAI.MaxTokens, catalog, logger),
		Assistant: ai.NewAssistant(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Temperature, cfg.OpenAI.MaxTokens, logger),
		PDFReader: document.NewPDFReader(logger),
		Exporter:  report.NewExporter(cfg.Report.OutputDir, logger),
	}

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, deps, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}

	logger.Info("Server exited")
}
