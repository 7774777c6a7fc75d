package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FACorreiaa/receipt-analyzer/internal/domain/extraction"
	"github.com/FACorreiaa/receipt-analyzer/internal/domain/receipts"
	"github.com/FACorreiaa/receipt-analyzer/pkg/config"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	Pool         *pgxpool.Pool
	ReceiptsRepo *receipts.Repository

	Extractor   *extraction.Extractor
	Rules       *extraction.RuleSet
	VendorCache *receipts.VendorCache
	Refresher   *receipts.VendorRefresher
	SearchIndex *receipts.SearchIndex

	ReceiptsService *receipts.Service
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initExtraction(); err != nil {
		return nil, fmt.Errorf("failed to init extraction: %w", err)
	}

	if cfg.Database.Enabled {
		if err := deps.initDatabase(ctx); err != nil {
			return nil, fmt.Errorf("failed to init database: %w", err)
		}
	}

	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initExtraction builds the extractor and loads category keyword rules.
func (d *Dependencies) initExtraction() error {
	opts := []extraction.Option{
		extraction.WithStrategy(extraction.Strategy(d.Config.Extraction.Strategy)),
		extraction.WithDefaultCurrency(d.Config.Extraction.DefaultCurrency),
		extraction.WithLogger(d.Logger),
	}
	switch d.Config.Extraction.MissingDatePolicy {
	case "absent":
		opts = append(opts, extraction.WithMissingDatePolicy(extraction.MissingDateAbsent))
	case "now":
		opts = append(opts, extraction.WithMissingDatePolicy(extraction.MissingDateNow))
	}
	d.Extractor = extraction.New(opts...)

	if path := d.Config.Rules.Path; path != "" {
		rules, err := extraction.LoadRuleSet(path)
		if err != nil {
			// Rule files are optional input: fall back to the built-in
			// vendor table rather than refusing to run.
			d.Logger.Warn("failed to load category rules, using built-in table",
				slog.String("path", path),
				slog.Any("error", err),
			)
		} else {
			d.Rules = rules
			d.Logger.Info("category rules loaded",
				slog.String("path", path),
				slog.Int("rules", rules.Len()),
			)
		}
	}

	return nil
}

// initDatabase connects the pool, runs migrations, and starts the vendor
// snapshot refresher.
func (d *Dependencies) initDatabase(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, d.Config.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping database: %w", err)
	}
	d.Pool = pool

	if err := receipts.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	d.ReceiptsRepo = receipts.NewRepository(pool)

	d.VendorCache = receipts.NewVendorCache()
	d.Refresher = receipts.NewVendorRefresher(d.VendorCache, d.ReceiptsRepo, d.Logger)
	if err := d.Refresher.Start(); err != nil {
		return fmt.Errorf("start vendor refresher: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initServices wires the receipts service on top of whatever collaborators
// are configured.
func (d *Dependencies) initServices() error {
	index, err := receipts.NewSearchIndex()
	if err != nil {
		return fmt.Errorf("create search index: %w", err)
	}
	d.SearchIndex = index

	var store receipts.ReceiptStore
	if d.ReceiptsRepo != nil {
		store = d.ReceiptsRepo
	}

	d.ReceiptsService = receipts.NewService(
		d.Extractor, d.Rules, d.VendorCache, store, d.SearchIndex, d.Logger,
	)

	d.Logger.Info("services initialized")
	return nil
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.Refresher != nil {
		<-d.Refresher.Stop().Done()
	}
	if d.SearchIndex != nil {
		if err := d.SearchIndex.Close(); err != nil {
			d.Logger.Error("failed to close search index", slog.Any("error", err))
		}
	}
	if d.Pool != nil {
		d.Pool.Close()
	}
	d.Logger.Info("cleanup completed")
}
