package publish

import (
	"context"
	"errors"
	"fmt"

	"sales/internal/amqp"
	"sales/internal/config"
	"sales/internal/log"
	gsheet "sales/internal/sheets/google"
	"sales/internal/storage"
)

// Factory builds the publishers enabled in the configuration.
type Factory struct {
	logger *log.Logger
}

// NewFactory creates a new publisher factory
func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &Factory{logger: logger.WithComponent(log.ComponentPublish)}
}

// Build validates and creates every enabled publisher. A publisher that is
// misconfigured or cannot be created is left out of the set and its error
// joined into the returned error, so the caller can still run the others.
// An invalid publish timeout disables publishing altogether.
func (f *Factory) Build(ctx context.Context, cfg *config.Config) (*Set, error) {
	set := &Set{}
	if cfg == nil {
		return set, errors.New("config is nil")
	}

	if !cfg.LedgerEnabled() && !cfg.AMQPEnabled() && !cfg.SheetsEnabled() {
		return set, nil
	}
	if err := cfg.ValidatePublishTimeout(); err != nil {
		return set, err
	}

	var errs []error
	if cfg.LedgerEnabled() {
		if err := f.addLedger(set, cfg); err != nil {
			errs = append(errs, err)
		}
	}
	if cfg.AMQPEnabled() {
		if err := f.addAMQP(ctx, set, cfg); err != nil {
			errs = append(errs, err)
		}
	}
	if cfg.SheetsEnabled() {
		if err := f.addSheets(ctx, set, cfg); err != nil {
			errs = append(errs, err)
		}
	}

	return set, errors.Join(errs...)
}

func (f *Factory) addLedger(set *Set, cfg *config.Config) error {
	if err := cfg.ValidateLedger(); err != nil {
		return err
	}
	repo, err := storage.NewSQLiteRepository(cfg.LedgerPath)
	if err != nil {
		return fmt.Errorf("failed to initialize run ledger: %w", err)
	}
	set.add(repo, repo.Close)

	f.logger.WithComponent(log.ComponentLedger).Info("Initialized run ledger", "db_path", cfg.LedgerPath)
	return nil
}

func (f *Factory) addAMQP(ctx context.Context, set *Set, cfg *config.Config) error {
	if err := cfg.ValidateAMQP(); err != nil {
		return err
	}
	client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, cfg.AMQPDialAttempts)
	if err != nil {
		return fmt.Errorf("failed to initialize AMQP client: %w", err)
	}
	set.add(client, client.Close)

	f.logger.WithComponent(log.ComponentAMQP).Info("Initialized AMQP client",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)
	return nil
}

func (f *Factory) addSheets(ctx context.Context, set *Set, cfg *config.Config) error {
	if err := cfg.ValidateSheets(); err != nil {
		return err
	}
	client, err := gsheet.NewClient(ctx, gsheet.Config{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		BranchSheet:     cfg.GoogleBranchSheetName,
		CommoditySheet:  cfg.GoogleCommoditySheetName,
		CredentialsJSON: cfg.GoogleServiceAccountJSON,
		CredentialsFile: cfg.GoogleServiceAccountFile,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}
	set.add(client, nil)

	f.logger.WithComponent(log.ComponentSheets).Info("Initialized Google Sheets mirror", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	return nil
}
