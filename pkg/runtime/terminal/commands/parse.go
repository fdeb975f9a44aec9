package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/pbi-atlas/pkg/adapters"
	"github.com/de-tools/pbi-atlas/pkg/models/domain"
	exportmodels "github.com/de-tools/pbi-atlas/pkg/models/export"
	"github.com/de-tools/pbi-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/pbi-atlas/pkg/services/config"
	"github.com/de-tools/pbi-atlas/pkg/services/describe"
	"github.com/de-tools/pbi-atlas/pkg/services/reports"
	"github.com/de-tools/pbi-atlas/pkg/store/duckdb"
	"github.com/de-tools/pbi-atlas/pkg/store/duckdb/catalog"
)

// ReportHandler renders a parsed report summary.
type ReportHandler interface {
	Handle(report *domain.Report) error
}

type ParseCmd struct {
	configPath string
	analyze    bool
	store      bool
	handler    ReportHandler
}

func NewParseCmd(handler ReportHandler) *cobra.Command {
	pc := &ParseCmd{handler: handler}
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse extracted reports and export measure/page records",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.configPath, "config", "pbi-atlas.yaml", "Path to the configuration file")
	cmd.Flags().BoolVar(&pc.analyze, "analyze", false, "Generate AI descriptions for measures and pages")
	cmd.Flags().BoolVar(&pc.store, "store", false, "Persist exported records into the catalog database")

	return cmd
}

func (pc *ParseCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(pc.configPath)
	if err != nil {
		return err
	}

	parsed, err := reports.ParseAll(ctx, cfg.ExtractedDir)
	if err != nil {
		return err
	}
	if len(parsed) == 0 {
		logger.Warn().Str("dir", cfg.ExtractedDir).Msg("no reports parsed")
		return nil
	}

	if pc.analyze {
		describer, err := describe.NewGeminiDescriber(ctx, cfg.Describe.Model)
		if err != nil {
			return fmt.Errorf("create describer: %w", err)
		}
		for _, report := range parsed {
			if err := describe.ApplyMeasureDescriptions(ctx, describer, report, cfg.Describe.BatchSize); err != nil {
				return err
			}
			if err := describe.ApplyPageDescriptions(ctx, describer, report); err != nil {
				return err
			}
		}
	}

	var measureRecords []exportmodels.MeasureRecord
	var pageRecords []exportmodels.PageRecord
	for _, report := range parsed {
		for _, measure := range report.Measures {
			measureRecords = append(measureRecords, adapters.MapMeasureToRecord(report.Name, measure))
		}
		for _, page := range report.Pages {
			pageRecords = append(pageRecords, adapters.MapPageToRecord(report.Name, page))
		}
		if err := pc.handler.Handle(report); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")

	measurePath := filepath.Join(cfg.OutputDir, fmt.Sprintf("measures_%s.csv", timestamp))
	if err := export.WriteMeasureReport(measurePath, measureRecords); err != nil {
		return err
	}
	logger.Info().Str("path", measurePath).Msg("exported measure report")

	pagePath := filepath.Join(cfg.OutputDir, fmt.Sprintf("pages_%s.csv", timestamp))
	if err := export.WritePageReport(pagePath, pageRecords); err != nil {
		return err
	}
	logger.Info().Str("path", pagePath).Msg("exported page report")

	if pc.store {
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.CatalogPath})
		if err != nil {
			return fmt.Errorf("open catalog database: %w", err)
		}
		defer db.Close()

		store, err := catalog.NewStore(db)
		if err != nil {
			return err
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin catalog transaction: %w", err)
		}
		txCtx := duckdb.WithTransaction(ctx, tx)
		if err := store.AddMeasures(txCtx, measureRecords); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := store.AddPages(txCtx, pageRecords); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit catalog transaction: %w", err)
		}
		logger.Info().Str("path", cfg.CatalogPath).Msg("updated catalog")
	}

	return nil
}
