package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/pbi-atlas/pkg/services/config"
	"github.com/de-tools/pbi-atlas/pkg/store/duckdb"
	"github.com/de-tools/pbi-atlas/pkg/store/duckdb/catalog"
)

type SearchCmd struct {
	configPath string
	limit      int
	pages      bool
	output     io.Writer
}

func NewSearchCmd(output io.Writer) *cobra.Command {
	sc := &SearchCmd{output: output}
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search the catalog for measures or pages by keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.configPath, "config", "pbi-atlas.yaml", "Path to the configuration file")
	cmd.Flags().IntVar(&sc.limit, "limit", 20, "Maximum number of results")
	cmd.Flags().BoolVar(&sc.pages, "pages", false, "Search pages instead of measures")

	return cmd
}

func (sc *SearchCmd) run(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(sc.configPath)
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.CatalogPath})
	if err != nil {
		return fmt.Errorf("open catalog database: %w", err)
	}
	defer db.Close()

	store, err := catalog.NewStore(db)
	if err != nil {
		return err
	}

	keyword := strings.Join(args, " ")
	if sc.pages {
		return sc.printPages(ctx, store, keyword)
	}
	return sc.printMeasures(ctx, store, keyword)
}

func (sc *SearchCmd) printMeasures(ctx context.Context, store catalog.Store, keyword string) error {
	records, err := store.SearchMeasures(ctx, keyword, sc.limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(sc.output, "No matching measures.")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(sc.output, "%s\t%s[%s]\t%s\n", r.Report, r.Table, r.Name, r.UsageState)
	}
	return nil
}

func (sc *SearchCmd) printPages(ctx context.Context, store catalog.Store, keyword string) error {
	records, err := store.SearchPages(ctx, keyword, sc.limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(sc.output, "No matching pages.")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(sc.output, "%s\t%s\t%d visuals\n", r.Report, r.Name, r.VisualCount)
	}
	return nil
}
