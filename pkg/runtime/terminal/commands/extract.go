package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/pbi-atlas/pkg/services/config"
	"github.com/de-tools/pbi-atlas/pkg/store/pbix"
)

type ExtractCmd struct {
	configPath string
}

func NewExtractCmd() *cobra.Command {
	ec := &ExtractCmd{}
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Unpack .pbix archives into report folders",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.configPath, "config", "pbi-atlas.yaml", "Path to the configuration file")

	return cmd
}

func (ec *ExtractCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(ec.configPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.ExtractedDir, 0o755); err != nil {
		return err
	}

	extractor, err := pbix.NewExtractor(cfg.SourceDir, cfg.ExtractedDir)
	if err != nil {
		return err
	}
	return extractor.ExtractAll(ctx)
}
