package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/chapterize/internal/config"
	"github.com/tsawler/chapterize/internal/logger"
)

var cfgFile string

// Set by PersistentPreRunE for every command.
var (
	cfg *config.Config
	log *zap.Logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "chapterize",
	Short: "Split EPUB manuscripts into narrated chapters",
	Long: `Chapterize reads EPUB books and produces the ordered list of narrative
chapters ready for speech synthesis.

For every chapter it reports:
  - a title taken from the table of contents or the markup
  - plain text and SSML-annotated text
  - character count and estimated narration time

Copyright pages, tables of contents and other front matter are left out.`,
	Version:           versionString(),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.chapterize/config.yaml)",
	)
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: console or json")
	rootCmd.PersistentFlags().String("log-output", "", "log destination: stderr, stdout or a file path")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the configuration and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	l, err := logger.New(&logger.Config{
		Level:  loaded.Log.Level,
		Format: loaded.Log.Format,
		Output: loaded.Log.Output,
	})
	if err != nil {
		return err
	}

	cfg = loaded
	log = l
	if cfg.File != "" {
		log.Debug("loaded config file", zap.String("path", cfg.File))
	}
	return nil
}
