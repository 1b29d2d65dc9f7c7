// Package main provides the CLI entry point for nqtlfill.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ukaji3/nqtlfill-go/internal/config"
	"github.com/ukaji3/nqtlfill-go/internal/logging"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill"
)

var (
	cfgFile string
	verbose bool

	// cfg is the configuration loaded before every subcommand.
	cfg *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nqtlfill",
		Short: "Fill NQTL compliance tables from a spreadsheet",
		Long: `nqtlfill reads NQTL operational figures from an .xlsx workbook and
writes them into the matching tables of a .docx template.

Examples:
  nqtlfill assemble figures.xlsx template.docx -o filled.docx
  nqtlfill extract figures.xlsx --format yaml
  nqtlfill template -o blank.docx`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: nqtlfill.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newAssembleCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newTemplateCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func initConfig(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	path := cfgFile
	if path == "" {
		path = "nqtlfill.yaml"
	} else if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file: %w", err)
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if verbose {
		loaded.Logging.Level = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := logging.Initialize(loaded.Logging); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg = loaded
	return nil
}

// pipelineOptions returns the loaded options wired to the global logger.
func pipelineOptions() nqtlfill.Options {
	opts := cfg.Options()
	opts.Logger = logging.Named("nqtlfill")
	return opts
}
