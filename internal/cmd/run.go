package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marlowe/exhume/internal/catalog"
	"github.com/marlowe/exhume/internal/config"
	"github.com/marlowe/exhume/internal/exporter"
	"github.com/marlowe/exhume/internal/filelock"
	"github.com/marlowe/exhume/internal/logger"
	"github.com/marlowe/exhume/internal/pipeline"
	"github.com/marlowe/exhume/internal/report"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		configPath string
		dbPath     string
		outputDir  string
		logLevel   string
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the export pipeline against a catalog",
		Long: `Run the export pipeline: every catalog entry flagged as interesting is
exported into the output directory, grouped by interest set. Flagged
directories are rebuilt recursively with their catalog descendants.

Configuration is loaded from the config file if present; CLI flags
override file settings. A lock beside the output directory prevents
concurrent runs against the same tree.

Examples:
  exhume run --db catalog.db --out exported/
  exhume run --config case42.yaml --report exported/run.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			if cmd.Flags().Changed("out") {
				cfg.OutputDir = outputDir
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("report") {
				cfg.ReportPath = reportPath
			}

			log := logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel)

			lock, err := filelock.ForOutputDir(cfg.OutputDir)
			if err != nil {
				return err
			}
			acquired, err := lock.TryAcquire()
			if err != nil {
				return err
			}
			if !acquired {
				return fmt.Errorf("another export is already running against %s", cfg.OutputDir)
			}
			defer lock.Release()

			store, err := catalog.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			engine := exporter.New(store, store, store, log)

			p := pipeline.New(log)
			p.Add(engine, cfg.OutputDir)
			rep := p.Run(cmd.Context())

			md := report.Markdown(rep, engine.Failures())
			fmt.Fprintln(cmd.OutOrStdout(), md)

			if cfg.ReportPath != "" {
				html, err := report.RenderHTML(md)
				if err != nil {
					return err
				}
				if err := os.WriteFile(cfg.ReportPath, html, 0644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				log.LogInfo("report written to " + cfg.ReportPath)
			}

			if rep.Status != pipeline.StatusOK {
				return fmt.Errorf("export finished with failures")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", ".exhume.yaml", "Path to the configuration file")
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the catalog database")
	cmd.Flags().StringVar(&outputDir, "out", "", "Output directory for exported entries")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write an HTML run report to this path")

	return cmd
}
