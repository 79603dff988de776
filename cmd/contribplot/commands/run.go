// Package commands implements CLI command handlers for contribplot.
package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/contribplot/pkg/config"
	"github.com/Sumatoshi-tech/contribplot/pkg/observability"
	"github.com/Sumatoshi-tech/contribplot/pkg/pipeline"
	"github.com/Sumatoshi-tech/contribplot/pkg/summary"
	"github.com/Sumatoshi-tech/contribplot/pkg/version"
)

type opener func(path string) error

// RunCommand holds flags and dependencies for the run command.
type RunCommand struct {
	configPath      string
	outputDir       string
	indexTemplate   string
	tabTemplate     string
	today           string
	logLevel        string
	metricsTextfile string
	logJSON         bool
	overview        bool
	summary         bool
	open            bool
	quiet           bool
	noColor         bool

	openFn opener
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	return newRunCommandWithDeps(browser.OpenFile)
}

func newRunCommandWithDeps(openFn opener) *cobra.Command {
	rc := &RunCommand{openFn: openFn}

	cmd := &cobra.Command{
		Use:   "run [repo]",
		Short: "Render contribution charts and the HTML report",
		Long: `Walk the history of a git repository and write, for every configured
time window, one SVG chart per active author plus an index.html report.

The output directory is emptied before the run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: rc.run,
	}

	cmd.Flags().StringVarP(&rc.configPath, "config", "c", "", "Config file (default: .contribplot.yaml in CWD or $HOME)")
	cmd.Flags().StringVarP(&rc.outputDir, "output", "o", "", "Output directory (overrides output.dir)")
	cmd.Flags().StringVar(&rc.indexTemplate, "index-template", "", "Main HTML template (overrides templates.index)")
	cmd.Flags().StringVar(&rc.tabTemplate, "tab-template", "", "Per-window HTML template (overrides templates.tab)")
	cmd.Flags().StringVar(&rc.today, "today", "", "Report as of this date, YYYY-MM-DD (default: current date)")
	cmd.Flags().StringVar(&rc.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&rc.logJSON, "log-json", false, "Emit JSON logs")
	cmd.Flags().StringVar(&rc.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file at exit")
	cmd.Flags().BoolVar(&rc.overview, "overview", false, "Also write overview.html")
	cmd.Flags().BoolVar(&rc.summary, "summary", false, "Also write summary.yaml")
	cmd.Flags().BoolVar(&rc.open, "open", false, "Open index.html in the default browser")
	cmd.Flags().BoolVarP(&rc.quiet, "quiet", "q", false, "Do not print the summary table")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := rc.loadConfig(cmd, args)
	if err != nil {
		return err
	}

	today, err := parseToday(rc.today)
	if err != nil {
		return err
	}

	providers, err := initObservability(cfg)
	if err != nil {
		return err
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	runMetrics, err := observability.NewRunMetrics(providers.Meter)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cmd.Context(), cfg, today, pipeline.Deps{
		Logger:  providers.Logger,
		Tracer:  providers.Tracer,
		Metrics: runMetrics,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if !rc.quiet {
		tableErr := summary.WriteTable(out, result.Summary)
		if tableErr != nil {
			return tableErr
		}
	}

	status := newStatusPrinter(out, rc.noColor)
	status.Done("report", result.IndexPath)

	if result.SummaryPath != "" {
		status.Done("summary", result.SummaryPath)
	}

	if result.OverviewPath != "" {
		status.Done("overview", result.OverviewPath)
	}

	if rc.open {
		openErr := rc.openFn(result.IndexPath)
		if openErr != nil {
			return fmt.Errorf("open report: %w", openErr)
		}
	}

	return nil
}

// loadConfig reads the config file and applies flag and argument overrides.
func (rc *RunCommand) loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Repository = args[0]
	}

	flags := cmd.Flags()

	if flags.Changed("output") {
		cfg.Output.Dir = rc.outputDir
	}

	if flags.Changed("index-template") {
		cfg.Templates.Index = rc.indexTemplate
	}

	if flags.Changed("tab-template") {
		cfg.Templates.Tab = rc.tabTemplate
	}

	if flags.Changed("log-level") {
		cfg.Logging.Level = rc.logLevel
	}

	if flags.Changed("log-json") {
		cfg.Logging.JSON = rc.logJSON
	}

	if flags.Changed("metrics-textfile") {
		cfg.Observability.MetricsTextfile = rc.metricsTextfile
	}

	if flags.Changed("overview") {
		cfg.Output.Overview = rc.overview
	}

	if flags.Changed("summary") {
		cfg.Output.Summary = rc.summary
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return cfg, nil
}

func parseToday(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}

	today, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse --today: %w", err)
	}

	return today, nil
}

func initObservability(cfg *config.Config) (observability.Providers, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return observability.Providers{}, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = os.Getenv("CONTRIBPLOT_ENV")
	obsCfg.OTLPEndpoint = cfg.Observability.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Observability.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Observability.OTLPHeaders)
	obsCfg.MetricsTextfile = cfg.Observability.MetricsTextfile
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.JSON

	return observability.Init(obsCfg)
}
