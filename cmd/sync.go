package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutrient-sync/core/config"
	"nutrient-sync/core/errors"
	"nutrient-sync/core/httpclient"
	"nutrient-sync/core/models"
	"nutrient-sync/core/reconcile"
	"nutrient-sync/core/storage"
	"nutrient-sync/feature/catalog"
	"nutrient-sync/feature/fdc"
	"nutrient-sync/feature/report"
	"nutrient-sync/feature/resolve"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncFlags holds the flags of the sync command.
type syncFlags struct {
	override    bool
	interactive bool
	dryRun      bool
	logLevel    string
	concurrency int
}

var syncOpts syncFlags

// stdinIsTerminal reports whether prompts can be answered. Replaced in tests.
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// syncCmd fills missing food properties from FoodData Central.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fill food properties from FoodData Central",
	Long: `Load every food and property type from the catalog, look each food up in
FoodData Central and push the merged properties back.

Foods that already have every property are skipped unless --override is set.

Examples:
  # Add missing properties
  nutrient-sync sync

  # Replace all properties with FDC values, asking for missing FDC IDs
  nutrient-sync sync --override --interactive

  # Show what would change without updating the catalog
  nutrient-sync sync --dry-run --log-level debug`,
	RunE: runSyncCmd,
}

func init() {
	f := syncCmd.Flags()
	f.BoolVarP(&syncOpts.override, "override", "o", false, "Replace every existing property with the FDC values")
	f.BoolVarP(&syncOpts.interactive, "interactive", "i", false, "Ask for the FDC ID of foods that have none")
	f.StringVarP(&syncOpts.logLevel, "log-level", "l", "", "Log level (trace, debug, info, warn, error)")
	f.IntVar(&syncOpts.concurrency, "concurrency", 0, "Number of foods processed at once (default sync.concurrency)")
	f.BoolVar(&syncOpts.dryRun, "dry-run", false, "Merge and report without updating the catalog")

	RootCmd.AddCommand(syncCmd)
}

func runSyncCmd(cmd *cobra.Command, args []string) error {
	if syncOpts.interactive && !stdinIsTerminal() {
		return &errors.ConfigError{Field: "--interactive", Message: "stdin is not a terminal"}
	}

	cfg, l, runID, err := loadRuntime(syncOpts.logLevel, (*config.Config).Validate)
	if err != nil {
		return err
	}
	defer l.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var prompter resolve.Prompter
	if syncOpts.interactive {
		prompter = resolve.NewConsole(os.Stdin, cmd.OutOrStdout(), l)
	}

	return runSync(ctx, cfg, syncOpts, runID, prompter, cmd.OutOrStdout(), l)
}

// runSync performs one sync run and prints its report to out.
// A nil prompter disables interactive resolution.
func runSync(ctx context.Context, cfg *config.Config, flags syncFlags, runID string, prompter resolve.Prompter, out io.Writer, l *zap.Logger, httpOpts ...httpclient.Option) error {
	startedAt := time.Now()

	catalogClient, err := catalog.NewClient(cfg.Catalog, l, httpOpts...)
	if err != nil {
		return err
	}

	types, err := catalogClient.FetchPropertyTypes(ctx)
	if err != nil {
		return err
	}
	dict := models.NewDictionary(types)
	l.Info("Loaded property types",
		zap.String("variant", string(catalogClient.Variant())),
		zap.Int("total", dict.Total()),
		zap.Int("linked", dict.Tracked()),
	)

	foods, err := catalogClient.FetchAllFoods(ctx)
	if err != nil {
		return err
	}
	l.Info("Loaded foods", zap.Int("count", len(foods)))

	fdcClient, err := fdc.NewClient(cfg.Provider, dict, l, httpOpts...)
	if err != nil {
		return err
	}

	opts := cfg.Sync.Options()
	opts.Override = flags.override
	opts.DryRun = flags.dryRun
	if flags.concurrency > 0 {
		opts.Concurrency = flags.concurrency
	}

	engine := reconcile.NewEngine(catalogClient, fdcClient, resolve.NewResolver(prompter, l), dict, opts, l)
	results := engine.Run(ctx, foods)

	r := report.New(runID, string(catalogClient.Variant()), opts, startedAt, time.Now(), results)
	s := r.Summary
	l.Info(fmt.Sprintf("Updated %d foods, %d foods were not updated, %d foods have no FDC ID, %d foods were already up to date",
		s.Updated, s.NotUpdated, s.NoCrossRefID, s.AlreadyUpToDate),
		zap.Int("would_update", s.WouldUpdate),
		zap.Duration("elapsed", r.FinishedAt.Sub(r.StartedAt)),
	)

	if err := r.Render(out); err != nil {
		l.Warn("Failed to render report", zap.Error(err))
	}

	if cfg.Storage.Enabled {
		archiveReport(ctx, cfg.Storage, r, l)
	}

	return nil
}

// archiveReport uploads the report. Failures are logged; the sync itself has already finished.
func archiveReport(ctx context.Context, cfg storage.Config, r *report.Report, l *zap.Logger) {
	client, err := storage.NewClient(cfg)
	if err != nil {
		l.Warn("Failed to connect to report storage", zap.Error(err))
		return
	}
	key, err := r.Archive(ctx, client, cfg)
	if err != nil {
		l.Warn("Failed to archive report", zap.Error(err))
		return
	}
	l.Info("Archived report", zap.String("bucket", cfg.Bucket), zap.String("key", key))
}
