package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sales/internal/cli"
	"sales/internal/config"
	"sales/internal/core"
	"sales/internal/log"
	"sales/internal/publish"
	"sales/internal/sales"
)

func main() {
	cli.LoadEnvFile()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Failures are reported on stdout and the process still exits 0.
	_ = newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

type flags struct {
	commodity bool
	logLevel  string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "calculate-sales <directory>",
		Short: "Aggregate sales record files into per-branch and per-commodity totals",
		Long: `calculate-sales reads branch.lst (and commodity.lst with --commodity) and
the contiguous NNNNNNNN.rcd record files in the given directory, and writes
branch.out (and commodity.out) with the totals in definition order.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				err := fmt.Errorf("expected exactly one directory argument, got %d", len(args))
				fmt.Fprintln(cmd.OutOrStdout(), cli.Message(err))
				return err
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], f)
		},
	}

	cmd.Flags().BoolVar(&f.commodity, "commodity", false, "also aggregate commodity totals (requires commodity.lst, writes commodity.out)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides LOG_LEVEL)")

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprintln(c.OutOrStdout(), cli.Message(err))
		return err
	})
	return cmd
}

func run(cmd *cobra.Command, dir string, f flags) error {
	ctx := cmd.Context()
	stdout := cmd.OutOrStdout()

	cfg, err := cli.LoadAndValidateConfig(func(c *config.Config) {
		if cmd.Flags().Changed("commodity") {
			c.CommodityEnabled = f.commodity
		}
		if cmd.Flags().Changed("log-level") {
			c.LogLevel = f.logLevel
		}
	})
	if err != nil {
		fmt.Fprintln(stdout, cli.Message(err))
		return err
	}

	logger, err := cli.SetupLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stdout, cli.Message(err))
		return err
	}
	ctx = log.NewContext(ctx, logger)

	summary, err := sales.Run(ctx, dir, sales.Options{CommodityEnabled: cfg.CommodityEnabled})
	if err != nil {
		// The catalog line is the only output of a failed run.
		logger.DebugContext(ctx, "Run failed",
			log.FieldDirectory, dir,
			log.FieldKind, core.KindOf(err).String())
		fmt.Fprintln(stdout, cli.Message(err))
		return err
	}

	publishRun(ctx, logger, cfg, summary)
	return nil
}

// publishRun hands the summary to the enabled publishers. Their failures are
// logged only: the reports are already on disk.
func publishRun(ctx context.Context, logger *log.Logger, cfg *config.Config, summary core.Summary) {
	set, err := publish.NewFactory(logger).Build(ctx, cfg)
	defer func() {
		if err := set.Close(); err != nil {
			logger.WarnContext(ctx, "Failed to release publishers", log.FieldError, err.Error())
		}
	}()
	if err != nil {
		logger.ErrorContext(ctx, "Some report publishers are unavailable", log.FieldError, err.Error())
	}

	if err := publish.Dispatch(ctx, logger, cfg.PublishTimeout, set.Publishers, summary); err != nil {
		logger.ErrorContext(ctx, "Report publishing incomplete",
			log.FieldRunID, summary.RunID,
			log.FieldError, err.Error())
	}
}
