package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/maw3193/bft/internal/infra/logger"
	"github.com/maw3193/bft/internal/infra/workspacefinder"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var logCleanup func() error

	cmd := &cobra.Command{
		Use:   "bft",
		Short: "A toolkit for Brainfuck programs",
		Long: "bft parses, checks, runs and debugs Brainfuck programs.\n" +
			"Inside a workspace (a directory holding bft.yaml) it also keeps\n" +
			"run history and a test suite; see `bft init` and `bft docs`.",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			wd, err := os.Getwd()
			if err != nil {
				return
			}
			root, err := workspacefinder.NewFinder().FindRoot(wd)
			if err != nil {
				// No workspace: the logger keeps its discard default.
				return
			}
			if cleanup, err := logger.Setup(logger.Config{Root: root, Debug: debug}); err == nil {
				logCleanup = cleanup
			}
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logCleanup != nil {
				_ = logCleanup()
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .bft/logs/bft.log")

	cmd.AddCommand(
		runCmd(),
		checkCmd(),
		fmtCmd(),
		dumpCmd(),
		testCmd(),
		runsCmd(),
		debugCmd(),
		docsCmd(),
		initCmd(),
		versionCmd(),
	)

	return cmd
}
