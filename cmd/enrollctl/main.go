// Command enrollctl browses the EnrollPlus admin panel tables from a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/app"
	"github.com/noah-isme/enrollplus-admin/internal/cli"
	"github.com/noah-isme/enrollplus-admin/internal/service"
	"github.com/noah-isme/enrollplus-admin/pkg/config"
	"github.com/noah-isme/enrollplus-admin/pkg/logger"
)

var version = "dev"

// rootState is shared by every subcommand once the panel is assembled.
type rootState struct {
	v      *viper.Viper
	opts   []app.Option
	panel  *app.App
	logger *zap.Logger
}

func newRootCmd(opts ...app.Option) *cobra.Command {
	state := &rootState{v: viper.New(), opts: opts}
	root := &cobra.Command{
		Use:   "enrollctl",
		Short: "Browse the EnrollPlus admin panel from the terminal",
		Long: `enrollctl lists users, courses, products and transactions with the same
search, filters, sorting and pagination as the admin panel, and prints the
dashboard overview.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: state.init,
		PersistentPostRun: func(*cobra.Command, []string) {
			if state.logger != nil {
				_ = state.logger.Sync()
			}
		},
	}

	root.PersistentFlags().Bool("verbose", false, "log service activity to stderr")
	root.PersistentFlags().String("active-semester", "", "semester label shown on the dashboard")
	root.PersistentFlags().Int("max-page-size", 0, "largest accepted --page-size")
	_ = state.v.BindPFlag("ACTIVE_SEMESTER", root.PersistentFlags().Lookup("active-semester"))
	_ = state.v.BindPFlag("MAX_PAGE_SIZE", root.PersistentFlags().Lookup("max-page-size"))

	for _, table := range service.Tables {
		root.AddCommand(tableCmd(state, table))
	}
	root.AddCommand(dashboardCmd(state))
	root.AddCommand(exportCmd(state))
	root.AddCommand(versionCmd())
	return root
}

func (s *rootState) init(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()
	s.v.AutomaticEnv()

	cfg := config.FromViper(s.v)
	cfg.Log.Format = "console"
	cfg.Log.Level = "error"
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}
	cfg.Mutations.SubmitDelay = 0

	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	panel, err := app.New(cfg, logr, s.opts...)
	if err != nil {
		return fmt.Errorf("failed to assemble admin panel: %w", err)
	}
	s.logger = logr
	s.panel = panel
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "enrollctl", version)
		},
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
