package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/noah-isme/enrollplus-admin/internal/cli"
)

func exportCmd(state *rootState) *cobra.Command {
	opts := &listOptions{}
	var formatName, output string
	cmd := &cobra.Command{
		Use:   "export <table>",
		Short: "Write every matching row of a table to CSV or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := state.panel.Config
			params, err := opts.params(cfg.Listing.DefaultPageSize, cfg.Listing.MaxPageSize)
			if err != nil {
				return err
			}
			file, err := state.panel.Exports.Export(cmd.Context(), args[0], params, formatName)
			if err != nil {
				return err
			}
			path := output
			if path == "" {
				path = file.Filename
			}
			if err := os.WriteFile(path, file.Body, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			abs, _ := filepath.Abs(path)
			fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render(fmt.Sprintf("wrote %d rows to %s", file.Rows, abs)))
			return nil
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&formatName, "format", "csv", "csv or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (default: generated name)")
	return cmd
}
