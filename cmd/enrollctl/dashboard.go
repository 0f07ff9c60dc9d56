package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/noah-isme/enrollplus-admin/internal/cli"
	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/pkg/format"
)

func dashboardCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overview, err := state.panel.Dashboard.Overview(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle("EnrollPlus Dashboard"))
			fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top,
				card("Users", format.Number(overview.Stats.Users)),
				card("Courses", format.Number(overview.Stats.Courses)),
				card("Open enrollments", format.Number(overview.Stats.OpenEnrollments)),
				card("Active semester", overview.Stats.ActiveSemester),
				card("Income", overview.FormattedIncome),
			))
			fmt.Fprintln(out)

			sections := []struct {
				title string
				bins  []dto.DistributionBin
			}{
				{"Enrollment", overview.EnrollmentStates},
				{"Course categories", overview.CourseCategories},
				{"Product categories", overview.ProductCategories},
				{"User status", overview.UserStatuses},
			}
			for _, s := range sections {
				fmt.Fprintln(out, cli.FormatTitle(s.title))
				fmt.Fprintln(out, cli.RenderTable([]string{"Label", "Count"}, binRows(s.bins)))
			}

			rows := make([][]string, 0, len(overview.TopProducts))
			for _, p := range overview.TopProducts {
				rows = append(rows, []string{p.Name, format.Number(p.Sales), p.Formatted})
			}
			fmt.Fprintln(out, cli.FormatTitle("Top products"))
			fmt.Fprint(out, cli.RenderTable([]string{"Product", "Sales", "Revenue"}, rows))
			return nil
		},
	}
}

func card(label, value string) string {
	return cli.CardStyle.Render(cli.SubtleStyle.Render(label) + "\n" + lipgloss.NewStyle().Bold(true).Render(value))
}

func binRows(bins []dto.DistributionBin) [][]string {
	rows := make([][]string, 0, len(bins))
	for _, b := range bins {
		rows = append(rows, []string{b.Label, strconv.Itoa(b.Count)})
	}
	return rows
}
