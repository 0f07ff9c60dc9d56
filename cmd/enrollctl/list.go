package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noah-isme/enrollplus-admin/internal/cli"
	"github.com/noah-isme/enrollplus-admin/internal/listing"
	"github.com/noah-isme/enrollplus-admin/internal/service"
	"github.com/noah-isme/enrollplus-admin/pkg/export"
	"github.com/noah-isme/enrollplus-admin/pkg/format"
)

// listOptions mirrors the admin panel list controls.
type listOptions struct {
	search   string
	filters  []string
	sort     string
	desc     bool
	page     int
	pageSize int
}

func (o *listOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.search, "search", "", "case-insensitive text search")
	cmd.Flags().StringArrayVar(&o.filters, "filter", nil, "dimension filter as key=value (repeatable)")
	cmd.Flags().StringVar(&o.sort, "sort", "", "sort key")
	cmd.Flags().BoolVar(&o.desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&o.page, "page", 1, "page number")
	cmd.Flags().IntVar(&o.pageSize, "page-size", 0, "rows per page")
}

// params converts the flags into list parameters.
func (o *listOptions) params(defaultSize, maxSize int) (listing.Params, error) {
	filters := make(map[string]string, len(o.filters))
	for _, raw := range o.filters {
		key, value, ok := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return listing.Params{}, fmt.Errorf("invalid --filter %q: expected key=value", raw)
		}
		filters[key] = strings.TrimSpace(value)
	}

	size := o.pageSize
	if size == 0 {
		size = defaultSize
	}
	if size < 1 || (maxSize > 0 && size > maxSize) {
		return listing.Params{}, fmt.Errorf("--page-size must be between 1 and %d", maxSize)
	}

	params := listing.Params{Query: o.search, Filters: filters, Page: o.page, PageSize: size}
	if o.sort != "" {
		params.Sort = listing.Sort{Key: o.sort, Direction: listing.Asc}
		if o.desc {
			params.Sort.Direction = listing.Desc
		}
	}
	return params, nil
}

func tableCmd(state *rootState, table string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   table,
		Short: fmt.Sprintf("Work with %s", table),
	}
	cmd.AddCommand(listCmd(state, table))
	return cmd
}

func listCmd(state *rootState, table string) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s with search, filters, sorting and pagination", table),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, state, table, opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func providers(state *rootState) map[string]service.DatasetProvider {
	p := state.panel
	return map[string]service.DatasetProvider{
		service.TableUsers:        p.Users,
		service.TableCourses:      p.Courses,
		service.TableProducts:     p.Products,
		service.TableTransactions: p.Transactions,
	}
}

func runList(cmd *cobra.Command, state *rootState, table string, opts *listOptions) error {
	ctx := cmd.Context()
	cfg := state.panel.Config
	params, err := opts.params(cfg.Listing.DefaultPageSize, cfg.Listing.MaxPageSize)
	if err != nil {
		return err
	}

	provider, ok := providers(state)[table]
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	data, err := provider.Dataset(ctx, params)
	if err != nil {
		return err
	}
	window := listing.Paginate(len(data.Rows), params.PageSize, params.Page)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle(data.Title))
	fmt.Fprint(out, cli.RenderTable(data.Labels(), data.Rows[window.StartIndex:window.EndIndex], badgeColumns(data)...))
	fmt.Fprintln(out, cli.RenderWindow(window))

	if table == service.TableTransactions {
		totals, err := state.panel.Transactions.Totals(ctx, params)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf(
			"%d transactions · %d completed payments totalling %s · %d pending",
			totals.TotalTransactions, totals.TotalPayments, format.Currency(totals.TotalAmount), totals.PendingCount)))
	}
	return nil
}

// badgeColumns returns the positions of status-like columns.
func badgeColumns(data export.Dataset) []int {
	var cols []int
	for i, c := range data.Columns {
		if c.Key == "status" || c.Key == "enrollment" {
			cols = append(cols, i)
		}
	}
	return cols
}
