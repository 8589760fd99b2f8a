package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/asaidimu/go-portal/core/portal"
	"github.com/asaidimu/go-portal/core/query"
	"github.com/asaidimu/go-portal/core/schema"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type queryOptions struct {
	search     string
	filters    []string
	tab        string
	sort       string
	comparator string
	asJSON     bool
	strict     bool
}

func newQueryCommand(a *app) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query <view>",
		Short: "Run a list query against a view",
		Long: `Runs a list query against the demo data of one view. Filters combine with
AND; the value "All" disables a filter or tab. Without --strict, criteria
parts the view does not understand are ignored and logged.`,
		Example: `  portal query employees --filter department="Ban Truyền Thông" --filter seniority=3-5
  portal query surveys --tab Open --comparator ending-soon
  portal query news-feed --search erp --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.search, "search", "s", "", "free text matched against the view's search fields")
	f.StringArrayVarP(&opts.filters, "filter", "f", nil, "equality filter as field=value (repeatable)")
	f.StringVarP(&opts.tab, "tab", "t", "", "tab name")
	f.StringVar(&opts.sort, "sort", "", "sort by field[:asc|desc]")
	f.StringVarP(&opts.comparator, "comparator", "c", "", "named sort of the view")
	f.BoolVar(&opts.asJSON, "json", false, "output results as JSON")
	f.BoolVar(&opts.strict, "strict", false, "fail on criteria the view does not understand")
	return cmd
}

func (o *queryOptions) criteria() (query.Criteria, error) {
	cb := query.NewCriteriaBuilder().Search(o.search).Tab(o.tab)
	for _, raw := range o.filters {
		field, value, ok := strings.Cut(raw, "=")
		if !ok || field == "" {
			return query.Criteria{}, fmt.Errorf("invalid filter %q: expected field=value", raw)
		}
		cb.Filter(field, value)
	}
	if o.sort != "" {
		field, dir, hasDir := strings.Cut(o.sort, ":")
		direction := query.SortDirectionAsc
		if hasDir {
			direction = query.SortDirection(dir)
		}
		cb.OrderBy(field, direction)
	}
	if o.comparator != "" {
		cb.OrderByComparator(o.comparator)
	}
	return cb.Build(), nil
}

func (a *app) runQuery(cmd *cobra.Command, viewName string, opts *queryOptions) error {
	view, err := portal.LookupView(viewName)
	if err != nil {
		return err
	}
	criteria, err := opts.criteria()
	if err != nil {
		return err
	}
	if opts.strict {
		if err := view.Validate(criteria); err != nil {
			return err
		}
	}

	engine := a.engine()
	for _, fb := range engine.Compile(view, criteria).Fallbacks {
		a.logger.Warn("Criteria part ignored", zap.String("view", view.Name()), zap.String("kind", fb))
	}

	ctx := cmd.Context()
	store, err := a.openStore(ctx, engine)
	if err != nil {
		return err
	}
	defer store.Close()

	collection, err := store.Collection(view.Name())
	if err != nil {
		return err
	}
	docs, err := collection.Query(ctx, view, criteria)
	if err != nil {
		return err
	}

	if opts.asJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	return printTable(cmd, view, docs, engine.Now())
}

// labelFields are tried in order for the second table column.
var labelFields = []string{"title", "name", "employee"}

func printTable(cmd *cobra.Command, view *query.View, docs []schema.Document, now time.Time) error {
	if len(docs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
		return nil
	}

	extra := view.FilterFields()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	header := append([]string{"ID", "LABEL"}, upper(extra)...)
	if view.DateField() != "" {
		header = append(header, strings.ToUpper(view.DateField()))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, doc := range docs {
		row := []string{doc.RecordID(), label(doc)}
		for _, field := range extra {
			row = append(row, cell(view, doc, field, now))
		}
		if view.DateField() != "" {
			row = append(row, cell(view, doc, view.DateField(), now))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d result(s)\n", len(docs))
	return nil
}

func label(doc schema.Document) string {
	for _, f := range labelFields {
		if v, ok := doc.Field(f); ok {
			return fmt.Sprint(v)
		}
	}
	return "-"
}

func cell(view *query.View, doc schema.Document, field string, now time.Time) string {
	v, ok := view.Resolve(doc, field, now)
	if !ok {
		return "-"
	}
	return fmt.Sprint(v)
}

func upper(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.ToUpper(f)
	}
	return out
}
