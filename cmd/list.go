package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/ingester/internal/archive"
	"github.com/matheuskafuri/ingester/internal/config"
	"github.com/matheuskafuri/ingester/internal/view"
)

var (
	flagQuery string
	flagTags  []string
	flagType  string
	flagSort  string
	flagJSON  bool
	flagID    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print links matching a search, tags and type",
	Long: `Fetch the archive and print the records that pass the filters, in the same
order the browser shows them.

Tags are OR-ed together; search, tags and type are AND-ed.`,
	Example: `  ingester list --query kafka
  ingester list --tag go --tag databases --type article --sort title
  ingester list --id 42 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		if flagID > 0 {
			r, err := s.client.Get(cmd.Context(), flagID)
			if err != nil {
				return describeErr(err, flagID)
			}
			return writeRecords(cmd.OutOrStdout(), []archive.Record{r}, flagJSON)
		}

		p, err := buildParams(s.cfg, flagQuery, flagTags, flagType, flagSort)
		if err != nil {
			return err
		}
		records, err := listRecords(cmd.Context(), s.client, view.NewEngine(s.cfg.Locale), p)
		if err != nil {
			return err
		}
		return writeRecords(cmd.OutOrStdout(), records, flagJSON)
	},
}

func init() {
	listCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "case-insensitive search over title, description and URL")
	listCmd.Flags().StringArrayVarP(&flagTags, "tag", "t", nil, "only records carrying this tag (repeatable)")
	listCmd.Flags().StringVar(&flagType, "type", "", "all, article or resource (default from config)")
	listCmd.Flags().StringVar(&flagSort, "sort", "", "date or title (default from config)")
	listCmd.Flags().BoolVar(&flagJSON, "json", false, "print records as JSON")
	listCmd.Flags().IntVar(&flagID, "id", 0, "print a single record by id")
}

// buildParams starts from the configured defaults and applies the flags.
func buildParams(cfg *config.Config, query string, tags []string, typ, sort string) (view.Params, error) {
	p := cfg.InitialParams().WithQuery(query).WithTags(tags...)
	if typ != "" {
		t, err := view.ParseTypeFilter(typ)
		if err != nil {
			return view.Params{}, fmt.Errorf("--type: %w", err)
		}
		p = p.WithType(t)
	}
	if sort != "" {
		k, err := view.ParseSortKey(sort)
		if err != nil {
			return view.Params{}, fmt.Errorf("--sort: %w", err)
		}
		p = p.WithSort(k)
	}
	return p, nil
}

type recordFetcher interface {
	FetchAll(ctx context.Context) ([]archive.Record, error)
}

func listRecords(ctx context.Context, store recordFetcher, engine *view.Engine, p view.Params) ([]archive.Record, error) {
	records, err := store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return engine.Visible(records, p), nil
}

func writeRecords(w io.Writer, records []archive.Record, asJSON bool) error {
	if asJSON {
		if records == nil {
			records = []archive.Record{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No data found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tDATE\tTITLE\tTAGS\tURL")
	for _, r := range records {
		date := "-"
		if t := view.ParseCreatedAt(r.CreatedAt); !t.IsZero() {
			date = t.Format("02/01/2006")
		}
		title := r.Title
		if title == "" {
			title = r.URL
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Badge(), date, title, strings.Join(r.Tags, ","), r.URL)
	}
	return tw.Flush()
}
