package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vecscope/vecscope/internal/adapter"
	"github.com/vecscope/vecscope/internal/detect"
	"github.com/vecscope/vecscope/internal/export"
	"github.com/vecscope/vecscope/internal/history"
	"github.com/vecscope/vecscope/internal/progress"
	"github.com/vecscope/vecscope/internal/vectordata"
	"github.com/vecscope/vecscope/internal/view"
)

var (
	inspectFormat string
	inspectOutput string
	inspectLimit  int
	inspectSort   string
	inspectFilter string
	inspectStrict bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>",
	Short: "Load a vector database and print its contents",
	Long: `Inspect detects the database type, runs the matching adapter, and
prints the records. The default output is a text table; --format csv or
json writes machine-readable output, optionally to a file with -o.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if inspectStrict {
			cfg.Strict = true
		}

		loader := adapter.NewLoader(cfg)
		hist := openHistory(cfg)

		data, det, err := loadWithHistory(cmd.Context(), loader, hist, args[0])
		if err != nil {
			return err
		}

		if inspectFormat == "table" {
			printTable(data, det)
			return nil
		}

		formatter, err := export.New(inspectFormat)
		if err != nil {
			return err
		}
		out, err := formatter.Format(data)
		if err != nil {
			return err
		}

		if inspectOutput != "" {
			if err := os.WriteFile(inspectOutput, out, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", inspectOutput, err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %d records to %s\n", len(data.Vectors), inspectOutput)
			return nil
		}

		_, err = os.Stdout.Write(out)
		return err
	},
}

// loadWithHistory runs detection plus the adapter with a spinner, and
// records the attempt (success or failure) in the history store.
func loadWithHistory(ctx context.Context, loader *adapter.Loader, hist *history.Store, path string) (*vectordata.VectorData, detect.Detection, error) {
	reporter := progress.NewReporter()
	reporter.Start(fmt.Sprintf("Loading %s", path))
	started := time.Now()

	det, err := detect.DetectWithOptions(path, loader.DetectOptions)
	var data *vectordata.VectorData
	if err == nil {
		data, err = loader.Load(ctx, det)
	}
	reporter.Finish()

	if hist != nil {
		entry := history.Entry{
			Path:         path,
			ResolvedPath: det.Path,
			DBType:       string(det.Type),
			DurationMS:   time.Since(started).Milliseconds(),
			Status:       "ok",
		}
		if err != nil {
			entry.Status = "error"
			entry.Error = err.Error()
		} else {
			entry.RecordCount = data.Count
			entry.Dimension = data.Dimension
		}
		_ = hist.Record(ctx, entry)
	}

	return data, det, err
}

// printTable writes a summary plus a plain-text record table to stdout.
func printTable(data *vectordata.VectorData, det detect.Detection) {
	fmt.Printf("type:      %s\n", data.Type)
	fmt.Printf("path:      %s\n", det.Path)
	fmt.Printf("records:   %d", data.Count)
	if data.TotalVectors > data.Count {
		fmt.Printf(" (of %d total)", data.TotalVectors)
	}
	fmt.Println()
	fmt.Printf("dimension: %d\n", data.Dimension)
	if data.CollectionName != "" {
		fmt.Printf("collection: %s\n", data.CollectionName)
	}
	fmt.Println()

	page := view.Apply(data, view.Query{
		Filter:   inspectFilter,
		Sort:     view.SortKey(inspectSort),
		PageSize: inspectLimit,
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTEXT\tDIM")
	for _, rec := range page.Records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			clip(rec.ID, 24), clip(rec.Source, 28), clip(oneLine(rec.Text), 60), len(rec.Vector))
	}
	w.Flush()

	if page.Total > len(page.Records) {
		fmt.Printf("\nShowing %d of %d matching records (use --limit, or `vecscope view` to browse).\n",
			len(page.Records), page.Total)
	}
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "table", "output format: table, csv, or json")
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "write csv/json output to a file")
	inspectCmd.Flags().IntVar(&inspectLimit, "limit", 50, "maximum table rows to print")
	inspectCmd.Flags().StringVar(&inspectSort, "sort", "", "sort table rows by: id, source, text, or dim")
	inspectCmd.Flags().StringVar(&inspectFilter, "filter", "", "only show rows whose id/text/source contains this string")
	inspectCmd.Flags().BoolVar(&inspectStrict, "strict", false, "validate count and dimension consistency")
	rootCmd.AddCommand(inspectCmd)
}
