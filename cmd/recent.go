package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var recentLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently inspected databases",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		hist := openHistory(cfg)
		if hist == nil {
			return fmt.Errorf("load history is not available")
		}

		entries, err := hist.Recent(cmd.Context(), recentLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No databases have been inspected yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tTYPE\tRECORDS\tDIM\tSTATUS\tPATH")
		for _, e := range entries {
			status := e.Status
			if e.Error != "" {
				status = clip(e.Error, 40)
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
				e.LoadedAt.Format("2006-01-02 15:04"),
				e.DBType, e.RecordCount, e.Dimension, status, e.Path)
		}
		return w.Flush()
	},
}

func init() {
	recentCmd.Flags().IntVar(&recentLimit, "limit", 20, "maximum entries to show")
	rootCmd.AddCommand(recentCmd)
}
