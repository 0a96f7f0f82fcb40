package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vecscope/vecscope/internal/adapter"
	"github.com/vecscope/vecscope/internal/ui"
)

var viewStrict bool

var viewCmd = &cobra.Command{
	Use:   "view <path>",
	Short: "Browse a vector database in an interactive terminal table",
	Long: `View loads the database and opens an interactive table: arrow keys
select, s cycles the sort column, / filters, enter shows record detail.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if viewStrict {
			cfg.Strict = true
		}

		loader := adapter.NewLoader(cfg)
		hist := openHistory(cfg)

		data, _, err := loadWithHistory(cmd.Context(), loader, hist, args[0])
		if err != nil {
			return err
		}

		return ui.Run(data, args[0])
	},
}

func init() {
	viewCmd.Flags().BoolVar(&viewStrict, "strict", false, "validate count and dimension consistency")
	rootCmd.AddCommand(viewCmd)
}
