package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vecscope/vecscope/internal/detect"
)

var detectCmd = &cobra.Command{
	Use:   "detect <path>",
	Short: "Classify a path as a FAISS or Chroma database",
	Long: `Detect inspects the given path and reports which database type it
holds and the concrete file or directory an adapter would load. Nested
databases are found with a bounded-depth search below directories.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		det, err := detect.DetectWithOptions(args[0], detect.Options{
			MaxDepth: cfg.MaxDepth,
			Exclude:  cfg.Exclude,
		})
		if err != nil {
			return err
		}

		fmt.Printf("type:          %s\n", det.Type)
		fmt.Printf("resolved path: %s\n", det.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
