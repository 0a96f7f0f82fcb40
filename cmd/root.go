package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vecscope",
	Short: "Inspect FAISS and Chroma vector databases",
	Long: `vecscope detects and loads vector databases (FAISS index files,
Chroma collections) and presents their contents as a browsable table:
in the terminal, in the browser, as CSV, or over MCP for AI agents.
Format parsing is delegated to Python adapter scripts; a Python
interpreter with faiss-cpu or chromadb must be available.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".vecscope.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
