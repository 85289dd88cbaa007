package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/doxynav/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "doxynav",
	Short: "Read, convert, and serve Doxygen navigation tree data",
	Long: `doxynav loads the navtreedata.js file Doxygen writes next to its HTML
output and gives read-only access to the navigation tree, the navigation
index, and the panel synchronisation strings. It converts the data to and
from JSON, YAML, markdown outlines, and HTML, catalogs every documentation
set under a directory, and serves the data over HTTP and MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
