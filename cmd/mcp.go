package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/ziadkadry99/doxynav/internal/mcp"
	"github.com/ziadkadry99/doxynav/internal/navtree"
	"github.com/ziadkadry99/doxynav/internal/server"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp <navtreedata.js>",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing navigation tree, index, and string lookups for AI agents.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolve, _ := cmd.Flags().GetBool("resolve")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// Stdout carries the protocol.
		log := newLogger(cfg, true)
		defer log.Sync()

		source := server.NewSource(args[0], resolve)
		if err := source.Load(); err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		doc, _ := source.Current()
		log.Info("doxynav MCP server started on stdio",
			zap.String("file", args[0]),
			zap.Int("nodes", navtree.Count(doc.Root)),
			zap.Int("index_pages", doc.Index.Len()))

		return mcpserver.NewServer(source).Serve()
	},
}

func init() {
	mcpCmd.Flags().Bool("resolve", false, "inline deferred child scripts")
	rootCmd.AddCommand(mcpCmd)
}
