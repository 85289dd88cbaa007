package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/doxynav/internal/navtree"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Build a navtreedata.js file from JSON, YAML, or a markdown outline",
	Long: `Reads navigation data exported by "doxynav export" (or written by hand) and
writes it back out as navtreedata.js. A markdown outline only describes the
tree, so the synchronisation messages come from the strings section of the
config file. The format is taken from the file extension unless --from is
given.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("from", "", "input format: js, json, yaml, markdown")
	importCmd.Flags().StringP("output", "o", "", "output file (default <output_dir>/navtreedata.js, - for stdout)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	output, _ := cmd.Flags().GetString("output")

	if from == "" {
		from = strings.TrimPrefix(filepath.Ext(args[0]), ".")
	}
	format, err := navtree.ParseFormat(from)
	if err != nil {
		return err
	}
	if format == navtree.FormatHTML {
		return fmt.Errorf("html cannot be imported")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg, output == "-")
	defer log.Sync()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	doc, err := navtree.Unmarshal(data, format)
	if err != nil {
		return fmt.Errorf("importing %s: %w", args[0], err)
	}
	if doc.Strings.SyncOn == "" && doc.Strings.SyncOff == "" {
		log.Debug("using configured synchronisation strings")
		doc.Strings = navtree.Strings{SyncOn: cfg.Strings.SyncOn, SyncOff: cfg.Strings.SyncOff}
	}

	// The result must load back; anything else would break the viewer.
	encoded := navtree.Encode(doc)
	if _, err := navtree.Load(encoded); err != nil {
		return fmt.Errorf("encoded document does not load: %w", err)
	}
	if scripts := navtree.Scripts(doc.Root); len(scripts) > 0 {
		log.Warn("document references deferred scripts that are not written",
			zap.Strings("scripts", scripts))
	}

	if output == "" {
		output = filepath.Join(cfg.OutputDir, "navtreedata.js")
	}
	if err := writeOutput(output, encoded); err != nil {
		return err
	}
	if output != "-" {
		fmt.Printf("Wrote %d nodes and %d index entries to %s\n", navtree.Count(doc.Root), doc.Index.Len(), output)
	}
	return nil
}
