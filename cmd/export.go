package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/doxynav/internal/navtree"
)

var exportCmd = &cobra.Command{
	Use:   "export <navtreedata.js>",
	Short: "Convert navigation data to JSON, YAML, markdown, or HTML",
	Long: `Converts a navtreedata.js file to another format. The result is written to
<output_dir>/navtreedata.<ext> unless --output is given; "--output -" writes
to stdout. --format js re-encodes the file in the generator's own layout.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "output format: js, json, yaml, html, markdown")
	exportCmd.Flags().StringP("output", "o", "", "output file (- for stdout)")
	exportCmd.Flags().Bool("resolve", false, "inline deferred child scripts before exporting")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	resolve, _ := cmd.Flags().GetBool("resolve")

	format, err := navtree.ParseFormat(formatName)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg, output == "-")
	defer log.Sync()

	doc, err := readDocument(args[0], resolve)
	if err != nil {
		return err
	}
	data, err := navtree.Marshal(doc, format)
	if err != nil {
		return err
	}

	if output == "" {
		base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		output = filepath.Join(cfg.OutputDir, base+"."+extension(format))
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}
	if output != "-" {
		fmt.Printf("Exported %d nodes to %s\n", navtree.Count(doc.Root), output)
	}
	return nil
}
