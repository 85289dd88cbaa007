package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index <navtreedata.js> [position]",
	Short: "List or look up navigation index entries",
	Long: `Without a position, lists every navigation index entry with its position.
With a position, prints that entry. --page-for prints the index page and
navtreeindex script that cover a page URL, the way the viewer finds them.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().String("page-for", "", "print the index page covering this URL")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	pageFor, _ := cmd.Flags().GetString("page-for")

	doc, err := readDocument(args[0], false)
	if err != nil {
		return err
	}

	switch {
	case pageFor != "":
		page := doc.Index.PageFor(pageFor)
		script, err := doc.Index.ScriptName(page)
		if err != nil {
			return fmt.Errorf("navigation index is empty: %w", err)
		}
		fmt.Printf("%d\t%s.js\n", page, script)
	case len(args) == 2:
		pos, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("position %q is not an integer", args[1])
		}
		entry, err := doc.Entry(pos)
		if err != nil {
			return err
		}
		fmt.Println(entry)
	default:
		for i, e := range doc.Index.Entries() {
			fmt.Printf("%d\t%s\n", i, e)
		}
	}
	return nil
}
