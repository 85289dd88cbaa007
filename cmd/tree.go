package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/doxynav/internal/navtree"
)

var treeCmd = &cobra.Command{
	Use:   "tree <navtreedata.js>",
	Short: "Print the navigation tree",
	Long: `Prints the navigation tree as an indented list. Nodes whose children live in
a separate script are marked with the script name; --resolve loads those
scripts from the same directory and prints their entries inline.`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().Bool("resolve", false, "inline deferred child scripts")
	treeCmd.Flags().Int("depth", 0, "maximum depth to print (0 = unlimited)")
	treeCmd.Flags().String("from", "", "print the subtree under the node linking to this page")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	resolve, _ := cmd.Flags().GetBool("resolve")
	depth, _ := cmd.Flags().GetInt("depth")
	from, _ := cmd.Flags().GetString("from")

	doc, err := readDocument(args[0], resolve)
	if err != nil {
		return err
	}

	root := doc.Root
	if from != "" {
		if root = navtree.FindByLink(doc.Root, from); root == nil {
			return fmt.Errorf("no node links to %q", from)
		}
	}
	return printTree(os.Stdout, root, depth)
}

// printTree writes one line per node, two spaces of indent per level.
func printTree(w io.Writer, root *navtree.Node, maxDepth int) error {
	return navtree.Walk(root, func(n *navtree.Node, depth int) error {
		line := strings.Repeat("  ", depth) + n.Label
		if n.Link != "" {
			line += " (" + n.Link + ")"
		}
		if n.Script != "" {
			line += " [" + n.Script + ".js]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if maxDepth > 0 && depth+1 >= maxDepth {
			return navtree.SkipChildren
		}
		return nil
	})
}
