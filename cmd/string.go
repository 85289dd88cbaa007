package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/doxynav/internal/navtree"
)

var stringCmd = &cobra.Command{
	Use:   "string <navtreedata.js> <sync-on|sync-off>",
	Short: "Print a panel synchronisation message",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := navtree.ParseKey(args[1])
		if err != nil {
			return err
		}
		doc, err := readDocument(args[0], false)
		if err != nil {
			return err
		}
		value, err := doc.String(key)
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stringCmd)
}
