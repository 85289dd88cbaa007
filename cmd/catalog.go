package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/doxynav/internal/catalog"
	"github.com/ziadkadry99/doxynav/internal/db"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the documentation sets recorded by scan",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged documentation sets",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one documentation set",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

func init() {
	catalogListCmd.Flags().Bool("json", false, "output as JSON")
	catalogListCmd.Flags().Bool("errors", false, "list files that failed to load instead")
	catalogShowCmd.Flags().Bool("json", false, "output as JSON")
	catalogShowCmd.Flags().Bool("tree", false, "also print the stored navigation tree")
	catalogCmd.AddCommand(catalogListCmd, catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}

func openCatalog() (*catalog.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening catalog: %w", err)
	}
	return catalog.NewStore(database), func() { database.Close() }, nil
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	showErrors, _ := cmd.Flags().GetBool("errors")

	store, closeDB, err := openCatalog()
	if err != nil {
		return err
	}
	defer closeDB()
	ctx := context.Background()

	if showErrors {
		scanErrs, err := store.Errors(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(scanErrs)
		}
		if len(scanErrs) == 0 {
			fmt.Println("No failed files.")
			return nil
		}
		for _, e := range scanErrs {
			fmt.Printf("%s\n  %s\n", e.Path, e.Message)
		}
		return nil
	}

	sets, err := store.List(ctx)
	if err != nil {
		return err
	}
	if jsonOutput {
		if sets == nil {
			sets = []catalog.DocSet{}
		}
		return printJSON(sets)
	}
	if len(sets) == 0 {
		fmt.Println("Catalog is empty. Run `doxynav scan` first.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROJECT\tTITLE\tNODES\tINDEX\tPATH")
	for _, ds := range sets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", shortID(ds.ID), ds.Project, ds.RootLabel, ds.NodeCount, ds.IndexPages, ds.Path)
	}
	return tw.Flush()
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	showTree, _ := cmd.Flags().GetBool("tree")

	store, closeDB, err := openCatalog()
	if err != nil {
		return err
	}
	defer closeDB()
	ctx := context.Background()

	ds, err := findDocSet(ctx, store, args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(ds)
	}

	fmt.Printf("ID:         %s\n", ds.ID)
	fmt.Printf("Project:    %s\n", ds.Project)
	fmt.Printf("Path:       %s\n", ds.Path)
	fmt.Printf("Title:      %s (%s)\n", ds.RootLabel, ds.RootLink)
	fmt.Printf("Nodes:      %d\n", ds.NodeCount)
	fmt.Printf("Index:      %d pages\n", ds.IndexPages)
	if len(ds.Scripts) > 0 {
		fmt.Printf("Deferred:   %s\n", strings.Join(ds.Scripts, ", "))
	}
	fmt.Printf("Sync on:    %s\n", ds.SyncOn)
	fmt.Printf("Sync off:   %s\n", ds.SyncOff)
	fmt.Printf("Scanned at: %s\n", ds.ScannedAt.Local().Format("2006-01-02 15:04:05"))

	if showTree {
		doc, err := store.Document(ctx, ds.ID)
		if err != nil {
			return err
		}
		fmt.Println()
		return printTree(os.Stdout, doc.Root, 0)
	}
	return nil
}

// findDocSet accepts a full ID or the short prefix printed by `catalog list`.
func findDocSet(ctx context.Context, store *catalog.Store, id string) (*catalog.DocSet, error) {
	ds, err := store.Get(ctx, id)
	if err == nil {
		return ds, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return nil, err
	}
	sets, listErr := store.List(ctx)
	if listErr != nil {
		return nil, listErr
	}
	var match *catalog.DocSet
	for i := range sets {
		if strings.HasPrefix(sets[i].ID, id) {
			if match != nil {
				return nil, fmt.Errorf("id prefix %q is ambiguous", id)
			}
			match = &sets[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%s: %w", id, catalog.ErrNotFound)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
