package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/ziadkadry99/doxynav/internal/catalog"
	"github.com/ziadkadry99/doxynav/internal/db"
	"github.com/ziadkadry99/doxynav/internal/progress"
	"github.com/ziadkadry99/doxynav/internal/walker"
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Catalog every navtreedata.js file under a directory",
	Long: `Walks the directory (root_dir from the config unless given), loads every
file matching the include patterns, and records a summary of each
documentation set in the catalog database. Unchanged files are skipped.
Files that fail to load are reported and recorded; the scan carries on.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().Bool("plain", false, "line-by-line progress instead of a progress bar")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg, false)
	defer log.Sync()

	root := cfg.RootDir
	if len(args) == 1 {
		root = args[0]
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer database.Close()

	scanner := catalog.NewScanner(catalog.NewStore(database), progress.NewReporter(plain), log)
	result, scanErr := scanner.Scan(context.Background(), walker.WalkerConfig{
		RootDir: root,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if result == nil {
		return scanErr
	}

	fmt.Println()
	fmt.Println("Scan complete!")
	fmt.Printf("  Documentation sets: %d\n", len(result.Sets))
	fmt.Printf("  Loaded:             %d\n", result.Scanned)
	fmt.Printf("  Unchanged:          %d\n", result.Unchanged)
	fmt.Printf("  Failed:             %d\n", result.Failed)
	fmt.Printf("  Removed:            %d\n", result.Removed)
	fmt.Printf("  Duration:           %s\n", result.Duration.Round(time.Millisecond))
	fmt.Printf("  Catalog:            %s\n", cfg.DBPath)

	if scanErr != nil {
		errs := multierr.Errors(scanErr)
		fmt.Println()
		for _, e := range errs {
			fmt.Printf("  ! %v\n", e)
		}
		return fmt.Errorf("%d file(s) could not be loaded", len(errs))
	}
	return nil
}
