package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/doxynav/internal/catalog"
	"github.com/ziadkadry99/doxynav/internal/db"
	"github.com/ziadkadry99/doxynav/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [navtreedata.js]",
	Short: "Serve navigation data and the catalog over HTTP",
	Long: `Starts the HTTP API. With a file argument the tree, index, and string routes
answer from that file; without one they return 503 and only the catalog
routes are useful. --watch reloads the file when it changes and pushes the
new document to clients connected to /ws.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (default from config)")
	serveCmd.Flags().Bool("watch", false, "reload the file when it changes")
	serveCmd.Flags().Bool("resolve", false, "inline deferred child scripts")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg, false)
	defer log.Sync()

	port := cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}
	watch := cfg.Server.Watch
	if cmd.Flags().Changed("watch") {
		watch, _ = cmd.Flags().GetBool("watch")
	}
	resolve, _ := cmd.Flags().GetBool("resolve")

	var source *server.Source
	if len(args) == 1 {
		source = server.NewSource(args[0], resolve)
		if err := source.Load(); err != nil {
			return err
		}
	} else if watch {
		return fmt.Errorf("--watch needs a navtreedata.js argument")
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer database.Close()

	srv := server.New(server.Config{
		Port:     port,
		AllowAll: cfg.Server.AllowAll,
	}, source, catalog.NewStore(database), log)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch {
		go func() {
			if err := srv.Watch(ctx); err != nil {
				log.Error("watcher stopped", zap.Error(err))
			}
		}()
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	fields := []zap.Field{zap.Int("port", port), zap.String("catalog", cfg.DBPath)}
	if source != nil {
		fields = append(fields, zap.String("file", source.Path()), zap.Bool("watch", watch))
	}
	log.Info("doxynav "+Version+" starting", fields...)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
