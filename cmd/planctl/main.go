package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"floorplan-editor/internal/common/config"
	"floorplan-editor/internal/common/logger"
	"floorplan-editor/internal/floorplan/repository"
	"floorplan-editor/internal/floorplan/service"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dbPath     string
	storageKey string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "planctl",
	Short:         "Manage stored floor plans",
	Long:          `planctl lists, exports, imports, renders and deletes the floor plans kept by the editor service.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cfg := config.Load()
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "path to the editor database")
	rootCmd.PersistentFlags().StringVar(&storageKey, "key", cfg.StorageKey, "storage slot holding the plan list")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log store activity to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore opens the database and loads the plan list. The returned
// close function releases the database.
func openStore(ctx context.Context) (*service.Store, func(), error) {
	log := zap.NewNop()
	if verbose {
		l, err := logger.NewLogger("debug", "console", "planctl")
		if err != nil {
			return nil, nil, fmt.Errorf("init logger: %w", err)
		}
		log = l
	}

	db, err := repository.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	slot := repository.NewSQLiteSlot(db)
	if err := slot.Init(ctx, ""); err != nil {
		closeDB(db, log)
		return nil, nil, fmt.Errorf("init db: %w", err)
	}

	store := service.NewStore(ctx, slot, storageKey, log)
	return store, func() { closeDB(db, log) }, nil
}

func closeDB(db *sql.DB, log *zap.Logger) {
	if err := db.Close(); err != nil {
		log.Warn("close db", zap.Error(err))
	}
	_ = log.Sync()
}
