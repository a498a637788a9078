package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"floorplan-editor/internal/floorplan/service"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Add a floor plan from an exported JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	store, done, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	plan, err := store.ImportJSON(cmd.Context(), string(data))
	if err != nil && !errors.Is(err, service.ErrPersistence) {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %q as %s\n", plan.Name, plan.ID)
	return err
}
