package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a floor plan record as JSON",
	Long:  "Export the full record, metadata included, in the same form the editor offers for download.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	store, done, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	text, ok := store.ExportJSON(args[0])
	if !ok {
		return fmt.Errorf("floor plan %q not found", args[0])
	}
	if exportOut == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(exportOut, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", args[0], exportOut)
	return nil
}
