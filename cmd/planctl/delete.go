package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete floor plans",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	store, done, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	for _, id := range args {
		deleted, err := store.Delete(cmd.Context(), id)
		if err != nil {
			return err
		}
		if deleted {
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Not found: %s\n", id)
		}
	}
	return nil
}
