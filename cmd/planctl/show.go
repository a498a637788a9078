package main

import (
	"fmt"

	"floorplan-editor/internal/editor/models"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display a floor plan's metadata and scene summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	store, done, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	plan, ok := store.Get(args[0])
	if !ok {
		return fmt.Errorf("floor plan %q not found", args[0])
	}
	scene, err := store.Load(plan.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Floor Plan")
	fmt.Fprintln(out, "==========")
	fmt.Fprintf(out, "ID: %s\n", plan.ID)
	fmt.Fprintf(out, "Name: %s\n", plan.Name)
	if plan.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", plan.Description)
	}
	fmt.Fprintf(out, "Created: %s\n", plan.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Updated: %s\n\n", plan.UpdatedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintln(out, "Scene:")
	fmt.Fprintf(out, "  Canvas: %.0f x %.0f\n", scene.Width, scene.Height)
	fmt.Fprintf(out, "  Background: %s (grid: %t)\n", scene.Background.Color, scene.Background.Grid)
	fmt.Fprintf(out, "  Objects: %d\n", scene.Len())

	counts := map[models.Kind]int{}
	for _, obj := range scene.Objects() {
		counts[obj.Kind()]++
	}
	for _, k := range []models.Kind{models.KindRect, models.KindEllipse, models.KindPath, models.KindLine, models.KindText} {
		if counts[k] > 0 {
			fmt.Fprintf(out, "    %s: %d\n", k, counts[k])
		}
	}
	return nil
}
