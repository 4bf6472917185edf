// Command brsinfo inspects Brickadia .brs save files from the command
// line: a summary of a save's headers and palettes, and a bounding-box
// brick query backed by the octree index.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brsio/brs"
	"github.com/brsio/brs/model"
	"github.com/brsio/brs/octree"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "brsinfo:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "brsinfo",
		Short: "Inspect Brickadia .brs save files",
	}
	root.AddCommand(newSummaryCmd())
	root.AddCommand(newBricksInCmd())
	root.AddCommand(newValidateCmd())
	return root
}

func openSave(path string) (*model.SaveData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return brs.Read(f)
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <file.brs>",
		Short: "Print a save's headers and palette sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, err := openSave(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version:      %d\n", save.Version)
			fmt.Fprintf(out, "game version: %d\n", save.GameVersion)
			fmt.Fprintf(out, "map:          %s\n", save.Header1.Map)
			fmt.Fprintf(out, "description:  %s\n", save.Header1.Description)
			fmt.Fprintf(out, "author:       %s (%s)\n", save.Header1.Author.Name, save.Header1.Author.ID)
			fmt.Fprintf(out, "bricks:       %d\n", len(save.Bricks))
			fmt.Fprintf(out, "mods:         %s\n", strings.Join(save.Header2.Mods, ", "))
			fmt.Fprintf(out, "brick assets: %d\n", len(save.Header2.BrickAssets))
			fmt.Fprintf(out, "colors:       %d\n", len(save.Header2.Colors))
			fmt.Fprintf(out, "materials:    %d\n", len(save.Header2.Materials))
			fmt.Fprintf(out, "components:   %d\n", len(save.Components))
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.brs>",
		Short: "Check a save's cross-reference invariants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, err := openSave(args[0])
			if err != nil {
				return err
			}
			if err := save.Validate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newBricksInCmd() *cobra.Command {
	var minFlag, maxFlag string
	cmd := &cobra.Command{
		Use:   "bricks-in <file.brs>",
		Short: "List the indices of bricks within a bounding box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, err := openSave(args[0])
			if err != nil {
				return err
			}
			min, err := parsePoint(minFlag)
			if err != nil {
				return fmt.Errorf("--min: %w", err)
			}
			max, err := parsePoint(maxFlag)
			if err != nil {
				return fmt.Errorf("--max: %w", err)
			}

			idx := octree.NewSaveOctree(save.Bricks, func(b model.Brick) (int32, int32, int32) {
				return int32(b.Size.X), int32(b.Size.Y), int32(b.Size.Z)
			})
			for _, i := range idx.BricksIn(octree.Bounds{Min: min, Max: max}) {
				fmt.Fprintln(cmd.OutOrStdout(), i)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&minFlag, "min", "0,0,0", "minimum corner, as x,y,z")
	cmd.Flags().StringVar(&maxFlag, "max", "0,0,0", "maximum corner, as x,y,z")
	return cmd
}

func parsePoint(s string) (octree.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return octree.Point{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	vals := make([]int32, 3)
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return octree.Point{}, fmt.Errorf("invalid coordinate %q: %w", p, err)
		}
		vals[i] = int32(n)
	}
	return octree.Point{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}
