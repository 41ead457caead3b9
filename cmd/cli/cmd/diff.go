// Package cmd - diff command
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/cost"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/diff"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/types"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/logging"
)

func newDiffCmd(opts *rootOptions) *cobra.Command {
	var (
		before     groupSource
		after      groupSource
		showFields bool
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Explain the cost difference between two snapshots",
		Long: `Compare two snapshots of the same group and list the priced
adjustments that turn one into the other.

Examples:
  mff-cost diff --before old.json --after new.json
  mff-cost diff --before old.json --after new.json --fields`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatter(opts)
			if err != nil {
				return err
			}

			beforeDoc, err := before.read(cmd)
			if err != nil {
				return err
			}
			afterDoc, err := after.read(cmd)
			if err != nil {
				return err
			}
			b, err := beforeDoc.Group()
			if err != nil {
				return err
			}
			a, err := afterDoc.Group()
			if err != nil {
				return err
			}

			e := engine()
			result, err := diff.NewDiffer(e).Diff(b, a)
			if err != nil {
				return err
			}
			logging.Debug("diffed", logging.Amount("delta", result.Delta))

			if err := f.RenderDiff(cmd.OutOrStdout(), result); err != nil {
				return err
			}

			if showFields {
				text, err := fieldDiff(e, b, a, beforeDoc.Path, afterDoc.Path)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), "\n"+text)
			}
			return nil
		},
	}

	before.register(cmd, "before", "", "group snapshot before the change")
	after.register(cmd, "after", "", "group snapshot after the change")
	cmd.Flags().BoolVar(&showFields, "fields", false, "also print a unified diff of the normalized groups")
	return cmd
}

// fieldDiff renders a unified diff of the two normalized groups
func fieldDiff(e *cost.Engine, before, after types.Group, fromName, toName string) (string, error) {
	b, err := json.MarshalIndent(e.Normalize(before), "", "  ")
	if err != nil {
		return "", err
	}
	a, err := json.MarshalIndent(e.Normalize(after), "", "  ")
	if err != nil {
		return "", err
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(b) + "\n"),
		B:        difflib.SplitLines(string(a) + "\n"),
		FromFile: fromName,
		ToFile:   toName,
		Context:  1,
	})
}
