// Package cmd - preview and apply commands
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/cost"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/logging"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/snapshot"
)

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	var (
		src   groupSource
		field string
		value string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Price a single change to a group",
		Long: `Price the change of one field without modifying the group.

Fields: tables, power, power_fee, badges, table_fee, auto_recalc, is_dealer.

Examples:
  mff-cost preview --group group.json --field power --value 3
  mff-cost preview --group group.json --field tables --value 2 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatter(opts)
			if err != nil {
				return err
			}
			change, err := cost.ParseChange(field, value)
			if err != nil {
				return err
			}
			doc, err := src.read(cmd)
			if err != nil {
				return err
			}
			g, err := doc.Group()
			if err != nil {
				return err
			}

			p, err := engine().PreviewChange(g, change)
			if err != nil {
				return err
			}
			logging.Debug("previewed", zap.String("field", p.Field), logging.Amount("delta", p.Delta))

			return f.RenderPreview(cmd.OutOrStdout(), p)
		},
	}

	src.register(cmd, "group", "g", "group snapshot JSON file")
	cmd.Flags().StringVar(&field, "field", "", "field to change")
	cmd.Flags().StringVar(&value, "value", "", "new value")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

func newApplyCmd() *cobra.Command {
	var (
		src   groupSource
		field string
		value string
		write bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a change and recalculate the group's cost",
		Long: `Apply one field change, normalize the group, recalculate its cost and
print the updated document. Fields outside the priced attributes are kept.
Groups with auto_recalc off keep their stored cost.

Examples:
  mff-cost apply --group group.json --field power --value 2
  mff-cost apply --group export.json --group-path data.group --field tables --value 3 --write`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			change, err := cost.ParseChange(field, value)
			if err != nil {
				return err
			}
			doc, err := src.read(cmd)
			if err != nil {
				return err
			}
			g, err := doc.Group()
			if err != nil {
				return err
			}

			e := engine()
			p, err := e.PreviewChange(g, change)
			if err != nil {
				return err
			}
			// Manual groups keep the stored cost; only recalculated fees move it.
			updated := p.Group
			if updated.AutoRecalc {
				if updated.Cost, err = e.DefaultCost(updated); err != nil {
					return err
				}
			}
			if err := doc.Replace(updated); err != nil {
				return err
			}

			logging.Info("applied change",
				zap.String("field", p.Field),
				zap.String("label", p.Label),
				logging.Amount("cost", updated.Cost),
			)

			if write && src.path != snapshot.Stdin {
				return os.WriteFile(src.path, doc.Bytes(), 0644)
			}
			_, err = cmd.OutOrStdout().Write(append(doc.Bytes(), '\n'))
			return err
		},
	}

	src.register(cmd, "group", "g", "group snapshot JSON file")
	cmd.Flags().StringVar(&field, "field", "", "field to change")
	cmd.Flags().StringVar(&value, "value", "", "new value")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the group file")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}
