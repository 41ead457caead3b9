// Package cmd - validate command
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/validation"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var src groupSource

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a group against the dealer registration rules",
		Long: `Print every rule the group breaks. Exits with status 1 when the
group is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatter(opts)
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

			fieldErrors := validation.New(engine()).Validate(g)
			if err := f.RenderValidation(cmd.OutOrStdout(), fieldErrors); err != nil {
				return err
			}
			if len(fieldErrors) > 0 {
				cmd.SilenceErrors = true
			}
			return validation.Err(fieldErrors)
		},
	}

	src.register(cmd, "group", "g", "group snapshot JSON file")
	return cmd
}
