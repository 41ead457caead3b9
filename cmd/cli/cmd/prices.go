// Package cmd - prices command
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/config"
)

func newPricesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "List table and power options with their prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatter(opts)
			if err != nil {
				return err
			}
			return f.RenderPrices(cmd.OutOrStdout(), config.Get().Pricing)
		},
	}
}
