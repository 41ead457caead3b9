// Package cmd - quote command
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/errors"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/logging"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/snapshot"
)

// groupSource is a group document flag pair
type groupSource struct {
	path     string
	selector string
}

func (s *groupSource) register(cmd *cobra.Command, name, shorthand, usage string) {
	cmd.Flags().StringVarP(&s.path, name, shorthand, "", usage+` ("-" reads stdin)`)
	cmd.Flags().StringVar(&s.selector, name+"-path", "", "gjson path of the group inside the document")
}

func (s *groupSource) read(cmd *cobra.Command) (*snapshot.Document, error) {
	if s.path == "" {
		return nil, errors.Input("a group document is required")
	}
	return snapshot.Read(s.path, s.selector, cmd.InOrStdin())
}

func newQuoteCmd(opts *rootOptions) *cobra.Command {
	var src groupSource

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Itemize a group's cost",
		Long: `Normalize a group snapshot and print its receipt.

Examples:
  mff-cost quote --group group.json
  mff-cost quote --group export.json --group-path data.group --format json`,
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

			receipt, err := engine().Itemize(g)
			if err != nil {
				return err
			}
			logging.Debug("quoted", append(logging.GroupFields(g), logging.Amount("total", receipt.Total))...)

			return f.RenderQuote(cmd.OutOrStdout(), receipt)
		},
	}

	src.register(cmd, "group", "g", "group snapshot JSON file")
	return cmd
}
