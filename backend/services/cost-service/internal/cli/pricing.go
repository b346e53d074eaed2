package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newPricingCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pricing",
		Short: "Print the effective tariff",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := root.validateOutput(); err != nil {
				return err
			}
			tariffs, err := root.tariffs()
			if err != nil {
				return err
			}
			if root.output == "json" {
				return printJSON(cmd.OutOrStdout(), tariffs.Current())
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(tariffs.Current()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
