package cmd

import (
	"github.com/spf13/cobra"
)

var instancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "List discovered editor installations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		a.catalog.EnsureLoaded(cmd.Context())
		uiFor(cmd).Instances(a.locator.Product().Name, a.catalog)
		return nil
	},
}
