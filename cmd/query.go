package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [text...]",
	Short: "Show the results the launcher would get for a query",
	RunE: func(cmd *cobra.Command, args []string) error {
		results := newApp().handler.Query(cmd.Context(), strings.Join(args, " "))
		uiFor(cmd).Results(results)
		return nil
	},
}
