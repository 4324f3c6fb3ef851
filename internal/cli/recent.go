package cli

import (
	"github.com/spf13/cobra"
)

func newRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recently listed properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecent(limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "maximum number of properties to show")

	return cmd
}

func runRecent(limit int) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	props := store.RecentlyListed(limit)
	if isJSON() {
		return printJSON(props)
	}
	return printPropertyTable(props)
}
