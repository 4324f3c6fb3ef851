package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSimilarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "similar <id>",
		Short: "Find similar properties",
		Long:  "Find properties comparable to the given one: same type and agency with overlapping room layouts, closest prices first.",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimilar,
	}
}

func runSimilar(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid property ID: %s", args[0])
	}

	store, err := loadStore()
	if err != nil {
		return err
	}
	if store.ByID(id) == nil {
		return fmt.Errorf("property %d not found", id)
	}

	props := store.FindSimilar(id)
	if isJSON() {
		return printJSON(props)
	}
	return printPropertyTable(props)
}
