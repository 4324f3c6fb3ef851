package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/homefinder-ke/homefinder/internal/catalog"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show property details",
		Long:  "Show full details for a property, looked up by ID or by name.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	var p *catalog.Property
	if id, convErr := strconv.ParseInt(args[0], 10, 64); convErr == nil {
		p = store.ByID(id)
	}
	if p == nil {
		p, err = store.ByName(args[0])
		if err != nil {
			return err
		}
	}

	if isJSON() {
		return printJSON(p)
	}
	printPropertyDetails(p)
	return nil
}
