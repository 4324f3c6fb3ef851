package cli

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		sortOrder string
		minPrice  float64
		maxPrice  float64
		agent     string
		amenities []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all properties",
		Long:  "List all properties, optionally sorted by price or filtered by price range, agent or amenities.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(sortOrder, minPrice, maxPrice, agent, amenities)
		},
	}

	cmd.Flags().StringVar(&sortOrder, "sort", "", "sort by price (asc|desc)")
	cmd.Flags().Float64Var(&minPrice, "min", 0, "minimum price in KES")
	cmd.Flags().Float64Var(&maxPrice, "max", 0, "maximum price in KES")
	cmd.Flags().StringVar(&agent, "agent", "", "filter by agent or agency name")
	cmd.Flags().StringSliceVar(&amenities, "amenities", nil, "filter by amenities (all must match)")

	return cmd
}

func runList(sortOrder string, minPrice, maxPrice float64, agent string, amenities []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	var props = store.All()
	switch {
	case agent != "":
		props = store.FindByAgentOrAgency(agent)
	case len(amenities) > 0:
		props = store.FindByAmenities(amenities)
	case maxPrice > 0:
		props = store.FilterByPriceRange(minPrice, maxPrice)
	case sortOrder == "asc":
		props = store.SortByPrice(true)
	case sortOrder == "desc":
		props = store.SortByPrice(false)
	}

	if isJSON() {
		return printJSON(props)
	}
	return printPropertyTable(props)
}
