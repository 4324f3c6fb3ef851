package cli

import (
	"github.com/spf13/cobra"

	"github.com/homefinder-ke/homefinder/internal/catalog"
)

func newSearchCmd() *cobra.Command {
	var (
		bedrooms  int
		minPrice  float64
		maxPrice  float64
		amenities []string
	)

	cmd := &cobra.Command{
		Use:   "search <location>",
		Short: "Search properties",
		Long:  "Search properties by location, with optional bedroom count, price range and amenity filters.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := ""
			if len(args) > 0 {
				location = args[0]
			}
			return runSearch(location, bedrooms, minPrice, maxPrice, amenities)
		},
	}

	cmd.Flags().IntVar(&bedrooms, "bedrooms", 0, "number of bedrooms")
	cmd.Flags().Float64Var(&minPrice, "min", 0, "minimum price in KES")
	cmd.Flags().Float64Var(&maxPrice, "max", 0, "maximum price in KES")
	cmd.Flags().StringSliceVar(&amenities, "amenities", nil, "desired amenities or features")

	return cmd
}

func runSearch(location string, bedrooms int, minPrice, maxPrice float64, amenities []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	filters := catalog.Filters{Location: location, Amenities: amenities}
	if bedrooms > 0 {
		filters.Bedrooms = &bedrooms
	}
	if minPrice > 0 {
		filters.MinPrice = &minPrice
	}
	if maxPrice > 0 {
		filters.MaxPrice = &maxPrice
	}

	props := store.Search(filters)
	if isJSON() {
		return printJSON(props)
	}
	return printPropertyTable(props)
}
