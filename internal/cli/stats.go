package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Long:  "Show the property count, average price and price extremes of the catalog.",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	cheapest, mostExpensive := store.CheapestAndMostExpensive()

	if isJSON() {
		return printJSON(map[string]any{
			"count":         store.Count(),
			"averagePrice":  store.AveragePrice(),
			"cheapest":      cheapest,
			"mostExpensive": mostExpensive,
		})
	}

	fmt.Printf("Properties:     %d\n", store.Count())
	fmt.Printf("Average price:  %s\n", formatPrice(store.AveragePrice()))
	if cheapest != nil {
		fmt.Printf("Cheapest:       %s (%s)\n", cheapest.Name, formatPrice(cheapest.Price))
	}
	if mostExpensive != nil {
		fmt.Printf("Most expensive: %s (%s)\n", mostExpensive.Name, formatPrice(mostExpensive.Price))
	}
	return nil
}
