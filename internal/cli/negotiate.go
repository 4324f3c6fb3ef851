package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNegotiateCmd() *cobra.Command {
	var target float64

	cmd := &cobra.Command{
		Use:   "negotiate <name>",
		Short: "Get negotiation advice for a property",
		Long:  "Compare a property against similar listings and suggest negotiation points, optionally against a target price.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNegotiate(args[0], target)
		},
	}

	cmd.Flags().Float64Var(&target, "target", 0, "your target price in KES")

	return cmd
}

func runNegotiate(name string, target float64) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	var targetPtr *float64
	if target > 0 {
		targetPtr = &target
	}

	advice, err := store.Negotiate(name, targetPtr)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(advice)
	}

	fmt.Printf("%s — asking %s\n", advice.Property.Name, formatPrice(advice.Property.Price))
	fmt.Printf("Comparable average: %s (%d comparables)\n",
		formatPrice(advice.AveragePrice), len(advice.Comparables))
	if advice.PriceDifference != nil && advice.PercentageDifference != nil {
		fmt.Printf("Target gap: %s (%.1f%%)\n",
			formatPrice(*advice.PriceDifference), *advice.PercentageDifference)
	}
	fmt.Println("\nNegotiation tips:")
	for _, tip := range advice.Tips {
		fmt.Printf("  - %s\n", tip)
	}
	return nil
}
