package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <name>...",
		Short: "Compare property prices",
		Long:  "Compare the prices of two or more properties by name. Names that do not match any listing are skipped.",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runCompare,
	}
}

func runCompare(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	comparison := store.CompareByNames(args)
	if isJSON() {
		return printJSON(comparison)
	}

	if len(comparison) == 0 {
		fmt.Println("No matching properties found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPRICE")
	for _, c := range comparison {
		fmt.Fprintf(w, "%s\t%s\n", c.Name, formatPrice(c.Price))
	}
	return w.Flush()
}
