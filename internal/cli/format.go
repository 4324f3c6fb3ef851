package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/homefinder-ke/homefinder/internal/catalog"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPropertyTable prints a list of properties as a formatted table.
func printPropertyTable(props []catalog.Property) error {
	if len(props) == 0 {
		fmt.Println("No properties found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tNAME\tPRICE\tTYPE\tLOCATION\tAGENCY"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t----\t-----\t----\t--------\t------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range props {
		location := p.City
		if p.Subcounty != "" {
			location = p.Subcounty + ", " + p.City
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, truncate(p.Name, 30), formatPrice(p.Price), p.Type,
			truncate(location, 30), p.Agent.Agency); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d properties\n", len(props))
	return nil
}

// printPropertyDetails prints a single property in text format.
func printPropertyDetails(p *catalog.Property) {
	fmt.Printf("Property #%d: %s\n", p.ID, p.Name)
	fmt.Printf("  Price:     %s\n", formatPrice(p.Price))
	fmt.Printf("  Type:      %s\n", p.Type)
	fmt.Printf("  Address:   %s, %s, %s\n", p.Address, p.Subcounty, p.City)
	if len(p.Rooms) > 0 {
		fmt.Printf("  Rooms:     %s\n", strings.Join(p.Rooms, ", "))
	}
	if len(p.Amenities) > 0 {
		fmt.Printf("  Nearby:    %s\n", strings.Join(p.Amenities, ", "))
	}
	if p.AvailableUnits != "" {
		fmt.Printf("  Units:     %s\n", p.AvailableUnits)
	}
	if p.Listing.DateListed != "" {
		fmt.Printf("  Listed:    %s (%s)\n", p.Listing.DateListed, p.Listing.Type)
	}
	fmt.Printf("  Agent:     %s, %s (%s)\n", p.Agent.Name, p.Agent.Agency, p.Agent.Contact)

	if len(p.ViewingWindows) > 0 {
		fmt.Println("  Viewings:")
		for _, w := range p.ViewingWindows {
			times := "any time"
			if len(w.Times) > 0 {
				times = strings.Join(w.Times, ", ")
			}
			fmt.Printf("    %s at %s\n", strings.Join(w.Days, ", "), times)
		}
	}
}

// formatPrice formats a KES amount with commas, e.g. KES 1,000,000.
func formatPrice(amount float64) string {
	n := int64(amount)
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		s = s[1:]
	}

	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		parts = append([]string{s}, parts...)
		s = strings.Join(parts, ",")
	}

	if n < 0 {
		return "KES -" + s
	}
	return "KES " + s
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
