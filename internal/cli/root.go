// Package cli defines the cobra command tree for homefinder.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/homefinder-ke/homefinder/internal/catalog"
	"github.com/homefinder-ke/homefinder/internal/config"
)

var (
	flagFormat string
	flagData   string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "homefinder",
		Short:         "Browse rental listings and talk to an assistant",
		Long:          "Browse and search rental property listings, keep a favourites cart, schedule viewings, and chat with an assistant that can do all of it for you.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagData, "data", "", "listings file (default: embedded dataset)")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newSearchCmd(),
		newStatsCmd(),
		newCompareCmd(),
		newSimilarCmd(),
		newRecentCmd(),
		newNegotiateCmd(),
		newChatCmd(),
		newServeCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// loadStore opens the catalog from the --data flag, the configured dataset
// path, or the embedded dataset.
func loadStore() (*catalog.Store, error) {
	if flagData != "" {
		return catalog.LoadFile(flagData)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.DatasetPath != "" {
		return catalog.LoadFile(cfg.DatasetPath)
	}

	store, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("loading embedded dataset: %w", err)
	}
	return store, nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
