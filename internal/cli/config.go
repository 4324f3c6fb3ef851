package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/homefinder-ke/homefinder/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	key := "(not set)"
	if cfg.OpenAIKey != "" {
		key = "(set)"
	}

	if isJSON() {
		return printJSON(map[string]any{
			"openaiKey":    key,
			"model":        cfg.Model,
			"translateUrl": cfg.TranslateURL,
			"datasetPath":  cfg.DatasetPath,
			"listenAddr":   cfg.ListenAddr,
			"logLevel":     cfg.LogLevel,
		})
	}

	fmt.Printf("OpenAI key:     %s\n", key)
	fmt.Printf("Model:          %s\n", cfg.Model)
	if cfg.TranslateURL != "" {
		fmt.Printf("Translate URL:  %s\n", cfg.TranslateURL)
	}
	if cfg.DatasetPath != "" {
		fmt.Printf("Dataset:        %s\n", cfg.DatasetPath)
	}
	fmt.Printf("Listen address: %s\n", cfg.ListenAddr)
	fmt.Printf("Log level:      %s\n", cfg.LogLevel)
	return nil
}

func newConfigSetCmd() *cobra.Command {
	var (
		apiKey       string
		model        string
		translateURL string
		datasetPath  string
		listenAddr   string
		logLevel     string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if apiKey != "" {
				cfg.OpenAIKey = apiKey
			}
			if model != "" {
				cfg.Model = model
			}
			if translateURL != "" {
				cfg.TranslateURL = translateURL
			}
			if datasetPath != "" {
				cfg.DatasetPath = datasetPath
			}
			if listenAddr != "" {
				cfg.ListenAddr = listenAddr
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Println("Configuration saved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "OpenAI API key")
	cmd.Flags().StringVar(&model, "model", "", "chat model identifier")
	cmd.Flags().StringVar(&translateURL, "translate-url", "", "translation service endpoint")
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "listings file path")
	cmd.Flags().StringVar(&listenAddr, "addr", "", "server listen address")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")

	return cmd
}
