package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/homefinder-ke/homefinder/internal/assistant"
	"github.com/homefinder-ke/homefinder/internal/config"
	"github.com/homefinder-ke/homefinder/internal/session"
	"github.com/homefinder-ke/homefinder/internal/translate"
	"github.com/homefinder-ke/homefinder/internal/web"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API server",
		Long:  "Start an HTTP server exposing the catalog, cart, viewing schedule and chat as a JSON API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on (default from config, "+config.DefaultListenAddr+")")

	return cmd
}

func runServe(addr string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.ListenAddr
	}

	store, err := loadStore()
	if err != nil {
		return err
	}
	sess := session.New(store)

	// Chat is optional on the server; the endpoint reports 503 without it.
	var orch *assistant.Orchestrator
	if cfg.OpenAIKey != "" {
		chat, err := assistant.NewOpenAISession(cfg.OpenAIKey, cfg.Model)
		if err != nil {
			return err
		}
		orch = assistant.New(chat, store, sess, translate.New(cfg.TranslateURL), nil)
	} else {
		slog.Warn("no OpenAI API key configured, chat endpoint disabled")
	}

	fmt.Printf("Serving on %s\n", addr)
	return web.NewServer(store, sess, orch).ListenAndServe(addr)
}
