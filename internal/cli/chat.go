package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/homefinder-ke/homefinder/internal/assistant"
	"github.com/homefinder-ke/homefinder/internal/config"
	"github.com/homefinder-ke/homefinder/internal/session"
	"github.com/homefinder-ke/homefinder/internal/translate"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the property assistant",
		Long:  "Start an interactive conversation with the assistant. It can search listings, manage your cart, schedule viewings and help with negotiations.",
		Args:  cobra.NoArgs,
		RunE:  runChat,
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireChat(); err != nil {
		return err
	}

	store, err := loadStore()
	if err != nil {
		return err
	}

	chat, err := assistant.NewOpenAISession(cfg.OpenAIKey, cfg.Model)
	if err != nil {
		return err
	}

	orch := assistant.New(chat, store, session.New(store), translate.New(cfg.TranslateURL), nil)

	prompt := color.New(color.FgCyan, color.Bold).SprintFunc()
	agent := color.New(color.FgGreen).SprintFunc()

	fmt.Println("Chat with the property assistant. Type 'exit' to leave.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt("you> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		reply := orch.AskAgent(cmd.Context(), line)
		fmt.Printf("%s %s\n\n", agent("agent>"), reply)
	}
	return scanner.Err()
}
