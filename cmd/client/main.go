package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"MuseShelf/internal/cli/api"
	"MuseShelf/internal/cli/repo/fs"
	"MuseShelf/internal/cli/service"
	"MuseShelf/internal/cli/session"
	"MuseShelf/internal/cli/ui"
	"MuseShelf/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tokens := fs.AuthFSStore{Path: cfg.TokenFile}
	client := api.New(cfg.ServerURL, tokens)
	store := session.NewStore(client)
	catalogSvc := service.NewCatalogService(client)

	gate := ui.NewGate(ctx, store, catalogSvc)
	defer gate.Close()

	if _, err := tea.NewProgram(gate, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "museshelf:", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("MuseShelf TUI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
