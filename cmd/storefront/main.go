package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/foodapi"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/telemetry"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/tui"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs and spans go to a file or nowhere
	log := logger.Discard()
	var out io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log = logger.NewWithWriter(f, cfg.LogLevel)
		out = f
	}
	slog.SetDefault(log)

	tracing, err := telemetry.Setup(out, "storefront")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up tracing: %v\n", err)
		os.Exit(1)
	}
	flush := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx); err != nil {
			log.Error("failed to flush spans", "error", err)
		}
	}
	defer flush()

	httpClient := tracing.HTTPClient(time.Duration(cfg.Client.HTTPTimeout) * time.Second)
	client := foodapi.NewClient(cfg.Client.BaseURL, httpClient,
		foodapi.WithAPIKey(cfg.Client.APIKey),
		foodapi.WithLogger(log),
	)

	log.Info("starting storefront", "api", cfg.Client.BaseURL, "page_size", cfg.Client.PageSize)

	app := tui.New(client, tui.Options{
		PageSize:       cfg.Client.PageSize,
		NoticeDuration: time.Duration(cfg.Client.NoticeTimeout) * time.Second,
		ProviderID:     int64(cfg.Client.ProviderID),
		Logger:         log,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("program failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		flush()
		os.Exit(1)
	}
}
