// kiosk runs the park's chat assistant and ticket wizard in a terminal.
// Purchases go through the simulated gateway; nothing is persisted.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/curiousguyinhis30s/themepark-website/internal/catalog"
	"github.com/curiousguyinhis30s/themepark-website/internal/chatbot"
	"github.com/curiousguyinhis30s/themepark-website/internal/checkout"
	"github.com/curiousguyinhis30s/themepark-website/internal/clock"
	"github.com/curiousguyinhis30s/themepark-website/internal/config"
	"github.com/curiousguyinhis30s/themepark-website/internal/kiosk"
	"github.com/curiousguyinhis30s/themepark-website/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath, logOutput, knowledgeBase string

	flagSet := pflag.NewFlagSet("kiosk", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.StringVar(&knowledgeBase, "knowledge-base", "", "YAML knowledge base file (overrides the config)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if _, err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var logWriter io.Writer = io.Discard
	if logOutput != "" {
		f, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log output: %w", err)
		}
		defer f.Close()
		logWriter = f
	}
	logger, err := logging.New(logWriter, cfg.Log.Level, "json")
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if knowledgeBase == "" {
		knowledgeBase = cfg.Chat.KnowledgeBase
	}
	kb, err := chatbot.LoadKnowledgeBaseFile(knowledgeBase)
	if err != nil {
		return fmt.Errorf("load knowledge base: %w", err)
	}

	clk := clock.NewSystem()
	parkCatalog := catalog.New()
	gateway := checkout.NewSimulatedGateway(parkCatalog, clk)
	gateway.Latency = cfg.Checkout.PaymentLatency
	gateway.ServiceFee = cfg.Checkout.ServiceFee

	model := kiosk.New(kiosk.Config{
		KnowledgeBase: kb,
		Tickets:       parkCatalog,
		Gateway:       gateway,
		Clock:         clk,
		Scheduler:     clock.NewSystemScheduler(),
		ChatMinDelay:  cfg.Chat.MinDelay,
		ChatMaxDelay:  cfg.Chat.MaxDelay,
		ServiceFee:    cfg.Checkout.ServiceFee,
		Logger:        logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run kiosk: %w", err)
	}
	return nil
}
