package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/sadopc/wristtrack/internal/cli"
	"github.com/sadopc/wristtrack/internal/config"
	"github.com/sadopc/wristtrack/internal/log"
	"github.com/sadopc/wristtrack/internal/store"
	"github.com/sadopc/wristtrack/internal/tui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// A missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	logger, logFile, err := log.OpenFile(cfg.Log.Path, log.ParseLevel(cfg.Log.Level))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log: %v\n", err)
		return 1
	}
	defer logFile.Close()

	cat, err := cfg.BuildCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	s, err := store.New(cfg.Database.Path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		return 1
	}
	defer s.Close()

	if len(args) > 0 {
		return cli.Run(args, cli.Env{
			Store:   s,
			Catalog: cat,
			Log:     logger,
			Out:     os.Stdout,
			Err:     os.Stderr,
		})
	}

	logger.Info("starting tui", "items", cat.Len(), "db", cfg.Database.Path)
	app := tui.NewApp(s, cat, logger, cfg.Export.Dir)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
