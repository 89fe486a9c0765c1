package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"comprasweb/tui"
)

func main() {
	configPath := flag.String("config", "", "path to compras-tui.yaml")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := tui.LoadConfig(configPath)
	if err != nil {
		return err
	}

	// stdout belongs to the UI; log to a file instead.
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "compras-tui")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	return tui.Run(cfg)
}
