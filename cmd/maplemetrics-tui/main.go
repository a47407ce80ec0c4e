package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/config"
	"github.com/maplemetrics/maplemetrics/internal/reference"
	"github.com/maplemetrics/maplemetrics/internal/tui"
)

func main() {
	// Optional application config; rates, thresholds and reference data come from it
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			fmt.Printf("Error: Config file not found: %s\n", configPath)
			os.Exit(1)
		}
	}

	engine, err := newEngine(configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewModel(engine),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// newEngine builds the engine without a logger; log output would corrupt the alt screen
func newEngine(configPath string) (*calculation.Engine, error) {
	cfg, err := config.LoadAppConfig(configPath)
	if err != nil {
		return nil, err
	}
	tables, err := reference.Default()
	if cfg.ReferenceFile != "" {
		tables, err = reference.LoadFile(cfg.ReferenceFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}
	engine := calculation.NewEngine(tables)
	cfg.ApplyTo(engine)
	return engine, nil
}
