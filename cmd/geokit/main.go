package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/geokit/internal/app"
	"github.com/henri123lemoine/geokit/internal/config"
	"github.com/henri123lemoine/geokit/internal/debug"
	"github.com/henri123lemoine/geokit/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to the config file (default "+config.ConfigPath()+")")
	debugPath := flag.String("debug", "", "write a debug log to this file")
	initConfig := flag.Bool("init-config", false, "write a commented default config and exit")
	flag.Parse()

	explicit := *configPath != ""
	if !explicit {
		*configPath = config.ConfigPath()
	}

	if *initConfig {
		if err := config.CreateDefaultConfigFileAt(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote default config to %s\n", *configPath)
		return
	}

	if *debugPath != "" {
		if err := debug.Enable(*debugPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error enabling debug log: %v\n", err)
			os.Exit(1)
		}
		defer debug.Close()
	}

	// Give first-time users a commented file to edit.
	if !explicit && config.IsFirstRun() {
		if err := config.CreateDefaultConfigFile(); err != nil {
			debug.Log("create default config: %v", err)
		}
	}

	// Load configuration
	var (
		cfg *config.Config
		err error
	)
	if explicit {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	for _, w := range cfg.Validate() {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	ui.ApplyTheme(cfg.Theme)

	// Create and run the application
	p := tea.NewProgram(app.New(cfg, *configPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		debug.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
