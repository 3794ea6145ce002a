package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/code-lens/internal/client"
	"github.com/sevigo/code-lens/internal/config"
	"github.com/sevigo/code-lens/internal/display"
	"github.com/sevigo/code-lens/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	themeFlag := flag.String("theme", "", "UI theme (cyan, matrix, amber, cyberpunk, ice, dracula, fire)")
	listThemes := flag.Bool("list-themes", false, "List all available themes")
	serverFlag := flag.String("server", cfg.ServerURL, "Code-Lens server URL")
	flag.Parse()

	if *listThemes {
		fmt.Println("Available themes:")
		for _, theme := range display.ListThemes() {
			fmt.Printf("  - %s\n", theme)
		}
		os.Exit(0)
	}

	selectedTheme := *themeFlag
	if selectedTheme == "" {
		selectedTheme = os.Getenv("CODE_LENS_THEME")
	}
	if selectedTheme == "" {
		selectedTheme = string(display.ThemeCyan)
	}
	theme := display.ThemeName(selectedTheme)
	if !display.IsTheme(theme) {
		fmt.Printf("Invalid theme '%s'. Use --list-themes to see available options.\n", theme)
		os.Exit(1)
	}

	// The alt screen owns stdout, so logs go to a file.
	logCfg := cfg.Logging
	logCfg.Output = "file"
	out, closeLog, err := logger.OpenOutput(logCfg)
	if err != nil {
		fmt.Printf("Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	log := logger.NewLogger(logCfg, out)
	slog.SetDefault(log)

	c := client.New(*serverFlag)
	log.Info("Code-Lens terminal starting up", "server", *serverFlag, "session", c.SessionID())

	p := tea.NewProgram(initialModel(theme, c, *serverFlag, cfg.Server.RequestTimeout), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("error running program", "error", err)
		fmt.Printf("Error running program: %v\n", err)
		closeLog()
		os.Exit(1)
	}
	log.Info("Code-Lens terminal shut down successfully")
}
