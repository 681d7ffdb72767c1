package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	charmlog "github.com/charmbracelet/log"
	"github.com/tilekit/splitview/internal/app"
	"github.com/tilekit/splitview/internal/config"
	"github.com/tilekit/splitview/internal/splitview"
)

// filterMouseMotion drops mouse motion events unless a divider drag is in
// progress, which keeps the event loop quiet while the mouse just moves.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	m, ok := model.(*app.Model)
	if !ok {
		return msg
	}
	if m.Dragging() {
		return msg
	}
	return nil
}

func runDemo() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("Warning: Failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}
	if debugMode {
		userConfig.Logging.Level = "debug"
	}
	if noAnimations {
		userConfig.Demo.NoAnimations = true
	}
	splitview.SetLogLevel(logLevel(userConfig.Logging.Level))

	m := app.New(userConfig)

	p := tea.NewProgram(
		m,
		tea.WithFPS(userConfig.Demo.FPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	)

	// Reload the config when the file changes on disk.
	if path, err := config.GetConfigPath(); err == nil {
		stop, err := config.Watch(path, func(cfg *config.Config) {
			p.Send(app.ConfigReloadedMsg{Cfg: cfg})
		})
		if err == nil {
			defer func() { _ = stop() }()
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func logLevel(level string) charmlog.Level {
	switch level {
	case "debug":
		return charmlog.DebugLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	}
	return charmlog.InfoLevel
}
