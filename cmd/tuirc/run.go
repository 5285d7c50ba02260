package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuirc/internal/app"
	"github.com/Gaurav-Gosain/tuirc/internal/config"
	"github.com/Gaurav-Gosain/tuirc/internal/input"
	"github.com/Gaurav-Gosain/tuirc/internal/server"
	"github.com/Gaurav-Gosain/tuirc/internal/terminal"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// setupLogging sends log output to the state directory so it never lands on
// the UI. The returned closer flushes the file.
func setupLogging() (io.Closer, error) {
	if debugMode {
		log.SetLevel(log.DebugLevel)
	}
	log.SetReportTimestamp(true)

	path, err := xdg.StateFile("tuirc/tuirc.log")
	if err != nil {
		return nil, fmt.Errorf("could not determine log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(f)
	if debugMode {
		fmt.Printf("Debug log: %s\n", path)
	}
	return f, nil
}

func overrides() config.Overrides {
	return config.Overrides{
		ThemeName:      themeName,
		NoColors:       noColors,
		TextBufferSize: textBufferSize,
		MaxWindows:     maxWindows,
		NoBell:         noBell,
		NoGreeting:     noGreeting,
		Nickname:       nickname,
	}
}

func runLocal() error {
	fd := int(os.Stdout.Fd()) // #nosec G115 - file descriptors fit in int
	if !term.IsTerminal(fd) {
		return errors.New("tuirc needs an interactive terminal")
	}

	if f, err := setupLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		defer f.Close()
	}

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config, using defaults: %v\n", err)
		userConfig = config.DefaultConfig()
	}
	ov := overrides()
	config.ApplyOverrides(ov, userConfig)

	app.SetInputHandler(input.HandleInput)

	width, height, err := term.GetSize(fd)
	if err != nil {
		width, height = 80, 24
	}

	configPath, _ := config.GetConfigPath()
	log.Debug("starting", "version", version, "config", configPath, "size", fmt.Sprintf("%dx%d", width, height))

	client := app.New(app.Options{
		Width:      width,
		Height:     height,
		Profile:    terminal.DetectProfile(os.Stdout, nil),
		Overrides:  ov,
		ConfigPath: configPath,
		Version:    version,
	})
	defer client.Close()

	p := tea.NewProgram(
		client,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
	)

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

func runSSHServer(sshHost, sshPort, sshKeyPath string) error {
	if debugMode {
		log.SetLevel(log.DebugLevel)
	}

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}
	config.ApplyOverrides(overrides(), userConfig)

	app.SetInputHandler(input.HandleInput)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
	}()

	cfg := &server.SSHServerConfig{
		Host:    sshHost,
		Port:    sshPort,
		KeyPath: sshKeyPath,
		Version: version,
	}
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}
