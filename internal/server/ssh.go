// Package server provides SSH server functionality for tuirc.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/Gaurav-Gosain/tuirc/internal/app"
	"github.com/Gaurav-Gosain/tuirc/internal/config"
	"github.com/Gaurav-Gosain/tuirc/internal/terminal"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string
	Version string
}

// StartSSHServer runs the SSH server until ctx is cancelled. Every session
// gets its own client; the live settings are shared.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	hostKeyPath, err := hostKeyPath(cfg.KeyPath)
	if err != nil {
		return err
	}

	server, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			// Bubble Tea middleware for interactive sessions
			bubbletea.Middleware(teaHandler(cfg)),
			// Logging middleware for connection tracking
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("starting SSH server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("SSH server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down SSH server")
	return server.Close()
}

// hostKeyPath returns the configured key path or the default under ~/.ssh.
func hostKeyPath(keyPath string) (string, error) {
	if keyPath != "" {
		return keyPath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ssh", "tuirc_host_key"), nil
}

// teaHandler creates a client for each SSH session.
func teaHandler(cfg *SSHServerConfig) bubbletea.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, active := sess.Pty()
		if !active {
			wish.Fatalln(sess, "tuirc requires an interactive terminal")
			return nil, nil
		}

		env := append(sess.Environ(), "TERM="+pty.Term)
		c := app.New(app.Options{
			Width:   pty.Window.Width,
			Height:  pty.Window.Height,
			Profile: terminal.DetectProfile(sess, env),
			Version: cfg.Version,
		})
		go func() {
			<-sess.Context().Done()
			c.Close()
		}()

		log.Debug("ssh session started", "user", sess.User(), "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)
		return c, []tea.ProgramOption{
			tea.WithFPS(config.NormalFPS),
		}
	}
}
