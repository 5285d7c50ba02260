// Package tuirc provides the tuirc chat client as a Bubble Tea model that can
// be embedded in other applications or run standalone.
//
// # Basic Usage
//
// Create a client with default options:
//
//	model := tuirc.New()
//	p := tea.NewProgram(model, tuirc.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
//	model := tuirc.New(
//		tuirc.WithTheme("dracula"),
//		tuirc.WithNick("gopher"),
//		tuirc.WithTextBufferSize(2000),
//	)
package tuirc

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuirc/internal/app"
	"github.com/Gaurav-Gosain/tuirc/internal/config"
	"github.com/Gaurav-Gosain/tuirc/internal/input"
	"github.com/charmbracelet/colorprofile"
)

// Model is the tuirc client. It implements tea.Model.
type Model = app.Client

// Options configures a tuirc instance.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord", "tokyonight").
	// Leave empty to use standard terminal colors.
	Theme string

	// Nick is the nickname shown on the status bar and in echoed messages.
	Nick string

	// NoColors strips colors and attributes from all output.
	NoColors bool

	// TextBufferSize is the number of records kept per window.
	// Default is 1000, min 350, max 4700.
	TextBufferSize int

	// MaxWindows limits the number of open windows, status included.
	// Default is 60, min 10, max 200.
	MaxWindows int

	// NoBell keeps the bell quiet when a scroll cannot move.
	NoBell bool

	// NoGreeting skips the startup banner.
	NoGreeting bool

	// Width is the initial width (set by the first window size message if 0).
	Width int

	// Height is the initial height (set by the first window size message if 0).
	Height int

	// Profile is the terminal's color capability. Default is TrueColor.
	Profile colorprofile.Profile

	// UserConfig is a custom user configuration. If nil, the config file is
	// loaded.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring tuirc.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithNick sets the nickname.
func WithNick(nick string) Option {
	return func(o *Options) {
		o.Nick = nick
	}
}

// WithNoColors strips colors from all output.
func WithNoColors(enabled bool) Option {
	return func(o *Options) {
		o.NoColors = enabled
	}
}

// WithTextBufferSize sets the per-window scrollback size.
func WithTextBufferSize(records int) Option {
	return func(o *Options) {
		o.TextBufferSize = records
	}
}

// WithMaxWindows sets the window limit.
func WithMaxWindows(n int) Option {
	return func(o *Options) {
		o.MaxWindows = n
	}
}

// WithBell enables or disables the invalid scroll bell.
func WithBell(enabled bool) Option {
	return func(o *Options) {
		o.NoBell = !enabled
	}
}

// WithGreeting enables or disables the startup banner.
func WithGreeting(enabled bool) Option {
	return func(o *Options) {
		o.NoGreeting = !enabled
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithProfile sets the terminal color profile.
func WithProfile(p colorprofile.Profile) Option {
	return func(o *Options) {
		o.Profile = p
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Width:   80,
		Height:  24,
		Profile: colorprofile.TrueColor,
	}
}

// New creates a new tuirc model with the given options.
// This is the main entry point for using tuirc as a library.
func New(opts ...Option) *Model {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	app.SetInputHandler(input.HandleInput)

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	overrides := config.Overrides{
		ThemeName:      options.Theme,
		NoColors:       options.NoColors,
		TextBufferSize: options.TextBufferSize,
		MaxWindows:     options.MaxWindows,
		NoBell:         options.NoBell,
		NoGreeting:     options.NoGreeting,
		Nickname:       options.Nick,
	}
	config.ApplyOverrides(overrides, userConfig)

	return app.New(app.Options{
		Width:     options.Width,
		Height:    options.Height,
		Profile:   options.Profile,
		Overrides: overrides,
	})
}

// ProgramOptions returns recommended tea.ProgramOption values for running tuirc.
// Use these when creating a tea.Program:
//
//	model := tuirc.New()
//	p := tea.NewProgram(model, tuirc.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
	}
}

// Config re-exports the config package for customization.
// This allows users to access configuration types without importing internal packages.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
