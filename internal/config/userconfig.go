package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Gaurav-Gosain/tuirc/internal/scrollback"
	"github.com/Gaurav-Gosain/tuirc/internal/theme"
	"github.com/Gaurav-Gosain/tuirc/internal/window"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

// configFile is the config location relative to the XDG config directories.
const configFile = "tuirc/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	General     GeneralConfig       `toml:"general"`
	Appearance  AppearanceConfig    `toml:"appearance"`
	Theme       ThemeConfig         `toml:"theme"`
	Keybindings map[string][]string `toml:"keybindings"`
}

// GeneralConfig holds buffer, window and identity settings
type GeneralConfig struct {
	TextBufferSize      int      `toml:"textbuffer_size_absolute"` // Records kept per window (default: 1000, min: 350, max: 4700)
	MaxChatWindows      int      `toml:"max_chat_windows"`         // Open window limit (default: 60, min: 10, max: 200)
	BellOnInvalidScroll *bool    `toml:"bell_on_invalid_scroll"`   // Ring the bell when a scroll cannot move (default: true)
	NoColors            bool     `toml:"no_colors"`                // Strip all colors and attributes
	StartupGreeting     *bool    `toml:"startup_greeting"`         // Print the banner on startup (default: true)
	Nickname            string   `toml:"nickname"`                 // Nick shown on the status bar
	Charsets            []string `toml:"charsets"`                 // Fallback decoders for non UTF-8 text
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	Theme      string `toml:"theme"`       // Color theme name (e.g., dracula, nord, my-custom-theme)
	TimeFormat string `toml:"time_format"` // Go time layout for timestamps (default: 15:04)
}

// ThemeConfig overrides the themed strings. Empty values keep the built-in
// decoration.
type ThemeConfig struct {
	Specifier1           string `toml:"specifier1"`
	Specifier2           string `toml:"specifier2"`
	Specifier3           string `toml:"specifier3"`
	GfxFailure           string `toml:"gfx_failure"`
	GfxSuccess           string `toml:"gfx_success"`
	GfxWarn              string `toml:"gfx_warn"`
	StatusbarSpec        string `toml:"statusbar_spec"`
	LeftBracket          string `toml:"left_bracket"`
	RightBracket         string `toml:"right_bracket"`
	Slogan               string `toml:"slogan"`
	NickS1               string `toml:"nick_s1"`
	NickS2               string `toml:"nick_s2"`
	TermUseDefaultColors *bool  `toml:"term_use_default_colors"`
	TermBackground       *int   `toml:"term_background"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	bell, greeting := true, true
	return &UserConfig{
		General: GeneralConfig{
			TextBufferSize:      scrollback.DefaultSize,
			MaxChatWindows:      window.DefaultMaxWindows,
			BellOnInvalidScroll: &bell,
			StartupGreeting:     &greeting,
			Nickname:            DefaultNickname,
			Charsets:            slices.Clone(DefaultCharsets),
		},
		Appearance: AppearanceConfig{
			TimeFormat: DefaultTimeFormat,
		},
		Keybindings: defaultKeybindings(),
	}
}

// LoadUserConfig loads the user configuration from XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		// Config doesn't exist, create default
		return createDefaultConfig()
	}
	return LoadFile(configPath)
}

// LoadFile reads, completes and validates the config at path.
func LoadFile(configPath string) (*UserConfig, error) {
	// #nosec G304 - configPath is the user's own config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingGeneral(&cfg, defaultCfg)
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, e := range validation.Errors {
			log.Error("config error", "section", e.Field, "key", e.Key, "msg", e.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}
	if validation.HasWarnings() {
		for _, w := range validation.Warnings {
			log.Warn("config warning", "section", w.Field, "key", w.Key, "msg", w.Message)
		}
	}

	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	configPath, err := xdg.ConfigFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	if err := writeConfig(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResetConfig overwrites the config file with the defaults and returns its
// path.
func ResetConfig() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	return configPath, writeConfig(configPath, DefaultConfig())
}

func writeConfig(configPath string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# tuirc Configuration File\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("# Changes are picked up while tuirc is running.\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# GENERAL SETTINGS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# textbuffer_size_absolute: Records kept per window\n")
	sb.WriteString("#   Range: 350 to 4700\n")
	sb.WriteString("#   Default: 1000\n")
	sb.WriteString("#\n")
	sb.WriteString("# max_chat_windows: Maximum number of open windows\n")
	sb.WriteString("#   Range: 10 to 200\n")
	sb.WriteString("#   Default: 60\n")
	sb.WriteString("#\n")
	sb.WriteString("# charsets: Decoders tried, in order, for text that is not UTF-8\n")
	sb.WriteString("#   Default: [\"ISO-8859-1\", \"ISO-8859-15\"]\n")
	sb.WriteString("#\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE SETTINGS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# theme: Color theme name (e.g., dracula, nord, my-custom-theme)\n")
	sb.WriteString("#   Leave empty to use standard terminal colors.\n")
	sb.WriteString("#   CLI flag --theme overrides this. Custom themes: ~/.config/tuirc/themes/*.json\n")
	sb.WriteString("#\n")
	sb.WriteString("# time_format: Go time layout for message timestamps\n")
	sb.WriteString("#   Default: 15:04\n")
	sb.WriteString("#\n")
	sb.WriteString("# [theme] accepts the inline markers ^B ^C ^O ^V ^_ as \\u0002 \\u0003 \\u000f\n")
	sb.WriteString("# \\u0016 \\u001f, e.g. specifier1 = \"\\u000312*\\u000f\"\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fillMissingGeneral fills in and clamps general settings
func fillMissingGeneral(cfg, defaultCfg *UserConfig) {
	g := &cfg.General
	if g.TextBufferSize <= 0 {
		g.TextBufferSize = defaultCfg.General.TextBufferSize
	}
	g.TextBufferSize = scrollback.ClampSize(g.TextBufferSize)

	if g.MaxChatWindows <= 0 {
		g.MaxChatWindows = defaultCfg.General.MaxChatWindows
	}
	g.MaxChatWindows = window.ClampMaxWindows(g.MaxChatWindows)

	if g.BellOnInvalidScroll == nil {
		g.BellOnInvalidScroll = defaultCfg.General.BellOnInvalidScroll
	}
	if g.StartupGreeting == nil {
		g.StartupGreeting = defaultCfg.General.StartupGreeting
	}
	if g.Nickname == "" {
		g.Nickname = defaultCfg.General.Nickname
	}
	if len(g.Charsets) == 0 {
		g.Charsets = defaultCfg.General.Charsets
	}
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.TimeFormat == "" {
		cfg.Appearance.TimeFormat = defaultCfg.Appearance.TimeFormat
	}
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings == nil {
		cfg.Keybindings = make(map[string][]string)
	}
	fillMapDefaults(cfg.Keybindings, defaultCfg.Keybindings)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for k, v := range defaults {
		if _, exists := target[k]; !exists {
			target[k] = v
		}
	}
}

// Strings returns the themed strings with the [theme] overrides applied.
func (c *UserConfig) Strings() theme.Strings {
	s := theme.DefaultStrings()
	t := c.Theme
	for _, o := range []struct {
		dst *string
		val string
	}{
		{&s.Specifier1, t.Specifier1},
		{&s.Specifier2, t.Specifier2},
		{&s.Specifier3, t.Specifier3},
		{&s.GfxFailure, t.GfxFailure},
		{&s.GfxSuccess, t.GfxSuccess},
		{&s.GfxWarn, t.GfxWarn},
		{&s.StatusbarSpec, t.StatusbarSpec},
		{&s.LeftBracket, t.LeftBracket},
		{&s.RightBracket, t.RightBracket},
		{&s.Slogan, t.Slogan},
		{&s.NickS1, t.NickS1},
		{&s.NickS2, t.NickS2},
	} {
		if o.val != "" {
			*o.dst = o.val
		}
	}
	if t.TermUseDefaultColors != nil {
		s.TermUseDefaultColors = *t.TermUseDefaultColors
	}
	if t.TermBackground != nil {
		s.TermBackground = *t.TermBackground
	}
	if c.Appearance.TimeFormat != "" {
		s.TimeFormat = c.Appearance.TimeFormat
	}
	return s
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile(configFile)
	}
	return path, nil
}
