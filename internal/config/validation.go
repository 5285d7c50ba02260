package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/tuirc/internal/markup"
)

// ValidationError describes one problem found in the user config.
type ValidationError struct {
	Field   string // config section
	Key     string
	Message string
}

// ValidationResult collects the problems found by ValidateConfig. Errors
// prevent the config from loading; warnings do not.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors reports whether any fatal problems were found.
func (v *ValidationResult) HasErrors() bool { return len(v.Errors) > 0 }

// HasWarnings reports whether any non-fatal problems were found.
func (v *ValidationResult) HasWarnings() bool { return len(v.Warnings) > 0 }

func (v *ValidationResult) errorf(field, key, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationError{field, key, fmt.Sprintf(format, args...)})
}

func (v *ValidationResult) warnf(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationError{field, key, fmt.Sprintf(format, args...)})
}

// ValidateConfig checks a filled config. Out of range numbers have already
// been clamped by the fillMissing helpers.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	g := cfg.General
	if strings.ContainsAny(g.Nickname, " ,*?!@") {
		v.errorf("general", "nickname", "%q contains characters not allowed in a nick", g.Nickname)
	}
	if _, err := markup.LookupCharsets(g.Charsets); err != nil {
		v.errorf("general", "charsets", "%v", err)
	}

	// A layout without any reference field formats every time identically.
	ref := time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)
	if tf := cfg.Appearance.TimeFormat; tf != "" && ref.Format(tf) == tf {
		v.warnf("appearance", "time_format", "%q contains no time fields", tf)
	}

	if bg := cfg.Theme.TermBackground; bg != nil && (*bg < 0 || *bg > 15) {
		v.warnf("theme", "term_background", "%d is outside 0..15 and will be clamped", *bg)
	}

	validateKeybindings(v, cfg.Keybindings)
	return v
}

func validateKeybindings(v *ValidationResult, bindings map[string][]string) {
	owner := make(map[string]string)

	actions := make([]string, 0, len(bindings))
	for action := range bindings {
		actions = append(actions, action)
	}
	slices.Sort(actions)

	for _, action := range actions {
		if _, ok := ParseAction(action); !ok {
			v.warnf("keybindings", action, "unknown action")
			continue
		}
		keys := bindings[action]
		if len(keys) == 0 {
			v.warnf("keybindings", action, "no keys bound")
		}
		for _, k := range keys {
			k = normalizeKey(k)
			if k == "" {
				v.errorf("keybindings", action, "empty key")
				continue
			}
			if prev, dup := owner[k]; dup {
				v.errorf("keybindings", action, "key %q is already bound to %s", k, prev)
				continue
			}
			owner[k] = action
		}
	}
}
