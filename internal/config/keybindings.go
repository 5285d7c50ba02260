package config

import (
	"slices"
	"strings"
)

// Action is something a key press can trigger outside the input line.
type Action int

// Actions bindable under [keybindings].
const (
	ActionNone Action = iota
	ActionScrollUp
	ActionScrollDown
	ActionNextWindow
	ActionPrevWindow
	ActionQuit
	ActionRedraw
)

var actionNames = map[Action]string{
	ActionScrollUp:   "scroll_up",
	ActionScrollDown: "scroll_down",
	ActionNextWindow: "next_window",
	ActionPrevWindow: "prev_window",
	ActionQuit:       "quit",
	ActionRedraw:     "redraw",
}

var actionDescriptions = map[Action]string{
	ActionScrollUp:   "Scroll the window back",
	ActionScrollDown: "Scroll the window forward",
	ActionNextWindow: "Next window",
	ActionPrevWindow: "Previous window",
	ActionQuit:       "Quit",
	ActionRedraw:     "Redraw the screen",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// ParseAction returns the action with the given config name.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return ActionNone, false
}

func defaultKeybindings() map[string][]string {
	return map[string][]string{
		"scroll_up":   {"pgup", "shift+up"},
		"scroll_down": {"pgdown", "shift+down"},
		"next_window": {"ctrl+n", "alt+right"},
		"prev_window": {"ctrl+p", "alt+left"},
		"quit":        {"ctrl+c"},
		"redraw":      {"ctrl+l"},
	}
}

// normalizeKey lowercases named keys and modifiers. Single characters keep
// their case so "A" and "a" stay distinct.
func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if len([]rune(key)) <= 1 {
		return key
	}
	return strings.ToLower(key)
}

// Keymap resolves key presses to actions.
type Keymap struct {
	byKey    map[string]Action
	byAction map[Action][]string
}

// NewKeymap builds a keymap from [keybindings]. Unknown actions are ignored
// and the first action to claim a key keeps it.
func NewKeymap(bindings map[string][]string) *Keymap {
	km := &Keymap{
		byKey:    make(map[string]Action),
		byAction: make(map[Action][]string),
	}

	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		action, ok := ParseAction(name)
		if !ok {
			continue
		}
		for _, k := range bindings[name] {
			k = normalizeKey(k)
			if _, taken := km.byKey[k]; k == "" || taken {
				continue
			}
			km.byKey[k] = action
			km.byAction[action] = append(km.byAction[action], k)
		}
	}
	return km
}

// Lookup returns the action bound to key, as produced by a key event's
// String method.
func (km *Keymap) Lookup(key string) (Action, bool) {
	a, ok := km.byKey[normalizeKey(key)]
	return a, ok
}

// Keys returns the keys bound to action.
func (km *Keymap) Keys(action Action) []string {
	return slices.Clone(km.byAction[action])
}

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetKeybindings returns the help sections for km.
func GetKeybindings(km *Keymap) []KeybindingSection {
	keys := KeybindingSection{Title: "KEYS"}
	for _, a := range []Action{ActionScrollUp, ActionScrollDown, ActionNextWindow, ActionPrevWindow, ActionRedraw, ActionQuit} {
		bound := km.Keys(a)
		if len(bound) == 0 {
			continue
		}
		keys.Bindings = append(keys.Bindings, Keybinding{strings.Join(bound, ", "), actionDescriptions[a]})
	}

	return []KeybindingSection{
		keys,
		{
			Title: "COMMANDS",
			Bindings: []Keybinding{
				{"/join <channel>", "Open a channel window"},
				{"/query <nick>", "Open a private window"},
				{"/part, /close [label]", "Close a window"},
				{"/window <n|next|prev>", "Switch windows"},
				{"/title <text>", "Set the window title"},
				{"/nick <nick>", "Change your nick"},
				{"/names", "List the window's members"},
				{"/clear", "Clear the window"},
				{"/help", "Show this help"},
				{"/quit", "Quit"},
			},
		},
	}
}
