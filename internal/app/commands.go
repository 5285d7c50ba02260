package app

import (
	"errors"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuirc/internal/config"
	"github.com/Gaurav-Gosain/tuirc/internal/printtext"
	"github.com/Gaurav-Gosain/tuirc/internal/theme"
	"github.com/Gaurav-Gosain/tuirc/internal/window"
	"github.com/charmbracelet/log"
)

type command struct {
	name  string
	usage string
	run   func(c *Client, args string) tea.Cmd
}

var commands []command

func init() {
	commands = []command{
		{"/clear", "/clear", cmdClear},
		{"/close", "/close [label]", cmdPart},
		{"/help", "/help", cmdHelp},
		{"/join", "/join <channel>", cmdJoin},
		{"/names", "/names", cmdNames},
		{"/nick", "/nick <nick>", cmdNick},
		{"/part", "/part [label]", cmdPart},
		{"/query", "/query <nick>", cmdQuery},
		{"/quit", "/quit", cmdQuit},
		{"/title", "/title <text>", cmdTitle},
		{"/window", "/window <n|next|prev>", cmdWindow},
	}
}

// Execute runs a slash command line. Unknown commands are reported in the
// active window.
func (c *Client) Execute(line string) tea.Cmd {
	name, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	args = strings.TrimSpace(args)

	for _, cmd := range commands {
		if strings.EqualFold(cmd.name, name) {
			return cmd.run(c, args)
		}
	}
	c.active(printtext.Spec1Failure, "Unknown command: %s", name)
	return nil
}

func (c *Client) usage(name string) {
	for _, cmd := range commands {
		if cmd.name == name {
			c.active(printtext.Spec1Failure, "Usage: %s", cmd.usage)
			return
		}
	}
}

// fail reports a registry error in the active window.
func (c *Client) fail(err error) {
	switch {
	case errors.Is(err, window.ErrCapacityExceeded):
		c.active(printtext.Spec1Failure, "Too many windows open (%d)", config.MaxChatWindows)
	case errors.Is(err, window.ErrProtected):
		c.active(printtext.Spec1Failure, "The status window cannot be closed")
	default:
		c.active(printtext.Spec1Failure, "%v", err)
	}
}

func isValidNick(nick string) bool {
	return nick != "" && !strings.ContainsAny(nick, " ,*?!@#&+:")
}

func cmdJoin(c *Client, args string) tea.Cmd {
	label, _, _ := strings.Cut(args, " ")
	if label == "" {
		c.usage("/join")
		return nil
	}
	if !window.IsChannel(label) {
		label = "#" + label
	}

	existed := true
	if _, err := c.Registry.ByLabel(label); err != nil {
		existed = false
	}
	id, err := c.Registry.Spawn(label, label)
	if err != nil {
		c.fail(err)
		return nil
	}
	if existed {
		return nil
	}

	// The first to join a channel is its operator.
	if err := c.Registry.Members().Add(id, c.Nick, window.ModeOp); err != nil {
		log.Warn("join: failed to add operator", "channel", label, "err", err)
	}
	if err := c.Registry.SetChanModes(label, "+nt"); err != nil {
		log.Warn("join: failed to set modes", "channel", label, "err", err)
	}
	c.active(printtext.Spec1Success, "You have joined %s", label)
	return nil
}

func cmdQuery(c *Client, args string) tea.Cmd {
	nick, _, _ := strings.Cut(args, " ")
	if !isValidNick(nick) {
		c.usage("/query")
		return nil
	}
	if _, err := c.Registry.Spawn(nick, "Conversation with "+nick); err != nil {
		c.fail(err)
	}
	return nil
}

func cmdPart(c *Client, args string) tea.Cmd {
	label := args
	if label == "" {
		info, err := c.Registry.Window(c.Registry.Active())
		if err != nil {
			c.fail(err)
			return nil
		}
		label = info.Label
	}
	if err := c.Registry.Destroy(label); err != nil {
		c.fail(err)
	}
	return nil
}

func cmdWindow(c *Client, args string) tea.Cmd {
	switch args {
	case "next":
		c.Registry.SelectNext()
	case "prev":
		c.Registry.SelectPrev()
	case "":
		c.usage("/window")
	default:
		n, err := strconv.Atoi(args)
		if err != nil {
			c.usage("/window")
			return nil
		}
		if err := c.Registry.Select(n); err != nil {
			c.active(printtext.Spec1Failure, "No window with refnum %d", n)
		}
	}
	return nil
}

func cmdTitle(c *Client, args string) tea.Cmd {
	if args == "" {
		c.usage("/title")
		return nil
	}
	info, err := c.Registry.Window(c.Registry.Active())
	if err == nil {
		err = c.Registry.SetTitle(info.Label, args)
	}
	if err != nil {
		c.fail(err)
	}
	return nil
}

func cmdNick(c *Client, args string) tea.Cmd {
	if !isValidNick(args) {
		c.usage("/nick")
		return nil
	}
	old := c.Nick
	c.Nick = args
	c.Registry.Members().Rename(old, args)
	c.Registry.SetIdentity(args, "", "")
	c.status(printtext.Spec2, "You're now known as %s", args)
	return nil
}

func cmdNames(c *Client, args string) tea.Cmd {
	id := c.Registry.Active()
	info, err := c.Registry.Window(id)
	if err != nil || !window.IsChannel(info.Label) {
		c.active(printtext.Spec1Failure, "Not in a channel window")
		return nil
	}

	strs := theme.CurrentStrings()
	c.active(printtext.Spec1, "%s%s%s %s", strs.LeftBracket, info.Label, strs.RightBracket, strings.Join(c.Registry.Members().Nicks(id), " "))

	n := info.Members
	c.active(printtext.Spec1, "%s: Total of %d nicks %s%d ops, %d halfops, %d voices, %d normal%s",
		info.Label, n.Total, strs.LeftBracket, n.Owners+n.Superops+n.Ops, n.Halfops, n.Voices, n.Normal, strs.RightBracket)
	return nil
}

func cmdClear(c *Client, args string) tea.Cmd {
	if err := c.Registry.Clear(c.Registry.Active()); err != nil {
		c.fail(err)
	}
	return nil
}

func cmdHelp(c *Client, args string) tea.Cmd {
	for _, section := range config.GetKeybindings(config.Keys) {
		c.active(printtext.Spec1, "\x02%s\x02", section.Title)
		for _, b := range section.Bindings {
			c.active(printtext.Spec1, "  %-24s %s", b.Key, b.Description)
		}
	}
	c.active(printtext.Spec1, "\x02Commands\x02")
	for _, cmd := range commands {
		c.active(printtext.Spec1, "  %s", cmd.usage)
	}
	return nil
}

func cmdQuit(c *Client, args string) tea.Cmd {
	c.status(printtext.Spec1, "Bye")
	return tea.Quit
}
