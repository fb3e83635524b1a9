package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"eqscout/internal/catalog"
	"eqscout/internal/ui/theme"
)

// ChoiceList renders a scenario's options and tracks the cursor. In
// multi-pick mode the player toggles up to MaxPicks options with space;
// otherwise the cursor itself is the selection.
type ChoiceList struct {
	Options   []catalog.Option
	Cursor    int
	MultiPick bool
	MaxPicks  int
	picked    map[int]bool
}

// NewChoiceList creates a single-selection list over the given options.
func NewChoiceList(options []catalog.Option) ChoiceList {
	return ChoiceList{
		Options: options,
		picked:  make(map[int]bool),
	}
}

// NewPickList creates a multi-pick list capped at maxPicks selections.
func NewPickList(options []catalog.Option, maxPicks int) ChoiceList {
	return ChoiceList{
		Options:   options,
		MultiPick: true,
		MaxPicks:  maxPicks,
		picked:    make(map[int]bool),
	}
}

// Update handles navigation and toggle keys.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case " ", "space":
		if c.MultiPick {
			c.toggle(c.Cursor)
		}
	}

	return c, nil
}

func (c *ChoiceList) toggle(i int) {
	if c.picked[i] {
		delete(c.picked, i)
		return
	}
	if c.MaxPicks > 0 && len(c.picked) >= c.MaxPicks {
		return
	}
	c.picked[i] = true
}

// Highlighted returns the option under the cursor.
func (c ChoiceList) Highlighted() catalog.Option {
	if c.Cursor < 0 || c.Cursor >= len(c.Options) {
		return catalog.Option{}
	}
	return c.Options[c.Cursor]
}

// Picked returns the toggled option values in list order.
func (c ChoiceList) Picked() []string {
	var values []string
	for i, opt := range c.Options {
		if c.picked[i] {
			values = append(values, opt.Value)
		}
	}
	return values
}

// PickedCount returns how many options are toggled.
func (c ChoiceList) PickedCount() int {
	return len(c.picked)
}

// View renders the list.
func (c ChoiceList) View() string {
	var b strings.Builder

	for i, opt := range c.Options {
		label := opt.Label
		if opt.Icon != "" {
			label = opt.Icon + " " + label
		}

		cursor := "  "
		if i == c.Cursor {
			cursor = "> "
		}

		line := cursor + label
		if c.MultiPick {
			mark := "[ ]"
			if c.picked[i] {
				mark = "[x]"
			}
			line = fmt.Sprintf("%s%s %s", cursor, mark, label)
		}

		switch {
		case c.picked[i]:
			b.WriteString(theme.Picked.Render(line))
		case i == c.Cursor:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
