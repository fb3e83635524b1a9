package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"eqscout/internal/catalog"
)

func testOptions() []catalog.Option {
	return []catalog.Option{
		{Icon: "A", Label: "Near post", Value: "near post"},
		{Icon: "B", Label: "Far post", Value: "far post"},
		{Icon: "C", Label: "Edge of box", Value: "edge of box"},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestCursorNavigation(t *testing.T) {
	c := NewChoiceList(testOptions())

	if c.Highlighted().Value != "near post" {
		t.Errorf("initial highlight = %q", c.Highlighted().Value)
	}

	c, _ = c.Update(keyPress('j'))
	c, _ = c.Update(keyPress('j'))
	if c.Highlighted().Value != "edge of box" {
		t.Errorf("highlight = %q, want last option", c.Highlighted().Value)
	}

	// Cursor stops at the bottom.
	c, _ = c.Update(keyPress('j'))
	if c.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", c.Cursor)
	}

	c, _ = c.Update(keyPress('k'))
	if c.Highlighted().Value != "far post" {
		t.Errorf("highlight = %q, want middle option", c.Highlighted().Value)
	}
}

func TestSingleSelectIgnoresSpace(t *testing.T) {
	c := NewChoiceList(testOptions())
	c, _ = c.Update(keyPress(' '))
	if c.PickedCount() != 0 {
		t.Errorf("picked = %d, want 0 in single-select mode", c.PickedCount())
	}
}

func TestMultiPickToggleAndCap(t *testing.T) {
	c := NewPickList(testOptions(), 2)

	c, _ = c.Update(keyPress(' '))
	c, _ = c.Update(keyPress('j'))
	c, _ = c.Update(keyPress(' '))
	if got := c.Picked(); len(got) != 2 || got[0] != "near post" || got[1] != "far post" {
		t.Fatalf("picked = %v", got)
	}

	// Third pick is rejected by the cap.
	c, _ = c.Update(keyPress('j'))
	c, _ = c.Update(keyPress(' '))
	if c.PickedCount() != 2 {
		t.Errorf("picked = %d, want cap of 2", c.PickedCount())
	}

	// Toggling off frees a slot.
	c, _ = c.Update(keyPress('k'))
	c, _ = c.Update(keyPress(' '))
	c, _ = c.Update(keyPress('j'))
	c, _ = c.Update(keyPress(' '))
	got := c.Picked()
	if len(got) != 2 || got[0] != "near post" || got[1] != "edge of box" {
		t.Errorf("picked = %v", got)
	}
}

func TestPickedOrderFollowsListOrder(t *testing.T) {
	c := NewPickList(testOptions(), 2)

	// Pick the last option first.
	c, _ = c.Update(keyPress('j'))
	c, _ = c.Update(keyPress('j'))
	c, _ = c.Update(keyPress(' '))
	c, _ = c.Update(keyPress('k'))
	c, _ = c.Update(keyPress('k'))
	c, _ = c.Update(keyPress(' '))

	got := c.Picked()
	if len(got) != 2 || got[0] != "near post" || got[1] != "edge of box" {
		t.Errorf("picked = %v, want list order", got)
	}
}

func TestViewMarksPicks(t *testing.T) {
	c := NewPickList(testOptions(), 2)
	c, _ = c.Update(keyPress(' '))

	view := c.View()
	if !strings.Contains(view, "[x]") {
		t.Error("expected a checked marker in the view")
	}
	if !strings.Contains(view, "[ ]") {
		t.Error("expected unchecked markers in the view")
	}
}
