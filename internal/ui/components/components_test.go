package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type pickedMsg string

func pick(label string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return pickedMsg(label) }
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b", Action: pick("b")},
		{Label: "c", Disabled: true},
		{Label: "d", Action: pick("d")},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(special(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("after down Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(special(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("down at end Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(press('k'))
	if m.Selected != 1 {
		t.Errorf("after k Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(special(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("up past disabled Selected = %d, want 1", m.Selected)
	}
}

func TestMenu_SelectRunsAction(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "go", Action: pick("go")}})
	_, cmd := m.Update(special(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if got := cmd(); got != pickedMsg("go") {
		t.Errorf("cmd() = %v, want %v", got, pickedMsg("go"))
	}
}

func TestMenu_View(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Hiragana", Detail: "48"},
		{Label: "Food", Disabled: true},
	})
	out := m.View(30)
	for _, want := range []string{"▸ Hiragana", "48", "Food"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestMultiChoice_Navigate(t *testing.T) {
	m := NewMultiChoice([]string{"あ", "い", "う", "え"})
	m, _ = m.Update(special(tea.KeyDown))
	m, _ = m.Update(press('j'))
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(special(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(special(tea.KeyEnter))
	got, ok := m.Chosen()
	if !ok || got != "い" {
		t.Errorf("Chosen() = %q, %v, want い, true", got, ok)
	}

	// Further input is ignored once submitted.
	m, _ = m.Update(special(tea.KeyDown))
	if m.Selected != 1 {
		t.Errorf("Selected after submit = %d, want 1", m.Selected)
	}
}

func TestMultiChoice_NumberKeys(t *testing.T) {
	m := NewMultiChoice([]string{"あ", "い", "う", "え"})
	m, _ = m.Update(press('4'))
	got, ok := m.Chosen()
	if !ok || got != "え" {
		t.Errorf("Chosen() = %q, %v, want え, true", got, ok)
	}

	m = NewMultiChoice([]string{"あ", "い"})
	m, _ = m.Update(press('3'))
	if m.Submitted {
		t.Error("out-of-range number should not submit")
	}
}

func TestMultiChoice_NotSubmitted(t *testing.T) {
	m := NewMultiChoice([]string{"あ"})
	if _, ok := m.Chosen(); ok {
		t.Error("Chosen() ok before submit")
	}
	if !strings.Contains(m.View(), "1)  あ") {
		t.Errorf("View() = %q", m.View())
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{1, 4, 0.25},
		{5, 4, 1},
		{-1, 4, 0},
	}
	for _, tt := range tests {
		if got := Fraction(tt.done, tt.total); got != tt.want {
			t.Errorf("Fraction(%d, %d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestProgressBar_View(t *testing.T) {
	out := NewProgressBar("Q", 0.5, true, 30).View()
	if !strings.Contains(out, "50%") {
		t.Errorf("view missing percent: %q", out)
	}
	if !strings.Contains(out, "█") || !strings.Contains(out, "░") {
		t.Errorf("view missing bar glyphs: %q", out)
	}
}
