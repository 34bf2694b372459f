package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/gridsep/pkg/io"
	"github.com/matzehuels/gridsep/pkg/tiling"
)

func conflictTiling(t *testing.T) *tiling.Tiling {
	t.Helper()
	tl, err := io.UnmarshalTiling([]byte(conflictJSON))
	if err != nil {
		t.Fatal(err)
	}
	return tl
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m ExploreModel, msg tea.Msg) (ExploreModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	em, ok := next.(ExploreModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return em, cmd
}

func TestCollectSeparations(t *testing.T) {
	tl := conflictTiling(t)

	best := collectSeparations(tl, exploreOpts{limit: 10})
	if len(best) != 2 {
		t.Fatalf("best candidates = %d, want 2", len(best))
	}
	for i, s := range best {
		if cols, rows := s.Tiling.Dimensions(); cols != 2 || rows != 2 {
			t.Errorf("candidate %d is %dx%d, want 2x2", i, cols, rows)
		}
	}

	if got := collectSeparations(tl, exploreOpts{limit: 1}); len(got) != 1 {
		t.Errorf("limit 1 gave %d candidates", len(got))
	}
	if all := collectSeparations(tl, exploreOpts{all: true}); len(all) < len(best) {
		t.Errorf("all = %d candidates, fewer than best = %d", len(all), len(best))
	}
	if got := collectSeparations(tiling.Build([]tiling.GriddedPerm{tiling.Point(tiling.Cell{})}, nil, nil), exploreOpts{limit: 10}); got != nil {
		t.Errorf("epsilon tiling gave %d candidates", len(got))
	}
}

func TestExploreModelNavigate(t *testing.T) {
	tl := conflictTiling(t)
	m := NewExploreModel(tl, collectSeparations(tl, exploreOpts{limit: 10}))

	m, _ = update(t, m, key("up"))
	if m.Cursor != 0 {
		t.Errorf("up at top: Cursor = %d", m.Cursor)
	}
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("j"))
	if m.Cursor != 1 {
		t.Errorf("down past end: Cursor = %d, want 1", m.Cursor)
	}
	m, _ = update(t, m, key("g"))
	if m.Cursor != 0 {
		t.Errorf("g: Cursor = %d, want 0", m.Cursor)
	}
	m, _ = update(t, m, key("G"))
	if m.Cursor != 1 {
		t.Errorf("G: Cursor = %d, want 1", m.Cursor)
	}
}

func TestExploreModelSelect(t *testing.T) {
	tl := conflictTiling(t)
	candidates := collectSeparations(tl, exploreOpts{limit: 10})
	m := NewExploreModel(tl, candidates)

	m, _ = update(t, m, key("down"))
	m, cmd := update(t, m, key("enter"))
	if cmd == nil {
		t.Fatal("enter did not quit")
	}
	if m.Selected == nil || !m.Selected.Tiling.Equal(candidates[1].Tiling) {
		t.Errorf("Selected = %+v, want candidate 2", m.Selected)
	}
}

func TestExploreModelQuit(t *testing.T) {
	tl := conflictTiling(t)
	for _, k := range []string{"q", "esc"} {
		m := NewExploreModel(tl, collectSeparations(tl, exploreOpts{limit: 10}))
		m, cmd := update(t, m, key(k))
		if cmd == nil {
			t.Errorf("%s did not quit", k)
		}
		if m.Selected != nil {
			t.Errorf("%s selected a candidate", k)
		}
	}
}

func TestExploreModelScroll(t *testing.T) {
	tl := conflictTiling(t)
	m := NewExploreModel(tl, collectSeparations(tl, exploreOpts{limit: 10}))
	m.Height = 1

	m, _ = update(t, m, key("down"))
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
	m, _ = update(t, m, key("up"))
	if m.Offset != 0 {
		t.Errorf("Offset = %d, want 0", m.Offset)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 60})
	if m.Height != 20 {
		t.Errorf("Height = %d, want 20", m.Height)
	}
}

func TestExploreModelView(t *testing.T) {
	tl := conflictTiling(t)
	m := NewExploreModel(tl, collectSeparations(tl, exploreOpts{limit: 10}))

	view := m.View()
	for _, want := range []string{"Select Separation", "Grid", "2×2", "[1/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q:\n%s", want, view)
		}
	}

	empty := NewExploreModel(tl, nil)
	if !strings.Contains(empty.View(), "no separations") {
		t.Errorf("empty View:\n%s", empty.View())
	}
	if _, cmd := update(t, empty, key("enter")); cmd != nil {
		t.Error("enter on an empty list should do nothing")
	}
}
