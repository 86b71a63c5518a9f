package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/threebody/internal/engine"
	"github.com/san-kum/threebody/internal/scenario"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	sc, err := scenario.Get(scenario.Default)
	if err != nil {
		t.Fatal(err)
	}
	e := engine.New()
	if err := e.Init(sc); err != nil {
		t.Fatal(err)
	}
	return NewModel(e, WithFPS(30))
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestTickAdvancesEngine(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick did not schedule the next frame")
	}
	if m.eng.Ticks() != 1 {
		t.Errorf("ticks = %d", m.eng.Ticks())
	}
	if len(m.energy.Samples()) != 1 {
		t.Errorf("energy samples = %d", len(m.energy.Samples()))
	}
}

func TestPauseStopsTicks(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, key(" "))
	if m.running {
		t.Fatal("space did not pause")
	}
	m, cmd := update(t, m, TickMsg(time.Now()))
	if m.eng.Ticks() != 0 {
		t.Errorf("paused viewer ticked the engine %d times", m.eng.Ticks())
	}
	if cmd == nil {
		t.Error("clock stopped while paused")
	}
	m, _ = update(t, m, key(" "))
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.eng.Ticks() != 1 {
		t.Errorf("ticks after resume = %d", m.eng.Ticks())
	}
}

func TestSpeed(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, key("+"))
	m, _ = update(t, m, key("+"))
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.eng.Ticks() != 4 {
		t.Errorf("ticks = %d, want 4", m.eng.Ticks())
	}
	for i := 0; i < 10; i++ {
		m, _ = update(t, m, key("-"))
	}
	if m.speed != 1 {
		t.Errorf("speed = %d", m.speed)
	}
}

func TestRestartResetsEngineAndMetrics(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	m, _ = update(t, m, key("r"))
	if m.eng.Ticks() != 0 || m.eng.Time() != 0 {
		t.Errorf("restart left ticks=%d time=%v", m.eng.Ticks(), m.eng.Time())
	}
	if len(m.energy.Samples()) != 0 {
		t.Error("energy history not reset")
	}
	if len(m.eng.Trail(0)) != 0 {
		t.Error("trail not reset")
	}
}

func TestThemeAndQuitKeys(t *testing.T) {
	m := newTestModel(t)
	before := m.theme.Name
	m, _ = update(t, m, key("t"))
	if m.theme.Name == before {
		t.Error("t did not change theme")
	}

	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestViewShowsScenario(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	out := m.View()
	if !strings.Contains(out, strings.ToUpper(scenario.Default)) {
		t.Error("view missing scenario name")
	}
	if !strings.Contains(out, "Ticks") {
		t.Error("view missing stats")
	}
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	if m.canvas.Width != 160-statsWidth-6 || m.canvas.Height != 47 {
		t.Errorf("canvas = %dx%d", m.canvas.Width, m.canvas.Height)
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 4})
	if m.canvas.Width != 160-statsWidth-6 {
		t.Error("tiny window should keep the previous size")
	}
}
