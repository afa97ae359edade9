package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/bitflood/bitplane"
	"github.com/lixenwraith/bitflood/config"
	"github.com/lixenwraith/bitflood/flood"
)

func newTestViewer(t *testing.T, dim int, pattern string) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 20)

	cfg := config.Default()
	cfg.Dim = dim
	cfg.Pattern = pattern
	cfg.Sound = false
	cfg.PlaneDir = t.TempDir()

	v, err := NewViewer(screen, cfg, NewSound(false))
	if err != nil {
		t.Fatalf("NewViewer failed: %v", err)
	}
	return v, screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// click presses and releases a button over plane cell (x, y)
func click(v *Viewer, x, y int, btn tcell.ButtonMask, mod tcell.ModMask) {
	sx, sy := (x-v.originX)*cellWidth, y-v.originY
	v.handleEvent(tcell.NewEventMouse(sx, sy, btn, mod))
	v.handleEvent(tcell.NewEventMouse(sx, sy, tcell.ButtonNone, tcell.ModNone))
}

func TestMiddleClickBatchFill(t *testing.T) {
	v, _ := newTestViewer(t, 16, config.PatternFull)

	click(v, 2, 3, tcell.Button3, tcell.ModNone)
	if v.fill.Count() != 256 || v.lastFilled != 256 {
		t.Errorf("Expected full batch fill, got %d (last %d)", v.fill.Count(), v.lastFilled)
	}
	if v.cursorX != 2 || v.cursorY != 3 {
		t.Errorf("Expected cursor at (2,3), got (%d,%d)", v.cursorX, v.cursorY)
	}
	if v.running() {
		t.Error("Expected no session after batch fill")
	}

	// Right click clears the fill
	click(v, 0, 0, tcell.Button2, tcell.ModNone)
	if v.fill.Count() != 0 {
		t.Errorf("Expected fill reset, got %d", v.fill.Count())
	}
}

func TestStepModeIncremental(t *testing.T) {
	v, _ := newTestViewer(t, 16, config.PatternFrame)
	v.handleEvent(key('s'))
	if !v.stepMode {
		t.Fatal("Expected step mode on")
	}

	click(v, 5, 5, tcell.Button3, tcell.ModShift)
	if !v.running() {
		t.Fatal("Expected shift+middle to start an incremental fill")
	}
	if v.fill.Count() != 1 {
		t.Errorf("Expected only the seed filled, got %d", v.fill.Count())
	}

	// Frames do nothing in step mode
	v.tick()
	v.tick()
	if v.fill.Count() != 1 {
		t.Errorf("Expected ticks to wait in step mode, got %d filled", v.fill.Count())
	}

	v.handleEvent(key(' '))
	if v.session.Stats().Steps != 1 {
		t.Errorf("Expected one step, got %d", v.session.Stats().Steps)
	}
	if v.tested.Count() != 1 {
		t.Errorf("Expected one tested cell after a DFS step, got %d", v.tested.Count())
	}

	v.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if v.running() {
		t.Error("Expected enter to finish the fill")
	}
	if v.fill.Count() != 196 || v.lastFilled != 196 {
		t.Errorf("Expected 196 filled, got %d (last %d)", v.fill.Count(), v.lastFilled)
	}
	if !strings.Contains(v.message, "done") {
		t.Errorf("Expected completion message, got %q", v.message)
	}

	// Space with nothing running resets the fill
	v.handleEvent(key(' '))
	if v.fill.Count() != 0 {
		t.Error("Expected space to reset a finished fill")
	}
}

func TestFreeRunningTicks(t *testing.T) {
	v, _ := newTestViewer(t, 32, config.PatternNoise)
	v.handleEvent(key('+'))
	v.handleEvent(key('+'))
	if v.iterations != 4 {
		t.Fatalf("Expected 4 iterations per frame, got %d", v.iterations)
	}
	v.handleEvent(key('-'))
	if v.iterations != 2 {
		t.Fatalf("Expected 2 iterations per frame, got %d", v.iterations)
	}
	for i := 0; i < 5; i++ {
		v.handleEvent(key('-'))
	}
	if v.iterations != config.MinIterations {
		t.Errorf("Expected iterations clamped at %d, got %d", config.MinIterations, v.iterations)
	}

	// Seed on the first occupied cell inside the viewport
	cols, rows := v.visible()
	x, y := -1, -1
	for c := range v.occ.Cells() {
		if cx, cy := v.occ.Coords(c); cx < cols && cy < rows {
			x, y = cx, cy
			break
		}
	}
	if x < 0 {
		t.Fatal("Expected an occupied cell on screen")
	}
	v.handleEvent(tcell.NewEventMouse(x*cellWidth, y, tcell.ButtonNone, tcell.ModNone))
	v.handleEvent(key('i'))

	for guard := 0; v.running(); guard++ {
		if guard > 16*v.occ.Len() {
			t.Fatal("Fill did not finish")
		}
		v.tick()
	}
	if !v.fill.Equal(flood.Reachable(v.occ, x, y)) {
		t.Error("Expected ticks to complete the reachable region")
	}
	if v.totalReads == 0 {
		t.Error("Expected reads to be counted")
	}
}

func TestPainting(t *testing.T) {
	v, _ := newTestViewer(t, 16, config.PatternEmpty)

	// Dragging with the left button paints every cell passed
	for x := 0; x < 4; x++ {
		v.handleEvent(tcell.NewEventMouse(x*cellWidth, 2, tcell.Button1, tcell.ModNone))
	}
	v.handleEvent(tcell.NewEventMouse(6, 2, tcell.ButtonNone, tcell.ModNone))
	if v.occ.Count() != 4 || !v.occ.Get(3, 2) {
		t.Errorf("Expected 4 painted cells, got %d", v.occ.Count())
	}

	click(v, 1, 2, tcell.Button3, tcell.ModNone)
	if v.fill.Count() != 4 {
		t.Fatalf("Expected painted run filled, got %d", v.fill.Count())
	}

	// Shift erases occupancy and fill together
	click(v, 1, 2, tcell.Button1, tcell.ModShift)
	if v.occ.Get(1, 2) || v.fill.Get(1, 2) {
		t.Error("Expected shift+left to erase the cell")
	}
	if !v.fill.SubsetOf(v.occ) {
		t.Error("Expected fill to stay within occupancy")
	}

	// Clicks on the status lines are ignored
	v.handleEvent(tcell.NewEventMouse(0, 19, tcell.Button1, tcell.ModNone))
	if v.occ.Count() != 3 {
		t.Errorf("Expected status line click to be ignored, got %d cells", v.occ.Count())
	}
}

func TestPaintingAbortsSession(t *testing.T) {
	v, _ := newTestViewer(t, 16, config.PatternFull)
	v.handleEvent(key('s'))
	click(v, 0, 0, tcell.Button3, tcell.ModShift)
	if !v.running() {
		t.Fatal("Expected running session")
	}
	click(v, 8, 8, tcell.Button1, tcell.ModNone)
	if v.running() {
		t.Error("Expected painting to abort the fill")
	}
}

func TestAlgorithmKeys(t *testing.T) {
	v, _ := newTestViewer(t, 16, config.PatternFull)
	down := tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
	up := tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)

	want := []flood.Algorithm{flood.Span, flood.SimulSpan, flood.DFS}
	for _, a := range want {
		v.handleEvent(down)
		if v.algo != a {
			t.Errorf("Expected %s, got %s", a, v.algo)
		}
	}
	v.handleEvent(up)
	if v.algo != flood.SimulSpan {
		t.Errorf("Expected up to go back to %s, got %s", flood.SimulSpan, v.algo)
	}

	// Wide planes skip the bit-parallel fill
	wide, _ := newTestViewer(t, 128, config.PatternFull)
	wide.handleEvent(down)
	wide.handleEvent(down)
	if wide.algo != flood.DFS {
		t.Errorf("Expected DFS after skipping simul, got %s", wide.algo)
	}
}

func TestPatternKeysAndStore(t *testing.T) {
	v, _ := newTestViewer(t, 16, config.PatternEmpty)

	v.handleEvent(key('w'))
	worst := bitplane.MustNew(16)
	bitplane.WorstCase(worst)
	if !v.occ.Equal(worst) {
		t.Fatal("Expected worst case pattern")
	}

	v.handleEvent(key('f'))
	if !v.store.Exists(v.cfg.PlaneName) {
		t.Fatalf("Expected plane saved, message %q", v.message)
	}

	v.handleEvent(key('`'))
	if v.occ.Count() != 256 {
		t.Errorf("Expected all cells occupied, got %d", v.occ.Count())
	}
	v.handleEvent(key('c'))
	if v.occ.Count() != 0 {
		t.Errorf("Expected cleared plane, got %d", v.occ.Count())
	}

	v.handleEvent(key('l'))
	if !v.occ.Equal(worst) {
		t.Errorf("Expected saved plane restored, message %q", v.message)
	}

	v.handleEvent(key('m'))
	if flood.Regions(v.occ) != 1 || !v.occ.Get(v.cursorX, v.cursorY) {
		t.Error("Expected a connected maze with the cursor on its start")
	}
}

func TestLoadMissing(t *testing.T) {
	v, _ := newTestViewer(t, 16, config.PatternFull)
	v.handleEvent(key('l'))
	if !strings.HasPrefix(v.message, "load failed") {
		t.Errorf("Expected load failure message, got %q", v.message)
	}
	if v.occ.Count() != 256 {
		t.Error("Expected occupancy untouched after failed load")
	}
}

func TestDraw(t *testing.T) {
	v, screen := newTestViewer(t, 16, config.PatternFrame)
	click(v, 4, 4, tcell.Button3, tcell.ModNone)
	v.draw()

	bgAt := func(x, y int) tcell.Color {
		_, _, style, _ := screen.GetContent(x, y)
		_, bg, _ := style.Decompose()
		return bg
	}
	if bgAt(0, 0) != tcell.ColorBlack {
		t.Errorf("Expected wall at the frame corner, got %v", bgAt(0, 0))
	}
	if bgAt(2*cellWidth, 2) != tcell.ColorDodgerBlue {
		t.Errorf("Expected filled cell, got %v", bgAt(2*cellWidth, 2))
	}
	if r, _, _, _ := screen.GetContent(4*cellWidth, 4); r != '+' {
		t.Errorf("Expected cursor marker, got %q", r)
	}

	var status strings.Builder
	for x := 0; x < 40; x++ {
		r, _, _, _ := screen.GetContent(x, 18)
		status.WriteRune(r)
	}
	if !strings.Contains(status.String(), "Four-Way DFS") {
		t.Errorf("Expected algorithm in status line, got %q", status.String())
	}
}

func TestQuitKeys(t *testing.T) {
	v, _ := newTestViewer(t, 8, config.PatternFull)
	if v.handleEvent(key('x')) != true {
		t.Error("Expected unbound key to keep running")
	}
	if v.handleEvent(key('q')) {
		t.Error("Expected q to quit")
	}
	if v.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Expected escape to quit")
	}
}

func TestToneFor(t *testing.T) {
	if toneFor(0) != baseTone {
		t.Errorf("Expected base tone for empty fill, got %v", toneFor(0))
	}
	if toneFor(1<<20) != 3*baseTone {
		t.Errorf("Expected capped tone, got %v", toneFor(1<<20))
	}
	if toneFor(100) <= toneFor(10) {
		t.Error("Expected tone to rise with fill size")
	}
}
