package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/bitflood/bitplane"
	"github.com/lixenwraith/bitflood/config"
	"github.com/lixenwraith/bitflood/flood"
	"github.com/lixenwraith/bitflood/maze"
)

const (
	cellWidth   = 2 // screen columns per cell
	statusLines = 2
	scrollStep  = 8
)

var (
	styleWall     = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleOccupied = tcell.StyleDefault.Background(tcell.ColorGray)
	styleFilled   = tcell.StyleDefault.Background(tcell.ColorDodgerBlue)
	styleTested   = tcell.StyleDefault.Background(tcell.ColorYellow)
	styleCursor   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMessage  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Viewer owns the planes and the running fill
type Viewer struct {
	screen        tcell.Screen
	width, height int

	cfg   config.Config
	store *bitplane.Store
	sound *Sound

	algo   flood.Algorithm
	occ    *bitplane.Plane
	fill   *bitplane.Plane
	tested *bitplane.Plane

	session *flood.Session

	// Playback
	stepMode   bool
	iterations int

	// Counters shown in the status line
	lastFilled int
	lastMicros int64
	totalReads int

	// Viewport origin in cells and last pointed-at cell
	originX, originY int
	cursorX, cursorY int
	prevButtons      tcell.ButtonMask

	message string
}

// NewViewer builds the initial plane from cfg and sizes the viewport to screen
func NewViewer(screen tcell.Screen, cfg config.Config, sound *Sound) (*Viewer, error) {
	occ, err := config.BuildPlane(cfg)
	if err != nil {
		return nil, err
	}
	algo, err := cfg.Algo()
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		screen:     screen,
		cfg:        cfg,
		store:      cfg.Store(),
		sound:      sound,
		algo:       algo,
		occ:        occ,
		fill:       bitplane.MustNew(cfg.Dim),
		tested:     bitplane.MustNew(cfg.Dim),
		stepMode:   cfg.StepMode,
		iterations: cfg.IterationsPerFrame,
		cursorX:    cfg.SeedX,
		cursorY:    cfg.SeedY,
		message:    "middle click fills, shift+middle steps, left paints, right clears fill, q quits",
	}
	v.width, v.height = screen.Size()
	return v, nil
}

// visible returns how many cells fit on screen in each direction
func (v *Viewer) visible() (cols, rows int) {
	cols = v.width / cellWidth
	rows = v.height - statusLines
	if rows < 0 {
		rows = 0
	}
	return min(cols, v.occ.Dim()), min(rows, v.occ.Dim())
}

// cellAt maps a screen position to a plane cell
func (v *Viewer) cellAt(sx, sy int) (int, int, bool) {
	cols, rows := v.visible()
	cx, cy := sx/cellWidth, sy
	if sx < 0 || sy < 0 || cx >= cols || cy >= rows {
		return 0, 0, false
	}
	return v.originX + cx, v.originY + cy, true
}

func (v *Viewer) scroll(dx, dy int) {
	cols, rows := v.visible()
	v.originX = clamp(v.originX+dx, 0, v.occ.Dim()-cols)
	v.originY = clamp(v.originY+dy, 0, v.occ.Dim()-rows)
}

func (v *Viewer) running() bool {
	return v.session != nil && !v.session.Done()
}

// abort drops the running fill; occupancy edits must not race a fill
func (v *Viewer) abort() {
	if v.session != nil {
		v.session.Abort()
		v.session = nil
	}
	v.tested.Reset()
}

// resetFill clears fill and test marks
func (v *Viewer) resetFill() {
	v.abort()
	v.fill.Reset()
	v.lastFilled = 0
}

// replaceOccupancy swaps in a new occupancy plane of the same size
func (v *Viewer) replaceOccupancy(p *bitplane.Plane) {
	v.resetFill()
	v.occ.CopyFrom(p)
}

// batchFill runs the current algorithm to completion from (x, y)
func (v *Viewer) batchFill(x, y int) {
	v.abort()
	start := time.Now()
	n, err := flood.Fill(v.algo, v.occ, v.fill, x, y)
	v.lastMicros = time.Since(start).Microseconds()
	if err != nil {
		v.message = err.Error()
		return
	}
	v.lastFilled = n
	v.message = fmt.Sprintf("%s filled %d cells from (%d,%d)", v.algo, n, x, y)
	v.sound.Completion(n)
}

// startIncremental seeds a new session at (x, y)
func (v *Viewer) startIncremental(x, y int) {
	v.abort()
	s, err := flood.NewSession(v.algo, v.occ, v.fill)
	if err != nil {
		v.message = err.Error()
		return
	}
	s.Tested = v.tested
	p := s.Start(x, y)
	v.session = s
	v.lastFilled = p.Filled
	v.message = fmt.Sprintf("%s stepping from (%d,%d)", v.algo, x, y)
	if s.Done() {
		v.finish()
	}
}

// advance performs up to n steps of the running session
func (v *Viewer) advance(n int) {
	if !v.running() {
		return
	}
	v.tested.Reset()
	p := v.session.StepN(n)
	v.totalReads += p.Examined
	v.lastFilled = v.session.Stats().Filled
	if v.session.Done() {
		v.finish()
	}
}

// runToEnd completes the running session in one call
func (v *Viewer) runToEnd() {
	if !v.running() {
		return
	}
	start := time.Now()
	p := v.session.Run()
	v.lastMicros = time.Since(start).Microseconds()
	v.totalReads += p.Examined
	v.lastFilled = v.session.Stats().Filled
	v.tested.Reset()
	v.finish()
}

func (v *Viewer) finish() {
	st := v.session.Stats()
	v.message = fmt.Sprintf("%s done: %d filled, %d steps, max depth %d", v.algo, st.Filled, st.Steps, st.MaxDepth)
	log.Printf("fill done: algo=%s filled=%d steps=%d examined=%d max_depth=%d",
		v.algo.Key(), st.Filled, st.Steps, st.Examined, st.MaxDepth)
	v.sound.Completion(st.Filled)
}

// cycleAlgorithm moves to the next algorithm usable at this plane size
func (v *Viewer) cycleAlgorithm(forward bool) {
	v.abort()
	a := v.algo
	for range flood.AlgorithmCount {
		if forward {
			a = a.Next()
		} else {
			a = a.Prev()
		}
		if a.Supports(v.occ.Dim()) {
			break
		}
	}
	v.algo = a
	v.message = "algorithm: " + a.String()
}

func (v *Viewer) setIterations(n int) {
	v.iterations = clamp(n, config.MinIterations, config.MaxIterations)
	v.message = fmt.Sprintf("%d iterations per frame", v.iterations)
}

func (v *Viewer) save() {
	if err := v.store.Save(v.cfg.PlaneName, v.occ); err != nil {
		v.message = "save failed: " + err.Error()
		log.Printf("save failed: %v", err)
		return
	}
	v.message = "saved " + v.store.FilePath(v.cfg.PlaneName)
}

func (v *Viewer) load() {
	p, err := v.store.Load(v.cfg.PlaneName, v.occ.Dim())
	if err != nil {
		v.message = "load failed: " + err.Error()
		log.Printf("load failed: %v", err)
		return
	}
	v.replaceOccupancy(p)
	v.message = "loaded " + v.store.FilePath(v.cfg.PlaneName)
}

func (v *Viewer) generateMaze() {
	res, err := maze.Generate(maze.Config{Dim: v.occ.Dim(), Braiding: v.cfg.Braiding, Seed: time.Now().UnixNano()})
	if err != nil {
		v.message = err.Error()
		return
	}
	v.replaceOccupancy(res.Plane)
	v.cursorX, v.cursorY = res.Start.X, res.Start.Y
	v.message = "maze generated"
}

// handleEvent applies one input event; false means quit
func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.scroll(0, 0)
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		v.runToEnd()
		return true
	case tcell.KeyUp:
		v.cycleAlgorithm(false)
		return true
	case tcell.KeyDown:
		v.cycleAlgorithm(true)
		return true
	case tcell.KeyLeft:
		v.scroll(-scrollStep, 0)
		return true
	case tcell.KeyRight:
		v.scroll(scrollStep, 0)
		return true
	case tcell.KeyPgUp:
		v.scroll(0, -scrollStep)
		return true
	case tcell.KeyPgDn:
		v.scroll(0, scrollStep)
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 's':
		v.stepMode = !v.stepMode
		if v.stepMode {
			v.message = "step mode on, space steps"
		} else {
			v.message = "step mode off"
		}
	case ' ':
		if v.running() {
			v.advance(v.iterations)
		} else {
			v.resetFill()
		}
	case '+', '=':
		v.setIterations(v.iterations * 2)
	case '-':
		v.setIterations(v.iterations / 2)
	case '`':
		full := bitplane.MustNew(v.occ.Dim())
		full.FillAll()
		v.replaceOccupancy(full)
		v.message = "all cells occupied"
	case 'c':
		v.replaceOccupancy(bitplane.MustNew(v.occ.Dim()))
		v.message = "occupancy cleared"
	case 'w':
		worst := bitplane.MustNew(v.occ.Dim())
		bitplane.WorstCase(worst)
		v.replaceOccupancy(worst)
		v.message = "worst case pattern"
	case 'm':
		v.generateMaze()
	case 'r':
		v.resetFill()
		v.message = "fill reset"
	case 'b':
		v.batchFill(v.cursorX, v.cursorY)
	case 'i':
		v.startIncremental(v.cursorX, v.cursorY)
	case 'f':
		v.save()
	case 'l':
		v.load()
	}
	return true
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons &^ v.prevButtons
	v.prevButtons = buttons

	x, y, ok := v.cellAt(ev.Position())
	if !ok {
		return
	}
	v.cursorX, v.cursorY = x, y
	shift := ev.Modifiers()&tcell.ModShift != 0

	// Painting follows drags, the rest fire once per press
	if buttons&tcell.Button1 != 0 {
		if v.running() {
			v.abort()
		}
		v.occ.Put(x, y, !shift)
		if shift {
			v.fill.Clear(x, y)
		}
		return
	}
	if pressed&tcell.Button3 != 0 {
		if shift {
			v.startIncremental(x, y)
		} else {
			v.batchFill(x, y)
		}
		return
	}
	if pressed&tcell.Button2 != 0 {
		v.resetFill()
		v.message = "fill reset"
	}
}

// tick advances a free-running session by one frame's worth of steps
func (v *Viewer) tick() {
	if !v.stepMode {
		v.advance(v.iterations)
	}
}

func (v *Viewer) draw() {
	v.screen.Clear()
	cols, rows := v.visible()

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			x, y := v.originX+cx, v.originY+cy
			style := styleWall
			switch {
			case v.tested.Get(x, y):
				style = styleTested
			case v.fill.Get(x, y):
				style = styleFilled
			case v.occ.Get(x, y):
				style = styleOccupied
			}
			r := ' '
			if x == v.cursorX && y == v.cursorY {
				r = '+'
				_, bg, _ := style.Decompose()
				style = styleCursor.Background(bg)
			}
			for i := 0; i < cellWidth; i++ {
				v.screen.SetContent(cx*cellWidth+i, cy, r, nil, style)
			}
		}
	}

	v.drawText(0, v.height-2, styleStatus, v.statusLine())
	v.drawText(0, v.height-1, styleMessage, v.message)
	v.screen.Show()
}

func (v *Viewer) statusLine() string {
	mode := "run"
	if v.stepMode {
		mode = "step"
	}
	depth, maxDepth := 0, 0
	if v.session != nil {
		depth = v.session.Depth()
		maxDepth = v.session.Stats().MaxDepth
	}
	return fmt.Sprintf(" %s | %s x%d | filled %d | stack %d max %d | reads %d | %dus | (%d,%d) ",
		v.algo, mode, v.iterations, v.lastFilled, depth, maxDepth, v.totalReads, v.lastMicros,
		v.cursorX, v.cursorY)
}

func (v *Viewer) drawText(x, y int, style tcell.Style, s string) {
	if y < 0 {
		return
	}
	for i, r := range []rune(s) {
		if x+i >= v.width {
			break
		}
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
