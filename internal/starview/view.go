// Package starview draws a seeded galaxy on a terminal. North is up; one
// row covers twice the distance of one column so the map keeps its shape.
package starview

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"uqm-starseed/internal/starmap"
)

const (
	minScale     int32 = 10
	maxScale     int32 = 400
	panCells     int32 = 8
	defaultScale int32 = 125
)

var starColors = [...]tcell.Color{
	starmap.BlueBody:   tcell.ColorBlue,
	starmap.GreenBody:  tcell.ColorGreen,
	starmap.OrangeBody: tcell.ColorOrange,
	starmap.RedBody:    tcell.ColorRed,
	starmap.WhiteBody:  tcell.ColorWhite,
	starmap.YellowBody: tcell.ColorYellow,
}

var sizeGlyphs = [...]rune{
	starmap.DwarfStar:      '.',
	starmap.GiantStar:      '*',
	starmap.SuperGiantStar: '#',
}

const (
	portalGlyph = 'o'
	riftGlyph   = 'A'
)

type Viewer struct {
	screen tcell.Screen
	galaxy *starmap.Galaxy

	// center of the view in universe units, units per column
	cx, cy int32
	scale  int32

	focus       starmap.Plot
	showPortals bool
}

func New(screen tcell.Screen, g *starmap.Galaxy) *Viewer {
	v := &Viewer{
		screen:      screen,
		galaxy:      g,
		scale:       defaultScale,
		focus:       starmap.Sol,
		showPortals: true,
	}
	v.Focus(starmap.Sol)
	return v
}

// Focus centers the view on a plot; unplaced plots leave the view alone
func (v *Viewer) Focus(p starmap.Plot) {
	v.focus = p
	if pt, ok := v.galaxy.PlotPoint(p); ok {
		v.cx, v.cy = pt.X, pt.Y
	}
}

func (v *Viewer) Center() starmap.Point { return starmap.Point{X: v.cx, Y: v.cy} }

func (v *Viewer) Scale() int32 { return v.scale }

// cell maps a universe point to a screen cell of the map area
func (v *Viewer) cell(p starmap.Point) (int, int, bool) {
	w, h := v.screen.Size()
	h-- // status line
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	x := int((p.X-v.cx)/v.scale) + w/2
	y := int((v.cy-p.Y)/(2*v.scale)) + h/2
	if x < 0 || x >= w || y < 0 || y >= h {
		return 0, 0, false
	}
	return x, y, true
}

// rank orders stars competing for one cell
func rank(s *starmap.Star) int {
	r := int(s.Size())
	if s.HasPlot() {
		r += 10
	}
	return r
}

func (v *Viewer) Draw() {
	v.screen.Clear()

	type drawn struct {
		rank int
		set  bool
	}
	w, h := v.screen.Size()
	best := make([]drawn, w*h)

	for i := range v.galaxy.Stars {
		s := &v.galaxy.Stars[i]
		x, y, ok := v.cell(s.Point)
		if !ok {
			continue
		}
		r := rank(s)
		if d := best[y*w+x]; d.set && d.rank >= r {
			continue
		}
		best[y*w+x] = drawn{rank: r, set: true}
		v.screen.SetContent(x, y, glyph(s), nil, starStyle(s))
	}

	if v.showPortals {
		style := tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
		for i, pt := range v.galaxy.Portals {
			x, y, ok := v.cell(pt.Hyper)
			if !ok {
				continue
			}
			g := portalGlyph
			if i == starmap.ArilouPortal {
				g = riftGlyph
			}
			v.screen.SetContent(x, y, g, nil, style)
		}
	}

	v.drawStatus(w, h)
	v.screen.Show()
}

func glyph(s *starmap.Star) rune {
	if int(s.Size()) < len(sizeGlyphs) {
		return sizeGlyphs[s.Size()]
	}
	return '?'
}

func starStyle(s *starmap.Star) tcell.Style {
	style := tcell.StyleDefault
	if int(s.Color()) < len(starColors) {
		style = style.Foreground(starColors[s.Color()])
	}
	if s.HasPlot() {
		style = style.Bold(true).Underline(true)
	}
	return style
}

// Status is the text of the bottom line
func (v *Viewer) Status() string {
	focus := v.focus.String()
	if star, ok := v.galaxy.StarAt(v.focus); ok {
		focus = fmt.Sprintf("%s at %s", focus, star.Name())
	}
	return fmt.Sprintf("seed %d %s | 1:%d | (%d,%d) | %s | q quit",
		v.galaxy.Seed, v.galaxy.Type, v.scale, v.cx, v.cy, focus)
}

func (v *Viewer) drawStatus(w, h int) {
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range v.Status() {
		if x >= w {
			break
		}
		v.screen.SetContent(x, h-1, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		v.screen.SetContent(x, h-1, ' ', nil, style)
	}
}

func (v *Viewer) pan(dx, dy int32) {
	v.cx = clamp(v.cx+dx*panCells*v.scale, 0, starmap.MaxX)
	v.cy = clamp(v.cy+dy*panCells*2*v.scale, 0, starmap.MaxY)
}

func (v *Viewer) zoom(in bool) {
	if in {
		v.scale = max(v.scale/2, minScale)
	} else {
		v.scale = min(v.scale*2, maxScale)
	}
}

func (v *Viewer) cycle(step int) {
	n := int(starmap.NumPlots)
	p := (int(v.focus) + step + n) % n
	v.Focus(starmap.Plot(p))
}

// HandleEvent applies one input event and reports whether the viewer
// should keep running
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.HandleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) HandleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.pan(-1, 0)
	case tcell.KeyRight:
		v.pan(1, 0)
	case tcell.KeyUp:
		v.pan(0, 1)
	case tcell.KeyDown:
		v.pan(0, -1)
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 'h':
			v.pan(-1, 0)
		case 'l':
			v.pan(1, 0)
		case 'k':
			v.pan(0, 1)
		case 'j':
			v.pan(0, -1)
		case '+', '=':
			v.zoom(true)
		case '-':
			v.zoom(false)
		case 'n':
			v.cycle(1)
		case 'N':
			v.cycle(-1)
		case 'p':
			v.showPortals = !v.showPortals
		}
	}
	return true
}

// Run draws and handles input until the user quits or ctx ends
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !v.HandleEvent(ev) {
				return nil
			}
			v.Draw()
		}
	}
}

func clamp(v, lo, hi int32) int32 {
	return max(lo, min(v, hi))
}
