package starview

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uqm-starseed/internal/starmap"
)

const (
	screenW = 80
	screenH = 25
)

var home = starmap.Point{X: 5000, Y: 5000}

func testGalaxy() *starmap.Galaxy {
	g := &starmap.Galaxy{
		Seed: 9,
		Type: "star",
		Stars: []starmap.Star{
			{Point: home, Type: starmap.MakeStar(starmap.DwarfStar, starmap.YellowBody, 0), Index: starmap.Sol, Postfix: 89},
			{Point: starmap.Point{X: home.X + 3*defaultScale, Y: home.Y}, Type: starmap.MakeStar(starmap.GiantStar, starmap.RedBody, 0), Index: starmap.NoPlot},
			{Point: starmap.Point{X: home.X, Y: home.Y + 4*defaultScale}, Type: starmap.MakeStar(starmap.SuperGiantStar, starmap.BlueBody, 0), Index: starmap.NoPlot},
			// shares Sol's cell but loses to the plot star
			{Point: starmap.Point{X: home.X + 10, Y: home.Y + 10}, Type: starmap.MakeStar(starmap.SuperGiantStar, starmap.RedBody, 0), Index: starmap.NoPlot},
		},
	}
	g.Plots.Reset()
	g.Plots[starmap.Sol].At = starmap.Some(home)
	g.Plots[starmap.Sol].Star = 0
	g.Portals[0].Hyper = starmap.Point{X: home.X - 5*defaultScale, Y: home.Y}
	g.Portals[starmap.ArilouPortal].Hyper = starmap.Point{X: home.X - 10*defaultScale, Y: home.Y}
	return g
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(screenW, screenH)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) (rune, tcell.Style) {
	r, _, style, _ := screen.GetContent(x, y)
	return r, style
}

func row(screen tcell.Screen, y int) string {
	var b strings.Builder
	for x := 0; x < screenW; x++ {
		r, _ := runeAt(screen, x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDraw(t *testing.T) {
	screen := newScreen(t)
	g := testGalaxy()
	v := New(screen, g)
	v.Draw()

	cx, cy := screenW/2, (screenH-1)/2

	r, style := runeAt(screen, cx, cy)
	assert.Equal(t, '.', r)
	assert.Equal(t, starStyle(&g.Stars[0]), style)

	r, _ = runeAt(screen, cx+3, cy)
	assert.Equal(t, '*', r)
	r, _ = runeAt(screen, cx, cy-2)
	assert.Equal(t, '#', r)
	r, _ = runeAt(screen, cx-5, cy)
	assert.Equal(t, portalGlyph, r)
	r, _ = runeAt(screen, cx-10, cy)
	assert.Equal(t, riftGlyph, r)

	status := row(screen, screenH-1)
	assert.True(t, strings.HasPrefix(status, v.Status()), status)
	assert.Contains(t, status, "seed 9 star")
	assert.Contains(t, status, "at Sol")
}

func TestTogglePortals(t *testing.T) {
	screen := newScreen(t)
	v := New(screen, testGalaxy())

	require.True(t, v.HandleKey(tcell.KeyRune, 'p'))
	v.Draw()
	r, _ := runeAt(screen, screenW/2-5, (screenH-1)/2)
	assert.Equal(t, ' ', r)
}

func TestPanAndZoom(t *testing.T) {
	v := New(newScreen(t), testGalaxy())
	assert.Equal(t, home, v.Center())

	v.HandleKey(tcell.KeyRune, 'l')
	assert.Equal(t, home.X+panCells*defaultScale, v.Center().X)
	v.HandleKey(tcell.KeyLeft, 0)
	v.HandleKey(tcell.KeyUp, 0)
	assert.Equal(t, starmap.Point{X: home.X, Y: home.Y + 2*panCells*defaultScale}, v.Center())

	for i := 0; i < 10; i++ {
		v.HandleKey(tcell.KeyRune, '+')
	}
	assert.Equal(t, minScale, v.Scale())
	for i := 0; i < 10; i++ {
		v.HandleKey(tcell.KeyRune, '-')
	}
	assert.Equal(t, maxScale, v.Scale())

	// panning stops at the edge of the map
	for i := 0; i < 20; i++ {
		v.HandleKey(tcell.KeyRune, 'h')
	}
	assert.Zero(t, v.Center().X)
}

func TestCycleFocus(t *testing.T) {
	g := testGalaxy()
	v := New(newScreen(t), g)

	v.HandleKey(tcell.KeyRune, 'N')
	assert.Equal(t, starmap.Arilou, v.focus)
	// the rift is unplaced in this galaxy, so the view stays put
	assert.Equal(t, home, v.Center())

	v.HandleKey(tcell.KeyRune, 'n')
	assert.Equal(t, starmap.Sol, v.focus)
}

func TestQuitKeys(t *testing.T) {
	v := New(newScreen(t), testGalaxy())
	assert.False(t, v.HandleKey(tcell.KeyRune, 'q'))
	assert.False(t, v.HandleKey(tcell.KeyEscape, 0))
	assert.True(t, v.HandleKey(tcell.KeyRune, 'x'))
}

func TestRunStopsWithContext(t *testing.T) {
	v := New(newScreen(t), testGalaxy())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, v.Run(ctx), context.Canceled)
}
