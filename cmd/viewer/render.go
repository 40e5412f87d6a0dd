package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/paulmach/orb"

	"github.com/HADrawer/SMART-ROAD/internal/grid"
	"github.com/HADrawer/SMART-ROAD/internal/route"
	"github.com/HADrawer/SMART-ROAD/internal/vehicle"
)

// cellWidth is the number of terminal columns per tile; terminal cells are
// roughly twice as tall as they are wide.
const cellWidth = 2

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleGrass   = styleDefault.Background(tcell.ColorDarkGreen)
	styleRoad    = styleDefault.Background(tcell.ColorDimGray)
	styleBox     = styleDefault.Background(tcell.ColorGray)
	styleStatus  = styleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleHelp    = styleDefault.Foreground(tcell.ColorSilver)

	tagStyles = map[string]tcell.Color{
		"red":    tcell.ColorRed,
		"blue":   tcell.ColorBlue,
		"green":  tcell.ColorLime,
		"yellow": tcell.ColorYellow,
		"white":  tcell.ColorWhite,
		"black":  tcell.ColorBlack,
	}
)

// cellFor maps a playfield point to its terminal cell. ok is false for
// points outside the playfield.
func cellFor(p orb.Point) (x, y int, ok bool) {
	if !grid.InPlayfield(p) {
		return 0, 0, false
	}
	t := grid.TileAt(p)
	return t.Col * cellWidth, t.Row, true
}

func glyph(f route.Direction) rune {
	switch f {
	case route.Up:
		return '▲'
	case route.Down:
		return '▼'
	case route.Left:
		return '◀'
	default:
		return '▶'
	}
}

func vehicleStyle(s vehicle.State, bg tcell.Style) tcell.Style {
	c, ok := tagStyles[s.Tag]
	if !ok {
		c = tcell.ColorWhite
	}
	return bg.Foreground(c).Bold(true)
}

func isRoad(t grid.Tile) bool {
	lo, hi := grid.IntersectionBox()
	return (t.Col >= lo && t.Col <= hi) || (t.Row >= lo && t.Row <= hi)
}

func tileStyle(t grid.Tile) tcell.Style {
	switch {
	case grid.InIntersection(t):
		return styleBox
	case isRoad(t):
		return styleRoad
	}
	return styleGrass
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func (v *viewer) render() {
	s := v.screen
	s.Clear()

	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			st := tileStyle(grid.Tile{Col: col, Row: row})
			for i := 0; i < cellWidth; i++ {
				s.SetContent(col*cellWidth+i, row, ' ', nil, st)
			}
		}
	}

	for _, st := range v.sim.Snapshot() {
		x, y, ok := cellFor(st.Position)
		if !ok {
			continue
		}
		bg := tileStyle(grid.TileAt(st.Position))
		s.SetContent(x, y, glyph(st.Facing), nil, vehicleStyle(st, bg))
	}

	v.renderStatus(grid.Rows + 1)
	s.Show()
}

func (v *viewer) renderStatus(y int) {
	rep := v.sim.Stats()
	random := "off"
	if v.random {
		random = "on"
	}
	drawText(v.screen, 0, y, fmt.Sprintf("t=%6.1fs  vehicles=%-3d  passed=%-4d  level=%-6s  random=%s",
		v.sim.Now(), v.sim.Len(), rep.Completed, v.sim.Level(), random), styleStatus)
	drawText(v.screen, 0, y+1, helpLine, styleHelp)
}

const helpLine = "arrows: spawn  r: random  1/2/3: slow/medium/fast  q/esc: quit"
