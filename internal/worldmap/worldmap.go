// Package worldmap renders the clickable region map as a grid of terminal
// cells. Each catalog country is one cell; the grid does not try to
// reproduce geography, only the click and fill behaviour of a world map.
package worldmap

import (
	"strings"

	"github.com/atomicstack/visa-lookup/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	MinZoom = 1
	MaxZoom = 4

	baseCellWidth = 5
)

// Fill is the colour role of a region.
type Fill int

const (
	FillDefault Fill = iota
	FillPassport
	FillDestination
)

// Region is one clickable map cell.
type Region struct {
	Code  string
	Label string
}

// Styler decides the fill of a region.
type Styler interface {
	Style(code string) Fill
}

// ClickHandler receives region clicks.
type ClickHandler interface {
	OnRegionClick(code string)
}

type layout struct {
	cols      int
	cellWidth int
	offset    int
	rows      int
}

// Grid lays regions out row-major. The layout of the most recent Render is
// kept so HitTest and cursor movement agree with what is on screen.
type Grid struct {
	regions []Region
	cursor  int
	last    layout
	styles  *theme.Styles
}

// NewGrid returns an empty grid drawn with styles.
func NewGrid(styles *theme.Styles) *Grid {
	if styles == nil {
		styles = theme.Default()
	}
	return &Grid{styles: styles, last: layout{cols: 1, cellWidth: baseCellWidth}}
}

// SetRegions replaces the regions, keeping the cursor on the same code when
// it is still present.
func (g *Grid) SetRegions(regions []Region) {
	current := ""
	if r, ok := g.Current(); ok {
		current = r.Code
	}
	g.regions = append([]Region(nil), regions...)
	g.cursor = 0
	for i, r := range g.regions {
		if r.Code == current {
			g.cursor = i
			break
		}
	}
}

// Cursor returns the index of the region under the keyboard cursor.
func (g *Grid) Cursor() int {
	return g.cursor
}

// Current returns the region under the keyboard cursor.
func (g *Grid) Current() (Region, bool) {
	if g.cursor < 0 || g.cursor >= len(g.regions) {
		return Region{}, false
	}
	return g.regions[g.cursor], true
}

// Move shifts the cursor by dx cells horizontally and dy rows vertically,
// clamping at the grid edges. It reports whether the cursor moved.
func (g *Grid) Move(dx, dy int) bool {
	if len(g.regions) == 0 {
		return false
	}
	cols := g.last.cols
	if cols < 1 {
		cols = 1
	}
	next := g.cursor + dx + dy*cols
	if dy != 0 && (next < 0 || next >= len(g.regions)) {
		return false
	}
	next = clamp(next, 0, len(g.regions)-1)
	if next == g.cursor {
		return false
	}
	g.cursor = next
	return true
}

// CellWidth is the number of columns one region occupies at zoom.
func CellWidth(zoom int) int {
	return baseCellWidth * clamp(zoom, MinZoom, MaxZoom)
}

// Render draws the grid into at most height rows of width columns. The
// cursor cell is highlighted when showCursor is set.
func (g *Grid) Render(width, height, zoom int, showCursor bool, styler Styler) []string {
	cellWidth := CellWidth(zoom)
	cols := 1
	if width > cellWidth {
		cols = width / cellWidth
	}
	rows := (len(g.regions) + cols - 1) / cols
	if height < 1 {
		height = 1
	}
	offset := g.last.offset
	cursorRow := g.cursor / cols
	if cursorRow < offset {
		offset = cursorRow
	}
	if cursorRow >= offset+height {
		offset = cursorRow - height + 1
	}
	if offset+height > rows {
		offset = rows - height
	}
	if offset < 0 {
		offset = 0
	}
	g.last = layout{cols: cols, cellWidth: cellWidth, offset: offset, rows: rows}

	lines := make([]string, 0, height)
	for row := offset; row < rows && row < offset+height; row++ {
		var b strings.Builder
		for col := 0; col < cols; col++ {
			idx := row*cols + col
			if idx >= len(g.regions) {
				break
			}
			region := g.regions[idx]
			style := g.fillStyle(FillDefault)
			if styler != nil {
				style = g.fillStyle(styler.Style(region.Code))
			}
			if showCursor && idx == g.cursor && g.styles.MapCursor != nil {
				style = *g.styles.MapCursor
			}
			b.WriteString(style.Render(cellText(region, cellWidth-1, zoom)))
			b.WriteByte(' ')
		}
		lines = append(lines, b.String())
	}
	return lines
}

// HitTest maps a cell relative to the grid's top-left corner, as last
// rendered, to a region code.
func (g *Grid) HitTest(x, y int) (string, bool) {
	if x < 0 || y < 0 || g.last.cellWidth <= 0 {
		return "", false
	}
	col := x / g.last.cellWidth
	if col >= g.last.cols {
		return "", false
	}
	// the separator column belongs to no region
	if x%g.last.cellWidth == g.last.cellWidth-1 {
		return "", false
	}
	idx := (g.last.offset+y)*g.last.cols + col
	if idx >= len(g.regions) {
		return "", false
	}
	return g.regions[idx].Code, true
}

// Click resolves a press at (x, y) of the last render, moves the cursor
// there and reports the region to h.
func (g *Grid) Click(x, y int, h ClickHandler) bool {
	code, ok := g.HitTest(x, y)
	if !ok {
		return false
	}
	g.FocusCode(code)
	if h != nil {
		h.OnRegionClick(code)
	}
	return true
}

// ClickCurrent reports the region under the keyboard cursor to h.
func (g *Grid) ClickCurrent(h ClickHandler) bool {
	region, ok := g.Current()
	if !ok {
		return false
	}
	if h != nil {
		h.OnRegionClick(region.Code)
	}
	return true
}

// FocusCode moves the cursor onto the region with code.
func (g *Grid) FocusCode(code string) bool {
	for i, r := range g.regions {
		if r.Code == code {
			g.cursor = i
			return true
		}
	}
	return false
}

func (g *Grid) fillStyle(fill Fill) lipgloss.Style {
	var style *lipgloss.Style
	switch fill {
	case FillPassport:
		style = g.styles.MapPassport
	case FillDestination:
		style = g.styles.MapDestination
	default:
		style = g.styles.MapDefault
	}
	if style == nil {
		return lipgloss.NewStyle()
	}
	return *style
}

func cellText(region Region, width, zoom int) string {
	text := strings.ToUpper(region.Code)
	if zoom > MinZoom && region.Label != "" {
		text += " " + region.Label
	}
	text = " " + text
	if lipgloss.Width(text) > width {
		text = truncate.StringWithTail(text, uint(width), "…")
	}
	if pad := width - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return text
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
