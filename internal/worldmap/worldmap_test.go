package worldmap

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

type fillMap map[string]Fill

func (f fillMap) Style(code string) Fill { return f[code] }

func sampleRegions(n int) []Region {
	codes := []string{"it", "fr", "de", "es", "pt", "us", "ca", "mx", "br", "ar"}
	regions := make([]Region, 0, n)
	for i := 0; i < n; i++ {
		regions = append(regions, Region{Code: codes[i%len(codes)], Label: "Region " + codes[i%len(codes)]})
	}
	return regions
}

func TestCellWidthScalesWithZoom(t *testing.T) {
	for zoom, want := range map[int]int{0: 5, 1: 5, 2: 10, 3: 15, 4: 20, 9: 20} {
		if got := CellWidth(zoom); got != want {
			t.Fatalf("CellWidth(%d) = %d, want %d", zoom, got, want)
		}
	}
}

func TestRenderLaysOutRowMajor(t *testing.T) {
	g := NewGrid(nil)
	g.SetRegions(sampleRegions(5))
	lines := g.Render(10, 10, 1, false, nil)
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d: %q", len(lines), lines)
	}
	first := ansi.Strip(lines[0])
	if !strings.Contains(first, "IT") || !strings.Contains(first, "FR") {
		t.Fatalf("unexpected first row %q", first)
	}
	if got := ansi.Strip(lines[2]); !strings.Contains(got, "PT") {
		t.Fatalf("unexpected last row %q", got)
	}
}

func TestRenderShowsLabelsWhenZoomed(t *testing.T) {
	g := NewGrid(nil)
	g.SetRegions([]Region{{Code: "it", Label: "Italy"}})
	if got := ansi.Strip(strings.Join(g.Render(40, 5, 1, false, nil), "")); strings.Contains(got, "Italy") {
		t.Fatalf("zoom 1 should show codes only, got %q", got)
	}
	if got := ansi.Strip(strings.Join(g.Render(40, 5, 3, false, nil), "")); !strings.Contains(got, "IT Italy") {
		t.Fatalf("zoom 3 should show labels, got %q", got)
	}
}

func TestRenderTruncatesLongLabels(t *testing.T) {
	g := NewGrid(nil)
	g.SetRegions([]Region{{Code: "cf", Label: "Central African Republic"}})
	line := ansi.Strip(g.Render(40, 5, 2, false, nil)[0])
	if !strings.Contains(line, "…") {
		t.Fatalf("expected truncated label, got %q", line)
	}
	if w := len([]rune(line)); w != CellWidth(2) {
		t.Fatalf("expected cell width %d, got %d (%q)", CellWidth(2), w, line)
	}
}

func TestHitTestFollowsLastRender(t *testing.T) {
	g := NewGrid(nil)
	g.SetRegions(sampleRegions(6))
	g.Render(15, 10, 1, false, nil) // 3 columns of width 5

	cases := []struct {
		x, y int
		code string
		ok   bool
	}{
		{0, 0, "it", true},
		{5, 0, "fr", true},
		{10, 1, "us", true},
		{5, 1, "pt", true},
		{4, 0, "", false},  // separator
		{15, 0, "", false}, // past the last column
		{0, 2, "", false},  // past the last row
	}
	for _, tc := range cases {
		code, ok := g.HitTest(tc.x, tc.y)
		if ok != tc.ok || code != tc.code {
			t.Fatalf("HitTest(%d,%d) = %q,%v want %q,%v", tc.x, tc.y, code, ok, tc.code, tc.ok)
		}
	}
}

func TestMoveClampsAtEdges(t *testing.T) {
	g := NewGrid(nil)
	g.SetRegions(sampleRegions(5))
	g.Render(10, 10, 1, false, nil) // 2 columns

	if g.Move(-1, 0) {
		t.Fatalf("moving left from the first cell should not move")
	}
	if !g.Move(0, 1) || g.Cursor() != 2 {
		t.Fatalf("expected cursor 2 after moving down, got %d", g.Cursor())
	}
	if !g.Move(1, 0) || g.Cursor() != 3 {
		t.Fatalf("expected cursor 3, got %d", g.Cursor())
	}
	if g.Move(0, 1) {
		t.Fatalf("moving down past the last region should not move")
	}
	if !g.Move(1, 0) || g.Cursor() != 4 {
		t.Fatalf("expected cursor 4, got %d", g.Cursor())
	}
	if g.Move(1, 0) {
		t.Fatalf("moving right from the last region should not move")
	}
}

func TestRenderScrollsToCursor(t *testing.T) {
	g := NewGrid(nil)
	g.SetRegions(sampleRegions(10))
	g.Render(5, 2, 1, true, nil) // one column, two visible rows
	for i := 0; i < 6; i++ {
		g.Move(0, 1)
	}
	lines := g.Render(5, 2, 1, true, nil)
	if len(lines) != 2 {
		t.Fatalf("expected 2 visible rows, got %d", len(lines))
	}
	if got := ansi.Strip(lines[1]); !strings.Contains(got, "CA") {
		t.Fatalf("expected cursor row to be visible, got %q", lines)
	}
	if code, ok := g.HitTest(0, 1); !ok || code != "ca" {
		t.Fatalf("HitTest should honour the scroll offset, got %q,%v", code, ok)
	}
}

func TestSetRegionsKeepsCursorOnCode(t *testing.T) {
	g := NewGrid(nil)
	g.SetRegions(sampleRegions(4))
	g.FocusCode("es")
	g.SetRegions([]Region{{Code: "es"}, {Code: "it"}})
	if r, ok := g.Current(); !ok || r.Code != "es" {
		t.Fatalf("expected cursor to stay on es, got %+v", r)
	}
	g.SetRegions(nil)
	if _, ok := g.Current(); ok {
		t.Fatalf("empty grid should have no current region")
	}
}

func TestRenderAppliesFills(t *testing.T) {
	g := NewGrid(nil)
	g.SetRegions([]Region{{Code: "it"}, {Code: "fr"}, {Code: "de"}})
	styler := fillMap{"it": FillPassport, "fr": FillDestination}
	lines := g.Render(40, 5, 1, false, styler)
	if len(lines) != 1 {
		t.Fatalf("expected a single row, got %d", len(lines))
	}
	if got := ansi.Strip(lines[0]); !strings.Contains(got, "IT") || !strings.Contains(got, "DE") {
		t.Fatalf("unexpected row %q", got)
	}
}

type clickRecorder []string

func (c *clickRecorder) OnRegionClick(code string) { *c = append(*c, code) }

func TestClickReportsRegionAndMovesCursor(t *testing.T) {
	g := NewGrid(nil)
	g.SetRegions(sampleRegions(6))
	g.Render(15, 10, 1, false, nil) // 3 columns of width 5

	var clicks clickRecorder
	if !g.Click(1, 1, &clicks) {
		t.Fatalf("expected a region at (1,1)")
	}
	if g.Click(4, 0, &clicks) {
		t.Fatalf("separator column must not click")
	}
	if len(clicks) != 1 || clicks[0] != "es" {
		t.Fatalf("unexpected clicks %v", clicks)
	}
	if r, _ := g.Current(); r.Code != "es" {
		t.Fatalf("expected cursor on es, got %q", r.Code)
	}

	g.Move(1, 0)
	if !g.ClickCurrent(&clicks) || clicks[1] != "pt" {
		t.Fatalf("expected keyboard click on pt, got %v", clicks)
	}
	if NewGrid(nil).ClickCurrent(&clicks) {
		t.Fatalf("empty grid has nothing to click")
	}
}
