package view

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qguide/internal/config"
	"github.com/kobzarvs/qguide/internal/guide"
)

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func testController(v *View) *guide.Controller {
	return guide.NewController(v, guide.Options{
		TabWidth: v.tabWidth,
		LineChar: '|',
	}, nil)
}

func cellRune(cells []tcell.SimCell, w, x, y int) rune {
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return 0
	}
	return c.Runes[0]
}

func TestRenderGuideBars(t *testing.T) {
	v := newTestView(
		"if x:",
		"    a",
		"",
		"    b",
		"done",
	)
	v.cursor = guide.Cursor{Row: 1, Col: 4}

	s := simScreen(t, 20, 8)
	ctrl := testController(v)
	v.Render(s) // fixes viewport geometry
	ctrl.PostCommand()
	v.Render(s)

	cells, w, _ := s.GetContents()
	// Bar replaces the indent space on code rows and floats past the
	// blank row's end.
	for _, y := range []int{1, 2, 3} {
		if got := cellRune(cells, w, 3, y); got != '|' {
			t.Fatalf("row %d col 3 = %q, want '|'", y, got)
		}
	}
	if got := cellRune(cells, w, 3, 0); got == '|' {
		t.Fatalf("bar drawn on the opener row")
	}
	if got := cellRune(cells, w, 3, 4); got == '|' {
		t.Fatalf("bar drawn on the shallower row")
	}
	// Code is untouched.
	if got := cellRune(cells, w, 4, 1); got != 'a' {
		t.Fatalf("row 1 col 4 = %q, want 'a'", got)
	}
}

func TestRenderGuideInsideTab(t *testing.T) {
	v := newTestView(
		"while y:",
		"\ta",
		"\tb",
	)
	v.cursor = guide.Cursor{Row: 1, Col: 1}

	s := simScreen(t, 20, 8)
	ctrl := testController(v)
	v.Render(s)
	ctrl.PostCommand()
	v.Render(s)

	cells, w, _ := s.GetContents()
	// Column 4 block, bar at visual column 3, inside each tab's span.
	for _, y := range []int{1, 2} {
		if got := cellRune(cells, w, 3, y); got != '|' {
			t.Fatalf("row %d col 3 = %q, want '|'", y, got)
		}
		if got := cellRune(cells, w, 4, y); got == '|' {
			t.Fatalf("row %d col 4 should be code, got bar", y)
		}
	}
}

func TestRenderClearRemovesBars(t *testing.T) {
	v := newTestView(
		"if x:",
		"    a",
		"    b",
	)
	v.cursor = guide.Cursor{Row: 1, Col: 4}

	s := simScreen(t, 20, 8)
	ctrl := testController(v)
	v.Render(s)
	ctrl.PostCommand()
	v.Render(s)

	cells, w, _ := s.GetContents()
	if cellRune(cells, w, 3, 1) != '|' {
		t.Fatalf("no bar before clear")
	}

	ctrl.PreCommand()
	v.Render(s)
	cells, w, _ = s.GetContents()
	if cellRune(cells, w, 3, 1) == '|' {
		t.Fatalf("bar survived PreCommand")
	}
}

func TestRenderStatusline(t *testing.T) {
	v := newTestView("abc")
	v.filename = "sample.go"
	v.SetContext("go")
	s := simScreen(t, 30, 6)
	v.Render(s)

	cells, w, h := s.GetContents()
	got := ""
	for x := 0; x < w; x++ {
		got += string(cellRune(cells, w, x, h-2))
	}
	if want := "sample.go  (go)"; got[:len(want)] != want {
		t.Fatalf("statusline = %q, want prefix %q", got, want)
	}
}

func TestRenderPromptline(t *testing.T) {
	v := newTestView("a")
	v.promptActive = true
	v.prompt = []rune("12")
	s := simScreen(t, 10, 5)
	v.Render(s)

	cells, w, h := s.GetContents()
	if cellRune(cells, w, 0, h-1) != ':' {
		t.Fatalf("prompt line missing ':'")
	}
	if cellRune(cells, w, 1, h-1) != '1' || cellRune(cells, w, 2, h-1) != '2' {
		t.Fatalf("prompt digits not rendered")
	}
}

func TestRenderGutterLineNumbers(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.LineNumbers = "absolute"
	v := New(cfg)
	v.lines = [][]rune{[]rune("a"), []rune("b")}

	s := simScreen(t, 12, 5)
	v.Render(s)

	cells, w, _ := s.GetContents()
	// Three-digit gutter, right-aligned.
	if got := cellRune(cells, w, 2, 0); got != '1' {
		t.Fatalf("gutter cell = %q, want '1'", got)
	}
	if got := cellRune(cells, w, 4, 0); got != 'a' {
		t.Fatalf("text cell = %q, want 'a'", got)
	}
}

func TestGuideColorConfigured(t *testing.T) {
	cfg := config.Default()
	cfg.Guide.Color = "#FF0000"
	c := GuideColor(cfg)
	r, g, b := c.RGB()
	if r != 0xFF || g != 0 || b != 0 {
		t.Fatalf("GuideColor = %d,%d,%d, want 255,0,0", r, g, b)
	}
	rgba := GuideRGBA(cfg)
	if rgba.R != 0xFF || rgba.A != 0xFF {
		t.Fatalf("GuideRGBA = %+v", rgba)
	}
}

func TestGuideColorBlendedDefault(t *testing.T) {
	cfg := config.Default()
	fg := parseColor(cfg.Theme.Foreground, tcell.ColorWhite)
	gc := GuideColor(cfg)
	if gc == fg {
		t.Fatalf("default guide color not dimmed from foreground")
	}
	gr, gg, gb := gc.RGB()
	fr, fr2, fb := fg.RGB()
	if gr > fr && gg > fr2 && gb > fb {
		t.Fatalf("blend brighter than foreground on a dark theme")
	}
}
