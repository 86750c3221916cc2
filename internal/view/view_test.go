package view

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qguide/internal/config"
	"github.com/kobzarvs/qguide/internal/guide"
)

func newTestView(lines ...string) *View {
	if len(lines) == 0 {
		lines = []string{""}
	}
	cfg := config.Default()
	cfg.Editor.LineNumbers = "off"
	v := New(cfg)
	v.lines = make([][]rune, len(lines))
	for i, line := range lines {
		v.lines[i] = []rune(line)
	}
	return v
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestSplitLines(t *testing.T) {
	lines := splitLines([]byte("a\nb\n"))
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	lines = splitLines([]byte("a\r\nb"))
	if len(lines) != 2 || string(lines[0]) != "a" {
		t.Fatalf("crlf split = %q", lines)
	}
	lines = splitLines(nil)
	if len(lines) != 1 {
		t.Fatalf("empty input lines = %d, want 1", len(lines))
	}
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.py")
	if err := os.WriteFile(path, []byte("if x:\n    a\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	v := newTestView()
	if err := v.Open(path); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if v.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", v.LineCount())
	}
	if string(v.Line(1)) != "    a" {
		t.Fatalf("line 1 = %q", string(v.Line(1)))
	}
}

func TestCursorMotion(t *testing.T) {
	v := newTestView("abc", "de")
	v.HandleKey(keyRune('l'))
	v.HandleKey(keyRune('l'))
	if v.cursor.Col != 2 {
		t.Fatalf("col = %d, want 2", v.cursor.Col)
	}
	v.HandleKey(keyRune('j'))
	if v.cursor.Row != 1 || v.cursor.Col != 2 {
		t.Fatalf("cursor = %+v, want row 1 col 2", v.cursor)
	}
	v.HandleKey(keyRune('l'))
	if v.cursor.Col != 2 {
		t.Fatalf("col moved past line end: %d", v.cursor.Col)
	}
	v.HandleKey(keyRune('k'))
	v.HandleKey(keyRune('h'))
	if v.cursor.Row != 0 || v.cursor.Col != 1 {
		t.Fatalf("cursor = %+v, want row 0 col 1", v.cursor)
	}
}

func TestWordMotionForward(t *testing.T) {
	v := newTestView("foo  bar", "", "  baz")
	v.HandleKey(keyRune('w'))
	if v.cursor.Row != 0 || v.cursor.Col != 5 {
		t.Fatalf("cursor = %+v, want row 0 col 5", v.cursor)
	}
	// Next word is past the blank line.
	v.HandleKey(keyRune('w'))
	if v.cursor.Row != 2 || v.cursor.Col != 2 {
		t.Fatalf("cursor = %+v, want row 2 col 2", v.cursor)
	}
	// Last word: the cursor parks at end of line.
	v.HandleKey(keyRune('w'))
	if v.cursor.Row != 2 || v.cursor.Col != 5 {
		t.Fatalf("cursor = %+v, want row 2 col 5", v.cursor)
	}
}

func TestWordMotionBackward(t *testing.T) {
	v := newTestView("foo  bar", "", "  baz")
	v.cursor = guide.Cursor{Row: 2, Col: 3}
	v.HandleKey(keyRune('b'))
	if v.cursor.Row != 2 || v.cursor.Col != 2 {
		t.Fatalf("cursor = %+v, want row 2 col 2", v.cursor)
	}
	v.HandleKey(keyRune('b'))
	if v.cursor.Row != 0 || v.cursor.Col != 5 {
		t.Fatalf("cursor = %+v, want row 0 col 5", v.cursor)
	}
	v.HandleKey(keyRune('b'))
	if v.cursor.Row != 0 || v.cursor.Col != 0 {
		t.Fatalf("cursor = %+v, want row 0 col 0", v.cursor)
	}
	// At buffer start the motion is a no-op.
	v.HandleKey(keyRune('b'))
	if v.cursor.Row != 0 || v.cursor.Col != 0 {
		t.Fatalf("cursor = %+v, want row 0 col 0", v.cursor)
	}
}

func TestFileStartEndKeys(t *testing.T) {
	v := newTestView("one", "two", "three")
	v.HandleKey(keyRune('G'))
	if v.cursor.Row != 2 {
		t.Fatalf("G row = %d, want 2", v.cursor.Row)
	}
	v.HandleKey(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModCtrl))
	if v.cursor.Row != 0 || v.cursor.Col != 0 {
		t.Fatalf("ctrl+home cursor = %+v, want origin", v.cursor)
	}
	v.HandleKey(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModCtrl))
	if v.cursor.Row != 2 {
		t.Fatalf("ctrl+end row = %d, want 2", v.cursor.Row)
	}
}

func TestGotoPrompt(t *testing.T) {
	v := newTestView("a", "b", "c", "d")
	v.HandleKey(keyRune('g'))
	if !v.PromptActive() {
		t.Fatalf("prompt not active after g")
	}
	v.HandleKey(keyRune('3'))
	v.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if v.PromptActive() {
		t.Fatalf("prompt still active after enter")
	}
	if v.cursor.Row != 2 {
		t.Fatalf("row = %d, want 2", v.cursor.Row)
	}

	v.HandleKey(keyRune('g'))
	v.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if v.PromptActive() {
		t.Fatalf("prompt survived escape")
	}
	if v.cursor.Row != 2 {
		t.Fatalf("escape moved the cursor to %d", v.cursor.Row)
	}
}

func TestQuitKeys(t *testing.T) {
	v := newTestView("a")
	if !v.HandleKey(keyRune('q')) {
		t.Fatalf("q did not quit")
	}
	if !v.HandleKey(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)) {
		t.Fatalf("ctrl+c did not quit")
	}
}

func TestEnsureCursorVisible(t *testing.T) {
	v := newTestView("a", "b", "c", "d", "e", "f")
	v.viewHeight = 3
	v.cursor.Row = 5
	v.UpdateScroll()
	if v.scroll != 3 {
		t.Fatalf("scroll = %d, want 3", v.scroll)
	}
	v.cursor.Row = 0
	v.UpdateScroll()
	if v.scroll != 0 {
		t.Fatalf("scroll = %d, want 0", v.scroll)
	}
}

func TestViewportBounds(t *testing.T) {
	v := newTestView("a", "b", "c", "d")
	v.viewHeight = 2
	v.scroll = 1
	vp := v.Viewport()
	if vp.Top != 1 || vp.Bottom != 2 {
		t.Fatalf("viewport = %+v, want [1, 2]", vp)
	}
}

func TestVisualColRuneWidths(t *testing.T) {
	line := []rune("a\t界b")
	if got := visualCol(line, 1, 4); got != 1 {
		t.Fatalf("col after a = %d, want 1", got)
	}
	if got := visualCol(line, 2, 4); got != 4 {
		t.Fatalf("col after tab = %d, want 4", got)
	}
	// CJK rune is two cells wide.
	if got := visualCol(line, 3, 4); got != 6 {
		t.Fatalf("col after wide rune = %d, want 6", got)
	}
}
