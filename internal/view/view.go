package view

import (
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qguide/internal/config"
	"github.com/kobzarvs/qguide/internal/guide"
)

type LineNumberMode int

const (
	LineNumberOff LineNumberMode = iota
	LineNumberAbsolute
	LineNumberRelative
)

// View is a read-only file viewer that hosts the guide controller: it
// owns the line buffer, cursor and scroll state, and composites guide
// annotations into its rendering.
type View struct {
	lines          [][]rune
	cursor         guide.Cursor
	scroll         int
	filename       string
	context        string
	tabWidth       int
	viewHeight     int
	lineNumberMode LineNumberMode
	promptActive   bool
	prompt         []rune
	statusMessage  string
	annotations    map[int][]guide.Annotation

	styleMain             tcell.Style
	styleStatus           tcell.Style
	stylePrompt           tcell.Style
	styleLineNumber       tcell.Style
	styleLineNumberActive tcell.Style
	styleGuide            tcell.Style
}

func New(cfg config.Config) *View {
	tabWidth := cfg.Editor.TabWidth
	if tabWidth < 1 {
		tabWidth = 1
	}
	mainFg := parseColor(cfg.Theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(cfg.Theme.Background, tcell.ColorBlack)
	statusFg := parseColor(cfg.Theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(cfg.Theme.StatuslineBackground, tcell.ColorGray)
	promptFg := parseColor(cfg.Theme.PromptForeground, statusFg)
	promptBg := parseColor(cfg.Theme.PromptBackground, statusBg)
	lineNumberFg := parseColor(cfg.Theme.LineNumberForeground, tcell.ColorGray)
	lineNumberActiveFg := parseColor(cfg.Theme.LineNumberActiveForeground, mainFg)
	return &View{
		lines:                 [][]rune{{}},
		tabWidth:              tabWidth,
		lineNumberMode:        parseLineNumberMode(cfg.Editor.LineNumbers),
		annotations:           make(map[int][]guide.Annotation),
		styleMain:             tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		styleStatus:           tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		stylePrompt:           tcell.StyleDefault.Foreground(promptFg).Background(promptBg),
		styleLineNumber:       tcell.StyleDefault.Foreground(lineNumberFg).Background(mainBg),
		styleLineNumberActive: tcell.StyleDefault.Foreground(lineNumberActiveFg).Background(mainBg),
		styleGuide:            tcell.StyleDefault.Foreground(GuideColor(cfg)).Background(mainBg),
	}
}

func (v *View) Open(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	v.lines = splitLines(data)
	v.filename = path
	v.cursor = guide.Cursor{}
	v.scroll = 0
	return nil
}

// SetContext records the context name resolved for the open file, shown
// in the statusline and used by the eligibility predicate.
func (v *View) SetContext(name string) {
	v.context = name
}

func (v *View) Context() string {
	return v.context
}

func (v *View) TabWidth() int {
	return v.tabWidth
}

// HandleKey processes one key event; it returns true when the viewer
// should quit.
func (v *View) HandleKey(ev *tcell.EventKey) bool {
	if v.promptActive {
		v.handlePromptKey(ev)
		return false
	}
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyLeft:
		v.moveLeft()
	case tcell.KeyRight:
		v.moveRight()
	case tcell.KeyUp:
		v.moveUp()
	case tcell.KeyDown:
		v.moveDown()
	case tcell.KeyHome:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			v.cursor = guide.Cursor{}
		} else {
			v.cursor.Col = 0
		}
	case tcell.KeyEnd:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			v.cursor.Row = len(v.lines) - 1
			v.clampCursorCol()
		} else {
			v.cursor.Col = len(v.line(v.cursor.Row))
		}
	case tcell.KeyPgUp:
		v.pageUp()
	case tcell.KeyPgDn:
		v.pageDown()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'h':
			v.moveLeft()
		case 'l':
			v.moveRight()
		case 'k':
			v.moveUp()
		case 'j':
			v.moveDown()
		case 'w':
			v.wordForward()
		case 'b':
			v.wordBackward()
		case 'g':
			v.promptActive = true
			v.prompt = nil
		case 'G':
			v.cursor.Row = len(v.lines) - 1
			v.clampCursorCol()
		}
	}
	return false
}

func (v *View) handlePromptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.promptActive = false
		v.prompt = nil
	case tcell.KeyEnter:
		v.promptActive = false
		if n, err := strconv.Atoi(string(v.prompt)); err == nil && n > 0 {
			v.cursor.Row = n - 1
			if v.cursor.Row > len(v.lines)-1 {
				v.cursor.Row = len(v.lines) - 1
			}
			v.clampCursorCol()
		}
		v.prompt = nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(v.prompt) > 0 {
			v.prompt = v.prompt[:len(v.prompt)-1]
		}
	case tcell.KeyRune:
		r := ev.Rune()
		if r >= '0' && r <= '9' {
			v.prompt = append(v.prompt, r)
		}
	}
}

func (v *View) line(i int) []rune {
	if i < 0 || i >= len(v.lines) {
		return nil
	}
	return v.lines[i]
}

func (v *View) moveLeft() {
	if v.cursor.Col > 0 {
		v.cursor.Col--
	}
}

func (v *View) moveRight() {
	if v.cursor.Col < len(v.line(v.cursor.Row)) {
		v.cursor.Col++
	}
}

func (v *View) moveUp() {
	if v.cursor.Row > 0 {
		v.cursor.Row--
		v.clampCursorCol()
	}
}

func (v *View) moveDown() {
	if v.cursor.Row < len(v.lines)-1 {
		v.cursor.Row++
		v.clampCursorCol()
	}
}

func isWordRune(r rune) bool {
	return r != ' ' && r != '\t'
}

func (v *View) wordForward() {
	row, col := v.cursor.Row, v.cursor.Col
	line := v.line(row)
	for col < len(line) && isWordRune(line[col]) {
		col++
	}
	for {
		for col < len(line) && !isWordRune(line[col]) {
			col++
		}
		if col < len(line) || row == len(v.lines)-1 {
			v.cursor.Row, v.cursor.Col = row, col
			return
		}
		row++
		col = 0
		line = v.line(row)
	}
}

func (v *View) wordBackward() {
	row, col := v.cursor.Row, v.cursor.Col
	for {
		line := v.line(row)
		for col > 0 && !isWordRune(line[col-1]) {
			col--
		}
		if col > 0 {
			for col > 0 && isWordRune(line[col-1]) {
				col--
			}
			v.cursor.Row, v.cursor.Col = row, col
			return
		}
		if row == 0 {
			v.cursor.Row, v.cursor.Col = 0, 0
			return
		}
		row--
		col = len(v.line(row))
	}
}

func (v *View) pageUp() {
	v.cursor.Row -= v.viewHeight
	if v.cursor.Row < 0 {
		v.cursor.Row = 0
	}
	v.clampCursorCol()
}

func (v *View) pageDown() {
	v.cursor.Row += v.viewHeight
	if v.cursor.Row > len(v.lines)-1 {
		v.cursor.Row = len(v.lines) - 1
	}
	v.clampCursorCol()
}

func (v *View) clampCursorCol() {
	if max := len(v.line(v.cursor.Row)); v.cursor.Col > max {
		v.cursor.Col = max
	}
}

// UpdateScroll re-anchors the viewport on the cursor after a motion.
func (v *View) UpdateScroll() {
	v.ensureCursorVisible(v.viewHeight)
}

func (v *View) ensureCursorVisible(viewHeight int) {
	if viewHeight < 1 {
		return
	}
	if v.cursor.Row < v.scroll {
		v.scroll = v.cursor.Row
	}
	if v.cursor.Row >= v.scroll+viewHeight {
		v.scroll = v.cursor.Row - viewHeight + 1
	}
	if v.scroll < 0 {
		v.scroll = 0
	}
}

func (v *View) SetStatusMessage(msg string) {
	v.statusMessage = msg
}

// guide.Host implementation.

func (v *View) LineCount() int {
	return len(v.lines)
}

func (v *View) Line(i int) []rune {
	return v.line(i)
}

func (v *View) Cursor() guide.Cursor {
	return v.cursor
}

func (v *View) Viewport() guide.Viewport {
	h := v.viewHeight
	if h < 1 {
		h = 1
	}
	return guide.Viewport{Top: v.scroll, Bottom: v.scroll + h - 1}
}

func (v *View) PromptActive() bool {
	return v.promptActive
}

// CellMetrics: a cell terminal has no pixel rendering to report.
func (v *View) CellMetrics() (int, int) {
	return 0, 0
}

func (v *View) Apply(anns []guide.Annotation) {
	for _, ann := range anns {
		v.annotations[ann.Row] = append(v.annotations[ann.Row], ann)
	}
}

func (v *View) ClearAnnotations() {
	if len(v.annotations) == 0 {
		return
	}
	v.annotations = make(map[int][]guide.Annotation)
}

func splitLines(data []byte) [][]rune {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	parts := strings.Split(text, "\n")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	if len(lines) == 0 {
		lines = [][]rune{{}}
	}
	return lines
}

func parseLineNumberMode(value string) LineNumberMode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "relative", "rel":
		return LineNumberRelative
	case "off", "none":
		return LineNumberOff
	default:
		return LineNumberAbsolute
	}
}
