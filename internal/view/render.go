package view

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/qguide/internal/config"
	"github.com/kobzarvs/qguide/internal/guide"
)

func (v *View) Render(s tcell.Screen) {
	w, h := s.Size()
	viewHeight := h - 2
	if viewHeight < 0 {
		viewHeight = 0
	}
	v.viewHeight = viewHeight
	v.ensureCursorVisible(viewHeight)

	gutter := v.gutterWidth()
	for y := 0; y < viewHeight; y++ {
		row := v.scroll + y
		if row >= len(v.lines) {
			clearLine(s, y, w, v.styleMain)
			continue
		}
		v.drawGutter(s, y, gutter, row)
		v.drawLine(s, y, w, gutter, v.lines[row], v.annotations[row])
	}
	if h >= 2 {
		v.renderStatusline(s, w, h-2)
		v.renderPromptline(s, w, h-1)
	}

	cursorX := gutter + visualCol(v.line(v.cursor.Row), v.cursor.Col, v.tabWidth)
	cursorY := v.cursor.Row - v.scroll
	if v.promptActive {
		s.ShowCursor(len(v.prompt)+1, h-1)
	} else if cursorY >= 0 && cursorY < viewHeight && cursorX < w {
		s.ShowCursor(cursorX, cursorY)
	} else {
		s.HideCursor()
	}
	s.Show()
}

func (v *View) gutterWidth() int {
	if v.lineNumberMode == LineNumberOff {
		return 0
	}
	digits := len(strconv.Itoa(len(v.lines)))
	if digits < 3 {
		digits = 3
	}
	return digits + 1
}

func (v *View) drawGutter(s tcell.Screen, y, gutter, row int) {
	if gutter == 0 {
		return
	}
	style := v.styleLineNumber
	n := row + 1
	if v.lineNumberMode == LineNumberRelative && row != v.cursor.Row {
		n = row - v.cursor.Row
		if n < 0 {
			n = -n
		}
	}
	if row == v.cursor.Row {
		style = v.styleLineNumberActive
	}
	text := strconv.Itoa(n)
	pad := gutter - 1 - len(text)
	x := 0
	for i := 0; i < pad; i++ {
		s.SetContent(x, y, ' ', nil, style)
		x++
	}
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	s.SetContent(x, y, ' ', nil, style)
}

// drawLine renders one buffer row with tab expansion and composites the
// row's guide annotations: ModeReplace overrides the display of the
// annotated rune, ModeAppend floats the glyph past the end of a short
// line.
func (v *View) drawLine(s tcell.Screen, y, w, startX int, line []rune, anns []guide.Annotation) {
	x := startX
	col := 0
	tabWidth := v.tabWidth
	for idx, r := range line {
		if x >= w {
			break
		}
		if g := replaceGlyphAt(anns, idx); g != nil {
			for _, gr := range g.Chars {
				if x >= w {
					break
				}
				s.SetContent(x, y, gr, nil, v.styleGuide)
				x++
				col++
			}
			continue
		}
		if r == '\t' {
			spaces := tabWidth - (col % tabWidth)
			for i := 0; i < spaces && x < w; i++ {
				s.SetContent(x, y, ' ', nil, v.styleMain)
				x++
				col++
			}
			continue
		}
		width := runewidth.RuneWidth(r)
		if width < 1 {
			width = 1
		}
		s.SetContent(x, y, r, nil, v.styleMain)
		x += width
		col += width
	}
	if g := appendGlyph(anns, len(line)); g != nil {
		for _, gr := range g.Chars {
			if x >= w {
				break
			}
			s.SetContent(x, y, gr, nil, v.styleGuide)
			x++
		}
	}
	for x < w {
		s.SetContent(x, y, ' ', nil, v.styleMain)
		x++
	}
}

func replaceGlyphAt(anns []guide.Annotation, idx int) *guide.Glyph {
	for _, ann := range anns {
		if ann.Mode == guide.ModeReplace && ann.Col == idx {
			return ann.Glyph
		}
	}
	return nil
}

func appendGlyph(anns []guide.Annotation, lineLen int) *guide.Glyph {
	for _, ann := range anns {
		if ann.Mode == guide.ModeAppend && ann.Col == lineLen {
			return ann.Glyph
		}
	}
	return nil
}

func (v *View) renderStatusline(s tcell.Screen, w, y int) {
	left := v.filename
	if left == "" {
		left = "[no file]"
	}
	if v.context != "" {
		left += "  (" + v.context + ")"
	}
	if v.statusMessage != "" {
		left = v.statusMessage
	}
	right := fmt.Sprintf("%d:%d", v.cursor.Row+1, v.cursor.Col+1)
	line := composeStatusLine(left, right, w)
	for x, r := range line {
		s.SetContent(x, y, r, nil, v.styleStatus)
	}
}

func (v *View) renderPromptline(s tcell.Screen, w, y int) {
	if !v.promptActive {
		clearLine(s, y, w, v.stylePrompt)
		return
	}
	x := 0
	s.SetContent(x, y, ':', nil, v.stylePrompt)
	x++
	for _, r := range v.prompt {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, v.stylePrompt)
		x++
	}
	for x < w {
		s.SetContent(x, y, ' ', nil, v.stylePrompt)
		x++
	}
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	spaceCount := width - len(leftRunes) - len(rightRunes)
	if spaceCount < 0 {
		spaceCount = 0
	}
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for i := 0; i < spaceCount; i++ {
		line = append(line, ' ')
	}
	line = append(line, rightRunes...)
	return line
}

func visualCol(line []rune, logicalCol, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	if logicalCol < 0 {
		logicalCol = 0
	}
	if logicalCol > len(line) {
		logicalCol = len(line)
	}
	col := 0
	for i := 0; i < logicalCol; i++ {
		if line[i] == '\t' {
			col += tabWidth - (col % tabWidth)
			continue
		}
		if w := runewidth.RuneWidth(line[i]); w > 0 {
			col += w
		} else {
			col++
		}
	}
	return col
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

// GuideColor resolves the guide foreground: the configured color when
// set, otherwise a Lab-space blend of the theme foreground into the
// background so the bars read as subdued structure.
func GuideColor(cfg config.Config) tcell.Color {
	if cfg.Guide.Color != "" {
		return parseColor(cfg.Guide.Color, tcell.ColorGray)
	}
	r, g, b := blendedGuideRGB(cfg)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// GuideRGBA is the same color as GuideColor in image form, used for
// bitmap glyph rendering.
func GuideRGBA(cfg config.Config) color.RGBA {
	if cfg.Guide.Color != "" {
		c := parseColor(cfg.Guide.Color, tcell.ColorGray)
		r, g, b := c.RGB()
		return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xFF}
	}
	r, g, b := blendedGuideRGB(cfg)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

func blendedGuideRGB(cfg config.Config) (uint8, uint8, uint8) {
	fg, err1 := colorful.Hex(cfg.Theme.Foreground)
	bg, err2 := colorful.Hex(cfg.Theme.Background)
	if err1 != nil || err2 != nil {
		return 0x80, 0x80, 0x80
	}
	c := fg.BlendLab(bg, 0.55).Clamped()
	r, g, b := c.RGB255()
	return r, g, b
}

// Ensure View satisfies the controller's host contract.
var _ guide.Host = (*View)(nil)
