package guide

import (
	"image"
	"image/color"
)

// Glyph is one rendered guide segment. Chars is always populated at the
// cell width (a run of spaces with one bar rune); Image is additionally
// set when the cache renders rich bitmap glyphs, and hosts that cannot
// composite pixels simply ignore it.
type Glyph struct {
	Width     int
	Height    int
	BarOffset int
	Chars     []rune
	Image     *image.RGBA
}

type glyphKey struct {
	width  int
	height int
	bar    int
	cells  int
}

// Cache memoizes rendered glyphs by their exact geometry. Entries live
// until Clear, which the owner calls on theme or font changes.
type Cache struct {
	entries map[glyphKey]*Glyph
	barChar rune
	color   color.RGBA
	dash    int
	rich    bool
}

// NewCache builds a glyph cache. barChar is the fallback guide rune,
// dash the dash period in rows (0 = solid), rich whether bitmap images
// are rendered alongside the character form.
func NewCache(barChar rune, col color.RGBA, dash int, rich bool) *Cache {
	if barChar == 0 {
		barChar = '|'
	}
	return &Cache{
		entries: make(map[glyphKey]*Glyph),
		barChar: barChar,
		color:   col,
		dash:    dash,
		rich:    rich,
	}
}

// Get returns the glyph for the given geometry, rendering it on first
// use. Identical keys always return the same instance. Width and
// barOffset are in cells.
func (c *Cache) Get(width, height, barOffset int) *Glyph {
	return c.get(width, height, barOffset, width, barOffset)
}

// GetPixel is Get for pixel geometry: width, height and barOffset are
// in pixels, cells and barCell give the originating cell geometry so
// the character fallback stays cell-sized.
func (c *Cache) GetPixel(width, height, barOffset, cells, barCell int) *Glyph {
	return c.get(width, height, barOffset, cells, barCell)
}

func (c *Cache) get(width, height, barOffset, cells, barCell int) *Glyph {
	key := glyphKey{width: width, height: height, bar: barOffset, cells: cells}
	if g, ok := c.entries[key]; ok {
		return g
	}
	g := c.render(width, height, barOffset, cells, barCell)
	c.entries[key] = g
	return g
}

// Clear drops every cached glyph.
func (c *Cache) Clear() {
	c.entries = make(map[glyphKey]*Glyph)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

func (c *Cache) render(width, height, barOffset, cells, barCell int) *Glyph {
	g := &Glyph{Width: width, Height: height, BarOffset: barOffset}

	charWidth := cells
	charBar := barCell
	if charWidth < 1 {
		charWidth = 1
	}
	if charBar < 0 {
		charBar = 0
	}
	if charBar >= charWidth {
		charBar = charWidth - 1
	}
	g.Chars = make([]rune, charWidth)
	for i := range g.Chars {
		g.Chars[i] = ' '
	}
	g.Chars[charBar] = c.barChar

	if c.rich {
		g.Image = c.renderBitmap(width, height, barOffset)
	}
	return g
}

// renderBitmap draws a 1-px vertical line at barOffset. With a dash
// period d, every (d+1)-th row is left transparent. Implausible
// geometry returns nil and the caller falls back to Chars.
func (c *Cache) renderBitmap(width, height, barOffset int) *image.RGBA {
	const maxDim = 1 << 12
	if width < 1 || height < 1 || width > maxDim || height > maxDim {
		return nil
	}
	if barOffset < 0 || barOffset >= width {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		if c.dash > 0 && (y+1)%(c.dash+1) == 0 {
			continue
		}
		img.SetRGBA(barOffset, y, c.color)
	}
	return img
}
