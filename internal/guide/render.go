package guide

// Geometry fixes the glyph units for one render pass. CellWidth == 0
// means pure character rendering: glyph widths are column counts and
// heights are 1. With pixel metrics, widths and offsets are multiplied
// out and the margin/height adjustments applied.
type Geometry struct {
	CellWidth  int
	CellHeight int
	LeftMargin int
	HeightAdj  int
}

// RenderLine resolves the guide representation of one row at the target
// visual column. It walks the line with tab expansion and classifies
// where the column lands:
//
//   - past the end of a short line: a padding glyph appended after the
//     last character, wide enough to reach the column, bar at its end;
//   - inside or exactly on a tab: a glyph replacing that tab's display,
//     sized to the tab's expansion, bar offset within it;
//   - on a plain space: a single-cell glyph replacing that space.
//
// A column landing on anything else produces no annotation; member rows
// of a block never put code under the bar, so this only fires on
// degenerate input.
func RenderLine(row int, line []rune, target, tabWidth int, geom Geometry, cache *Cache) (Annotation, bool) {
	if target < 0 {
		return Annotation{}, false
	}
	col := 0
	for i, r := range line {
		adv := advance(r, col, tabWidth)
		if col == target || col+adv > target {
			if r == '\t' {
				return Annotation{
					Row:   row,
					Col:   i,
					Mode:  ModeReplace,
					Glyph: requestGlyph(cache, geom, adv, target-col),
				}, true
			}
			if r == ' ' {
				return Annotation{
					Row:   row,
					Col:   i,
					Mode:  ModeReplace,
					Glyph: requestGlyph(cache, geom, 1, 0),
				}, true
			}
			return Annotation{}, false
		}
		col += adv
	}
	// Short line: float the bar past the visible end.
	width := target - col + 1
	return Annotation{
		Row:   row,
		Col:   len(line),
		Mode:  ModeAppend,
		Glyph: requestGlyph(cache, geom, width, width-1),
	}, true
}

func requestGlyph(cache *Cache, geom Geometry, cells, barCell int) *Glyph {
	if geom.CellWidth <= 0 {
		return cache.Get(cells, 1, barCell)
	}
	width := cells * geom.CellWidth
	height := geom.CellHeight + geom.HeightAdj
	if height < 1 {
		height = 1
	}
	bar := barCell*geom.CellWidth + geom.LeftMargin
	if bar >= width {
		bar = width - 1
	}
	if bar < 0 {
		bar = 0
	}
	return cache.GetPixel(width, height, bar, cells, barCell)
}
