package guide

// Expand computes the vertical run of rows that still belong to the
// block at column, scanning forward from the line after the opener. A
// row stays in the run while it is blank or indented at least to column.
// The scan is bounded by the viewport so per-cycle cost is independent
// of file size. When the run ends inside the buffer (a shallower row or
// the buffer end), trailing blank rows are trimmed so the guide never
// dangles below the block's last code line; when the run is cut by the
// viewport edge it is left as-is, the guide continues off-screen.
//
// The returned End may be Start-1, meaning there is nothing to annotate.
func Expand(src Source, column, opener int, view Viewport, tabWidth int) (start, end int) {
	n := src.LineCount()
	start = opener + 1
	if view.Top > start {
		start = view.Top
	}
	if start < 0 {
		start = 0
	}
	last := view.Bottom
	if last > n-1 {
		last = n - 1
	}
	if start > last {
		return start, start - 1
	}

	row := start
	dropped := false
	for row <= last {
		line := src.Line(row)
		if !IsBlank(line) && VisualIndent(line, tabWidth) < column {
			dropped = true
			break
		}
		row++
	}
	end = row - 1

	if dropped || end == n-1 {
		for end >= start && IsBlank(src.Line(end)) {
			end--
		}
	}
	return start, end
}
