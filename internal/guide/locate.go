package guide

// maxPrefixPatterns bounds candidate generation for pathological tab
// widths (tab-width 1 makes every whitespace mix distinct). Past the cap
// the matcher degrades to a direct width comparison, which accepts the
// exact same set of lines.
const maxPrefixPatterns = 4096

// Locate finds the indentation block enclosing the cursor. It returns
// the block's indentation column and the row of the line that opens the
// block (the nearest shallower code line above), or -1 when the block
// starts at the top of the buffer. A zero column means top-level code:
// no guide is drawn.
func Locate(src Source, cursor Cursor, tabWidth int) (column, opener int) {
	n := src.LineCount()
	if n == 0 {
		return 0, -1
	}
	row := cursor.Row
	if row < 0 {
		row = 0
	}
	if row >= n {
		row = n - 1
	}

	base := 0
	if IsBlank(src.Line(row)) {
		// A blank line belongs to whichever neighbouring block reaches
		// deeper, so a guide can bridge it.
		above, below := 0, 0
		for i := row - 1; i >= 0; i-- {
			if !IsBlank(src.Line(i)) {
				above = VisualIndent(src.Line(i), tabWidth)
				break
			}
		}
		for i := row + 1; i < n; i++ {
			if !IsBlank(src.Line(i)) {
				below = VisualIndent(src.Line(i), tabWidth)
				break
			}
		}
		base = above
		if below > base {
			base = below
		}
	} else {
		base = VisualIndent(src.Line(row), tabWidth)
	}
	if base == 0 {
		return 0, -1
	}

	m := newPrefixMatcher(base, tabWidth)
	for i := row - 1; i >= 0; i-- {
		if m.matches(src.Line(i)) {
			return base, i
		}
	}
	return base, -1
}

// prefixMatcher accepts lines of code indented strictly shallower than
// column, regardless of how the indentation mixes tabs and spaces.
type prefixMatcher struct {
	column   int
	tabWidth int
	exact    map[string]struct{}
}

func newPrefixMatcher(column, tabWidth int) prefixMatcher {
	if tabWidth < 1 {
		tabWidth = 1
	}
	return prefixMatcher{
		column:   column,
		tabWidth: tabWidth,
		exact:    prefixPatterns(column, tabWidth),
	}
}

// prefixPatterns enumerates every tab/space prefix whose visual width is
// strictly less than column. Iterative breadth-first generation; returns
// nil when the set would exceed maxPrefixPatterns.
func prefixPatterns(column, tabWidth int) map[string]struct{} {
	type node struct {
		s string
		w int
	}
	set := map[string]struct{}{"": {}}
	queue := []node{{s: "", w: 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.w+1 < column {
			next := node{s: cur.s + " ", w: cur.w + 1}
			if _, ok := set[next.s]; !ok {
				set[next.s] = struct{}{}
				queue = append(queue, next)
			}
		}
		adv := tabWidth - (cur.w % tabWidth)
		if cur.w+adv < column {
			next := node{s: cur.s + "\t", w: cur.w + adv}
			if _, ok := set[next.s]; !ok {
				set[next.s] = struct{}{}
				queue = append(queue, next)
			}
		}
		if len(set) > maxPrefixPatterns {
			return nil
		}
	}
	return set
}

func (m prefixMatcher) matches(line []rune) bool {
	if IsBlank(line) {
		return false
	}
	if m.exact == nil {
		return VisualIndent(line, m.tabWidth) < m.column
	}
	end := 0
	for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
		end++
	}
	_, ok := m.exact[string(line[:end])]
	return ok
}
