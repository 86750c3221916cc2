package guide

// runeBuffer is the test Source: a plain slice of lines.
type runeBuffer [][]rune

func newBuffer(lines ...string) runeBuffer {
	buf := make(runeBuffer, len(lines))
	for i, line := range lines {
		buf[i] = []rune(line)
	}
	return buf
}

func (b runeBuffer) LineCount() int {
	return len(b)
}

func (b runeBuffer) Line(i int) []rune {
	if i < 0 || i >= len(b) {
		return nil
	}
	return b[i]
}

func fullView(b runeBuffer) Viewport {
	return Viewport{Top: 0, Bottom: len(b) - 1}
}
