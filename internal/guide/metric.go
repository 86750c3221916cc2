package guide

// Nominal cell metrics used when the host cannot report the current
// rendering size (line not fully visible, headless tests).
const (
	NominalCellWidth  = 8
	NominalCellHeight = 16
)

// Metric is a cell dimension that is either a fixed pixel count or
// derived from the host's current rendering, resolved once per render
// pass.
type Metric struct {
	px int
}

// Fixed returns a metric pinned to px pixels.
func Fixed(px int) Metric {
	if px < 1 {
		px = 1
	}
	return Metric{px: px}
}

// Derived returns a metric resolved from host metrics at render time.
func Derived() Metric {
	return Metric{}
}

// MetricFromConfig maps the config encoding: a positive integer is a
// fixed size, zero means derive.
func MetricFromConfig(v int) Metric {
	if v > 0 {
		return Fixed(v)
	}
	return Derived()
}

func (m Metric) IsDerived() bool {
	return m.px == 0
}

// Resolve produces the pixel size for this pass. Derived metrics take
// the host's current value, falling back to nominal when the host
// reports none.
func (m Metric) Resolve(current, nominal int) int {
	if m.px > 0 {
		return m.px
	}
	if current > 0 {
		return current
	}
	return nominal
}
