package guide

import (
	"image/color"
	"time"

	"github.com/kobzarvs/qguide/internal/logger"
)

// State of the controller's command cycle.
type State int

const (
	// StateIdle: annotations cleared, nothing scheduled.
	StateIdle State = iota
	// StatePendingRedraw: a delayed redraw is armed.
	StatePendingRedraw
	// StateDrawn: the cycle completed (possibly drawing nothing).
	StateDrawn
)

// Host is everything the controller needs from the editor: buffer
// access, the annotation surface, and per-cycle context.
type Host interface {
	Source
	Surface
	Cursor() Cursor
	Viewport() Viewport
	PromptActive() bool
	// CellMetrics reports the current rendered cell size in pixels,
	// (0, 0) when the host has no pixel rendering.
	CellMetrics() (width, height int)
}

// Scheduler arms the optional redraw delay. Implementations must call
// Controller.TimerFired(gen) from the host event loop when the delay
// elapses; the controller never runs off-loop.
type Scheduler interface {
	Schedule(d time.Duration, gen uint64)
}

// Options configures one controller instance.
type Options struct {
	TabWidth    int
	LineChar    rune
	Color       color.RGBA
	RichGlyphs  bool
	Graphical   bool
	CharWidth   Metric
	CharHeight  Metric
	LeftMargin  int
	HeightAdj   int
	DashLength  int
	Threshold   int
	RedrawDelay time.Duration
	// Eligible gates the whole feature for the current context; nil
	// means always eligible.
	Eligible func() bool
}

// Controller drives the compute-and-render pipeline once per command
// cycle: clear on command entry, redraw (optionally debounced) on
// command exit. All state is instance fields so independent buffers do
// not share anything. Every method must be called from the host's
// single event loop.
type Controller struct {
	host  Host
	opts  Options
	sched Scheduler
	cache *Cache
	state State
	gen   uint64
	span  Span
}

func NewController(host Host, opts Options, sched Scheduler) *Controller {
	if opts.TabWidth < 1 {
		opts.TabWidth = 1
	}
	rich := opts.RichGlyphs && opts.Graphical
	return &Controller{
		host:  host,
		opts:  opts,
		sched: sched,
		cache: NewCache(opts.LineChar, opts.Color, opts.DashLength, rich),
		state: StateIdle,
	}
}

// State returns the current cycle state.
func (c *Controller) State() State {
	return c.state
}

// LastSpan returns the span drawn by the most recent completed cycle.
func (c *Controller) LastSpan() Span {
	return c.span
}

// ClearCache drops all rendered glyphs, e.g. after a theme or font
// change.
func (c *Controller) ClearCache() {
	c.cache.Clear()
}

// PreCommand runs on command-loop entry: destroy the previous cycle's
// annotations and invalidate any pending redraw. Cheap and idempotent.
func (c *Controller) PreCommand() {
	c.host.ClearAnnotations()
	c.gen++
	c.state = StateIdle
}

// PostCommand runs on command-loop exit: redraw immediately, or arm the
// configured delay.
func (c *Controller) PostCommand() {
	if c.opts.RedrawDelay <= 0 {
		c.refresh()
		return
	}
	c.gen++
	c.state = StatePendingRedraw
	if c.sched != nil {
		c.sched.Schedule(c.opts.RedrawDelay, c.gen)
	}
}

// TimerFired completes a delayed redraw. A firing whose generation does
// not match the one most recently armed is stale and does nothing.
func (c *Controller) TimerFired(gen uint64) {
	if c.state != StatePendingRedraw || gen != c.gen {
		logger.Debug("stale redraw timer ignored", "gen", gen, "current", c.gen)
		return
	}
	c.refresh()
}

func (c *Controller) refresh() {
	c.span = Span{Start: 0, End: -1}
	c.state = StateDrawn
	if c.host.PromptActive() {
		return
	}
	if c.opts.Eligible != nil && !c.opts.Eligible() {
		return
	}

	cur := c.host.Cursor()
	column, opener := Locate(c.host, cur, c.opts.TabWidth)
	if column <= c.opts.Threshold {
		return
	}
	start, end := Expand(c.host, column, opener, c.host.Viewport(), c.opts.TabWidth)
	if end < start {
		return
	}
	c.span = Span{Start: start, End: end, Column: column}

	geom := c.geometry()
	target := column - 1
	anns := make([]Annotation, 0, end-start+1)
	for row := start; row <= end; row++ {
		ann, ok := RenderLine(row, c.host.Line(row), target, c.opts.TabWidth, geom, c.cache)
		if !ok {
			continue
		}
		if coversCursor(ann, cur, len(c.host.Line(row))) {
			continue
		}
		anns = append(anns, ann)
	}
	c.host.Apply(anns)
	logger.Debug("guide drawn",
		"column", column, "start", start, "end", end, "glyphs", len(anns))
}

func (c *Controller) geometry() Geometry {
	if !c.opts.RichGlyphs || !c.opts.Graphical {
		return Geometry{}
	}
	curW, curH := c.host.CellMetrics()
	return Geometry{
		CellWidth:  c.opts.CharWidth.Resolve(curW, NominalCellWidth),
		CellHeight: c.opts.CharHeight.Resolve(curH, NominalCellHeight),
		LeftMargin: c.opts.LeftMargin,
		HeightAdj:  c.opts.HeightAdj,
	}
}

// coversCursor reports whether the annotation would sit in the cursor's
// own cell. The guide is never drawn through the caret.
func coversCursor(ann Annotation, cur Cursor, lineLen int) bool {
	if ann.Row != cur.Row {
		return false
	}
	switch ann.Mode {
	case ModeReplace:
		return ann.Col == cur.Col
	case ModeAppend:
		return cur.Col >= lineLen
	}
	return false
}
