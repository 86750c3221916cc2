package app

import (
	"os"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qguide/internal/config"
	"github.com/kobzarvs/qguide/internal/guide"
	"github.com/kobzarvs/qguide/internal/logger"
	"github.com/kobzarvs/qguide/internal/view"
)

// App is the top-level runtime for qguide.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	runtime.LockOSThread()
	if err := logger.Init(os.Getenv("QGUIDE_DEBUG") != ""); err != nil {
		return err
	}
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctxs, err := config.LoadContexts()
	if err != nil {
		return err
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	v := view.New(cfg)
	if len(a.args) > 0 {
		path := a.args[0]
		if err := v.Open(path); err != nil {
			return err
		}
		if ctx := ctxs.Match(path); ctx != nil {
			v.SetContext(ctx.Name)
		}
	}

	excluded := make(map[string]struct{}, len(cfg.Guide.ExcludedContexts))
	for _, name := range cfg.Guide.ExcludedContexts {
		excluded[name] = struct{}{}
	}
	ctrl := guide.NewController(v, GuideOptions(cfg, func() bool {
		_, ok := excluded[v.Context()]
		return !ok
	}), &screenScheduler{screen: s})

	logger.Info("qguide started", "context", v.Context(), "delay_ms", cfg.Guide.RedrawDelayMs)

	// First render fixes the viewport geometry before the initial guide
	// computation.
	v.Render(s)
	ctrl.PostCommand()
	v.Render(s)
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			ctrl.PreCommand()
			if v.HandleKey(ev) {
				return nil
			}
			v.UpdateScroll()
			ctrl.PostCommand()
		case *tcell.EventResize:
			s.Sync()
			ctrl.PreCommand()
			v.Render(s)
			ctrl.PostCommand()
		case *tcell.EventInterrupt:
			if gen, ok := ev.Data().(redrawGen); ok {
				ctrl.TimerFired(uint64(gen))
			}
		}
		v.Render(s)
	}
}

// GuideOptions maps the configuration surface onto controller options.
func GuideOptions(cfg config.Config, eligible func() bool) guide.Options {
	lineChar := '|'
	if rs := []rune(cfg.Guide.LineChar); len(rs) > 0 {
		lineChar = rs[0]
	}
	return guide.Options{
		TabWidth:    cfg.Editor.TabWidth,
		LineChar:    lineChar,
		Color:       view.GuideRGBA(cfg),
		RichGlyphs:  cfg.Guide.RichGlyphs,
		Graphical:   false, // cell terminal host
		CharWidth:   guide.MetricFromConfig(cfg.Guide.CharWidth),
		CharHeight:  guide.MetricFromConfig(cfg.Guide.CharHeight),
		LeftMargin:  cfg.Guide.LeftMargin,
		HeightAdj:   cfg.Guide.HeightAdjustment,
		DashLength:  cfg.Guide.DashLength,
		Threshold:   cfg.Guide.Threshold,
		RedrawDelay: time.Duration(cfg.Guide.RedrawDelayMs) * time.Millisecond,
		Eligible:    eligible,
	}
}

type redrawGen uint64

// screenScheduler marshals delayed redraws back onto the tcell event
// loop so the controller stays single-threaded.
type screenScheduler struct {
	screen tcell.Screen
}

func (ss *screenScheduler) Schedule(d time.Duration, gen uint64) {
	time.AfterFunc(d, func() {
		if err := ss.screen.PostEvent(tcell.NewEventInterrupt(redrawGen(gen))); err != nil {
			logger.Warn("redraw event dropped", "gen", gen, "err", err)
		}
	})
}
