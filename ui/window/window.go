// Package window runs the optional preview window around a started app.
package window

import (
	"context"
	"fmt"
	"time"

	"github.com/soocke/gesture-scroll/app"
	"github.com/soocke/gesture-scroll/domain/capture"
	"github.com/soocke/gesture-scroll/ui/model"
	"github.com/soocke/gesture-scroll/ui/presenter"
	"github.com/soocke/gesture-scroll/ui/theme"
	"github.com/soocke/gesture-scroll/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	tick   = 100 * time.Millisecond
	width  = 760
	height = 720
)

type window struct {
	ctx     context.Context
	app     *app.App
	root    *view.RootView
	capture *presenter.CapturePresenter
	loop    *presenter.Loop
	afterID string
}

// Run starts a, shows the window and blocks until the window is closed or
// ctx is done. a is stopped before Run returns.
func Run(ctx context.Context, a *app.App, title string) error {
	if err := a.Start(ctx); err != nil {
		return err
	}
	defer a.Stop()

	w := &window{ctx: ctx, app: a}
	theme.InitStyles(false)
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", w.exit)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))

	region := view.NewRegionSelector(a.Config, a.ConfigPath, capture.ScreenBounds, a.Logger)
	a.Source.SetSelectionProvider(region.ActiveRect)

	w.root = view.NewRootView(a.Config, a.Logger)
	w.root.Build(w.toggleCapture, region.OpenOrFocus, region.Clear, w.exit)
	w.root.SetCaptureActive(a.Source.Running())

	masks := a.Masks
	if masks == nil {
		masks = model.NewMaskModel()
	}
	preview := presenter.NewPreviewPresenter(masks, w.root)
	w.capture = presenter.NewCapturePresenter(ctx, a.Source, a.Pipeline, preview, w.root, a.Logger)
	w.loop = presenter.NewLoop(
		presenter.NewSessionPresenter(model.NewSessionModel(), a.Source, a.Pipeline, w.root),
		presenter.NewStatePresenter(a.Pipeline, w.root),
		preview,
		w.schedule,
	)
	w.loop.Tick()
	App.Wait()
	return nil
}

func (w *window) schedule() {
	w.afterID = TclAfter(tick, func() {
		if w.ctx.Err() != nil {
			w.exit()
			return
		}
		w.loop.Tick()
	})
}

func (w *window) toggleCapture() {
	if err := w.capture.Toggle(); err != nil {
		w.root.SetMotionLabel("Capture unavailable: " + err.Error())
	}
	if w.app.Masks != nil {
		w.app.Masks.SetEnabled(w.app.Source.Running())
	}
}

func (w *window) exit() {
	if w.afterID != "" {
		TclAfterCancel(w.afterID)
		w.afterID = ""
	}
	Destroy(App)
}
