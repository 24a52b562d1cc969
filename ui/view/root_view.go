package view

import (
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/soocke/gesture-scroll/config"
	"github.com/soocke/gesture-scroll/ui/presenter"
	"github.com/soocke/gesture-scroll/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level window and wires UI callbacks.
// It implements the presenter view contracts.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	// Subviews
	Session SessionStats
	Params  ParamsPanel
	Preview MaskPreview

	// Widgets
	StateLabel    *TLabelWidget
	CountersLabel *LabelWidget
	MotionLabel   *LabelWidget
	captureBtn    *TButtonWidget
	previewRow    int
}

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(onToggleCapture, onSelectRegion, onClearRegion, onExit func()) {
	if rv == nil {
		return
	}
	// Row 0: session stats, state label, buttons frame
	rv.Session = NewSessionStats(nil, 0, 0)
	rv.StateLabel = TLabel(Txt("State: idle"), Style(theme.StyleIdleLabel))
	Grid(rv.StateLabel, Row(0), Column(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Rowspan(2), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	rv.captureBtn = TButton(Txt("Start Capture"), Command(onToggleCapture), Style(theme.StylePrimaryButton))
	Grid(rv.captureBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	regionBtn := Button(Txt("Capture Region"), Command(onSelectRegion))
	Grid(regionBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	clearBtn := Button(Txt("Full Screen"), Command(onClearRegion))
	Grid(clearBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := TButton(Txt("Exit"), Command(onExit), Style(theme.StyleDangerButton))
	Grid(exitBtn, In(btnFrame), Row(3), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Row 1: pipeline counters
	rv.CountersLabel = Label(Txt(formatCounters(presenter.Counters{})), Anchor("w"))
	Grid(rv.CountersLabel, Row(1), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.2m"))

	rv.Params = NewParamsPanel(rv.cfg)
	rv.previewRow = rv.Params.Build(2)

	rv.Preview = NewMaskPreview(rv.previewRow)
	rv.MotionLabel = Label(Txt("Motion: -"), Anchor("w"))
	Grid(rv.MotionLabel, Row(rv.previewRow+1), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"))
}

// SetStateLabel updates the state label text and its colour.
func (rv *RootView) SetStateLabel(text string) {
	if rv == nil || rv.StateLabel == nil {
		return
	}
	state := strings.TrimSpace(strings.TrimPrefix(text, "State:"))
	rv.StateLabel.Configure(Txt(text), Style(theme.StateStyle(state)))
}

// SetCounters renders the pipeline counters line.
func (rv *RootView) SetCounters(c presenter.Counters) {
	if rv != nil && rv.CountersLabel != nil {
		rv.CountersLabel.Configure(Txt(formatCounters(c)))
	}
}

// SetSession updates both session and total capture durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(session)
	rv.Session.SetTotal(total)
}

// SetCommands updates the command counts.
func (rv *RootView) SetCommands(session, total uint64) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetCommands(session, total)
	}
}

// UpdateMask proxies to the mask preview.
func (rv *RootView) UpdateMask(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Update(img)
	}
}

func (rv *RootView) SetMotionLabel(text string) {
	if rv != nil && rv.MotionLabel != nil {
		rv.MotionLabel.Configure(Txt(text))
	}
}

// --- CapturePresenter view contract methods ---
// PreviewReset clears the mask preview.
func (rv *RootView) PreviewReset() {
	if rv == nil {
		return
	}
	if rv.Preview != nil {
		rv.Preview.Reset()
	}
	rv.SetMotionLabel("Motion: -")
}

// SetCaptureActive flips the capture button caption.
func (rv *RootView) SetCaptureActive(active bool) {
	if rv == nil || rv.captureBtn == nil {
		return
	}
	if active {
		rv.captureBtn.Configure(Txt("Stop Capture"))
		return
	}
	rv.captureBtn.Configure(Txt("Start Capture"))
}
