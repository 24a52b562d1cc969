package view

import (
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/soocke/gesture-scroll/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// RegionSelector lets the user constrain screen capture to a rectangle by
// placing a transparent window over the scrolling content. ActiveRect is
// safe to call from the capture goroutine.
type RegionSelector interface {
	OpenOrFocus()
	Clear()
	ActiveRect() *image.Rectangle
}

type regionSelector struct {
	logger     *slog.Logger
	cfg        *config.Config
	cfgPath    string
	screenSize func() image.Rectangle
	selection  atomic.Pointer[image.Rectangle]
	win        *ToplevelWidget
}

// NewRegionSelector restores the saved region from cfg. screenSize reports the
// primary screen bounds used to place the selection window.
func NewRegionSelector(cfg *config.Config, cfgPath string, screenSize func() image.Rectangle, logger *slog.Logger) RegionSelector {
	v := &regionSelector{logger: logger, cfg: cfg, cfgPath: cfgPath, screenSize: screenSize}
	if cfg != nil {
		v.selection.Store(cfg.Selection())
	}
	return v
}

func (v *regionSelector) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle("Capture Region")
	v.win = win
	WmGeometry(win.Window, initialGeometry(v.screen()))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-alpha", 0.4)
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(1))
	center := win.Frame(Background("#008080"))
	Grid(center, Row(0), Column(0), Sticky("nsew"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Sticky("we"))
	confirm := win.Button(Txt("Use Region [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.cancel))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.cancel))
}

// Clear drops the region; capture falls back to the full screen.
func (v *regionSelector) Clear() {
	v.selection.Store(nil)
	if v.cfg != nil {
		v.cfg.SelectionW, v.cfg.SelectionH = 0, 0
		v.save()
	}
	if v.logger != nil {
		v.logger.Info("capture region cleared")
	}
}

func (v *regionSelector) confirm() {
	if v.win == nil {
		return
	}
	if rect, ok := parseGeometry(WmGeometry(v.win.Window)); ok {
		v.selection.Store(&rect)
		if v.cfg != nil {
			v.cfg.SelectionX, v.cfg.SelectionY = rect.Min.X, rect.Min.Y
			v.cfg.SelectionW, v.cfg.SelectionH = rect.Dx(), rect.Dy()
			v.save()
		}
		if v.logger != nil {
			v.logger.Info("capture region set", "rect", rect.String())
		}
	}
	v.destroy()
}

func (v *regionSelector) cancel() { v.destroy() }

func (v *regionSelector) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}

func (v *regionSelector) save() {
	if v.cfgPath == "" {
		return
	}
	if err := v.cfg.Save(v.cfgPath); err != nil && v.logger != nil {
		v.logger.Error("config save failed", "error", err)
	}
}

func (v *regionSelector) ActiveRect() *image.Rectangle {
	r := v.selection.Load()
	if r == nil || r.Empty() {
		return nil
	}
	c := *r
	return &c
}

func (v *regionSelector) screen() image.Rectangle {
	if v.screenSize != nil {
		if r := v.screenSize(); !r.Empty() {
			return r
		}
	}
	return image.Rect(0, 0, 1920, 1080)
}

// initialGeometry centres a window of 2/3 x 5/9 of the screen.
func initialGeometry(screen image.Rectangle) string {
	w, h := max(screen.Dx()*2/3, 1), max(screen.Dy()*5/9, 1)
	x, y := screen.Min.X+(screen.Dx()-w)/2, screen.Min.Y+(screen.Dy()-h)/2
	return fmt.Sprintf("%dx%d+%d+%d", w, h, x, y)
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y"
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// parseGeometry parses a Tk geometry string into a rectangle.
func parseGeometry(g string) (image.Rectangle, bool) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
