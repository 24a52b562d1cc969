package view

import (
	"fmt"

	"github.com/soocke/gesture-scroll/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ParamsPanel lists the effective detection and gesture parameters. Values
// are read-only; they come from the config file and flags.
type ParamsPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
}

type paramsPanel struct {
	cfg *config.Config
}

func NewParamsPanel(cfg *config.Config) ParamsPanel {
	return &paramsPanel{cfg: cfg}
}

type param struct{ label, value string }

func paramsOf(c *config.Config) []param {
	if c == nil {
		return nil
	}
	region := "full screen"
	if r := c.Selection(); r != nil {
		region = r.String()
	}
	return []param{
		{"Diff Threshold", fmt.Sprintf("%d", c.DiffThreshold)},
		{"Motion Fraction", fmt.Sprintf("%.3f", c.MotionFraction)},
		{"Noise Floor (rows)", fmt.Sprintf("%.1f", c.DirectionNoiseFloor)},
		{"Smoothing", fmt.Sprintf("%.2f", c.DirectionSmoothing)},
		{"Cooldown", c.Cooldown().String()},
		{"Scroll Offset (px)", fmt.Sprintf("%d", c.ScrollOffsetPixels)},
		{"Scroll Duration", c.ScrollDuration().String()},
		{"Frame Size", fmt.Sprintf("%dx%d", c.FrameWidth, c.FrameHeight)},
		{"Source / Sink", c.Source + " / " + c.Sink},
		{"Region", region},
	}
}

func (v *paramsPanel) Build(startRow int) (row int) {
	row = startRow
	for _, p := range paramsOf(v.cfg) {
		lbl := Label(Txt(p.label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		val := Label(Txt(p.value), Anchor("w"), Relief("groove"), Width(18))
		Grid(val, Row(row), Column(2), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		row++
	}
	return row
}
