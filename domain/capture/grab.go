package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// Grab captures sel clipped to the primary screen, or the full screen when
// sel is nil.
func Grab(sel *image.Rectangle) (*image.RGBA, error) {
	if sel == nil || sel.Empty() {
		return screenshot.CaptureScreen()
	}
	screen, err := screenshot.ScreenRect()
	if err != nil {
		return nil, err
	}
	r := sel.Intersect(screen)
	if r.Empty() {
		return nil, fmt.Errorf("capture: selection out of bounds sel=%v screen=%v", *sel, screen)
	}
	return screenshot.CaptureRect(r)
}

// ScreenBounds returns the primary screen rectangle, or an empty rectangle
// when it cannot be queried.
func ScreenBounds() image.Rectangle {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return image.Rectangle{}
	}
	return r
}
