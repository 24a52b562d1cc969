package view

import (
	"image"

	"github.com/soocke/gesture-scroll/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// MaskPreview shows the latest difference mask scaled to the window.
type MaskPreview interface {
	Update(img image.Image)
	Reset()
}

type maskPreview struct {
	label *LabelWidget
	photo *Img // last Tk photo, deleted before replacement
}

const (
	maxPreviewW = 400
	maxPreviewH = 300
)

// NewMaskPreview creates the preview label spanning columns 0-3 of row.
func NewMaskPreview(row int) MaskPreview {
	photo := NewPhoto(Data(placeholderPNG()))
	lbl := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(lbl, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return &maskPreview{label: lbl, photo: photo}
}

func placeholderPNG() []byte {
	return images.EncodePNG(image.NewGray(image.Rect(0, 0, 200, 150)))
}

func (v *maskPreview) Update(img image.Image) {
	if v.label == nil || img == nil {
		return
	}
	v.show(images.EncodePNG(images.ScaleToFit(img, maxPreviewW, maxPreviewH)))
}

func (v *maskPreview) Reset() {
	if v.label != nil {
		v.show(placeholderPNG())
	}
}

func (v *maskPreview) show(png []byte) {
	if png == nil {
		return
	}
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(png))
	v.label.Configure(Image(v.photo))
}
