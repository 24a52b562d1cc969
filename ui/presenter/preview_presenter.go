package presenter

import (
	"fmt"
	"image"

	"github.com/soocke/gesture-scroll/ui/images"
	"github.com/soocke/gesture-scroll/ui/model"
)

// MaskSource yields the newest difference mask.
type MaskSource interface {
	Latest() (model.MaskSnapshot, bool)
}

// PreviewView renders the mask preview and its caption.
type PreviewView interface {
	UpdateMask(img image.Image)
	SetMotionLabel(text string)
}

// PreviewPresenter pushes each new mask to the view once, with the centroid
// row marked.
type PreviewPresenter struct {
	masks   MaskSource
	view    PreviewView
	lastSeq uint64
}

func NewPreviewPresenter(masks MaskSource, view PreviewView) *PreviewPresenter {
	return &PreviewPresenter{masks: masks, view: view}
}

func (p *PreviewPresenter) Tick() {
	if p == nil || p.masks == nil || p.view == nil {
		return
	}
	snap, ok := p.masks.Latest()
	if !ok || snap.Seq == p.lastSeq {
		return
	}
	p.lastSeq = snap.Seq
	img := images.MaskImage(snap.Mask, snap.Width, snap.Height)
	if img == nil {
		return
	}
	images.MarkRow(img, images.CentroidRow(snap.Mask, snap.Width, snap.Height))
	p.view.UpdateMask(img)
	p.view.SetMotionLabel(fmt.Sprintf("Motion: %.1f%%  shift %+.1f", snap.Fraction*100, snap.Shift))
}

// Reset forgets the last shown mask so the next one is always drawn.
func (p *PreviewPresenter) Reset() {
	if p != nil {
		p.lastSeq = 0
	}
}
