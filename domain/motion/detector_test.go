package motion

import (
	"errors"
	"testing"
	"time"

	"github.com/soocke/gesture-scroll/domain/frame"
)

// synthFrame creates a uniform grayscale frame and applies an optional mutate func.
func synthFrame(w, h int, base byte, mutate func(px []byte, w, h int)) *frame.Frame {
	px := make([]byte, w*h)
	for i := range px {
		px[i] = base
	}
	if mutate != nil {
		mutate(px, w, h)
	}
	f, err := frame.New(w, h, px, time.Now(), 0)
	if err != nil {
		panic(err)
	}
	return f
}

// applyRows adds delta to every pixel in rows [y0,y1), saturating at 255.
func applyRows(px []byte, w, h, y0, y1 int, delta int) {
	if y0 < 0 {
		y0 = 0
	}
	if y1 > h {
		y1 = h
	}
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			v := int(px[y*w+x]) + delta
			if v > 255 {
				v = 255
			}
			px[y*w+x] = byte(v)
		}
	}
}

func TestDetector_IdenticalFramesNoChange(t *testing.T) {
	d := NewDetector(25, 0.05)
	a := synthFrame(320, 240, 90, nil)
	b := synthFrame(320, 240, 90, nil)
	res, mask, err := d.Diff(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed != 0 || res.Total != 76800 {
		t.Fatalf("expected 0 changed of 76800, got %d of %d", res.Changed, res.Total)
	}
	for i, v := range mask {
		if v != 0 {
			t.Fatalf("mask[%d]=%d on identical frames", i, v)
		}
	}
	if d.Qualifies(res) {
		t.Fatalf("identical frames must not qualify")
	}
}

func TestDetector_CountsExactlyKPixelsAnywhere(t *testing.T) {
	d := NewDetector(25, 0.05)
	const w, h = 64, 48
	positions := [][]int{
		{0, 1, 2, 3, 4},
		{w*h - 1, w*h - 2, 17, 900, 2000},
		{63, 64, 127, 128, 1500},
	}
	for _, idxs := range positions {
		prev := synthFrame(w, h, 100, nil)
		cur := synthFrame(w, h, 100, func(px []byte, w, h int) {
			for _, i := range idxs {
				px[i] = 100 + 26
			}
		})
		res, mask, err := d.Diff(prev, cur)
		if err != nil {
			t.Fatal(err)
		}
		if res.Changed != len(idxs) {
			t.Fatalf("positions %v: changed=%d want %d", idxs, res.Changed, len(idxs))
		}
		for _, i := range idxs {
			if mask[i] != 1 {
				t.Fatalf("mask[%d] not set", i)
			}
		}
	}
}

func TestDetector_ThresholdIsStrictAndSymmetric(t *testing.T) {
	d := NewDetector(25, 0.05)
	prev := synthFrame(4, 1, 100, nil)
	cur := synthFrame(4, 1, 100, func(px []byte, w, h int) {
		px[0] = 125 // +25: not above threshold
		px[1] = 126 // +26
		px[2] = 74  // -26
		px[3] = 75  // -25
	})
	res, mask, err := d.Diff(prev, cur)
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed != 2 || mask[0] != 0 || mask[1] != 1 || mask[2] != 1 || mask[3] != 0 {
		t.Fatalf("unexpected threshold result changed=%d mask=%v", res.Changed, mask)
	}
}

func TestDetector_QualifiesStrictlyAboveFraction(t *testing.T) {
	d := NewDetector(25, 0.05)
	total := 320 * 240
	if d.Qualifies(DiffResult{Changed: 3840, Total: total}) {
		t.Fatalf("boundary equality must not qualify")
	}
	if !d.Qualifies(DiffResult{Changed: 3841, Total: total}) {
		t.Fatalf("one pixel above the boundary must qualify")
	}
	if d.Qualifies(DiffResult{}) {
		t.Fatalf("empty result must not qualify")
	}
}

func TestDetector_DimensionMismatch(t *testing.T) {
	d := NewDetector(25, 0.05)
	_, _, err := d.Diff(synthFrame(320, 240, 0, nil), synthFrame(160, 120, 0, nil))
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestDetector_MaskReusedAcrossCalls(t *testing.T) {
	d := NewDetector(25, 0.05)
	prev := synthFrame(10, 10, 0, nil)
	cur := synthFrame(10, 10, 0, func(px []byte, w, h int) { applyRows(px, w, h, 0, 5, 80) })
	_, m1, _ := d.Diff(prev, cur)
	res, m2, _ := d.Diff(prev, prev)
	if &m1[0] != &m2[0] {
		t.Fatalf("mask buffer reallocated for same-size frames")
	}
	if res.Changed != 0 || m2[0] != 0 {
		t.Fatalf("stale mask values survived: changed=%d", res.Changed)
	}
}
