package motion

import (
	"testing"
)

// rowMask returns a w x h mask with rows [y0,y1) set.
func rowMask(w, h, y0, y1 int) []byte {
	m := make([]byte, w*h)
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			m[y*w+x] = 1
		}
	}
	return m
}

func TestVerticalCentroid(t *testing.T) {
	c, ok := VerticalCentroid(rowMask(4, 10, 2, 4), 4, 10)
	if !ok || c != 2.5 {
		t.Fatalf("centroid=%v ok=%v, want 2.5", c, ok)
	}
	if _, ok := VerticalCentroid(make([]byte, 40), 4, 10); ok {
		t.Fatalf("empty mask must report no centroid")
	}
}

func TestClassifier_LowerHalfIsDown(t *testing.T) {
	c := NewClassifier(2.0, 0.5)
	dir, shift := c.Classify(rowMask(320, 240, 150, 200), 320, 240)
	if dir != Down || shift <= 0 {
		t.Fatalf("lower band: dir=%v shift=%v, want down", dir, shift)
	}
}

func TestClassifier_UpperHalfIsUp(t *testing.T) {
	c := NewClassifier(2.0, 0.5)
	dir, shift := c.Classify(rowMask(320, 240, 10, 60), 320, 240)
	if dir != Up || shift >= 0 {
		t.Fatalf("upper band: dir=%v shift=%v, want up", dir, shift)
	}
}

func TestClassifier_CentredMotionIsIndeterminate(t *testing.T) {
	c := NewClassifier(2.0, 0.5)
	// rows 100..139 centre on 119.5, the frame centre.
	dir, shift := c.Classify(rowMask(320, 240, 100, 140), 320, 240)
	if dir != None || shift != 0 {
		t.Fatalf("centred band: dir=%v shift=%v, want none", dir, shift)
	}
}

func TestClassifier_FollowsMovingBand(t *testing.T) {
	c := NewClassifier(2.0, 0.5)
	// Band starting above the centre and moving up by 10 rows per sample.
	for i := 0; i < 8; i++ {
		y0 := 100 - 10*i
		dir, shift := c.Classify(rowMask(64, 240, y0, y0+20), 64, 240)
		if dir != Up {
			t.Fatalf("sample %d: dir=%v shift=%v, want up", i, dir, shift)
		}
	}
}

func TestClassifier_ClassifyConvergesOnStationaryMotion(t *testing.T) {
	c := NewClassifier(2.0, 0.5)
	mask := rowMask(32, 240, 190, 210)
	var dir Direction
	for i := 0; i < 12; i++ {
		dir, _ = c.Classify(mask, 32, 240)
	}
	if dir != None {
		t.Fatalf("flicker at a fixed position should converge to none, got %v", dir)
	}
}

func TestClassifier_EmptyMaskLeavesEstimate(t *testing.T) {
	c := NewClassifier(2.0, 0.5)
	if dir, _ := c.Classify(make([]byte, 100), 10, 10); dir != None {
		t.Fatalf("empty mask dir=%v", dir)
	}
	if _, seeded := c.Estimate(); seeded {
		t.Fatalf("estimate seeded by empty mask")
	}
}

func TestClassifier_ResetAndResize(t *testing.T) {
	c := NewClassifier(2.0, 1.0)
	c.Classify(rowMask(10, 100, 90, 100), 10, 100)
	if est, _ := c.Estimate(); est != 94.5 {
		t.Fatalf("estimate %v, want 94.5 with smoothing 1", est)
	}
	c.Reset()
	if _, seeded := c.Estimate(); seeded {
		t.Fatalf("reset did not clear estimate")
	}
	// A different height re-seeds at the new centre.
	c.Classify(rowMask(10, 100, 90, 100), 10, 100)
	dir, _ := c.Classify(rowMask(10, 20, 15, 20), 10, 20)
	if dir != Down {
		t.Fatalf("resized frame should be measured from its own centre, got %v", dir)
	}
}

func TestClassifier_MeasureLeavesEstimate(t *testing.T) {
	c := NewClassifier(2.0, 0.5)
	mask := rowMask(32, 240, 190, 210)
	for i := 0; i < 12; i++ {
		dir, shift, centroid, ok := c.Measure(mask, 32, 240)
		if !ok || dir != Down || shift != 80 || centroid != 199.5 {
			t.Fatalf("measure %d: dir=%v shift=%v centroid=%v ok=%v", i, dir, shift, centroid, ok)
		}
	}
	if _, seeded := c.Estimate(); seeded {
		t.Fatalf("measure seeded the estimate")
	}
}

func TestClassifier_CommitMovesReference(t *testing.T) {
	c := NewClassifier(2.0, 0.5)
	mask := rowMask(32, 240, 190, 210)
	_, _, centroid, _ := c.Measure(mask, 32, 240)
	c.Commit(centroid, 240)
	if est, _ := c.Estimate(); est != 159.5 {
		t.Fatalf("estimate %v, want 159.5", est)
	}
	dir, shift, _, _ := c.Measure(mask, 32, 240)
	if dir != Down || shift != 40 {
		t.Fatalf("after commit dir=%v shift=%v, want down by 40", dir, shift)
	}
}
