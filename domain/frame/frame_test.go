package frame

import (
	"errors"
	"image"
	"testing"
	"time"
)

// synthRGBA creates a uniform RGBA image and applies an optional mutate func.
func synthRGBA(w, h int, r, g, b byte, mutate func(img *image.RGBA)) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, 255
	}
	if mutate != nil {
		mutate(img)
	}
	return img
}

func TestNew_ValidatesLength(t *testing.T) {
	if _, err := New(4, 4, make([]byte, 15), time.Now(), 1); !errors.Is(err, ErrInvalidFrame) {
		t.Fatalf("expected ErrInvalidFrame, got %v", err)
	}
	if _, err := New(0, 4, nil, time.Now(), 1); !errors.Is(err, ErrInvalidFrame) {
		t.Fatalf("expected ErrInvalidFrame for zero width, got %v", err)
	}
	f, err := New(4, 4, make([]byte, 16), time.Now(), 7)
	if err != nil || f.Len() != 16 || f.Seq != 7 {
		t.Fatalf("unexpected frame %+v err=%v", f, err)
	}
}

func TestFromRGBA_Luminance(t *testing.T) {
	white := synthRGBA(8, 8, 255, 255, 255, nil)
	f, err := FromRGBA(white, 8, 8, time.Now(), 1)
	if err != nil {
		t.Fatal(err)
	}
	// 77+150+29 = 256, so pure white maps to 255.
	for i, v := range f.Pix {
		if v != 255 {
			t.Fatalf("pixel %d = %d, want 255", i, v)
		}
	}
	green := synthRGBA(2, 2, 0, 200, 0, nil)
	f, _ = FromRGBA(green, 2, 2, time.Now(), 2)
	if want := byte((150 * 200) >> 8); f.Pix[0] != want {
		t.Fatalf("green luminance %d, want %d", f.Pix[0], want)
	}
}

func TestFromRGBA_Downsamples(t *testing.T) {
	// Left half black, right half white.
	src := synthRGBA(640, 480, 0, 0, 0, func(img *image.RGBA) {
		for y := 0; y < 480; y++ {
			for x := 320; x < 640; x++ {
				i := y*img.Stride + x*4
				img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 255, 255, 255
			}
		}
	})
	f, err := FromRGBA(src, 320, 240, time.Now(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if f.Width != 320 || f.Height != 240 || len(f.Pix) != 320*240 {
		t.Fatalf("unexpected size %dx%d len=%d", f.Width, f.Height, len(f.Pix))
	}
	if f.Pix[10*320+10] != 0 || f.Pix[10*320+300] != 255 {
		t.Fatalf("halves not preserved: left=%d right=%d", f.Pix[10*320+10], f.Pix[10*320+300])
	}
}

func TestFromRGBA_SubImageOffset(t *testing.T) {
	src := synthRGBA(10, 10, 0, 0, 0, func(img *image.RGBA) {
		i := 5*img.Stride + 5*4
		img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 255, 255, 255
	})
	sub := src.SubImage(image.Rect(5, 5, 7, 7)).(*image.RGBA)
	f, err := FromRGBA(sub, 2, 2, time.Now(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if f.Pix[0] != 255 || f.Pix[3] != 0 {
		t.Fatalf("sub image origin not honoured: %v", f.Pix)
	}
}

func TestAcquireRelease_ReusesBuffers(t *testing.T) {
	f := Acquire(16, 8)
	if len(f.Pix) != 128 || f.Width != 16 || f.Height != 8 {
		t.Fatalf("unexpected acquire result %dx%d len=%d", f.Width, f.Height, len(f.Pix))
	}
	f.Seq = 42
	Release(f)
	g := Acquire(8, 8)
	if len(g.Pix) != 64 || g.Seq != 0 || !g.Timestamp.IsZero() {
		t.Fatalf("reacquired frame not reset: len=%d seq=%d", len(g.Pix), g.Seq)
	}
	Release(nil) // no panic
}
