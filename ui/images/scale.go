package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleToFit performs a nearest-neighbour scale so that the returned image fits within
// maxW x maxH preserving aspect ratio. If the source already fits, the original is returned.
// Grayscale sources stay grayscale.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}
	newW, newH := fitSize(w, h, max(maxW, 1), max(maxH, 1))
	if g, ok := src.(*image.Gray); ok {
		dst := image.NewGray(image.Rect(0, 0, newW, newH))
		for y := 0; y < newH; y++ {
			sy := y * h / newH
			row := g.Pix[(b.Min.Y+sy-g.Rect.Min.Y)*g.Stride:]
			for x := 0; x < newW; x++ {
				dst.Pix[y*dst.Stride+x] = row[b.Min.X-g.Rect.Min.X+x*w/newW]
			}
		}
		return dst
	}
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	for y := 0; y < newH; y++ {
		sy := int(float64(y) * float64(h) / float64(newH))
		for x := 0; x < newW; x++ {
			sx := int(float64(x) * float64(w) / float64(newW))
			r, g, bl, a := src.At(b.Min.X+sx, b.Min.Y+sy).RGBA()
			dst.SetRGBA(x, y, color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), uint8(a >> 8)})
		}
	}
	return dst
}

func fitSize(w, h, maxW, maxH int) (int, int) {
	ratio := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return max(int(float64(w)*ratio+0.5), 1), max(int(float64(h)*ratio+0.5), 1)
}
