package images

import "image"

// MaskImage renders a 0/1 difference mask as white changed pixels on black.
// It returns nil when mask does not hold w*h entries.
func MaskImage(mask []byte, w, h int) *image.Gray {
	if w <= 0 || h <= 0 || len(mask) != w*h {
		return nil
	}
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i, v := range mask {
		if v != 0 {
			img.Pix[i] = 0xFF
		}
	}
	return img
}

// CentroidRow returns the mean row of the set mask pixels, or -1 when none is set.
func CentroidRow(mask []byte, w, h int) int {
	if w <= 0 || len(mask) < w*h {
		return -1
	}
	var sum, n int
	for y := 0; y < h; y++ {
		for _, v := range mask[y*w : (y+1)*w] {
			if v != 0 {
				sum += y
				n++
			}
		}
	}
	if n == 0 {
		return -1
	}
	return sum / n
}

// MarkRow paints row y of img mid-gray where it is black, leaving changed
// pixels visible.
func MarkRow(img *image.Gray, y int) {
	if img == nil || y < 0 || y >= img.Rect.Dy() {
		return
	}
	row := img.Pix[y*img.Stride : y*img.Stride+img.Rect.Dx()]
	for i, v := range row {
		if v == 0 {
			row[i] = 0x80
		}
	}
}
