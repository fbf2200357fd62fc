package sonify

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// ErrImageTooLarge is returned for sample buffers larger than MaxPlayableSize.
var ErrImageTooLarge = errors.New("image exceeds playable size")

// SampleBuffer is an immutable grid of RGBA samples, four bytes per pixel in
// row-major order. The byte slice may be shorter than Width*Height*4; reads
// past its end report no sample.
type SampleBuffer struct {
	width  int
	height int
	pix    []uint8
}

// NewSampleBuffer copies pix into a new buffer of the given dimensions.
func NewSampleBuffer(width, height int, pix []uint8) (*SampleBuffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid sample buffer size %dx%d", width, height)
	}
	if width > MaxPlayableSize || height > MaxPlayableSize {
		return nil, fmt.Errorf("%w: %dx%d > %d", ErrImageTooLarge, width, height, MaxPlayableSize)
	}
	data := make([]uint8, len(pix))
	copy(data, pix)
	return &SampleBuffer{width: width, height: height, pix: data}, nil
}

func (b *SampleBuffer) Width() int  { return b.width }
func (b *SampleBuffer) Height() int { return b.height }

// Len is the number of bytes held, normally Width*Height*4.
func (b *SampleBuffer) Len() int { return len(b.pix) }

// Index is the byte offset of the sample at (x, y).
func (b *SampleBuffer) Index(x, y int) int {
	return (y*b.width + x) * 4
}

// At returns the sample at (x, y) and whether all four bytes of it exist.
func (b *SampleBuffer) At(x, y int) (color.RGBA, bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return color.RGBA{}, false
	}
	i := b.Index(x, y)
	if i+3 >= len(b.pix) {
		return color.RGBA{}, false
	}
	return color.RGBA{R: b.pix[i], G: b.pix[i+1], B: b.pix[i+2], A: b.pix[i+3]}, true
}

// ScaledSize shrinks width and height proportionally so neither exceeds
// limit; images already within the limit keep their size.
func ScaledSize(width, height, limit int) (int, int) {
	if width < 1 || height < 1 {
		return 1, 1
	}
	scale := math.Min(math.Min(float64(limit)/float64(width), float64(limit)/float64(height)), 1)
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Downsample scales img to at most MaxPlayableSize on each edge and returns
// its samples.
func Downsample(img image.Image) *SampleBuffer {
	bounds := img.Bounds()
	w, h := ScaledSize(bounds.Dx(), bounds.Dy(), MaxPlayableSize)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)

	return &SampleBuffer{width: w, height: h, pix: dst.Pix}
}
