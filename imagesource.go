package pdf417go

import (
	"fmt"
	"image"
)

// ImageLuminanceSource is an in-memory LuminanceSource. It supports cropping
// and rotation; cropped views share the parent's pixel buffer.
type ImageLuminanceSource struct {
	luminances []byte
	dataWidth  int
	left, top  int
	width      int
	height     int
}

// NewImageLuminanceSource converts img to luminance with
// (306*R + 601*G + 117*B + 0x200) >> 10 on 8-bit components. Fully
// transparent pixels count as white.
func NewImageLuminanceSource(img image.Image) *ImageLuminanceSource {
	if g, ok := img.(*image.Gray); ok {
		return NewGrayLuminanceSource(g)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	lum := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if a == 0 {
				lum[y*w+x] = 0xFF
				continue
			}
			lum[y*w+x] = byte((306*(r>>8) + 601*(g>>8) + 117*(bl>>8) + 0x200) >> 10)
		}
	}
	return newLuminanceSource(lum, w, h)
}

// NewGrayLuminanceSource copies the pixels of a greyscale image.
func NewGrayLuminanceSource(img *image.Gray) *ImageLuminanceSource {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	lum := make([]byte, w*h)
	for y := 0; y < h; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(lum[y*w:(y+1)*w], img.Pix[off:off+w])
	}
	return newLuminanceSource(lum, w, h)
}

// NewRawLuminanceSource wraps a row-major luminance buffer without copying.
func NewRawLuminanceSource(lum []byte, width, height int) (*ImageLuminanceSource, error) {
	if width <= 0 || height <= 0 || len(lum) < width*height {
		return nil, fmt.Errorf("%w: %dx%d luminance source over %d bytes", ErrArgument, width, height, len(lum))
	}
	return newLuminanceSource(lum, width, height), nil
}

func newLuminanceSource(lum []byte, w, h int) *ImageLuminanceSource {
	return &ImageLuminanceSource{luminances: lum, dataWidth: w, width: w, height: h}
}

// Row returns a row of luminance data.
func (s *ImageLuminanceSource) Row(y int, row []byte) []byte {
	if y < 0 || y >= s.height {
		return nil
	}
	if len(row) < s.width {
		row = make([]byte, s.width)
	}
	off := (y+s.top)*s.dataWidth + s.left
	copy(row, s.luminances[off:off+s.width])
	return row
}

// Matrix returns the entire luminance matrix.
func (s *ImageLuminanceSource) Matrix() []byte {
	out := make([]byte, s.width*s.height)
	for y := 0; y < s.height; y++ {
		off := (y+s.top)*s.dataWidth + s.left
		copy(out[y*s.width:(y+1)*s.width], s.luminances[off:off+s.width])
	}
	return out
}

// Width returns the width of the image.
func (s *ImageLuminanceSource) Width() int { return s.width }

// Height returns the height of the image.
func (s *ImageLuminanceSource) Height() int { return s.height }

// Crop returns a view of the rectangle at (left, top) with the given width
// and height, in this source's coordinates.
func (s *ImageLuminanceSource) Crop(left, top, width, height int) (LuminanceSource, error) {
	if left < 0 || top < 0 || width <= 0 || height <= 0 ||
		left+width > s.width || top+height > s.height {
		return nil, fmt.Errorf("%w: crop %d,%d %dx%d outside %dx%d",
			ErrArgument, left, top, width, height, s.width, s.height)
	}
	return &ImageLuminanceSource{
		luminances: s.luminances,
		dataWidth:  s.dataWidth,
		left:       s.left + left,
		top:        s.top + top,
		width:      width,
		height:     height,
	}, nil
}

// RotateCounterClockwise returns a copy rotated by 90 degrees counterclockwise.
func (s *ImageLuminanceSource) RotateCounterClockwise() LuminanceSource {
	src := s.Matrix()
	w, h := s.height, s.width
	out := make([]byte, w*h)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			out[(s.width-1-x)*w+y] = src[y*s.width+x]
		}
	}
	return newLuminanceSource(out, w, h)
}

// Rotate180 returns a copy turned upside down.
func (s *ImageLuminanceSource) Rotate180() *ImageLuminanceSource {
	src := s.Matrix()
	n := len(src)
	out := make([]byte, n)
	for i, v := range src {
		out[n-1-i] = v
	}
	return newLuminanceSource(out, s.width, s.height)
}

// Invert returns a copy with every luminance value inverted.
func (s *ImageLuminanceSource) Invert() *ImageLuminanceSource {
	out := s.Matrix()
	for i, v := range out {
		out[i] = 255 - v
	}
	return newLuminanceSource(out, s.width, s.height)
}
