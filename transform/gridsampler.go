package transform

import (
	"fmt"

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/bitutil"
)

// GridSampler reads a width x height module grid out of a binarized image.
// Implementations receive the transform from grid coordinates to image
// coordinates and sample each module at its centre.
type GridSampler interface {
	SampleGrid(image *bitutil.BitMatrix, width, height int, gridToImage *Perspective) (*bitutil.BitMatrix, error)
}

// DefaultGridSampler samples the nearest pixel to each module centre.
type DefaultGridSampler struct{}

// SampleGrid implements GridSampler.
func (DefaultGridSampler) SampleGrid(image *bitutil.BitMatrix, width, height int, gridToImage *Perspective) (*bitutil.BitMatrix, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: empty %dx%d grid", pdf417go.ErrNotFound, width, height)
	}
	bits := bitutil.NewBitMatrix(width, height)
	xy := make([]float64, 2*width)
	for y := 0; y < height; y++ {
		cy := float64(y) + 0.5
		for x := 0; x < width; x++ {
			xy[2*x] = float64(x) + 0.5
			xy[2*x+1] = cy
		}
		gridToImage.ApplyAll(xy)
		if err := CheckAndNudgePoints(image, xy); err != nil {
			return nil, err
		}
		for x := 0; x < width; x++ {
			ix, iy := int(xy[2*x]), int(xy[2*x+1])
			if ix < 0 || ix >= image.Width() || iy < 0 || iy >= image.Height() {
				return nil, fmt.Errorf("%w: module (%d,%d) maps outside the image", pdf417go.ErrNotFound, x, y)
			}
			if image.Get(ix, iy) {
				bits.Set(x, y)
			}
		}
	}
	return bits, nil
}

// CheckAndNudgePoints pulls points lying one pixel outside the image back
// onto its border, scanning inward from both ends of the row and stopping at
// the first point that needed no nudge. A point further out is an error.
func CheckAndNudgePoints(image *bitutil.BitMatrix, xy []float64) error {
	n := len(xy) / 2
	for i := 0; i < n; i++ {
		nudged, err := nudge(image, xy, i)
		if err != nil {
			return err
		}
		if !nudged {
			break
		}
	}
	for i := n - 1; i >= 0; i-- {
		nudged, err := nudge(image, xy, i)
		if err != nil {
			return err
		}
		if !nudged {
			break
		}
	}
	return nil
}

func nudge(image *bitutil.BitMatrix, xy []float64, i int) (bool, error) {
	w, h := image.Width(), image.Height()
	x, y := int(xy[2*i]), int(xy[2*i+1])
	if x < -1 || x > w || y < -1 || y > h {
		return false, fmt.Errorf("%w: sample point (%d,%d) outside %dx%d image", pdf417go.ErrNotFound, x, y, w, h)
	}
	nudged := false
	switch x {
	case -1:
		xy[2*i], nudged = 0, true
	case w:
		xy[2*i], nudged = float64(w-1), true
	}
	switch y {
	case -1:
		xy[2*i+1], nudged = 0, true
	case h:
		xy[2*i+1], nudged = float64(h-1), true
	}
	return nudged, nil
}
