// Package scan turns image files and in-memory images into PDF417 results.
// It owns the retry strategy shared by the CLI, the batch runner and the
// server: binarizer fallbacks first, then under TryHarder an inverted and
// an upscaled copy of the image.
package scan

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/binarizer"

	_ "github.com/ericlevine/pdf417go/pdf417" // register the PDF417 reader
)

// Options controls a decode attempt.
type Options struct {
	Decode *pdf417go.DecodeOptions
	// MinUpscaleSide is the shorter image side below which TryHarder also
	// decodes a 2x upscaled copy. Zero disables upscaling.
	MinUpscaleSide int
}

// ReadImage decodes an image in any registered format.
func ReadImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// OpenImage reads and decodes the image at path on fs.
func OpenImage(fs afero.Fs, path string) (image.Image, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := ReadImage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Image decodes the first PDF417 symbol in img.
//
// The global histogram binarizer is tried first since it is fast and
// suits clean renders, then the hybrid binarizer for uneven lighting.
// With TryHarder the same pair runs on an inverted copy and, for small
// images, on a 2x upscaled copy.
func Image(img image.Image, opts Options) (*pdf417go.Result, error) {
	candidates := []image.Image{img}
	if opts.Decode != nil && opts.Decode.TryHarder {
		candidates = append(candidates, imaging.Invert(img))
		b := img.Bounds()
		if opts.MinUpscaleSide > 0 && min(b.Dx(), b.Dy()) < opts.MinUpscaleSide {
			candidates = append(candidates, imaging.Resize(img, 2*b.Dx(), 2*b.Dy(), imaging.NearestNeighbor))
		}
	}

	var best error
	for _, candidate := range candidates {
		source := pdf417go.NewImageLuminanceSource(candidate)
		bitmaps := []*pdf417go.BinaryBitmap{
			pdf417go.NewBinaryBitmap(binarizer.NewGlobalHistogram(source)),
			pdf417go.NewBinaryBitmap(binarizer.NewHybrid(source)),
		}
		for _, bitmap := range bitmaps {
			result, err := pdf417go.Decode(bitmap, opts.Decode)
			if err == nil {
				return result, nil
			}
			if best == nil || errors.Is(best, pdf417go.ErrNotFound) {
				best = err
			}
		}
	}
	return nil, best
}

// File opens path on fs and decodes it.
func File(fs afero.Fs, path string, opts Options) (*pdf417go.Result, error) {
	img, err := OpenImage(fs, path)
	if err != nil {
		return nil, err
	}
	return Image(img, opts)
}
