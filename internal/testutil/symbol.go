// Package testutil renders PDF417 fixtures for tests with an independent
// encoder.
package testutil

import (
	"image"
	"image/color"
	"testing"

	"github.com/boombuler/barcode"
	bpdf417 "github.com/boombuler/barcode/pdf417"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/binarizer"
)

// Symbol encodes text at the given security level and scales it so each
// module is scale pixels wide. The result has no quiet zone.
func Symbol(t testing.TB, text string, level byte, scale int) image.Image {
	t.Helper()
	bc, err := bpdf417.Encode(text, level)
	require.NoError(t, err)
	if scale <= 1 {
		return bc
	}
	b := bc.Bounds()
	scaled, err := barcode.Scale(bc, b.Dx()*scale, b.Dy()*scale)
	require.NoError(t, err)
	return scaled
}

// Pad surrounds img with a white border margin pixels wide.
func Pad(img image.Image, margin int) *image.NRGBA {
	b := img.Bounds()
	canvas := imaging.New(b.Dx()+2*margin, b.Dy()+2*margin, color.White)
	return imaging.Paste(canvas, img, image.Pt(margin, margin))
}

// Rotate180 turns img upside down.
func Rotate180(img image.Image) *image.NRGBA {
	return imaging.Rotate180(img)
}

// Occlude paints r white.
func Occlude(img image.Image, r image.Rectangle) *image.NRGBA {
	patch := imaging.New(r.Dx(), r.Dy(), color.White)
	return imaging.Paste(imaging.Clone(img), patch, r.Min)
}

// Bitmap wraps img for decoding with the hybrid binarizer.
func Bitmap(img image.Image) *pdf417go.BinaryBitmap {
	return pdf417go.NewBinaryBitmap(binarizer.NewHybrid(pdf417go.NewImageLuminanceSource(img)))
}
