package internal

import (
	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/bitutil"
)

// DetectorResult is a sampled codeword grid plus the image points it was
// sampled between: top-left, bottom-left, top-right, bottom-right of the
// codeword area.
type DetectorResult struct {
	Bits   *bitutil.BitMatrix
	Points []pdf417go.ResultPoint
}

// NewDetectorResult creates a new DetectorResult.
func NewDetectorResult(bits *bitutil.BitMatrix, points []pdf417go.ResultPoint) *DetectorResult {
	return &DetectorResult{Bits: bits, Points: points}
}
