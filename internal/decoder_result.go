// Package internal holds the result types passed between the detector,
// the codeword decoder and the reader.
package internal

// DecoderResult is what the codeword decoder hands back to the reader.
// At least one of Text and RawBytes is set.
type DecoderResult struct {
	RawBytes     []byte
	Text         string
	ByteSegments [][]byte
	ECLevel      string

	// ErrorsCorrected counts codewords repaired at positions the parser
	// read successfully; Erasures counts positions it could not read.
	ErrorsCorrected int
	Erasures        int

	// Other carries symbology specific extras such as macro segment data.
	Other any
}

// NewDecoderResult creates a DecoderResult for decoded text.
func NewDecoderResult(rawBytes []byte, text string, byteSegments [][]byte, ecLevel string) *DecoderResult {
	return &DecoderResult{
		RawBytes:     rawBytes,
		Text:         text,
		ByteSegments: byteSegments,
		ECLevel:      ecLevel,
	}
}
