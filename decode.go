package pdf417go

// DecodeOptions configures decoding behavior. A nil *DecodeOptions is valid
// and means all defaults.
type DecodeOptions struct {
	// PureBarcode hints that the image contains only the symbol, unrotated,
	// with at most a small white border.
	PureBarcode bool

	// TryHarder lets callers trade speed for accuracy. Readers that have no
	// slower mode ignore it.
	TryHarder bool

	// PossibleFormats limits which formats to look for. Empty means any.
	PossibleFormats []Format

	// CharacterSet names the charset assumed for byte compaction when the
	// symbol carries no ECI.
	CharacterSet string
}

// Allows reports whether format f may be decoded under these options.
func (o *DecodeOptions) Allows(f Format) bool {
	if o == nil || len(o.PossibleFormats) == 0 {
		return true
	}
	for _, pf := range o.PossibleFormats {
		if pf == f {
			return true
		}
	}
	return false
}

// Reader decodes barcodes from a BinaryBitmap.
type Reader interface {
	// Decode attempts to decode a barcode from the image.
	Decode(image *BinaryBitmap, opts *DecodeOptions) (*Result, error)

	// Reset resets any internal state.
	Reset()
}
