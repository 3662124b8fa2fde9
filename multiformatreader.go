package pdf417go

import (
	"errors"
	"fmt"
	"sort"
)

// MultiFormatReader tries every registered Reader that the decode options
// allow, in format order, and returns the first result.
type MultiFormatReader struct{}

// NewMultiFormatReader creates a new MultiFormatReader.
func NewMultiFormatReader() *MultiFormatReader {
	return &MultiFormatReader{}
}

// Decode implements Reader. When every reader fails the most informative
// error wins: a checksum or format failure means a symbol was found.
func (r *MultiFormatReader) Decode(image *BinaryBitmap, opts *DecodeOptions) (*Result, error) {
	readers := buildReaders(opts)
	if len(readers) == 0 {
		return nil, fmt.Errorf("no reader registered for the requested formats: %w", ErrNotFound)
	}
	var best error
	for _, reader := range readers {
		result, err := reader.Decode(image, opts)
		if err == nil {
			return result, nil
		}
		if best == nil || errors.Is(best, ErrNotFound) {
			best = err
		}
	}
	return nil, best
}

// Reset implements Reader.
func (r *MultiFormatReader) Reset() {}

// Decode decodes image with every registered reader. Format packages
// register themselves when imported, as in
//
//	import _ "github.com/ericlevine/pdf417go/pdf417"
func Decode(image *BinaryBitmap, opts *DecodeOptions) (*Result, error) {
	return NewMultiFormatReader().Decode(image, opts)
}

type readerFactory func(opts *DecodeOptions) Reader

var readerFactories = map[Format]readerFactory{}

// RegisterReader registers a reader factory for a format. Format packages
// call it from init.
func RegisterReader(format Format, factory readerFactory) {
	readerFactories[format] = factory
}

func buildReaders(opts *DecodeOptions) []Reader {
	formats := make([]Format, 0, len(readerFactories))
	for f := range readerFactories {
		if opts.Allows(f) {
			formats = append(formats, f)
		}
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })

	readers := make([]Reader, 0, len(formats))
	for _, f := range formats {
		readers = append(readers, readerFactories[f](opts))
	}
	return readers
}
