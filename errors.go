package pdf417go

import "errors"

var (
	// ErrNotFound is returned when no symbol can be located in the image.
	ErrNotFound = errors.New("barcode not found")

	// ErrChecksum is returned when error correction cannot repair the codewords.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when a located symbol violates the symbology's structure.
	ErrFormat = errors.New("format error")

	// ErrArgument is returned for invalid arguments passed by the caller.
	ErrArgument = errors.New("invalid argument")
)
