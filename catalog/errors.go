package catalog

import "errors"

// Error kinds returned by catalog operations. Errors are wrapped with
// context; test with errors.Is.
var (
	// ErrOpenFailure indicates the container or a dataset could not be opened.
	ErrOpenFailure = errors.New("open failure")

	// ErrUnsupportedType indicates a storage type that cannot be mapped
	// to a canonical type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNotFound indicates an unknown dataset path.
	ErrNotFound = errors.New("dataset not found")

	// ErrRankMismatch indicates a requested shape whose rank differs
	// from the dataset's rank.
	ErrRankMismatch = errors.New("rank mismatch")

	// ErrOutOfBounds indicates a requested region extending past the
	// dataset's extents.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrUnsupportedEncoding indicates a string encoding the reader
	// refuses to decode (space-padded fields).
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrDecodeFailure indicates a container-level read or convert
	// error, surfaced with the dataset path and library diagnostic.
	ErrDecodeFailure = errors.New("decode failure")

	// ErrClosed indicates an operation on a closed catalog.
	ErrClosed = errors.New("catalog is closed")
)
