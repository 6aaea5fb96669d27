package bucket

import "errors"

// Sentinel errors for the bucket package.
var (
	// ErrBucketFull is returned when packing would exceed the 65 535
	// instance cap or a single label cannot fit a 16-bit index segment.
	// Silent overflow would corrupt 16-bit indices, so the cap is enforced
	// at packing time and the caller decides whether to drop the label or
	// reject the tile.
	ErrBucketFull = errors.New("bucket: instance capacity exceeded")

	// ErrSealed is returned when mutating a bucket after it has been
	// serialized. The serialized form owns the data from that point on.
	ErrSealed = errors.New("bucket: sealed after serialization")

	// ErrTargetKind is returned when an operation is applied to a buffer
	// set of the wrong render target kind.
	ErrTargetKind = errors.New("bucket: wrong render target kind")

	// ErrNotUploaded is returned when a GPU-side update is requested on a
	// buffer set that has not been uploaded.
	ErrNotUploaded = errors.New("bucket: not uploaded")

	// ErrCorrupt is returned when decoding a transfer whose payload is
	// truncated or malformed.
	ErrCorrupt = errors.New("bucket: corrupt transfer payload")

	// ErrVersion is returned when decoding a transfer written by an
	// incompatible encoder version.
	ErrVersion = errors.New("bucket: unsupported transfer version")

	// ErrDrained is returned when decoding a transfer whose payload was
	// already consumed. Transfers are move-only.
	ErrDrained = errors.New("bucket: transfer already consumed")
)
