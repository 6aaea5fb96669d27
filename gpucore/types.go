package gpucore

import "github.com/gogpu/gputypes"

// Resource IDs
//
// These opaque IDs represent GPU resources. Each adapter implementation
// maintains a mapping between IDs and actual backend resources.
// IDs are uint64 to accommodate various backend handle sizes.

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// ShaderModuleID is an opaque handle to a compiled shader module.
type ShaderModuleID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// BufferUsage is a bitmask specifying how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	// BufferUsageCopyDst indicates the buffer can be used as a copy destination.
	BufferUsageCopyDst BufferUsage = 1 << 0

	// BufferUsageIndex indicates the buffer can be used as an index buffer.
	BufferUsageIndex BufferUsage = 1 << 1

	// BufferUsageVertex indicates the buffer can be used as a vertex buffer.
	BufferUsageVertex BufferUsage = 1 << 2
)

// AtlasDescriptor describes the glyph/icon atlas texture a bucket's quads
// sample from. The atlas itself is rasterized elsewhere; buckets only need
// its dimensions and format to size texture coordinates and let the render
// side allocate the texture.
type AtlasDescriptor struct {
	// Width and Height are the atlas dimensions in pixels.
	Width, Height uint32

	// Format is the atlas pixel format.
	Format gputypes.TextureFormat
}

// DefaultAtlasDescriptor returns the descriptor used when the host does not
// configure an atlas: a 1024x1024 RGBA8 texture.
func DefaultAtlasDescriptor() AtlasDescriptor {
	return AtlasDescriptor{
		Width:  1024,
		Height: 1024,
		Format: gputypes.TextureFormatRGBA8Unorm,
	}
}
