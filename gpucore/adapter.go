package gpucore

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Adapter abstracts over GPU backend implementations for bucket upload.
//
// Implementations must be safe for concurrent use; bucket code itself calls
// an adapter from the render goroutine only, but one adapter is typically
// shared by many tiles.
type Adapter interface {
	// CreateBuffer creates a GPU buffer.
	//
	// Parameters:
	//   - size: buffer size in bytes
	//   - usage: buffer usage flags (bitmask of BufferUsage*)
	//
	// Returns the buffer ID or an error if allocation fails.
	CreateBuffer(size int, usage BufferUsage) (BufferID, error)

	// DestroyBuffer releases a GPU buffer.
	DestroyBuffer(id BufferID)

	// WriteBuffer writes data to a buffer.
	// The data is copied to the GPU immediately or staged for later upload.
	WriteBuffer(id BufferID, offset uint64, data []byte)

	// CreateTexture creates a GPU texture, used for the glyph/icon atlas.
	CreateTexture(width, height int, format gputypes.TextureFormat) (TextureID, error)

	// DestroyTexture releases a GPU texture.
	DestroyTexture(id TextureID)

	// WriteTexture writes pixel data to a texture. The data must match the
	// texture format and dimensions.
	WriteTexture(id TextureID, data []byte)

	// CreateShaderModule creates a shader module from SPIR-V bytecode, used
	// for the collision debug overlay pipeline.
	CreateShaderModule(spirv []uint32, label string) (ShaderModuleID, error)

	// DestroyShaderModule releases a shader module.
	DestroyShaderModule(id ShaderModuleID)
}

// DeviceHandle provides GPU device access from the host application.
//
// This is the integration point between tilelabel and GPU frameworks like
// gogpu. The host application implements DeviceHandle (or already has a
// gpucontext.DeviceProvider) and hands it to an adapter constructor; the
// render side never creates its own device.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// tilelabel-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle with no device. Useful in tests and
// for worker-side code paths that must never touch the GPU.
type NullDeviceHandle struct{}

// Device returns nil.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns the undefined format.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo returns an empty descriptor.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
