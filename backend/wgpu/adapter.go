package wgpu

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	"github.com/gogpu/tilelabel/gpucore"
)

// textureInfo keeps the metadata WriteTexture needs to lay out pixel rows.
type textureInfo struct {
	texture       hal.Texture
	width, height uint32
	bytesPerPixel uint32
}

// HALAdapter implements gpucore.Adapter on top of gogpu/wgpu/hal.
//
// Thread safety: safe for concurrent use from multiple goroutines. All
// resource maps are protected by a mutex; ID generation is atomic.
type HALAdapter struct {
	mu     sync.RWMutex
	device hal.Device
	queue  hal.Queue

	limits      types.Limits
	maxBufferSz uint64

	nextID atomic.Uint64

	buffers       map[gpucore.BufferID]hal.Buffer
	textures      map[gpucore.TextureID]textureInfo
	shaderModules map[gpucore.ShaderModuleID]hal.ShaderModule
}

// NewHALAdapter creates an adapter wrapping the given device and queue.
// If limits is nil, default limits are used.
func NewHALAdapter(device hal.Device, queue hal.Queue, limits *types.Limits) *HALAdapter {
	var lim types.Limits
	if limits != nil {
		lim = *limits
	} else {
		lim = types.DefaultLimits()
	}

	a := &HALAdapter{
		device:        device,
		queue:         queue,
		limits:        lim,
		maxBufferSz:   lim.MaxBufferSize,
		buffers:       make(map[gpucore.BufferID]hal.Buffer),
		textures:      make(map[gpucore.TextureID]textureInfo),
		shaderModules: make(map[gpucore.ShaderModuleID]hal.ShaderModule),
	}

	// IDs start at 1; 0 is gpucore.InvalidID.
	a.nextID.Store(1)

	return a
}

func (a *HALAdapter) newID() uint64 {
	return a.nextID.Add(1) - 1
}

// MaxBufferSize returns the device's maximum buffer size in bytes.
func (a *HALAdapter) MaxBufferSize() uint64 {
	return a.maxBufferSz
}

// CreateBuffer creates a GPU buffer.
func (a *HALAdapter) CreateBuffer(size int, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	if size <= 0 {
		return gpucore.InvalidID, fmt.Errorf("buffer size must be positive")
	}
	if uint64(size) > a.maxBufferSz {
		return gpucore.InvalidID, fmt.Errorf("buffer size %d exceeds device limit %d", size, a.maxBufferSz)
	}

	desc := &hal.BufferDescriptor{
		Label: "",
		Size:  uint64(size),
		Usage: convertBufferUsage(usage),
	}

	buffer, err := a.device.CreateBuffer(desc)
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("failed to create buffer: %w", err)
	}

	id := gpucore.BufferID(a.newID())

	a.mu.Lock()
	a.buffers[id] = buffer
	a.mu.Unlock()

	return id, nil
}

// DestroyBuffer releases a GPU buffer. Unknown IDs are ignored.
func (a *HALAdapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	buffer, ok := a.buffers[id]
	if ok {
		delete(a.buffers, id)
	}
	a.mu.Unlock()

	if ok {
		a.device.DestroyBuffer(buffer)
	}
}

// WriteBuffer writes data to a buffer at the given byte offset.
func (a *HALAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	a.mu.RLock()
	buffer, ok := a.buffers[id]
	a.mu.RUnlock()

	if ok && len(data) > 0 {
		a.queue.WriteBuffer(buffer, offset, data)
	}
}

// CreateTexture creates a 2D texture, used for the glyph/icon atlas.
func (a *HALAdapter) CreateTexture(width, height int, format gputypes.TextureFormat) (gpucore.TextureID, error) {
	if width <= 0 || height <= 0 {
		return gpucore.InvalidID, fmt.Errorf("texture dimensions must be positive")
	}

	desc := &hal.TextureDescriptor{
		Label: "",
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        convertTextureFormat(format),
		Usage:         types.TextureUsageCopyDst | types.TextureUsageTextureBinding,
	}

	texture, err := a.device.CreateTexture(desc)
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("failed to create texture: %w", err)
	}

	id := gpucore.TextureID(a.newID())

	a.mu.Lock()
	a.textures[id] = textureInfo{
		texture:       texture,
		width:         uint32(width),
		height:        uint32(height),
		bytesPerPixel: formatBytesPerPixel(format),
	}
	a.mu.Unlock()

	return id, nil
}

// DestroyTexture releases a GPU texture. Unknown IDs are ignored.
func (a *HALAdapter) DestroyTexture(id gpucore.TextureID) {
	a.mu.Lock()
	info, ok := a.textures[id]
	if ok {
		delete(a.textures, id)
	}
	a.mu.Unlock()

	if ok {
		a.device.DestroyTexture(info.texture)
	}
}

// WriteTexture writes a full texture's pixel data. Data shorter than one
// full image is ignored.
func (a *HALAdapter) WriteTexture(id gpucore.TextureID, data []byte) {
	a.mu.RLock()
	info, ok := a.textures[id]
	a.mu.RUnlock()

	if !ok {
		return
	}
	bytesPerRow := info.width * info.bytesPerPixel
	if uint32(len(data)) < bytesPerRow*info.height {
		return
	}

	dst := &hal.ImageCopyTexture{
		Texture:  info.texture,
		MipLevel: 0,
		Origin:   hal.Origin3D{X: 0, Y: 0, Z: 0},
		Aspect:   types.TextureAspectAll,
	}
	layout := &hal.ImageDataLayout{
		Offset:       0,
		BytesPerRow:  bytesPerRow,
		RowsPerImage: info.height,
	}
	size := &hal.Extent3D{
		Width:              info.width,
		Height:             info.height,
		DepthOrArrayLayers: 1,
	}

	a.queue.WriteTexture(dst, data, layout, size)
}

// CreateShaderModule creates a shader module from SPIR-V bytecode.
func (a *HALAdapter) CreateShaderModule(spirv []uint32, label string) (gpucore.ShaderModuleID, error) {
	if len(spirv) == 0 {
		return gpucore.InvalidID, fmt.Errorf("empty SPIR-V bytecode")
	}

	desc := &hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	}

	module, err := a.device.CreateShaderModule(desc)
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("failed to create shader module: %w", err)
	}

	id := gpucore.ShaderModuleID(a.newID())

	a.mu.Lock()
	a.shaderModules[id] = module
	a.mu.Unlock()

	return id, nil
}

// DestroyShaderModule releases a shader module. Unknown IDs are ignored.
func (a *HALAdapter) DestroyShaderModule(id gpucore.ShaderModuleID) {
	a.mu.Lock()
	module, ok := a.shaderModules[id]
	if ok {
		delete(a.shaderModules, id)
	}
	a.mu.Unlock()

	if ok {
		a.device.DestroyShaderModule(module)
	}
}

func convertBufferUsage(usage gpucore.BufferUsage) types.BufferUsage {
	var result types.BufferUsage

	if usage&gpucore.BufferUsageCopyDst != 0 {
		result |= types.BufferUsageCopyDst
	}
	if usage&gpucore.BufferUsageIndex != 0 {
		result |= types.BufferUsageIndex
	}
	if usage&gpucore.BufferUsageVertex != 0 {
		result |= types.BufferUsageVertex
	}

	return result
}

func convertTextureFormat(format gputypes.TextureFormat) types.TextureFormat {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		return types.TextureFormatRGBA8Unorm
	case gputypes.TextureFormatBGRA8Unorm:
		return types.TextureFormatBGRA8Unorm
	case gputypes.TextureFormatR8Unorm:
		return types.TextureFormatR8Unorm
	default:
		return types.TextureFormatRGBA8Unorm
	}
}

// formatBytesPerPixel returns the pixel stride of the formats the atlas
// supports.
func formatBytesPerPixel(format gputypes.TextureFormat) uint32 {
	switch format {
	case gputypes.TextureFormatR8Unorm:
		return 1
	default:
		return 4
	}
}
