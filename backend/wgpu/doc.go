// Package wgpu provides a pure Go GPU adapter for bucket upload, backed by
// gogpu/wgpu's HAL layer.
//
// The adapter bridges the gpucore abstraction to HAL resources: opaque
// gpucore IDs map to hal.Buffer, hal.Texture and hal.ShaderModule handles
// it tracks internally. Hosts construct one adapter per device and share it
// across all tiles.
package wgpu
