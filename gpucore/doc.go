// Package gpucore provides the GPU resource abstraction symbol buckets
// upload through.
//
// This package defines the [Adapter] interface, which abstracts over
// different GPU backend implementations so the same bucket upload path works
// with:
//   - gogpu/wgpu (Pure Go WebGPU via HAL), see backend/wgpu
//   - any host-provided device exposed through [DeviceHandle]
//
// # Role
//
// tilelabel's worker side is pure CPU computation; only the render side
// touches the GPU, and it does so exclusively through Adapter. Keeping the
// surface to buffer and texture management plus shader module creation (for
// the collision debug overlay) means an adapter is small to implement and
// trivial to mock in tests.
//
// Resource lifecycle:
//   - Resources are created via Create* methods
//   - Resources must be explicitly destroyed via Destroy* methods
//   - IDs become invalid after destruction and must not be reused
package gpucore
