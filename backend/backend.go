package backend

import (
	"errors"

	"github.com/gogpu/tilelabel/gpucore"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when no usable backend is
	// registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrUnknownBackend is returned when a named backend is not registered.
	ErrUnknownBackend = errors.New("backend: unknown name")
)

// Known backend names.
const (
	// BackendWGPU is the pure Go gogpu/wgpu backend.
	BackendWGPU = "wgpu"
)

// Factory creates an adapter bound to the host's GPU device. The handle
// comes from the host application; backends never create their own device.
type Factory func(handle gpucore.DeviceHandle) (gpucore.Adapter, error)
