package wgpu

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tilelabel/backend"
	"github.com/gogpu/tilelabel/gpucore"
)

// init registers the wgpu backend on package import:
//
//	import _ "github.com/gogpu/tilelabel/backend/wgpu"
func init() {
	backend.Register(backend.BackendWGPU, func(handle gpucore.DeviceHandle) (gpucore.Adapter, error) {
		return FromDeviceHandle(handle)
	})
}

// FromDeviceHandle builds an adapter from a host device handle. The handle
// must expose its HAL device and queue, the convention gogpu hosts follow:
//
//	HalDevice() any  // hal.Device
//	HalQueue() any   // hal.Queue
func FromDeviceHandle(handle gpucore.DeviceHandle) (*HALAdapter, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := handle.(halProvider)
	if !ok {
		return nil, fmt.Errorf("wgpu: device handle does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("wgpu: HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("wgpu: HalQueue is not hal.Queue")
	}
	return NewHALAdapter(device, queue, nil), nil
}
