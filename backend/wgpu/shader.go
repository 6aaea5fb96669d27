package wgpu

import (
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/tilelabel/gpucore"
)

// collisionDebugWGSL draws the collision debug overlay. The vertex layout
// matches the collision stream packed by the bucket package: the region's
// own position, the owning label's anchor, and a per-corner extrusion in
// pixels. Boxes render as line loops, circles as extruded quads resolved to
// a disc in the fragment stage.
const collisionDebugWGSL = `
struct Uniforms {
    matrix: mat4x4<f32>,
    extrude_scale: vec2<f32>,
    overscale: f32,
    _pad: f32,
}

@group(0) @binding(0) var<uniform> uniforms: Uniforms;

struct VertexInput {
    @location(0) pos: vec2<f32>,
    @location(1) anchor: vec2<f32>,
    @location(2) extrude: vec2<f32>,
}

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) extrude: vec2<f32>,
    @location(1) radius: f32,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    let projected = uniforms.matrix * vec4<f32>(in.pos * uniforms.overscale, 0.0, 1.0);
    let offset = in.extrude * uniforms.extrude_scale * projected.w;
    out.position = projected + vec4<f32>(offset, 0.0, 0.0);
    out.extrude = in.extrude;
    out.radius = max(abs(in.extrude.x), abs(in.extrude.y));
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let dist = length(in.extrude);
    if (in.radius > 0.0 && dist > in.radius) {
        discard;
    }
    return vec4<f32>(0.0, 0.6, 1.0, 0.5);
}
`

// CompileShaderToSPIRV compiles WGSL source to a SPIR-V word slice.
func CompileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return spirvCode, nil
}

// CreateCollisionDebugShader compiles and registers the collision debug
// overlay shader on the adapter.
func CreateCollisionDebugShader(a *HALAdapter) (gpucore.ShaderModuleID, error) {
	spirv, err := CompileShaderToSPIRV(collisionDebugWGSL)
	if err != nil {
		return gpucore.InvalidID, err
	}
	return a.CreateShaderModule(spirv, "collision_debug")
}
