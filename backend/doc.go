// Package backend selects a GPU adapter implementation for bucket upload.
//
// Adapter backends register themselves via Register, typically from an
// init() function, and hosts pick one by name or take the best available
// through Default. Importing a backend package for its side effect is
// enough to make it selectable:
//
//	import _ "github.com/gogpu/tilelabel/backend/wgpu"
package backend
