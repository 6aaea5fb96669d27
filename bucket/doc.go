// Package bucket packs shaped label quads into GPU-bound vertex and index
// buffers and carries them across the worker/render boundary.
//
// A [Bucket] owns one [BufferSet] per render target (text, icon, collision
// box, collision circle) plus the shared append-only arrays placed symbols
// reference by index range. The worker side fills a bucket via
// [Bucket.AddSymbols], serializes it into a move-only [Transfer], and hands
// that to the render side, which decodes and uploads it through a
// [gpucore.Adapter].
//
// Index buffers are 16-bit: every buffer set is split into segments so that
// no draw call indexes past 65535 vertices, and a bucket as a whole rejects
// more than [MaxInstances] placed labels.
//
// The dynamic and opacity vertex streams are render state, not shape state:
// after upload, only the render goroutine rewrites them (pitch or
// orientation changes re-run the external placement pass), while the layout
// stream and index topology stay fixed for the bucket's lifetime.
package bucket
