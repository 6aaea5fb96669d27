// Package pipeline coordinates tile label layout: it fans tile layout
// tasks out over a worker pool and keeps render-side buckets in a bounded
// cache that releases GPU resources on eviction.
package pipeline

import (
	"fmt"
	"sort"

	"github.com/gogpu/tilelabel"
	"github.com/gogpu/tilelabel/bucket"
	"github.com/gogpu/tilelabel/cache"
	"github.com/gogpu/tilelabel/internal/parallel"
)

// TileID addresses one tile in the pyramid.
type TileID struct {
	Z    uint8
	X, Y uint32
}

// Hash packs the coordinates into one word; tiles differ in at most 29
// bits per axis well past any practical zoom.
func (t TileID) Hash() uint64 {
	return uint64(t.Z)<<58 | uint64(t.X)<<29 | uint64(t.Y)
}

// String returns the conventional z/x/y form.
func (t TileID) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// LayoutFunc performs one tile's label layout and returns the sealed
// transfer. It runs on a worker goroutine and must not touch the GPU.
type LayoutFunc func() (*bucket.Transfer, error)

// Result is one finished layout task.
type Result struct {
	ID       TileID
	Transfer *bucket.Transfer
	Err      error
}

// Scheduler runs layout tasks across a worker pool.
type Scheduler struct {
	pool *parallel.WorkerPool
}

// NewScheduler creates a scheduler with the given worker count;
// non-positive selects GOMAXPROCS.
func NewScheduler(workers int) *Scheduler {
	return &Scheduler{pool: parallel.NewWorkerPool(workers)}
}

// Layout runs every tile's task in parallel and returns all results,
// ordered by tile ID so callers see a stable sequence. Failed tiles carry
// their error in the result rather than aborting the batch.
func (s *Scheduler) Layout(tasks map[TileID]LayoutFunc) []Result {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]TileID, 0, len(tasks))
	for id := range tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Hash() < ids[j].Hash() })

	results := make([]Result, len(ids))
	work := make([]func(), len(ids))
	for i, id := range ids {
		i, id, task := i, id, tasks[id]
		work[i] = func() {
			tr, err := task()
			results[i] = Result{ID: id, Transfer: tr, Err: err}
			if err != nil {
				tilelabel.Logger().Warn("tile layout failed", "tile", id, "error", err)
			}
		}
	}

	s.pool.ExecuteAll(work)
	return results
}

// Close stops the scheduler's workers, finishing queued tasks first.
func (s *Scheduler) Close() {
	s.pool.Close()
}

// BucketStore is the render side's bounded bucket residency: recently drawn
// buckets stay warm, evicted ones release their GPU buffers.
type BucketStore struct {
	cache *cache.Sharded[TileID, *bucket.Bucket]
}

// NewBucketStore creates a store holding roughly capacity buckets per cache
// shard.
func NewBucketStore(capacity int) *BucketStore {
	c := cache.NewSharded[TileID, *bucket.Bucket](capacity, TileID.Hash)
	c.OnEvict = func(id TileID, b *bucket.Bucket) {
		b.Destroy()
		tilelabel.Logger().Debug("bucket evicted", "tile", id)
	}
	return &BucketStore{cache: c}
}

// Put makes a bucket resident. A previous bucket under the same tile is
// destroyed.
func (s *BucketStore) Put(id TileID, b *bucket.Bucket) {
	s.cache.Set(id, b)
}

// Get returns the resident bucket for a tile.
func (s *BucketStore) Get(id TileID) (*bucket.Bucket, bool) {
	return s.cache.Get(id)
}

// Drop removes and destroys a tile's bucket.
func (s *BucketStore) Drop(id TileID) bool {
	return s.cache.Delete(id)
}

// Clear destroys every resident bucket.
func (s *BucketStore) Clear() {
	s.cache.Clear()
}

// Len returns the number of resident buckets.
func (s *BucketStore) Len() int {
	return s.cache.Len()
}
