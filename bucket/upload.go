package bucket

import (
	"github.com/gogpu/tilelabel"
	"github.com/gogpu/tilelabel/gpucore"
)

// gpuState holds one buffer set's GPU residency: the buffer IDs created at
// upload time and the adapter that owns them. Nil gpuState means CPU-only.
type gpuState struct {
	adapter gpucore.Adapter

	layout    gpucore.BufferID
	dynamic   gpucore.BufferID
	opacity   gpucore.BufferID
	collision gpucore.BufferID
	index     gpucore.BufferID
	paint     []gpucore.BufferID
}

// Upload creates GPU buffers for the set's streams and writes their
// contents. Empty sets are skipped without creating resources. Uploading an
// already uploaded set is a no-op.
func (s *BufferSet) Upload(ad gpucore.Adapter) error {
	if s.gpu != nil {
		return nil
	}
	if s.Layout.Len() == 0 {
		return nil
	}

	g := &gpuState{adapter: ad}
	var err error

	if g.layout, err = uploadStream(ad, s.Layout.Bytes(), gpucore.BufferUsageVertex); err != nil {
		g.release()
		return err
	}
	if s.Dynamic != nil {
		if g.dynamic, err = uploadStream(ad, s.Dynamic.Bytes(), gpucore.BufferUsageVertex); err != nil {
			g.release()
			return err
		}
	}
	if s.Opacity != nil {
		if g.opacity, err = uploadStream(ad, s.Opacity.Bytes(), gpucore.BufferUsageVertex); err != nil {
			g.release()
			return err
		}
	}
	if s.Collision != nil {
		if g.collision, err = uploadStream(ad, s.Collision.Bytes(), gpucore.BufferUsageVertex); err != nil {
			g.release()
			return err
		}
	}

	var indexData []byte
	if s.Triangles != nil {
		indexData = s.Triangles.Bytes()
	} else {
		indexData = s.Lines.Bytes()
	}
	if g.index, err = uploadStream(ad, indexData, gpucore.BufferUsageIndex); err != nil {
		g.release()
		return err
	}

	for _, binder := range s.Paint.Binders {
		if binder.IsConstant() {
			g.paint = append(g.paint, gpucore.InvalidID)
			continue
		}
		id, err := uploadStream(ad, binder.Bytes(), gpucore.BufferUsageVertex)
		if err != nil {
			g.release()
			return err
		}
		g.paint = append(g.paint, id)
	}

	s.gpu = g
	tilelabel.Logger().Debug("buffer set uploaded",
		"kind", s.Kind.String(),
		"vertices", s.Layout.Len(),
		"indices", s.indexLen(),
		"segments", len(s.Segments))
	return nil
}

// UpdateDynamic rewrites the GPU copy of the dynamic stream from its CPU
// contents. ErrNotUploaded if the set is not GPU-resident.
func (s *BufferSet) UpdateDynamic() error {
	if s.gpu == nil {
		return ErrNotUploaded
	}
	if s.Dynamic != nil {
		s.gpu.adapter.WriteBuffer(s.gpu.dynamic, 0, s.Dynamic.Bytes())
	}
	return nil
}

// UpdateOpacity rewrites the GPU copy of the opacity stream from its CPU
// contents. ErrNotUploaded if the set is not GPU-resident.
func (s *BufferSet) UpdateOpacity() error {
	if s.gpu == nil {
		return ErrNotUploaded
	}
	if s.Opacity != nil {
		s.gpu.adapter.WriteBuffer(s.gpu.opacity, 0, s.Opacity.Bytes())
	}
	return nil
}

// Destroy releases the set's GPU buffers. Safe to call repeatedly and on
// sets that were never uploaded.
func (s *BufferSet) Destroy() {
	if s.gpu == nil {
		return
	}
	s.gpu.release()
	s.gpu = nil
}

func (g *gpuState) release() {
	destroyIfValid(g.adapter, g.layout)
	destroyIfValid(g.adapter, g.dynamic)
	destroyIfValid(g.adapter, g.opacity)
	destroyIfValid(g.adapter, g.collision)
	destroyIfValid(g.adapter, g.index)
	for _, id := range g.paint {
		destroyIfValid(g.adapter, id)
	}
	g.layout, g.dynamic, g.opacity, g.collision, g.index = 0, 0, 0, 0, 0
	g.paint = nil
}

func destroyIfValid(ad gpucore.Adapter, id gpucore.BufferID) {
	if id != gpucore.InvalidID {
		ad.DestroyBuffer(id)
	}
}

// All buffers are created copy-writable so the dynamic and opacity streams
// can be rewritten in place each placement pass.
func uploadStream(ad gpucore.Adapter, data []byte, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	if len(data) == 0 {
		return gpucore.InvalidID, nil
	}
	id, err := ad.CreateBuffer(len(data), usage|gpucore.BufferUsageCopyDst)
	if err != nil {
		return gpucore.InvalidID, err
	}
	ad.WriteBuffer(id, 0, data)
	return id, nil
}

// Uploaded reports whether the set is GPU-resident.
func (s *BufferSet) Uploaded() bool { return s.gpu != nil }

// Upload makes every non-empty buffer set of the bucket GPU-resident. On
// the first error the partially created resources of the failing set are
// released; sets already uploaded stay resident.
func (b *Bucket) Upload(ad gpucore.Adapter) error {
	for _, set := range b.sets() {
		if err := set.Upload(ad); err != nil {
			return err
		}
	}
	b.uploaded = true
	return nil
}

// Destroy releases all GPU resources of the bucket. Idempotent; a bucket
// that was never uploaded is untouched.
func (b *Bucket) Destroy() {
	for _, set := range b.sets() {
		set.Destroy()
	}
	b.uploaded = false
}

// Uploaded reports whether Upload has completed for the bucket.
func (b *Bucket) Uploaded() bool { return b.uploaded }

func (b *Bucket) sets() [4]*BufferSet {
	return [4]*BufferSet{b.Text, b.Icon, b.CollisionBox, b.CollisionCircle}
}
