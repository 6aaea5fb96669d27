package bucket

import "github.com/gogpu/tilelabel"

// AddDebugCollisionGeometry fills the two collision debug targets from the
// bucket's instances, reading every instance's text and icon hit-region
// ranges out of the shared collision store. Box records become outlined
// quads in the CollisionBox set; circle records become filled quads in the
// CollisionCircle set, extruded by the radius and resolved to a disc in the
// shader.
//
// Debug geometry is rebuilt from scratch on demand, so a bucket serialized
// without it stays small.
func (b *Bucket) AddDebugCollisionGeometry(store *tilelabel.CollisionBoxArray) error {
	if b.sealed {
		return ErrSealed
	}
	for i := range b.Instances {
		inst := &b.Instances[i]
		b.addCollisionRange(store, inst, inst.TextBoxStart, inst.TextBoxEnd)
		b.addCollisionRange(store, inst, inst.IconBoxStart, inst.IconBoxEnd)
	}
	return nil
}

func (b *Bucket) addCollisionRange(store *tilelabel.CollisionBoxArray, inst *tilelabel.SymbolInstance, start, end int) {
	for i := start; i < end; i++ {
		box := store.At(i)
		if box.IsCircle() {
			b.addCollisionCircle(box, inst.Anchor)
		} else {
			b.addCollisionBox(box, inst.Anchor)
		}
	}
}

// addCollisionBox emits one outlined quad: four vertices extruded to the
// box corners and four line edges closing the loop.
func (b *Bucket) addCollisionBox(box tilelabel.CollisionBox, anchor tilelabel.Anchor) {
	set := b.CollisionBox
	seg := set.prepareSegment(4)
	base := uint16(seg.VertexLength)

	appendCollisionVertex(set, box, anchor, box.X1, box.Y1)
	appendCollisionVertex(set, box, anchor, box.X2, box.Y1)
	appendCollisionVertex(set, box, anchor, box.X2, box.Y2)
	appendCollisionVertex(set, box, anchor, box.X1, box.Y2)

	set.Lines.Append(base, base+1)
	set.Lines.Append(base+1, base+2)
	set.Lines.Append(base+2, base+3)
	set.Lines.Append(base+3, base)
	seg.VertexLength += 4
	seg.PrimitiveLength += 4
}

// addCollisionCircle emits one filled quad extruded by the radius in every
// direction.
func (b *Bucket) addCollisionCircle(box tilelabel.CollisionBox, anchor tilelabel.Anchor) {
	set := b.CollisionCircle
	seg := set.prepareSegment(4)
	base := uint16(seg.VertexLength)

	r := box.Radius
	appendCollisionVertex(set, box, anchor, -r, -r)
	appendCollisionVertex(set, box, anchor, r, -r)
	appendCollisionVertex(set, box, anchor, -r, r)
	appendCollisionVertex(set, box, anchor, r, r)

	set.Triangles.Append(base, base+1, base+2)
	set.Triangles.Append(base+1, base+2, base+3)
	seg.VertexLength += 4
	seg.PrimitiveLength += 2
}

func appendCollisionVertex(set *BufferSet, box tilelabel.CollisionBox, anchor tilelabel.Anchor, extrudeX, extrudeY float32) {
	set.Layout.Append(LayoutVertex{
		X: int16(box.Anchor.X), Y: int16(box.Anchor.Y),
	})
	set.Collision.Append(CollisionVertex{
		X:        int16(box.Anchor.X),
		Y:        int16(box.Anchor.Y),
		AnchorX:  int16(anchor.X),
		AnchorY:  int16(anchor.Y),
		ExtrudeX: int16(extrudeX),
		ExtrudeY: int16(extrudeY),
	})
}
