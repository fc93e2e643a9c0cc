// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Box3 is an axis aligned bounding box. A box whose Max is below its
// Min on any axis is empty and contributes nothing when merged.
type Box3 struct {
	Min Vector3
	Max Vector3
}

// B3 returns the box spanning the two given corners.
func B3(x0, y0, z0, x1, y1, z1 float32) Box3 {
	return Box3{Vec3(x0, y0, z0), Vec3(x1, y1, z1)}
}

// B3Empty returns an empty box, ready to be expanded.
func B3Empty() Box3 {
	var b Box3
	b.SetEmpty()
	return b
}

// B3Size returns a box of the given extents centered on the origin.
func B3Size(size Vector3) Box3 {
	h := size.MulScalar(0.5)
	return Box3{h.Negate(), h}
}

// SetEmpty makes the box empty.
func (b *Box3) SetEmpty() {
	b.Min.SetScalar(Infinity)
	b.Max.SetScalar(-Infinity)
}

// IsEmpty returns true if the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// ExpandByPoint grows the box to include p.
func (b *Box3) ExpandByPoint(p Vector3) {
	b.Min.SetMin(p)
	b.Max.SetMax(p)
}

// ExpandByBox grows the box to include o, unless o is empty.
func (b *Box3) ExpandByBox(o Box3) {
	if o.IsEmpty() {
		return
	}
	b.ExpandByPoint(o.Min)
	b.ExpandByPoint(o.Max)
}

// Center returns the midpoint of the box.
func (b Box3) Center() Vector3 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// Size returns the extents of the box, zero when empty.
func (b Box3) Size() Vector3 {
	if b.IsEmpty() {
		return Vector3{}
	}
	return b.Max.Sub(b.Min)
}

// ContainsPoint returns true if p is inside the box or on its boundary.
func (b Box3) ContainsPoint(p Vector3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Corners returns the eight corners of the box, Min first.
func (b Box3) Corners() [8]Vector3 {
	var cs [8]Vector3
	for i := range cs {
		c := b.Min
		if i&4 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&1 != 0 {
			c.Z = b.Max.Z
		}
		cs[i] = c
	}
	return cs
}

// MulMatrix4 returns the box enclosing all corners of b transformed by m.
func (b Box3) MulMatrix4(m *Matrix4) Box3 {
	if b.IsEmpty() {
		return b
	}
	nb := B3Empty()
	for _, c := range b.Corners() {
		nb.ExpandByPoint(c.MulMatrix4AsPoint(m))
	}
	return nb
}
