// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Ray represents an oriented 3D line segment defined by an origin point and a direction vector.
type Ray struct {
	Origin Vector3
	Dir    Vector3
}

// NewRay creates and returns a pointer to a Ray object with
// the specified origin and direction vectors.
// The direction is normalized.
func NewRay(origin, dir Vector3) Ray {
	return Ray{Origin: origin, Dir: dir.Normal()}
}

// At calculates the point in the ray which is at the specified t distance from the origin
// along its direction.
func (ray Ray) At(t float32) Vector3 {
	return ray.Dir.MulScalar(t).Add(ray.Origin)
}

// IntersectBox returns the distance along the ray to the first
// intersection with the box, using the slab method. The origin inside
// the box yields the exit distance. ok is false when the ray misses or
// the box is entirely behind the origin.
func (ray Ray) IntersectBox(box Box3) (t float32, ok bool) {
	if box.IsEmpty() {
		return 0, false
	}
	tmin := -Infinity
	tmax := Infinity
	for d := X; d <= Z; d++ {
		o := ray.Origin.Dim(d)
		dir := ray.Dir.Dim(d)
		lo := box.Min.Dim(d)
		hi := box.Max.Dim(d)
		if dir == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		inv := 1 / dir
		t0 := (lo - o) * inv
		t1 := (hi - o) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = Max(tmin, t0)
		tmax = Min(tmax, t1)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}

// IntersectPlane returns the point where the ray hits the plane.
// ok is false when the ray is parallel to the plane or the plane is behind it.
func (ray Ray) IntersectPlane(plane Plane) (Vector3, bool) {
	denom := plane.Normal.Dot(ray.Dir)
	if Abs(denom) < 1e-6 {
		return Vector3{}, false
	}
	t := -(ray.Origin.Dot(plane.Normal) + plane.Constant) / denom
	if t < 0 {
		return Vector3{}, false
	}
	return ray.At(t), true
}

// ClosestToLine returns the parameters of the closest points between this
// ray and the infinite line through point along dir: s along the ray
// and t along the line. Parallel lines return s = 0.
func (ray Ray) ClosestToLine(point, dir Vector3) (s, t float32) {
	w0 := ray.Origin.Sub(point)
	a := ray.Dir.Dot(ray.Dir)
	b := ray.Dir.Dot(dir)
	c := dir.Dot(dir)
	d := ray.Dir.Dot(w0)
	e := dir.Dot(w0)
	denom := a*c - b*b
	if Abs(denom) < 1e-6 {
		if c == 0 {
			return 0, 0
		}
		return 0, e / c
	}
	s = (b*e - c*d) / denom
	t = (a*e - b*d) / denom
	return
}

// DistanceToPoint returns the smallest distance from the ray
// (for t >= 0) to the point.
func (ray Ray) DistanceToPoint(point Vector3) float32 {
	t := point.Sub(ray.Origin).Dot(ray.Dir)
	if t < 0 {
		return ray.Origin.DistanceTo(point)
	}
	return ray.At(t).DistanceTo(point)
}
