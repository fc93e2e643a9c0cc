// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const StandardTol = float32(1.0e-5)

func AssertEqualVec3(t *testing.T, want, got Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, float64(StandardTol), "X of %v vs %v", want, got)
	assert.InDelta(t, want.Y, got.Y, float64(StandardTol), "Y of %v vs %v", want, got)
	assert.InDelta(t, want.Z, got.Z, float64(StandardTol), "Z of %v vs %v", want, got)
}

func TestIntMultiple(t *testing.T) {
	assert.Equal(t, float32(1.5), IntMultiple(1.4, 0.5))
	assert.Equal(t, float32(-2), IntMultiple(-2.2, 1))
	assert.Equal(t, float32(1.4), IntMultiple(1.4, 0))
}

func TestQuatRotate(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(90))
	AssertEqualVec3(t, Vec3(0, 0, -1), Vec3(1, 0, 0).MulQuat(q))
	AssertEqualVec3(t, Vec3(1, 0, 0), Vec3(1, 0, 0).MulQuat(q).MulQuat(q.Inverse()))

	// two 45 degree turns make 90
	h := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(45))
	assert.True(t, h.Mul(h).IsEqualTol(q, StandardTol))

	axis, angle := q.ToAxisAngle()
	AssertEqualVec3(t, Vec3(0, 1, 0), axis)
	assert.InDelta(t, DegToRad(90), angle, 1e-5)
}

func TestMatrixComposeDecompose(t *testing.T) {
	pos := Vec3(1, 2, 3)
	quat := NewQuatEuler(Vec3(0.3, -0.7, 1.1))
	scale := Vec3(2, 0.5, 3)

	m := NewMatrix4Transform(pos, quat, scale)
	dp, dq, ds := m.Decompose()
	AssertEqualVec3(t, pos, dp)
	AssertEqualVec3(t, scale, ds)
	assert.True(t, quat.IsEqualTol(dq, 1e-4))

	inv, err := m.Inverse()
	require.NoError(t, err)
	id := m.Mul(inv)
	for i, v := range Identity4() {
		assert.InDelta(t, v, id[i], 1e-4, "element %d", i)
	}

	p := Vec3(-1, 4, 0.5)
	AssertEqualVec3(t, p, p.MulMatrix4AsPoint(m).MulMatrix4AsPoint(inv))
}

func TestMatrixSingular(t *testing.T) {
	m := &Matrix4{}
	inv, err := m.Inverse()
	assert.ErrorIs(t, err, ErrSingular)
	assert.Equal(t, Identity4(), inv)
}

func TestMatrixMulOrder(t *testing.T) {
	// translate after rotate: (1,0,0) -> rotate 90 about Z = (0,1,0) -> +(1,1,0) = (1,2,0)
	tr := NewMatrix4Transform(Vec3(1, 1, 0), NewQuatIdentity(), Vector3Scalar(1))
	rot := NewMatrix4Transform(Vector3{}, NewQuatAxisAngle(Vec3(0, 0, 1), DegToRad(90)), Vector3Scalar(1))
	AssertEqualVec3(t, Vec3(1, 2, 0), Vec3(1, 0, 0).MulMatrix4AsPoint(tr.Mul(rot)))
}

func TestLookAt(t *testing.T) {
	q := NewLookAtQuat(Vec3(0, 0, 10), Vector3{}, Vec3(0, 1, 0))
	AssertEqualVec3(t, Vec3(0, 0, -1), Vec3(0, 0, -1).MulQuat(q))

	q = NewLookAtQuat(Vec3(10, 0, 0), Vector3{}, Vec3(0, 1, 0))
	AssertEqualVec3(t, Vec3(-1, 0, 0), Vec3(0, 0, -1).MulQuat(q))

	// straight down, up parallel to view direction
	q = NewLookAtQuat(Vec3(0, 10, 0), Vector3{}, Vec3(0, 1, 0))
	fwd := Vec3(0, 0, -1).MulQuat(q)
	assert.InDelta(t, -1, fwd.Y, 1e-3)
}

func TestBox3(t *testing.T) {
	b := B3Empty()
	assert.True(t, b.IsEmpty())
	b.ExpandByPoint(Vec3(-1, 0, 2))
	b.ExpandByPoint(Vec3(1, 2, 4))
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vec3(0, 1, 3), b.Center())
	assert.Equal(t, Vec3(2, 2, 2), b.Size())
	assert.True(t, b.ContainsPoint(Vec3(0, 1, 3)))
	assert.False(t, b.ContainsPoint(Vec3(0, 3, 3)))

	m := NewMatrix4Transform(Vec3(10, 0, 0), NewQuatIdentity(), Vector3Scalar(2))
	tb := b.MulMatrix4(m)
	AssertEqualVec3(t, Vec3(8, 0, 4), tb.Min)
	AssertEqualVec3(t, Vec3(12, 4, 8), tb.Max)
}

func TestRayIntersectBox(t *testing.T) {
	b := B3(-1, -1, -1, 1, 1, 1)
	r := NewRay(Vec3(0, 0, 10), Vec3(0, 0, -1))
	d, ok := r.IntersectBox(b)
	assert.True(t, ok)
	assert.InDelta(t, 9, d, 1e-5)

	_, ok = NewRay(Vec3(3, 0, 10), Vec3(0, 0, -1)).IntersectBox(b)
	assert.False(t, ok)

	_, ok = NewRay(Vec3(0, 0, 10), Vec3(0, 0, 1)).IntersectBox(b)
	assert.False(t, ok, "box behind the origin")

	d, ok = NewRay(Vector3{}, Vec3(1, 0, 0)).IntersectBox(b)
	assert.True(t, ok)
	assert.InDelta(t, 1, d, 1e-5, "origin inside yields exit distance")
}

func TestRayPlane(t *testing.T) {
	pl := NewPlaneNormalPoint(Vec3(0, 1, 0), Vec3(0, 2, 0))
	assert.InDelta(t, 1, pl.DistanceToPoint(Vec3(5, 3, 5)), 1e-6)

	p, ok := NewRay(Vec3(1, 10, 1), Vec3(0, -1, 0)).IntersectPlane(pl)
	assert.True(t, ok)
	AssertEqualVec3(t, Vec3(1, 2, 1), p)

	_, ok = NewRay(Vec3(1, 10, 1), Vec3(1, 0, 0)).IntersectPlane(pl)
	assert.False(t, ok)
}

func TestRayClosestToLine(t *testing.T) {
	r := NewRay(Vec3(0, 5, 2), Vec3(0, -1, 0))
	s, u := r.ClosestToLine(Vector3{}, Vec3(0, 0, 1))
	assert.InDelta(t, 5, s, 1e-5)
	assert.InDelta(t, 2, u, 1e-5)
	assert.InDelta(t, 0, r.DistanceToPoint(Vec3(0, 0, 2)), 1e-5)
}

func TestSpherical(t *testing.T) {
	v := Vec3(3, 4, 5)
	s := NewSpherical(v)
	AssertEqualVec3(t, v, s.Vector3())

	s.Phi = 0
	s.ClampPhi(0.1)
	assert.InDelta(t, 0.1, s.Phi, 1e-6)
	s.Phi = Pi
	s.ClampPhi(0.1)
	assert.InDelta(t, Pi-0.1, s.Phi, 1e-6)
}
