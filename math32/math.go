// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 is a float32 based vector, quaternion, matrix, and math
// package for the 3D editing core: positions, orientations, bounding boxes,
// rays, planes, and spherical coordinates.
package math32

import (
	"cmp"
	"math"

	"github.com/chewxy/math32"
)

// The scalar functions forward to chewxy/math32.

const (
	Pi = math.Pi

	// DegToRadFactor converts degrees to radians.
	DegToRadFactor = Pi / 180
)

// Infinity is positive infinity.
var Infinity = float32(math.Inf(1))

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * DegToRadFactor
}

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return math32.Abs(x)
}

// Acos returns the arccosine, in radians, of x.
func Acos(x float32) float32 {
	return math32.Acos(x)
}

// Atan2 returns the angle of the point (x, y) from the +X axis.
func Atan2(y, x float32) float32 {
	return math32.Atan2(y, x)
}

// Cos returns the cosine of the radian argument x.
func Cos(x float32) float32 {
	return math32.Cos(x)
}

// Sin returns the sine of the radian argument x.
func Sin(x float32) float32 {
	return math32.Sin(x)
}

// Tan returns the tangent of the radian argument x.
func Tan(x float32) float32 {
	return math32.Tan(x)
}

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 {
	return math32.Sqrt(x)
}

// Floor returns the greatest integer value less than or equal to x.
func Floor(x float32) float32 {
	return math32.Floor(x)
}

// Round returns the nearest integer, rounding half away from zero.
func Round(x float32) float32 {
	return math32.Round(x)
}

// IsNaN reports whether x is not a number.
func IsNaN(x float32) bool {
	return math32.IsNaN(x)
}

// Max returns the larger of x or y.
func Max(x, y float32) float32 {
	return math32.Max(x, y)
}

// Min returns the smaller of x or y.
func Min(x, y float32) float32 {
	return math32.Min(x, y)
}

// Clamp limits x to the closed interval [a, b].
func Clamp[T cmp.Ordered](x, a, b T) T {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// IntMultiple snaps val to the nearest multiple of mod.
// A mod <= 0 returns val unchanged.
func IntMultiple(val, mod float32) float32 {
	if mod <= 0 {
		return val
	}
	return Round(val/mod) * mod
}

// ApproxEqual returns true if a and b differ by no more than tol.
func ApproxEqual(a, b, tol float32) bool {
	return Abs(a-b) <= tol
}
