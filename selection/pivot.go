// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selection

import (
	"strings"

	"cogentcore.org/xyzedit/math32"
	"cogentcore.org/xyzedit/scene"
)

// PivotID is the reserved id of the multi-selection pivot node.
const PivotID = "__pivot"

// PivotModes determine where a pivot is placed relative to its members.
type PivotModes int32

const (
	// PivotCenter places the pivot at the center of the members' combined
	// world bounding box.
	PivotCenter PivotModes = iota

	// PivotFirst places the pivot at the first member's origin.
	PivotFirst

	// PivotLast places the pivot at the last member's origin.
	PivotLast
)

var pivotModeNames = [...]string{"center", "first", "last"}

func (pm PivotModes) String() string {
	if pm < PivotCenter || pm > PivotLast {
		return "center"
	}
	return pivotModeNames[pm]
}

// PivotModeFromString returns the pivot mode with the given name.
func PivotModeFromString(s string) (PivotModes, bool) {
	for i, nm := range pivotModeNames {
		if strings.EqualFold(nm, s) {
			return PivotModes(i), true
		}
	}
	return PivotCenter, false
}

// PivotPosition returns the world position of a pivot for the members.
// Members without geometry contribute their origin to the center box.
func PivotPosition(mode PivotModes, members []*scene.Node) math32.Vector3 {
	if len(members) == 0 {
		return math32.Vector3{}
	}
	switch mode {
	case PivotFirst:
		return members[0].WorldPos()
	case PivotLast:
		return members[len(members)-1].WorldPos()
	}
	bb := math32.B3Empty()
	for _, m := range members {
		wb := m.WorldBBox()
		if wb.IsEmpty() {
			bb.ExpandByPoint(m.WorldPos())
			continue
		}
		bb.ExpandByBox(wb)
	}
	return bb.Center()
}

// NewPivot returns a detached pivot node at the members' pivot position,
// with identity rotation and unit scale.
func NewPivot(id string, mode PivotModes, members []*scene.Node) *scene.Node {
	pv := scene.NewNode(id, "pivot", scene.Pivot)
	pv.Pose = scene.NewPose(PivotPosition(mode, members))
	return pv
}
