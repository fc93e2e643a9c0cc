// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parts provides the part inspector: selection, highlighting,
// isolation and clipping of individual meshes, with its own gizmo,
// independent of the object selection. Leaving inspection restores the
// visibility, materials and clipping in effect before it was entered.
package parts

import (
	"image/color"
	"log/slog"
	"slices"

	"cogentcore.org/xyzedit/base/logx"
	"cogentcore.org/xyzedit/camera"
	"cogentcore.org/xyzedit/gizmo"
	"cogentcore.org/xyzedit/math32"
	"cogentcore.org/xyzedit/scene"
	"cogentcore.org/xyzedit/selection"
)

// PivotID is the reserved id of the part selection pivot node.
const PivotID = "__part_pivot"

// Renderer is the part of the renderer that clipping drives.
type Renderer interface {
	// SetClippingPlanes sets the clipping planes; nil removes them.
	// Points on the negative side of any plane are clipped.
	SetClippingPlanes(planes []math32.Plane)

	SetLocalClipping(on bool)
}

// Settings configure the inspector.
type Settings struct {
	// SampleGrid is the number of samples per side used by rectangle
	// selection. Sampling is approximate: meshes smaller than the
	// sample spacing can be missed.
	SampleGrid int `default:"6"`

	// HighlightColor is the emissive color of selected parts.
	HighlightColor color.RGBA

	HighlightIntensity float32 `default:"0.6"`

	// ClipPadding is added on each side of the active part's bounds
	// before deriving the clipping planes.
	ClipPadding float32 `default:"0.05"`
}

// DefaultSettings returns the default inspector settings.
func DefaultSettings() Settings {
	return Settings{SampleGrid: 6, HighlightColor: color.RGBA{255, 160, 0, 255}, HighlightIntensity: 0.6, ClipPadding: 0.05}
}

type savedEmissive struct {
	color     color.RGBA
	intensity float32
}

// Inspector is the part inspector. It does nothing until enabled.
type Inspector struct {
	Scene  *scene.Scene
	Camera *camera.Camera

	// Renderer receives clipping changes; it may be nil.
	Renderer Renderer

	// Gizmo is the part gizmo, normally the peer of the object gizmo.
	Gizmo *gizmo.Gizmo

	Settings Settings

	PivotMode selection.PivotModes

	// Logger is used for diagnostics; nil means [slog.Default].
	Logger *slog.Logger

	enabled    bool
	gizmoOn    bool
	host       *scene.Node
	parts      []*scene.Node
	active     *scene.Node
	emissive   map[*scene.Node]savedEmissive
	soloOn     bool
	visibility map[*scene.Node]bool
	clipping   bool
	planes     []math32.Plane
	pivot      *scene.Node

	// attached is the part or pivot the gizmo was last attached to.
	attached *scene.Node
}

// NewInspector returns a disabled inspector.
func NewInspector(sc *scene.Scene, cam *camera.Camera, gz *gizmo.Gizmo) *Inspector {
	return &Inspector{Scene: sc, Camera: cam, Gizmo: gz, Settings: DefaultSettings(), emissive: map[*scene.Node]savedEmissive{}}
}

func (pi *Inspector) logger() *slog.Logger {
	return logx.Or(pi.Logger)
}

// Enable enters part inspection of the meshes below host, or of every
// mesh in the scene if host is nil.
func (pi *Inspector) Enable(host *scene.Node) bool {
	if host != nil && !pi.Scene.Contains(host) {
		pi.logger().Warn("parts.Inspector.Enable: host is not in the scene graph", "host", host)
		return false
	}
	if pi.enabled {
		pi.Disable()
	}
	pi.enabled = true
	pi.host = host
	return true
}

// Disable leaves part inspection, restoring every material, visibility
// and clipping change made while enabled.
func (pi *Inspector) Disable() {
	if !pi.enabled {
		return
	}
	pi.DeselectAll()
	pi.SetSolo(false)
	pi.SetClipping(false)
	pi.enabled = false
	pi.host = nil
}

// IsEnabled returns whether part inspection is active.
func (pi *Inspector) IsEnabled() bool {
	return pi.enabled
}

// Host returns the inspected host, nil for the whole scene.
func (pi *Inspector) Host() *scene.Node {
	return pi.host
}

// Meshes returns the visible meshes that can be picked.
func (pi *Inspector) Meshes() []*scene.Node {
	var ms []*scene.Node
	visit := func(n *scene.Node) bool {
		if n.Kind == scene.Mesh && pi.Scene.Contains(n) && n.IsVisible() {
			ms = append(ms, n)
		}
		return scene.Continue
	}
	if pi.host != nil {
		pi.host.Walk(visit)
	} else {
		pi.Scene.Walk(visit)
	}
	return ms
}

// Parts returns the selected parts in selection order.
func (pi *Inspector) Parts() []*scene.Node {
	return slices.Clone(pi.parts)
}

// Active returns the active part, nil if none.
func (pi *Inspector) Active() *scene.Node {
	return pi.active
}

// Pivot returns the part pivot, nil unless the gizmo is on a multi-part selection.
func (pi *Inspector) Pivot() *scene.Node {
	return pi.pivot
}

////////////////////////////////////////////////////////////
// 	Selection

// HitTest returns the nearest mesh under the normalized device coordinates.
func (pi *Inspector) HitTest(ndc math32.Vector2) *scene.Node {
	if !pi.enabled || pi.Camera == nil {
		return nil
	}
	hits := pi.Scene.Raycast(pi.Camera.RayFromNDC(ndc), pi.Meshes(), false)
	if len(hits) == 0 {
		return nil
	}
	return hits[0].Node
}

// Click handles a click: the hit part replaces the selection, or is
// toggled if additive; clicking the only selected part, or empty space
// without additive, deselects.
func (pi *Inspector) Click(ndc math32.Vector2, additive bool) *scene.Node {
	if !pi.enabled {
		return nil
	}
	n := pi.HitTest(ndc)
	switch {
	case n == nil:
		if !additive {
			pi.DeselectAll()
		}
	case additive:
		pi.Toggle(n)
	case len(pi.parts) == 1 && pi.parts[0] == n:
		pi.DeselectAll()
	default:
		pi.Select(n)
	}
	return n
}

// Select makes n the only selected part.
func (pi *Inspector) Select(n *scene.Node) bool {
	if !pi.canSelect(n) {
		return false
	}
	pi.clear()
	pi.add(n)
	pi.changed()
	return true
}

// Toggle adds or removes n from the part selection.
func (pi *Inspector) Toggle(n *scene.Node) bool {
	if slices.Contains(pi.parts, n) {
		pi.remove(n)
		pi.changed()
		return true
	}
	if !pi.canSelect(n) {
		return false
	}
	pi.add(n)
	pi.changed()
	return true
}

// DeselectAll clears the part selection and restores highlights.
func (pi *Inspector) DeselectAll() {
	pi.clear()
	pi.changed()
}

// RectSelect selects the meshes hit by a grid of rays sampled inside the
// rectangle spanned by the two NDC corners, adding to the selection if
// additive. It returns the meshes hit.
func (pi *Inspector) RectSelect(ndcA, ndcB math32.Vector2, additive bool) []*scene.Node {
	if !pi.enabled || pi.Camera == nil {
		return nil
	}
	lo, hi := ndcA.Min(ndcB), ndcA.Max(ndcB)
	ns := max(pi.Settings.SampleGrid, 1)
	meshes := pi.Meshes()
	var found []*scene.Node
	for i := range ns {
		for j := range ns {
			u := lo.X + (hi.X-lo.X)*(float32(i)+0.5)/float32(ns)
			v := lo.Y + (hi.Y-lo.Y)*(float32(j)+0.5)/float32(ns)
			hits := pi.Scene.Raycast(pi.Camera.RayFromNDC(math32.Vec2(u, v)), meshes, false)
			if len(hits) > 0 && !slices.Contains(found, hits[0].Node) {
				found = append(found, hits[0].Node)
			}
		}
	}
	if !additive {
		pi.clear()
	}
	for _, n := range found {
		if !slices.Contains(pi.parts, n) {
			pi.add(n)
		}
	}
	pi.changed()
	return found
}

func (pi *Inspector) canSelect(n *scene.Node) bool {
	if !pi.enabled {
		pi.logger().Warn("parts.Inspector: not enabled")
		return false
	}
	if n == nil || n.Kind != scene.Mesh || !pi.Scene.Contains(n) {
		pi.logger().Warn("parts.Inspector: not a selectable part", "node", n)
		return false
	}
	if pi.host != nil && n != pi.host && !pi.host.IsAncestorOf(n) {
		pi.logger().Warn("parts.Inspector: part is outside the host", "node", n, "host", pi.host)
		return false
	}
	return true
}

func (pi *Inspector) add(n *scene.Node) {
	pi.parts = append(pi.parts, n)
	pi.active = n
	pi.highlight(n)
}

func (pi *Inspector) remove(n *scene.Node) {
	i := slices.Index(pi.parts, n)
	if i < 0 {
		return
	}
	pi.unhighlight(n)
	pi.parts = slices.Delete(pi.parts, i, i+1)
	if pi.active == n {
		pi.active = nil
		if len(pi.parts) > 0 {
			pi.active = pi.parts[len(pi.parts)-1]
		}
	}
}

func (pi *Inspector) clear() {
	for _, n := range pi.parts {
		pi.unhighlight(n)
	}
	pi.parts = nil
	pi.active = nil
}

// changed re-applies everything derived from the active part.
func (pi *Inspector) changed() {
	if pi.soloOn {
		pi.restoreVisibility()
		pi.applySolo()
	}
	if pi.clipping {
		pi.applyClipping()
	}
	pi.attachGizmo()
}

// Cleanup drops parts that left the scene graph. It does nothing while
// the part gizmo is dragging.
func (pi *Inspector) Cleanup() {
	if pi.Gizmo != nil && pi.Gizmo.IsDragging() {
		return
	}
	n := len(pi.parts)
	for _, p := range slices.Clone(pi.parts) {
		if !pi.Scene.Contains(p) {
			pi.remove(p)
		}
	}
	if len(pi.parts) != n {
		pi.changed()
	}
}

////////////////////////////////////////////////////////////
// 	Highlight

func (pi *Inspector) highlight(n *scene.Node) {
	if !n.Kind.Highlightable() || n.Material == nil {
		return
	}
	if _, has := pi.emissive[n]; !has {
		pi.emissive[n] = savedEmissive{color: n.Material.Emissive, intensity: n.Material.EmissiveIntensity}
	}
	n.Material.Emissive = pi.Settings.HighlightColor
	n.Material.EmissiveIntensity = pi.Settings.HighlightIntensity
}

func (pi *Inspector) unhighlight(n *scene.Node) {
	sv, has := pi.emissive[n]
	if !has {
		return
	}
	n.Material.Emissive = sv.color
	n.Material.EmissiveIntensity = sv.intensity
	delete(pi.emissive, n)
}
