package pick

import (
	"github.com/mehinger01/garage-layout-planner/pkg/camera"
	"github.com/mehinger01/garage-layout-planner/pkg/layout"
	"github.com/mehinger01/garage-layout-planner/pkg/scene"
)

// Picker tracks hover and selection across pointer events.
type Picker struct {
	width, height int

	hovered  *layout.Zone
	selected *layout.Zone
}

// New creates a picker for the given viewport.
func New(width, height int) *Picker {
	p := &Picker{width: 1, height: 1}
	p.SetViewport(width, height)
	return p
}

// SetViewport records the pixel size used to convert pointer positions.
// Degenerate sizes are ignored.
func (p *Picker) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.width, p.height = width, height
}

// resolve casts through the scene and returns the zone of the nearest hit
// that belongs to one, scanning past zone-less static geometry.
func resolve(sc *scene.Scene, r Ray) *layout.Zone {
	for _, h := range Cast(sc, r) {
		if h.Zone != nil {
			return h.Zone
		}
	}
	return nil
}

// Hover updates the transient hover state from a pointer move and returns
// the zone under the pointer, if any.
func (p *Picker) Hover(sc *scene.Scene, cam *camera.Orbit, px, py float64) *layout.Zone {
	p.hovered = resolve(sc, ScreenRay(cam, px, py, p.width, p.height))
	return p.hovered
}

// Click updates the persistent selection from a pointer click. Clicking
// open space clears the selection.
func (p *Picker) Click(sc *scene.Scene, cam *camera.Orbit, px, py float64) *layout.Zone {
	p.selected = resolve(sc, ScreenRay(cam, px, py, p.width, p.height))
	return p.selected
}

// Hovered returns the zone under the pointer, or nil.
func (p *Picker) Hovered() *layout.Zone { return p.hovered }

// Selected returns the clicked zone, or nil. Selection takes display
// precedence over hover.
func (p *Picker) Selected() *layout.Zone { return p.selected }

// Clear drops both hover and selection, for use after a scene rebuild.
func (p *Picker) Clear() {
	p.hovered = nil
	p.selected = nil
}
