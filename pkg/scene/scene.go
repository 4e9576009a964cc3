package scene

import (
	"github.com/google/uuid"

	"github.com/mehinger01/garage-layout-planner/pkg/layout"
)

// InchScale converts layout inches to scene units. One constant governs
// every coordinate conversion, so a 300-inch wall spans 6 scene units.
const InchScale = 0.02

// Composite is the renderable bundle built for one zone: the subtree root
// plus a reference to the zone it was built from.
type Composite struct {
	Node *Node
	Zone *layout.Zone
}

// Scene is a built scene graph: the node tree, the zone composites, and
// the side table that maps composite identity back to zones.
type Scene struct {
	Root       *Node
	Composites []Composite

	zones   map[uuid.UUID]*layout.Zone
	visible map[layout.ZoneType]bool
}

// New creates an empty scene with all categories visible.
func New() *Scene {
	s := &Scene{
		Root:    NewGroup("scene"),
		zones:   make(map[uuid.UUID]*layout.Zone),
		visible: make(map[layout.ZoneType]bool),
	}
	for _, t := range layout.Types {
		s.visible[t] = true
	}
	return s
}

// AddComposite attaches a zone composite under the scene root and records
// the zone in the side table.
func (s *Scene) AddComposite(root *Node, zone *layout.Zone) {
	s.Root.Add(root)
	s.Composites = append(s.Composites, Composite{Node: root, Zone: zone})
	s.zones[root.ID] = zone
}

// ZoneFor resolves a node to its owning zone by walking the parent chain
// against the side table, the way picking traces a hit primitive back to
// the data object it came from. It returns nil when the chain is exhausted
// without a match (static geometry: floor, walls, openings).
func (s *Scene) ZoneFor(n *Node) *layout.Zone {
	for cur := n; cur != nil; cur = cur.Parent() {
		if z, ok := s.zones[cur.ID]; ok {
			return z
		}
	}
	return nil
}

// CompositeFor returns the composite owning the given node, or nil.
func (s *Scene) CompositeFor(n *Node) *Composite {
	z := s.ZoneFor(n)
	if z == nil {
		return nil
	}
	for i := range s.Composites {
		if s.Composites[i].Zone == z {
			return &s.Composites[i]
		}
	}
	return nil
}

// Visible reports whether a zone category is currently shown.
func (s *Scene) Visible(t layout.ZoneType) bool {
	shown, ok := s.visible[t]
	return !ok || shown // categories never toggled are shown
}

// SetVisible shows or hides every composite of the given category in
// place, without rebuilding geometry. It returns the number of composites
// affected.
func (s *Scene) SetVisible(t layout.ZoneType, shown bool) int {
	s.visible[t] = shown
	affected := 0
	for _, c := range s.Composites {
		if c.Zone.Type == t {
			c.Node.Visible = shown
			affected++
		}
	}
	return affected
}

// Toggle flips a category's visibility and returns the new state.
func (s *Scene) Toggle(t layout.ZoneType) bool {
	shown := !s.Visible(t)
	s.SetVisible(t, shown)
	return shown
}

// VisibleZones returns the zones whose category is currently shown, in
// build order.
func (s *Scene) VisibleZones() []*layout.Zone {
	var out []*layout.Zone
	for _, c := range s.Composites {
		if s.Visible(c.Zone.Type) {
			out = append(out, c.Zone)
		}
	}
	return out
}
