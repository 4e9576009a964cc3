package layout

import "math"

// Wall identifies one of the four cardinal garage walls.
type Wall string

// Cardinal walls. WallNone marks zones that are not wall-mounted;
// unrecognized values behave the same as WallNone.
const (
	WallNorth Wall = "N"
	WallEast  Wall = "E"
	WallSouth Wall = "S"
	WallWest  Wall = "W"
	WallNone  Wall = ""
)

// ParseWall normalizes a wall string to one of the four cardinal values.
// Anything unrecognized maps to WallNone, which downstream code treats as
// "no rotation".
func ParseWall(s string) Wall {
	switch Wall(s) {
	case WallNorth, WallEast, WallSouth, WallWest:
		return Wall(s)
	}
	return WallNone
}

// Yaw returns the rotation in radians applied to composites mounted on
// this wall: east −90°, west +90°, everything else 0.
func (w Wall) Yaw() float64 {
	switch w {
	case WallEast:
		return -math.Pi / 2
	case WallWest:
		return math.Pi / 2
	}
	return 0
}

// ZoneType categorizes a placed zone and selects its sub-builder.
type ZoneType string

// Known zone categories. Anything else falls back to a generic box.
const (
	ZoneVehicle      ZoneType = "vehicle"
	ZoneWorkbench    ZoneType = "workbench"
	ZoneWallStorage  ZoneType = "wall_storage"
	ZoneOverhead     ZoneType = "overhead"
	ZoneFloorStorage ZoneType = "floor_storage"
)

// Types lists the known zone categories in display order.
var Types = []ZoneType{ZoneVehicle, ZoneWorkbench, ZoneWallStorage, ZoneOverhead, ZoneFloorStorage}

// TypeInfo carries per-category display metadata.
type TypeInfo struct {
	Label string // human-readable category name
	Color string // default zone color, hex
}

// typeInfos is the fixed per-category catalog.
var typeInfos = map[ZoneType]TypeInfo{
	ZoneVehicle:      {Label: "Vehicles", Color: "0x3b82f6"},
	ZoneWorkbench:    {Label: "Workbench", Color: "0xf59e0b"},
	ZoneWallStorage:  {Label: "Wall Storage", Color: "0x22c55e"},
	ZoneOverhead:     {Label: "Overhead", Color: "0xa855f7"},
	ZoneFloorStorage: {Label: "Floor Storage", Color: "0x888888"},
}

// Info returns display metadata for a category. Unknown categories get the
// floor-storage treatment, mirroring the generic box fallback.
func (t ZoneType) Info() TypeInfo {
	if info, ok := typeInfos[t]; ok {
		return info
	}
	return TypeInfo{Label: string(t), Color: "0x888888"}
}

// VehicleType distinguishes vehicle body profiles.
type VehicleType string

// Vehicle profiles. The minivan profile gets a taller, longer cabin.
const (
	VehicleSedan   VehicleType = "sedan"
	VehicleMinivan VehicleType = "minivan"
)

// Envelope is the garage's outer box, in inches.
type Envelope struct {
	Width  float64 `json:"width" toml:"width" bson:"width"`
	Depth  float64 `json:"depth" toml:"depth" bson:"depth"`
	Height float64 `json:"height" toml:"height" bson:"height"`
}

// OpeningKind names the wall-embedded feature kinds.
type OpeningKind string

// Opening kinds present in layout files.
const (
	OpeningGarageDoor      OpeningKind = "garage_door"
	OpeningEntryDoor       OpeningKind = "entry_door"
	OpeningWindow          OpeningKind = "window"
	OpeningElectricalPanel OpeningKind = "electrical_panel"
)

// Opening is a wall-embedded feature: a door, window, or panel placed on a
// wall at an offset along it.
type Opening struct {
	Kind      OpeningKind `json:"kind" toml:"kind" bson:"kind"`
	Wall      Wall        `json:"wall" toml:"wall" bson:"wall"`
	Position  float64     `json:"position" toml:"position" bson:"position"` // offset along the wall, inches
	Width     float64     `json:"width" toml:"width" bson:"width"`
	Height    float64     `json:"height" toml:"height" bson:"height"`
	FromFloor float64     `json:"fromFloor,omitempty" toml:"from_floor" bson:"from_floor,omitempty"` // sill height, inches
}

// Zone is a placed item: a vehicle bay, workbench, or storage area with a
// position, size, and category.
type Zone struct {
	Type            ZoneType    `json:"type" toml:"type" bson:"type"`
	Name            string      `json:"name" toml:"name" bson:"name"`
	X               float64     `json:"x" toml:"x" bson:"x"` // offset from the west wall, inches
	Y               float64     `json:"y" toml:"y" bson:"y"` // offset from the north wall, inches
	Width           float64     `json:"width" toml:"width" bson:"width"`
	Depth           float64     `json:"depth" toml:"depth" bson:"depth"`
	Height          float64     `json:"height" toml:"height" bson:"height"`
	HeightFromFloor float64     `json:"heightFromFloor,omitempty" toml:"height_from_floor" bson:"height_from_floor,omitempty"`
	Wall            Wall        `json:"wall,omitempty" toml:"wall" bson:"wall,omitempty"`
	Color           string      `json:"color,omitempty" toml:"color" bson:"color,omitempty"`
	VehicleType     VehicleType `json:"vehicleType,omitempty" toml:"vehicle_type" bson:"vehicle_type,omitempty"`
}

// Plan is the complete layout model consumed by the scene builder.
type Plan struct {
	Envelope Envelope  `json:"envelope" toml:"envelope" bson:"envelope"`
	Openings []Opening `json:"openings" toml:"openings" bson:"openings"`
	Zones    []Zone    `json:"zones" toml:"zones" bson:"zones"`
}

// CountByType tallies zones per category.
func (p *Plan) CountByType() map[ZoneType]int {
	counts := make(map[ZoneType]int)
	for _, z := range p.Zones {
		counts[z.Type]++
	}
	return counts
}
