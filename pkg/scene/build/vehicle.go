package build

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mehinger01/garage-layout-planner/pkg/layout"
	"github.com/mehinger01/garage-layout-planner/pkg/scene"
	"github.com/mehinger01/garage-layout-planner/pkg/texture"
)

// cabinProfile holds per-vehicle-type cabin proportions, all relative to
// the overall zone dimensions.
type cabinProfile struct {
	height float64 // fraction of zone height
	depth  float64 // fraction of zone depth
	offset float64 // cabin center shift along depth, fraction
}

var cabinProfiles = map[layout.VehicleType]cabinProfile{
	layout.VehicleSedan:   {height: 0.4, depth: 0.5, offset: -0.1},
	layout.VehicleMinivan: {height: 0.55, depth: 0.7, offset: -0.05},
}

// vehicle assembles a stylized car: chassis, tinted cabin, four wheels,
// headlights, and a rear plate. The front faces south (+Z), matching a
// vehicle pulled in through the garage door.
func (b *builder) vehicle(z *layout.Zone) *scene.Node {
	w, d, h := units(z.Width), units(z.Depth), units(z.Height)
	body := layout.ParseColor(z.Color)

	profile, ok := cabinProfiles[z.VehicleType]
	if !ok {
		profile = cabinProfiles[layout.VehicleSedan]
	}

	g := scene.NewGroup(z.Name)
	ax, az := zoneAnchor(z)
	g.At(ax, units(z.HeightFromFloor), az)

	chassis := scene.NewBox("chassis", mgl64.Vec3{w, h * 0.4, d * 0.92}, solid(body))
	chassis.At(0, h*0.2, 0)
	g.Add(chassis)

	cabinH, cabinD := h*profile.height, d*profile.depth
	cabin := scene.NewBox("cabin", mgl64.Vec3{w * 0.9, cabinH, cabinD}, translucent(rgb(0x1a1a1a), 0.85))
	cabin.At(0, h*0.4+cabinH/2, d*profile.offset)
	g.Add(cabin)

	wheelMat := solid(rgb(0x1a1a1a))
	wheelPos := [][2]float64{
		{-w / 2, d * 0.32}, {w / 2, d * 0.32},
		{-w / 2, -d * 0.32}, {w / 2, -d * 0.32},
	}
	for i, p := range wheelPos {
		wheel := scene.NewCylinder(fmt.Sprintf("wheel:%d", i), h*0.44, w*0.08, wheelMat)
		wheel.At(p[0]*0.95, h*0.22, p[1]).RotatedZ(mgl64.DegToRad(90))
		g.Add(wheel)
	}

	lampMat := scene.Material{Color: rgb(0xffffcc), Opacity: 1, Emissive: true}
	for i, hx := range []float64{-w * 0.35, w * 0.35} {
		lamp := scene.NewDisc(fmt.Sprintf("headlight:%d", i), h*0.2, lampMat)
		lamp.At(hx, h*0.25, d/2-0.01)
		g.Add(lamp)
	}

	plate := scene.NewPlane("plate", units(12), units(6), scene.Material{
		Color:   rgb(0xffffff),
		Opacity: 1,
		Texture: b.texFor(texture.LicensePlate),
	})
	plate.At(0, h*0.25, -d/2-0.005)
	g.Add(plate)

	return g
}
