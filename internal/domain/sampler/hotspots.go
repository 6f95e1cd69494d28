package sampler

import "github.com/hadefuwa/osrs-wilderness/internal/domain/model"

// DefaultHotspots is the fixed wilderness hotspot table. Coordinates
// are on the 800x800 reference plane with deep wilderness toward y=0.
// Density is display metadata; it does not weight hotspot selection.
func DefaultHotspots() []model.HotspotRegion {
	return []model.HotspotRegion{
		{Name: "Revenant Caves", X: 290, Y: 190, Radius: 70, Density: 1.0},
		{Name: "Chaos Altar", X: 140, Y: 330, Radius: 55, Density: 0.85},
		{Name: "Mage Bank", X: 520, Y: 90, Radius: 50, Density: 0.7},
		{Name: "Demonic Ruins", X: 620, Y: 160, Radius: 45, Density: 0.5},
		{Name: "East Dragons", X: 660, Y: 430, Radius: 60, Density: 0.6},
		{Name: "Wilderness Ditch", X: 400, Y: 760, Radius: 80, Density: 0.4},
	}
}
