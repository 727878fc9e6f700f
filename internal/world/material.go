package world

// Material is the discrete state of a single voxel.
type Material uint8

const (
	MaterialAir Material = iota
	MaterialDirt
	MaterialSand
	// MaterialBarrier is never simulated or meshed; reserved for hard boundaries.
	MaterialBarrier
)

// MeshedMaterials lists the materials that get their own surface, in extraction order.
var MeshedMaterials = [...]Material{MaterialDirt, MaterialSand}

// Granular reports whether the automaton moves this material.
func (m Material) Granular() bool {
	return m == MaterialDirt || m == MaterialSand
}

func (m Material) String() string {
	switch m {
	case MaterialAir:
		return "air"
	case MaterialDirt:
		return "dirt"
	case MaterialSand:
		return "sand"
	case MaterialBarrier:
		return "barrier"
	default:
		return "unknown"
	}
}

// ParseMaterial maps a lowercase name back to a material.
func ParseMaterial(name string) (Material, bool) {
	switch name {
	case "air":
		return MaterialAir, true
	case "dirt":
		return MaterialDirt, true
	case "sand":
		return MaterialSand, true
	case "barrier":
		return MaterialBarrier, true
	}
	return MaterialAir, false
}
