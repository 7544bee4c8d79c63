// Package movement is the army movement core: the per-hex cost model,
// the engine owning the rebuildable world snapshot, bounded reachability,
// and point-to-point shortest path.
package movement

// Traits are the per-query capabilities of the moving unit. The zero
// value is a grounded unit with no special movement.
type Traits struct {
	Fly        bool `json:"fly"`        // ignores terrain and water entirely
	Swim       bool `json:"swim"`       // crosses hex-based water, ignores waterfalls
	Boats      bool `json:"boats"`      // crosses hex-based water, stopped by waterfalls
	Amphibious bool `json:"amphibious"` // best of water and land movement
}

// Grounded reports whether the unit has no water or air capability.
// River segments act as barriers only for grounded units.
func (t Traits) Grounded() bool {
	return !t.Fly && !t.Swim && !t.Boats && !t.Amphibious
}

// Naval reports whether the unit moves over hex-based water.
func (t Traits) Naval() bool {
	return t.Swim || t.Boats
}
