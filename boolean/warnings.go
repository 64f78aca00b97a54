package boolean

// Warnings is a bitset of non-fatal classification anomalies, accumulated
// per-thread and merged at each phase boundary (spec.md §7
// "Classification warning (non-fatal): recorded in the Warnings bitset;
// the pipeline continues and produces best-effort output").
type Warnings uint32

const (
	// LocalInconsistency marks a border edge where one side's incident
	// face count around the edge was odd, or where no opposing blade
	// existed to classify against (spec.md §4.8).
	LocalInconsistency Warnings = 1 << iota
	// GlobalSeedConflict marks a connected component whose locally
	// classified member faces disagreed on Interior/Exterior (spec.md
	// §4.9).
	GlobalSeedConflict
	// IsolatedComponentFallback marks a component with no locally
	// classified seed, resolved by a single ray test (spec.md §4.9,
	// Open Question: "ray test per component").
	IsolatedComponentFallback
)

// Has reports whether w is set in ws.
func (ws Warnings) Has(w Warnings) bool { return ws&w != 0 }

func (ws Warnings) String() string {
	if ws == 0 {
		return "none"
	}
	names := []struct {
		bit  Warnings
		name string
	}{
		{LocalInconsistency, "local_inconsistency"},
		{GlobalSeedConflict, "global_seed_conflict"},
		{IsolatedComponentFallback, "isolated_component_fallback"},
	}
	s := ""
	for _, n := range names {
		if ws.Has(n.bit) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	return s
}
