package envelope

// solverVersions tracks the version of each solver for trace reporting.
// Bump the entry when a solver's numeric behavior changes.
var solverVersions = map[string]string{
	"wind.pressure":    "1.0.0",
	"wind.force":       "1.0.0",
	"loads.derive":     "1.2.0",
	"catalog.filter":   "1.1.0",
	"pole.analyze":     "1.1.0",
	"pole.cantilever":  "1.0.0",
	"pole.double":      "1.0.0",
	"pole.autodesign":  "1.0.0",
	"footing.solve":    "1.3.0",
	"baseplate.checks": "1.2.0",
	"baseplate.auto":   "1.0.0",
	"rebar.schedule":   "1.0.0",
	"batch.solve":      "1.0.0",
}

// Version returns the registered version for a solver name, or "unknown"
// for unregistered names so a missing registry entry is visible in traces.
func Version(solver string) string {
	if v, ok := solverVersions[solver]; ok {
		return v
	}
	return "unknown"
}

// Versions returns a copy of the full registry.
func Versions() map[string]string {
	out := make(map[string]string, len(solverVersions))
	for k, v := range solverVersions {
		out[k] = v
	}
	return out
}
