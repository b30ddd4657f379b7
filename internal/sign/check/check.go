package check

// Result is one named limit-state check: demand vs capacity in a stated unit.
// Governing identifies the controlling mechanism when a capacity is the
// minimum of several (e.g. anchor steel vs concrete breakout).
type Result struct {
	Name      string  `json:"name"`
	Demand    float64 `json:"demand"`
	Capacity  float64 `json:"capacity"`
	Unit      string  `json:"unit"`
	Pass      bool    `json:"pass"`
	Governing string  `json:"governing,omitempty"`
}

// Utilization is demand/capacity; above 1.0 the check fails.
func (r Result) Utilization() float64 {
	if r.Capacity <= 0 {
		return 0
	}
	return r.Demand / r.Capacity
}

// Set is an ordered collection of check results for one analysis.
type Set []Result

// Approved is the logical AND of every check in the set. An empty set is not
// approved: approval requires at least one computed check.
func (s Set) Approved() bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !r.Pass {
			return false
		}
	}
	return true
}

// FirstFailure returns the earliest failing check, if any.
func (s Set) FirstFailure() (Result, bool) {
	for _, r := range s {
		if !r.Pass {
			return r, true
		}
	}
	return Result{}, false
}
