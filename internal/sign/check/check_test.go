package check

import "testing"

func TestUtilization(t *testing.T) {
	tests := []struct {
		name string
		r    Result
		want float64
	}{
		{"under capacity", Result{Demand: 5, Capacity: 10}, 0.5},
		{"at capacity", Result{Demand: 10, Capacity: 10}, 1.0},
		{"over capacity", Result{Demand: 15, Capacity: 10}, 1.5},
		{"zero capacity", Result{Demand: 5, Capacity: 0}, 0},
		{"negative capacity", Result{Demand: 5, Capacity: -1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Utilization(); got != tt.want {
				t.Errorf("Utilization() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetApproved(t *testing.T) {
	pass := Result{Name: "Bending", Demand: 1, Capacity: 2, Pass: true}
	fail := Result{Name: "Shear", Demand: 3, Capacity: 2, Pass: false}

	if (Set{}).Approved() {
		t.Error("empty set must not be approved")
	}
	if !(Set{pass}).Approved() {
		t.Error("single passing check should be approved")
	}
	if (Set{pass, fail}).Approved() {
		t.Error("any failing check must block approval")
	}
	if (Set{fail, pass}).Approved() {
		t.Error("order must not matter for approval")
	}
}

func TestFirstFailure(t *testing.T) {
	pass := Result{Name: "Bending", Pass: true}
	failA := Result{Name: "Shear", Pass: false}
	failB := Result{Name: "Deflection", Pass: false}

	if _, ok := (Set{pass}).FirstFailure(); ok {
		t.Error("all-passing set should report no failure")
	}
	got, ok := (Set{pass, failA, failB}).FirstFailure()
	if !ok {
		t.Fatal("expected a failure")
	}
	if got.Name != "Shear" {
		t.Errorf("FirstFailure() = %q, want the earliest failing check %q", got.Name, "Shear")
	}
}
