package foundation

import (
	"math"
	"strings"
	"testing"

	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
)

func containsNote(notes []string, substr string) bool {
	for _, n := range notes {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSolveFootingRound(t *testing.T) {
	res, err := SolveFooting(FootingInput{
		MomentKipFt:    10,
		SoilBearingPsf: 3000,
		DiameterFt:     3,
	})
	if err != nil {
		t.Fatalf("SolveFooting: %v", err)
	}
	if !floatEq(res.DepthFt, 4.22) {
		t.Errorf("DepthFt = %v, want 4.22", res.DepthFt)
	}
	if !floatEq(res.ConcretePerFootingCuYd, 1.47) {
		t.Errorf("ConcretePerFootingCuYd = %v, want 1.47", res.ConcretePerFootingCuYd)
	}
	if !floatEq(res.ConcreteTotalCuYd, 1.47) {
		t.Errorf("ConcreteTotalCuYd = %v, want 1.47", res.ConcreteTotalCuYd)
	}
	if res.Shape != ShapeRound {
		t.Errorf("Shape = %q, want default round", res.Shape)
	}
	if res.NumPoles != 1 {
		t.Errorf("NumPoles = %d, want 1", res.NumPoles)
	}
	if !floatEq(res.MomentPerPoleKipFt, 10.0) {
		t.Errorf("MomentPerPoleKipFt = %v, want 10.0", res.MomentPerPoleKipFt)
	}
	if res.RequestEngineeringReview {
		t.Error("review flagged for a routine footing")
	}
	if res.Warnings == nil || len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want empty non-nil", res.Warnings)
	}
	if !containsNote(res.Assumptions, "nonconstrained embedded post") {
		t.Errorf("missing embedment model assumption: %v", res.Assumptions)
	}
	if !containsNote(res.Assumptions, "67% of allowable vertical bearing") {
		t.Errorf("missing lateral bearing assumption: %v", res.Assumptions)
	}
	if !containsNote(res.Assumptions, "1.33 over-excavation allowance") {
		t.Errorf("missing over-excavation assumption: %v", res.Assumptions)
	}
	if len(res.CodeRefs) != 2 {
		t.Errorf("CodeRefs = %v, want the two IBC references", res.CodeRefs)
	}
}

func TestSolveFootingDepthScalesWithMoment(t *testing.T) {
	var prev float64
	for _, m := range []float64{5, 10, 20, 40} {
		res, err := SolveFooting(FootingInput{MomentKipFt: m, SoilBearingPsf: 3000, DiameterFt: 3})
		if err != nil {
			t.Fatalf("SolveFooting(M=%v): %v", m, err)
		}
		if res.DepthFt <= prev {
			t.Errorf("DepthFt = %v at M=%v, not deeper than %v", res.DepthFt, m, prev)
		}
		prev = res.DepthFt
	}
}

func TestSolveFootingDepthNeverGrowsWithDiameter(t *testing.T) {
	// For fixed moment and soil, a narrower footing must never get away with
	// a shallower embedment. The 2.0 ft floor flattens the tail, so the
	// ordering is non-strict.
	prev := math.Inf(1)
	for _, b := range []float64{2, 2.5, 3, 4, 5, 6} {
		res, err := SolveFooting(FootingInput{MomentKipFt: 10, SoilBearingPsf: 3000, DiameterFt: b})
		if err != nil {
			t.Fatalf("SolveFooting(b=%v): %v", b, err)
		}
		if res.DepthFt > prev {
			t.Errorf("DepthFt = %v at b=%v, deeper than %v at the next smaller diameter", res.DepthFt, b, prev)
		}
		prev = res.DepthFt
	}
}

func TestSolveFootingPracticeMinimum(t *testing.T) {
	res, err := SolveFooting(FootingInput{MomentKipFt: 1, SoilBearingPsf: 3000, DiameterFt: 3})
	if err != nil {
		t.Fatalf("SolveFooting: %v", err)
	}
	if !floatEq(res.DepthFt, 2.0) {
		t.Errorf("DepthFt = %v, want the 2.0 ft floor", res.DepthFt)
	}
	if !containsNote(res.Assumptions, "2.0 ft practice minimum") {
		t.Errorf("missing practice minimum assumption: %v", res.Assumptions)
	}
	if !floatEq(res.ConcretePerFootingCuYd, 0.70) {
		t.Errorf("ConcretePerFootingCuYd = %v, want 0.70 at the floored depth", res.ConcretePerFootingCuYd)
	}
	if res.RequestEngineeringReview {
		t.Error("review flagged at the practice minimum")
	}
}

func TestSolveFootingDeepEmbedmentReview(t *testing.T) {
	res, err := SolveFooting(FootingInput{MomentKipFt: 60, SoilBearingPsf: 3000, DiameterFt: 3})
	if err != nil {
		t.Fatalf("SolveFooting: %v", err)
	}
	if !floatEq(res.DepthFt, 25.35) {
		t.Errorf("DepthFt = %v, want 25.35", res.DepthFt)
	}
	if !res.RequestEngineeringReview {
		t.Error("expected engineering review beyond the depth threshold")
	}
	if !containsNote(res.Warnings, "embedment 25.35 ft exceeds 8.0 ft") {
		t.Errorf("missing review warning: %v", res.Warnings)
	}
	if !containsNote(res.Warnings, "drilled pier") {
		t.Errorf("review warning should point at the drilled pier alternative: %v", res.Warnings)
	}
	// Volume comes from the unrounded depth.
	if !floatEq(res.ConcreteTotalCuYd, 8.85) {
		t.Errorf("ConcreteTotalCuYd = %v, want 8.85", res.ConcreteTotalCuYd)
	}
}

func TestSolveFootingSquareSection(t *testing.T) {
	res, err := SolveFooting(FootingInput{
		MomentKipFt:    10,
		SoilBearingPsf: 3000,
		DiameterFt:     3,
		Shape:          ShapeSquare,
	})
	if err != nil {
		t.Fatalf("SolveFooting: %v", err)
	}
	if res.Shape != ShapeSquare {
		t.Errorf("Shape = %q, want square", res.Shape)
	}
	if !floatEq(res.DepthFt, 4.22) {
		t.Errorf("DepthFt = %v, want 4.22; embedment is shape-independent", res.DepthFt)
	}
	if !floatEq(res.ConcretePerFootingCuYd, 1.88) {
		t.Errorf("ConcretePerFootingCuYd = %v, want 1.88 for the square section", res.ConcretePerFootingCuYd)
	}
}

func TestSolveFootingSplitsMomentAcrossPoles(t *testing.T) {
	res, err := SolveFooting(FootingInput{
		MomentKipFt:    20,
		SoilBearingPsf: 3000,
		DiameterFt:     3,
		NumPoles:       2,
	})
	if err != nil {
		t.Fatalf("SolveFooting: %v", err)
	}
	if !floatEq(res.MomentPerPoleKipFt, 10.0) {
		t.Errorf("MomentPerPoleKipFt = %v, want 10.0", res.MomentPerPoleKipFt)
	}
	if !floatEq(res.DepthFt, 4.22) {
		t.Errorf("DepthFt = %v, want 4.22 from the per-pole share", res.DepthFt)
	}
	if !floatEq(res.ConcretePerFootingCuYd, 1.47) {
		t.Errorf("ConcretePerFootingCuYd = %v, want 1.47", res.ConcretePerFootingCuYd)
	}
	if !floatEq(res.ConcreteTotalCuYd, 2.95) {
		t.Errorf("ConcreteTotalCuYd = %v, want 2.95 for two footings", res.ConcreteTotalCuYd)
	}
	if !containsNote(res.Assumptions, "split equally across 2 footings") {
		t.Errorf("missing moment split assumption: %v", res.Assumptions)
	}
}

func TestSolveFootingBearingOutsideTypicalRange(t *testing.T) {
	t.Run("soft soil", func(t *testing.T) {
		res, err := SolveFooting(FootingInput{MomentKipFt: 1, SoilBearingPsf: 400, DiameterFt: 3})
		if err != nil {
			t.Fatalf("SolveFooting: %v", err)
		}
		if !containsNote(res.Warnings, "soil bearing 400 psf is outside the typical 500-12000 psf range") {
			t.Errorf("missing bearing warning: %v", res.Warnings)
		}
		if !floatEq(res.DepthFt, 3.17) {
			t.Errorf("DepthFt = %v, want 3.17; the warning is advisory", res.DepthFt)
		}
		if res.RequestEngineeringReview {
			t.Error("bearing band warning should not force a review")
		}
	})
	t.Run("rock", func(t *testing.T) {
		res, err := SolveFooting(FootingInput{MomentKipFt: 10, SoilBearingPsf: 12500, DiameterFt: 3})
		if err != nil {
			t.Fatalf("SolveFooting: %v", err)
		}
		if !containsNote(res.Warnings, "soil bearing 12500 psf is outside the typical") {
			t.Errorf("missing bearing warning: %v", res.Warnings)
		}
		if !floatEq(res.DepthFt, 2.0) {
			t.Errorf("DepthFt = %v, want the 2.0 ft floor on rock", res.DepthFt)
		}
	})
}

func TestSolveFootingValidation(t *testing.T) {
	good := FootingInput{MomentKipFt: 10, SoilBearingPsf: 3000, DiameterFt: 3}
	cases := []struct {
		name   string
		mutate func(*FootingInput)
	}{
		{"zero moment", func(in *FootingInput) { in.MomentKipFt = 0 }},
		{"negative moment", func(in *FootingInput) { in.MomentKipFt = -5 }},
		{"zero bearing", func(in *FootingInput) { in.SoilBearingPsf = 0 }},
		{"zero diameter", func(in *FootingInput) { in.DiameterFt = 0 }},
		{"unknown shape", func(in *FootingInput) { in.Shape = "hex" }},
		{"too many poles", func(in *FootingInput) { in.NumPoles = 5 }},
		{"negative poles", func(in *FootingInput) { in.NumPoles = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := good
			tc.mutate(&in)
			if _, err := SolveFooting(in); !units.IsInvalidInput(err) {
				t.Errorf("err = %v, want invalid input", err)
			}
		})
	}
}
