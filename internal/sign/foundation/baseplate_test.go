package foundation

import (
	"testing"

	"github.com/EAGLE605/SignX-sub007/internal/sign/check"
	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
)

func baselinePlate() BaseplateInput {
	return BaseplateInput{
		PlateWidthIn:     12,
		PlateLengthIn:    12,
		PlateThicknessIn: 0.75,
		NumAnchors:       4,
		AnchorDiameterIn: 0.75,
		EmbedDepthIn:     10,
		TensionKip:       5,
		ShearKip:         2,
		MomentKipIn:      100,
	}
}

func checkByName(t *testing.T, cs check.Set, name string) check.Result {
	t.Helper()
	for _, c := range cs {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found in %v", name, cs)
	return check.Result{}
}

func TestCheckBaseplateApproved(t *testing.T) {
	res, err := CheckBaseplate(baselinePlate())
	if err != nil {
		t.Fatalf("CheckBaseplate: %v", err)
	}
	if !res.Approved {
		t.Fatalf("baseline plate not approved: %+v", res.Checks)
	}
	wantOrder := []string{"Plate Bending", "Weld", "Anchor Tension", "Anchor Shear"}
	if len(res.Checks) != len(wantOrder) {
		t.Fatalf("Checks = %v, want %d checks", res.Checks, len(wantOrder))
	}
	for i, name := range wantOrder {
		if res.Checks[i].Name != name {
			t.Errorf("Checks[%d] = %q, want %q", i, res.Checks[i].Name, name)
		}
	}

	if !floatEq(res.PlateMomentKipIn, 15.0) {
		t.Errorf("PlateMomentKipIn = %v, want 15.0", res.PlateMomentKipIn)
	}
	if !floatEq(res.PlateCapacityKipIn, 24.3) {
		t.Errorf("PlateCapacityKipIn = %v, want 24.3", res.PlateCapacityKipIn)
	}
	if !floatEq(res.WeldDemandKip, 2.0) {
		t.Errorf("WeldDemandKip = %v, want 2.0", res.WeldDemandKip)
	}
	if !floatEq(res.WeldCapacityKip, 267.2) {
		t.Errorf("WeldCapacityKip = %v, want 267.2", res.WeldCapacityKip)
	}
	if !floatEq(res.TensionPerAnchorKip, 1.25) {
		t.Errorf("TensionPerAnchorKip = %v, want 1.25", res.TensionPerAnchorKip)
	}
	if !floatEq(res.TensionCapacityKip, 14.4) {
		t.Errorf("TensionCapacityKip = %v, want 14.4", res.TensionCapacityKip)
	}
	if res.TensionGoverning != "steel" {
		t.Errorf("TensionGoverning = %q, want steel at 10 in embedment", res.TensionGoverning)
	}
	if !floatEq(res.ShearPerAnchorKip, 0.5) {
		t.Errorf("ShearPerAnchorKip = %v, want 0.5", res.ShearPerAnchorKip)
	}
	if !floatEq(res.ShearCapacityKip, 11.5) {
		t.Errorf("ShearCapacityKip = %v, want 11.5", res.ShearCapacityKip)
	}

	if len(res.Suggestions) != 0 {
		t.Errorf("Suggestions = %v, want none for a passing plate", res.Suggestions)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
	if len(res.Assumptions) != 8 {
		t.Errorf("Assumptions = %v, want the base note plus seven defaults", res.Assumptions)
	}
	if !containsNote(res.Assumptions, "plate_fy_ksi defaulted to 36") {
		t.Errorf("missing plate Fy default note: %v", res.Assumptions)
	}
	if !containsNote(res.Assumptions, "concrete_fc_psi defaulted to 4000") {
		t.Errorf("missing concrete default note: %v", res.Assumptions)
	}
	if len(res.CodeRefs) != 3 {
		t.Errorf("CodeRefs = %v, want AISC J2, AISC J3, and ACI 17", res.CodeRefs)
	}
}

func TestCheckBaseplateBreakoutGoverns(t *testing.T) {
	in := baselinePlate()
	in.EmbedDepthIn = 4
	res, err := CheckBaseplate(in)
	if err != nil {
		t.Fatalf("CheckBaseplate: %v", err)
	}
	if res.TensionGoverning != "breakout" {
		t.Errorf("TensionGoverning = %q, want breakout at 4 in embedment", res.TensionGoverning)
	}
	if !floatEq(res.TensionCapacityKip, 8.5) {
		t.Errorf("TensionCapacityKip = %v, want 8.5", res.TensionCapacityKip)
	}
	if !res.Approved {
		t.Errorf("light uplift should still pass on breakout: %+v", res.Checks)
	}
	tension := checkByName(t, res.Checks, "Anchor Tension")
	if tension.Governing != "breakout" {
		t.Errorf("check Governing = %q, want breakout", tension.Governing)
	}
}

func TestCheckBaseplateTensionFailures(t *testing.T) {
	t.Run("steel governs", func(t *testing.T) {
		res, err := CheckBaseplate(BaseplateInput{
			PlateWidthIn: 20, PlateLengthIn: 20, PlateThicknessIn: 2.0,
			NumAnchors: 4, AnchorDiameterIn: 0.75, EmbedDepthIn: 10,
			TensionKip: 80, ShearKip: 2,
		})
		if err != nil {
			t.Fatalf("CheckBaseplate: %v", err)
		}
		if res.Approved {
			t.Fatal("80 kip uplift on 3/4 in anchors approved")
		}
		tension := checkByName(t, res.Checks, "Anchor Tension")
		if tension.Pass {
			t.Error("Anchor Tension should fail")
		}
		if !containsNote(res.Suggestions, "increase anchor diameter beyond 0.750 in or use 6 anchors") {
			t.Errorf("missing anchor upsizing suggestion: %v", res.Suggestions)
		}
		if !containsNote(res.Warnings, "Anchor Tension check failed: demand 20.00 kip exceeds capacity 14.40 kip") {
			t.Errorf("missing failure warning: %v", res.Warnings)
		}
	})
	t.Run("breakout governs", func(t *testing.T) {
		res, err := CheckBaseplate(BaseplateInput{
			PlateWidthIn: 20, PlateLengthIn: 20, PlateThicknessIn: 1.5,
			NumAnchors: 4, AnchorDiameterIn: 0.75, EmbedDepthIn: 4,
			TensionKip: 36, ShearKip: 2,
		})
		if err != nil {
			t.Fatalf("CheckBaseplate: %v", err)
		}
		if res.Approved {
			t.Fatal("breakout-governed uplift approved")
		}
		if res.TensionGoverning != "breakout" {
			t.Errorf("TensionGoverning = %q, want breakout", res.TensionGoverning)
		}
		if !containsNote(res.Suggestions, "increase embedment beyond 4.0 in") {
			t.Errorf("missing embedment suggestion: %v", res.Suggestions)
		}
	})
}

func TestCheckBaseplateThinPlate(t *testing.T) {
	in := baselinePlate()
	in.PlateThicknessIn = 0.375
	res, err := CheckBaseplate(in)
	if err != nil {
		t.Fatalf("CheckBaseplate: %v", err)
	}
	if res.Approved {
		t.Fatal("3/8 in plate approved against a 15 kip-in strip moment")
	}
	// A failed plate never hides the anchor checks.
	if len(res.Checks) != 4 {
		t.Fatalf("Checks = %v, want all four evaluated", res.Checks)
	}
	plate := checkByName(t, res.Checks, "Plate Bending")
	if plate.Pass {
		t.Error("Plate Bending should fail")
	}
	if !checkByName(t, res.Checks, "Anchor Tension").Pass {
		t.Error("Anchor Tension should still pass")
	}
	if !containsNote(res.Suggestions, "increase plate thickness to at least 0.625 in") {
		t.Errorf("suggestion should land on the next 1/16 in: %v", res.Suggestions)
	}
	if !containsNote(res.Warnings, "Plate Bending check failed: demand 15.00 kip-in exceeds capacity 6.08 kip-in") {
		t.Errorf("missing failure warning: %v", res.Warnings)
	}
}

func TestCheckBaseplateWeldFailure(t *testing.T) {
	in := baselinePlate()
	in.ShearKip = 500
	res, err := CheckBaseplate(in)
	if err != nil {
		t.Fatalf("CheckBaseplate: %v", err)
	}
	if res.Approved {
		t.Fatal("500 kip shear approved")
	}
	if checkByName(t, res.Checks, "Weld").Pass {
		t.Error("Weld should fail")
	}
	if checkByName(t, res.Checks, "Anchor Shear").Pass {
		t.Error("Anchor Shear should fail")
	}
	if !containsNote(res.Suggestions, "increase fillet weld size to at least 0.5000 in") {
		t.Errorf("missing weld suggestion: %v", res.Suggestions)
	}
	if !containsNote(res.Suggestions, "increase anchor diameter beyond 0.750 in for shear") {
		t.Errorf("missing anchor shear suggestion: %v", res.Suggestions)
	}
	// The warning reports the first failed check in evaluation order.
	if !containsNote(res.Warnings, "Weld check failed") {
		t.Errorf("warning should name the weld: %v", res.Warnings)
	}
}

func TestCheckBaseplateExplicitMaterials(t *testing.T) {
	in := baselinePlate()
	in.PlateFyKsi = 50
	res, err := CheckBaseplate(in)
	if err != nil {
		t.Fatalf("CheckBaseplate: %v", err)
	}
	if !floatEq(res.PlateCapacityKipIn, 33.75) {
		t.Errorf("PlateCapacityKipIn = %v, want 33.75 at Fy 50", res.PlateCapacityKipIn)
	}
	if containsNote(res.Assumptions, "plate_fy_ksi defaulted") {
		t.Errorf("explicit Fy should not be recorded as a default: %v", res.Assumptions)
	}
	if len(res.Assumptions) != 7 {
		t.Errorf("Assumptions = %v, want the base note plus six defaults", res.Assumptions)
	}
}

func TestCheckBaseplateValidation(t *testing.T) {
	good := baselinePlate()
	cases := []struct {
		name   string
		mutate func(*BaseplateInput)
	}{
		{"zero width", func(in *BaseplateInput) { in.PlateWidthIn = 0 }},
		{"zero length", func(in *BaseplateInput) { in.PlateLengthIn = 0 }},
		{"zero thickness", func(in *BaseplateInput) { in.PlateThicknessIn = 0 }},
		{"no anchors", func(in *BaseplateInput) { in.NumAnchors = 0 }},
		{"zero anchor diameter", func(in *BaseplateInput) { in.AnchorDiameterIn = 0 }},
		{"zero embedment", func(in *BaseplateInput) { in.EmbedDepthIn = 0 }},
		{"negative plate fy", func(in *BaseplateInput) { in.PlateFyKsi = -1 }},
		{"negative tension", func(in *BaseplateInput) { in.TensionKip = -1 }},
		{"negative shear", func(in *BaseplateInput) { in.ShearKip = -0.1 }},
		{"negative moment", func(in *BaseplateInput) { in.MomentKipIn = -5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := good
			tc.mutate(&in)
			if _, err := CheckBaseplate(in); !units.IsInvalidInput(err) {
				t.Errorf("err = %v, want invalid input", err)
			}
		})
	}
}

func TestRoundUpSixteenth(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.589255, 0.625},
		{0.5, 0.5},
		{0.51, 0.5625},
		{0.0001, 0.0625},
		{1.0, 1.0},
	}
	for _, tc := range cases {
		if got := roundUpSixteenth(tc.in); !floatEq(got, tc.want) {
			t.Errorf("roundUpSixteenth(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
