package pole

import (
	"math"
	"strings"
	"testing"

	"github.com/EAGLE605/SignX-sub007/internal/sign/catalog"
	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
)

func TestSelectLightestFirst(t *testing.T) {
	res, err := Select(catalog.Builtin(), SelectInput{
		Filter: catalog.DemandFilter{MuKipFt: 40},
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if res.Recommended == nil {
		t.Fatal("expected a recommendation")
	}
	// W8X18 is the lightest section with phiMn = 57.0 >= 40 kip-ft.
	if res.Recommended.Designation != "W8X18" {
		t.Errorf("recommended = %s, want W8X18", res.Recommended.Designation)
	}
	if math.Abs(res.Recommended.PhiMnKipFt-57.0) > 1e-9 {
		t.Errorf("phiMn = %v, want 57.0", res.Recommended.PhiMnKipFt)
	}
	if math.Abs(res.Recommended.Utilization-0.702) > 1e-9 {
		t.Errorf("utilization = %v, want 0.702", res.Recommended.Utilization)
	}
	for i := 1; i < len(res.Options); i++ {
		if res.Options[i-1].WeightPLF > res.Options[i].WeightPLF {
			t.Fatalf("options not lightest-first at %d: %v then %v",
				i, res.Options[i-1].WeightPLF, res.Options[i].WeightPLF)
		}
	}
	for _, o := range res.Options {
		if o.Utilization > 1.0 {
			t.Errorf("%s: utilization %v above 1.0 should not be offered", o.Designation, o.Utilization)
		}
	}
}

func TestSelectHonorsLimit(t *testing.T) {
	res, err := Select(catalog.Builtin(), SelectInput{
		Filter: catalog.DemandFilter{MuKipFt: 40},
		Limit:  3,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(res.Options) != 3 {
		t.Errorf("options = %d, want 3", len(res.Options))
	}
	if res.Recommended == nil || res.Recommended.Designation != res.Options[0].Designation {
		t.Error("recommended must be the first option")
	}
}

func TestSelectNothingFeasible(t *testing.T) {
	res, err := Select(catalog.Builtin(), SelectInput{
		Filter: catalog.DemandFilter{MuKipFt: 5000},
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if res.Recommended != nil {
		t.Errorf("recommended = %+v, want nil", res.Recommended)
	}
	if len(res.Options) != 0 {
		t.Errorf("options = %d, want none", len(res.Options))
	}
	if len(res.Warnings) == 0 || !strings.Contains(res.Warnings[0], "no feasible") {
		t.Errorf("warnings = %v, want the no-feasible note", res.Warnings)
	}
}

func TestSelectInvalidDemand(t *testing.T) {
	_, err := Select(catalog.Builtin(), SelectInput{Filter: catalog.DemandFilter{MuKipFt: 0}})
	if !units.IsInvalidInput(err) {
		t.Errorf("err = %v, want InvalidInputError", err)
	}
}

func TestAutoDesignSkipsFailingCandidates(t *testing.T) {
	// At 1300 lb / 20 ft the deflection limit of 1.0 in knocks out every
	// light section; W12X35 (Ix=285) is the first that passes everything.
	res, err := AutoDesign(catalog.Builtin(), AutoDesignInput{
		Filter: catalog.DemandFilter{MuKipFt: 40},
		Analysis: Input{
			PoleHeightFt: 20,
			WindForceLb:  1300,
			CentroidFt:   20,
			DeadLoadLb:   500,
			EmbedDepthFt: 7,
		},
	})
	if err != nil {
		t.Fatalf("AutoDesign: %v", err)
	}
	if res.Section == nil {
		t.Fatalf("no section chosen; candidates: %+v", res.Candidates)
	}
	if res.Section.Designation != "W12X35" {
		t.Errorf("section = %s, want W12X35", res.Section.Designation)
	}
	if res.Analysis == nil || !res.Analysis.Approved {
		t.Error("the chosen section must carry its approved analysis")
	}
	if len(res.Candidates) != 9 {
		t.Fatalf("candidates = %d, want 9 (eight rejected, then the winner)", len(res.Candidates))
	}
	first := res.Candidates[0]
	if first.Designation != "W8X18" || first.Approved || first.FailedCheck != "Deflection" {
		t.Errorf("first candidate = %+v, want W8X18 failing Deflection", first)
	}
	last := res.Candidates[len(res.Candidates)-1]
	if !last.Approved || last.FailedCheck != "" {
		t.Errorf("last candidate = %+v, want the approved winner", last)
	}
}

func TestAutoDesignNoneApproved(t *testing.T) {
	res, err := AutoDesign(catalog.Builtin(), AutoDesignInput{
		Filter: catalog.DemandFilter{MuKipFt: 40},
		Analysis: Input{
			PoleHeightFt: 20,
			WindForceLb:  1300,
			CentroidFt:   20,
			DeadLoadLb:   500,
			EmbedDepthFt: 7,
		},
		Limit: 3, // the first three all fail deflection
	})
	if err != nil {
		t.Fatalf("AutoDesign: %v", err)
	}
	if res.Section != nil {
		t.Errorf("section = %+v, want nil", res.Section)
	}
	if len(res.Candidates) != 3 {
		t.Errorf("candidates = %d, want 3", len(res.Candidates))
	}
	if !anyContains(res.Warnings, "no feasible section passed all checks among the 3 lightest candidates") {
		t.Errorf("warnings = %v, want the exhaustion note", res.Warnings)
	}
}

func TestAutoDesignEmptyScreen(t *testing.T) {
	res, err := AutoDesign(catalog.Builtin(), AutoDesignInput{
		Filter: catalog.DemandFilter{MuKipFt: 5000},
		Analysis: Input{
			PoleHeightFt: 20,
			WindForceLb:  1300,
			CentroidFt:   20,
			DeadLoadLb:   500,
			EmbedDepthFt: 7,
		},
	})
	if err != nil {
		t.Fatalf("AutoDesign: %v", err)
	}
	if res.Section != nil || len(res.Candidates) != 0 {
		t.Errorf("expected no candidates for an infeasible screen, got %+v", res.Candidates)
	}
	if !anyContains(res.Warnings, "no feasible section") {
		t.Errorf("warnings = %v, want the screen warning", res.Warnings)
	}
}

func TestAutoDesignAbortsOnInputError(t *testing.T) {
	_, err := AutoDesign(catalog.Builtin(), AutoDesignInput{
		Filter: catalog.DemandFilter{MuKipFt: 40},
		Analysis: Input{
			PoleHeightFt: 20,
			WindForceLb:  1300,
			CentroidFt:   20,
			DeadLoadLb:   500,
			EmbedDepthFt: 0, // invalid for every candidate
		},
	})
	if !units.IsInvalidInput(err) {
		t.Errorf("err = %v, want InvalidInputError", err)
	}
}
