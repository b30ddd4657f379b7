package catalog

import (
	"math"
	"strings"
	"testing"

	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
)

func TestBuiltinLoads(t *testing.T) {
	c := Builtin()
	if c.Len() == 0 {
		t.Fatal("builtin catalog is empty")
	}
	// One representative per family must be present.
	for _, d := range []string{"PIPE6STD", "HSS8X8X1/4", "W12X26"} {
		if _, err := c.Lookup(d, ""); err != nil {
			t.Errorf("Lookup(%q): %v", d, err)
		}
	}
}

func TestLookupDefaultGrades(t *testing.T) {
	c := Builtin()
	tests := []struct {
		designation string
		wantGrade   Grade
		wantFy      float64
	}{
		{"PIPE6STD", GradeA53B, 36.0},
		{"HSS6X6X1/4", GradeA500B, 46.0},
		{"W8X18", GradeA992, 50.0},
	}
	for _, tt := range tests {
		s, err := c.Lookup(tt.designation, "")
		if err != nil {
			t.Fatalf("Lookup(%q): %v", tt.designation, err)
		}
		if s.Grade != tt.wantGrade {
			t.Errorf("%s: grade = %q, want %q", tt.designation, s.Grade, tt.wantGrade)
		}
		if s.FyKsi != tt.wantFy {
			t.Errorf("%s: Fy = %v, want %v", tt.designation, s.FyKsi, tt.wantFy)
		}
	}
}

func TestLookupExplicitGradeAndCase(t *testing.T) {
	c := Builtin()
	s, err := c.Lookup("  pipe6std ", GradeA500C)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if s.Designation != "PIPE6STD" {
		t.Errorf("Designation = %q", s.Designation)
	}
	if s.FyKsi != 50.0 {
		t.Errorf("Fy = %v, want 50.0 for A500C", s.FyKsi)
	}
}

func TestLookupMisses(t *testing.T) {
	c := Builtin()
	if _, err := c.Lookup("PIPE99STD", ""); !units.IsSectionNotFound(err) {
		t.Errorf("unknown designation: err = %v, want SectionNotFoundError", err)
	}
	if _, err := c.Lookup("PIPE6STD", Grade("A999")); !units.IsSectionNotFound(err) {
		t.Errorf("unknown grade: err = %v, want SectionNotFoundError", err)
	}
}

func TestYieldStrength(t *testing.T) {
	tests := []struct {
		g    Grade
		want float64
	}{
		{GradeA36, 36}, {GradeA53B, 36}, {GradeA500B, 46},
		{GradeA500C, 50}, {GradeA57250, 50}, {GradeA992, 50},
	}
	for _, tt := range tests {
		fy, err := YieldStrength(tt.g)
		if err != nil {
			t.Fatalf("YieldStrength(%q): %v", tt.g, err)
		}
		if fy != tt.want {
			t.Errorf("YieldStrength(%q) = %v, want %v", tt.g, fy, tt.want)
		}
	}
	if _, err := YieldStrength(Grade("A999")); err == nil {
		t.Error("unknown grade should error")
	}
}

func TestNewRejectsBadRows(t *testing.T) {
	good := SectionProperties{
		Designation: "PIPE4STD", Family: FamilyPipe,
		AreaIn2: 2.96, WeightPLF: 10.79, SxIn3: 3.03, IxIn4: 6.82, RxIn: 1.51, DepthIn: 4.50,
	}

	t.Run("non-positive property", func(t *testing.T) {
		bad := good
		bad.SxIn3 = 0
		if _, err := New([]SectionProperties{bad}); !units.IsInvalidInput(err) {
			t.Errorf("err = %v, want InvalidInputError", err)
		}
	})
	t.Run("empty designation", func(t *testing.T) {
		bad := good
		bad.Designation = ""
		if _, err := New([]SectionProperties{bad}); err == nil {
			t.Error("empty designation should be rejected")
		}
	})
	t.Run("unknown family", func(t *testing.T) {
		bad := good
		bad.Family = Family("Channel")
		if _, err := New([]SectionProperties{bad}); err == nil {
			t.Error("unknown family should be rejected")
		}
	})
	t.Run("duplicate designation", func(t *testing.T) {
		dup := good
		dup.Designation = "pipe4std" // collides case-insensitively
		_, err := New([]SectionProperties{good, dup})
		if err == nil || !strings.Contains(err.Error(), "duplicate") {
			t.Errorf("err = %v, want duplicate designation error", err)
		}
	})
}

func TestPhiMn(t *testing.T) {
	c := Builtin()
	s, err := c.Lookup("W16X50", "")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	// phi*Fy*Sx/12 = 0.9*50*81.0/12
	if got, want := s.PhiMnKipFt(), 303.75; math.Abs(got-want) > 1e-9 {
		t.Errorf("PhiMnKipFt() = %v, want %v", got, want)
	}
}

func TestFilterByFamilyAndMinimums(t *testing.T) {
	c := Builtin()
	out, err := c.Filter(Criteria{Families: []Family{FamilyPipe}, MinSxIn3: 15.0})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected pipe sections with Sx >= 15")
	}
	for _, s := range out {
		if s.Family != FamilyPipe {
			t.Errorf("%s: family = %q, want Pipe only", s.Designation, s.Family)
		}
		if s.SxIn3 < 15.0 {
			t.Errorf("%s: Sx = %v below the minimum", s.Designation, s.SxIn3)
		}
		if s.Grade != GradeA53B || s.FyKsi != 36.0 {
			t.Errorf("%s: default pipe grade not resolved (grade=%q fy=%v)", s.Designation, s.Grade, s.FyKsi)
		}
	}
}

func TestFilterRejectsNegativeMinimums(t *testing.T) {
	c := Builtin()
	if _, err := c.Filter(Criteria{MinSxIn3: -1}); !units.IsInvalidInput(err) {
		t.Errorf("negative min_sx_in3: err = %v, want InvalidInputError", err)
	}
	if _, err := c.Filter(Criteria{MinAreaIn2: -1}); !units.IsInvalidInput(err) {
		t.Errorf("negative min_area_in2: err = %v, want InvalidInputError", err)
	}
}

func TestFilterOrdering(t *testing.T) {
	c := Builtin()

	t.Run("weight ascending with designation tie-break", func(t *testing.T) {
		out, err := c.Filter(Criteria{})
		if err != nil {
			t.Fatalf("Filter: %v", err)
		}
		for i := 1; i < len(out); i++ {
			a, b := out[i-1], out[i]
			if a.WeightPLF > b.WeightPLF {
				t.Fatalf("weight order violated at %d: %s (%v) before %s (%v)",
					i, a.Designation, a.WeightPLF, b.Designation, b.WeightPLF)
			}
			if a.WeightPLF == b.WeightPLF && a.Designation >= b.Designation {
				t.Fatalf("tie-break violated: %s before %s", a.Designation, b.Designation)
			}
		}
		// W10X26 and W12X26 both weigh 26.0 plf; the tie-break makes the
		// outcome reproducible.
		iW10, iW12 := indexOf(out, "W10X26"), indexOf(out, "W12X26")
		if iW10 < 0 || iW12 < 0 || iW10 > iW12 {
			t.Errorf("W10X26 (index %d) should precede W12X26 (index %d)", iW10, iW12)
		}
	})

	t.Run("sx ascending", func(t *testing.T) {
		out, err := c.Filter(Criteria{SortBy: SortBySx})
		if err != nil {
			t.Fatalf("Filter: %v", err)
		}
		for i := 1; i < len(out); i++ {
			if out[i-1].SxIn3 > out[i].SxIn3 {
				t.Fatalf("Sx order violated at %d", i)
			}
		}
	})

	t.Run("designation ascending", func(t *testing.T) {
		out, err := c.Filter(Criteria{SortBy: SortByDesignation})
		if err != nil {
			t.Fatalf("Filter: %v", err)
		}
		for i := 1; i < len(out); i++ {
			if out[i-1].Designation >= out[i].Designation {
				t.Fatalf("designation order violated at %d: %s before %s",
					i, out[i-1].Designation, out[i].Designation)
			}
		}
	})
}

func TestFilterByMoment(t *testing.T) {
	c := Builtin()

	t.Run("feasible", func(t *testing.T) {
		out, warnings, err := c.FilterByMoment(DemandFilter{MuKipFt: 40})
		if err != nil {
			t.Fatalf("FilterByMoment: %v", err)
		}
		if len(warnings) != 0 {
			t.Errorf("unexpected warnings: %v", warnings)
		}
		if len(out) == 0 {
			t.Fatal("expected feasible sections for Mu=40")
		}
		for _, s := range out {
			if s.PhiMnKipFt() < 40 {
				t.Errorf("%s: phiMn = %v below demand", s.Designation, s.PhiMnKipFt())
			}
		}
		if out[0].Designation != "W8X18" {
			t.Errorf("lightest feasible = %s, want W8X18 at 18.0 plf", out[0].Designation)
		}
	})

	t.Run("no feasible names the closest", func(t *testing.T) {
		out, warnings, err := c.FilterByMoment(DemandFilter{MuKipFt: 5000})
		if err != nil {
			t.Fatalf("FilterByMoment: %v", err)
		}
		if len(out) != 0 {
			t.Fatalf("expected no feasible sections, got %d", len(out))
		}
		if len(warnings) != 1 {
			t.Fatalf("warnings = %v, want exactly one", warnings)
		}
		if !strings.Contains(warnings[0], "no feasible") || !strings.Contains(warnings[0], "W16X50") {
			t.Errorf("warning %q should flag infeasibility and name W16X50 as closest", warnings[0])
		}
	})

	t.Run("non-positive demand is fatal", func(t *testing.T) {
		if _, _, err := c.FilterByMoment(DemandFilter{MuKipFt: 0}); !units.IsInvalidInput(err) {
			t.Errorf("err = %v, want InvalidInputError", err)
		}
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		a, _, err := c.FilterByMoment(DemandFilter{MuKipFt: 40, Seed: 1})
		if err != nil {
			t.Fatalf("FilterByMoment: %v", err)
		}
		b, _, err := c.FilterByMoment(DemandFilter{MuKipFt: 40, Seed: 99})
		if err != nil {
			t.Fatalf("FilterByMoment: %v", err)
		}
		if len(a) != len(b) {
			t.Fatalf("result lengths differ: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i].Designation != b[i].Designation {
				t.Fatalf("ordering depends on seed at %d: %s vs %s", i, a[i].Designation, b[i].Designation)
			}
		}
	})
}

func indexOf(sections []SectionProperties, designation string) int {
	for i, s := range sections {
		if s.Designation == designation {
			return i
		}
	}
	return -1
}
