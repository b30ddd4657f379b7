package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
)

// Family is a closed set of supported shape families.
type Family string

const (
	FamilyPipe Family = "Pipe"
	FamilyHSS  Family = "HSS"
	FamilyW    Family = "W"
)

// Grade identifies a steel grade per AISC 360-22 Table 2-4.
type Grade string

const (
	GradeA500B  Grade = "A500B"
	GradeA500C  Grade = "A500C"
	GradeA53B   Grade = "A53B"
	GradeA36    Grade = "A36"
	GradeA57250 Grade = "A572-50"
	GradeA992   Grade = "A992"
)

var gradeFy = map[Grade]float64{
	GradeA500B:  46.0,
	GradeA500C:  50.0,
	GradeA53B:   36.0,
	GradeA36:    36.0,
	GradeA57250: 50.0,
	GradeA992:   50.0,
}

// defaultGrade is the customary grade for each family when the caller does
// not specify one.
var defaultGrade = map[Family]Grade{
	FamilyPipe: GradeA53B,
	FamilyHSS:  GradeA500B,
	FamilyW:    GradeA992,
}

// YieldStrength resolves a grade to Fy in ksi.
func YieldStrength(g Grade) (float64, error) {
	fy, ok := gradeFy[g]
	if !ok {
		return 0, fmt.Errorf("unknown steel grade %q", g)
	}
	return fy, nil
}

// SectionProperties is one catalog row resolved to a concrete steel grade.
// All geometric properties are positive; rows that cannot satisfy that are
// rejected when the catalog is built, so downstream division by Sx or A is
// safe once a value of this type exists.
type SectionProperties struct {
	Designation string  `json:"designation"`
	Family      Family  `json:"family"`
	AreaIn2     float64 `json:"area_in2"`
	WeightPLF   float64 `json:"weight_plf"`
	SxIn3       float64 `json:"sx_in3"`
	IxIn4       float64 `json:"ix_in4"`
	RxIn        float64 `json:"rx_in"`
	DepthIn     float64 `json:"depth_in"`
	FyKsi       float64 `json:"fy_ksi"`
	Grade       Grade   `json:"grade"`
}

// PhiBending is the LRFD resistance factor for flexure, AISC 360-22 F1.
const PhiBending = 0.90

// PhiMnKipFt is the design flexural strength phi*Fy*Sx in kip-ft.
func (s SectionProperties) PhiMnKipFt() float64 {
	return PhiBending * s.FyKsi * s.SxIn3 / units.InPerFt
}

// Catalog is an immutable section table. Load it once at startup and share
// freely; concurrent reads need no coordination.
type Catalog struct {
	sections []SectionProperties
	index    map[string]int // upper-case designation -> sections index
}

// New builds a catalog, rejecting any row with a non-positive geometric
// property so invalid reference data can never reach a solver.
func New(rows []SectionProperties) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(rows))}
	for _, r := range rows {
		if err := validateRow(r); err != nil {
			return nil, err
		}
		key := strings.ToUpper(r.Designation)
		if _, dup := c.index[key]; dup {
			return nil, fmt.Errorf("duplicate designation %q in catalog data", r.Designation)
		}
		c.index[key] = len(c.sections)
		c.sections = append(c.sections, r)
	}
	return c, nil
}

func validateRow(r SectionProperties) error {
	if r.Designation == "" {
		return fmt.Errorf("catalog row with empty designation")
	}
	if _, ok := defaultGrade[r.Family]; !ok {
		return fmt.Errorf("section %q: unknown family %q", r.Designation, r.Family)
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"area_in2", r.AreaIn2},
		{"weight_plf", r.WeightPLF},
		{"sx_in3", r.SxIn3},
		{"ix_in4", r.IxIn4},
		{"rx_in", r.RxIn},
		{"depth_in", r.DepthIn},
	} {
		if err := units.Positive(p.name, p.v, "section "+r.Designation, "AISC Shapes Database v16.0"); err != nil {
			return err
		}
	}
	return nil
}

// Builtin returns the embedded AISC v16.0 subset.
func Builtin() *Catalog {
	c, err := New(builtinSections())
	if err != nil {
		// The embedded table is validated by tests; a bad row is a build
		// defect, not a runtime condition.
		panic(err)
	}
	return c
}

// Len reports the number of sections in the catalog.
func (c *Catalog) Len() int { return len(c.sections) }

// Lookup resolves (designation, grade) to section properties. A miss is a
// SectionNotFoundError, never a zero-valued section. An empty grade selects
// the family default.
func (c *Catalog) Lookup(designation string, grade Grade) (SectionProperties, error) {
	i, ok := c.index[strings.ToUpper(strings.TrimSpace(designation))]
	if !ok {
		return SectionProperties{}, &units.SectionNotFoundError{Designation: designation, Grade: string(grade)}
	}
	s := c.sections[i]
	if grade == "" {
		grade = defaultGrade[s.Family]
	}
	fy, err := YieldStrength(grade)
	if err != nil {
		return SectionProperties{}, &units.SectionNotFoundError{Designation: designation, Grade: string(grade)}
	}
	s.Grade = grade
	s.FyKsi = fy
	return s, nil
}

// SortKey orders filter output.
type SortKey string

const (
	SortByWeight      SortKey = "weight"
	SortBySx          SortKey = "sx"
	SortByDesignation SortKey = "designation"
)

// Criteria selects and orders sections. Zero values mean "no constraint";
// an empty family list admits every family.
type Criteria struct {
	Families   []Family `json:"families,omitempty"`
	Grade      Grade    `json:"grade,omitempty"`
	MinSxIn3   float64  `json:"min_sx_in3,omitempty"`
	MinAreaIn2 float64  `json:"min_area_in2,omitempty"`
	SortBy     SortKey  `json:"sort_by,omitempty"`
}

// Filter returns the sections satisfying the criteria, ordered by the sort
// key with a stable tie-break on designation so the first element is
// reproducible run to run. The scan is a plain per-section predicate pass.
func (c *Catalog) Filter(cr Criteria) ([]SectionProperties, error) {
	if cr.MinSxIn3 < 0 {
		return nil, &units.InvalidInputError{Param: "min_sx_in3", Value: cr.MinSxIn3, Valid: ">= 0"}
	}
	if cr.MinAreaIn2 < 0 {
		return nil, &units.InvalidInputError{Param: "min_area_in2", Value: cr.MinAreaIn2, Valid: ">= 0"}
	}
	famOK := func(f Family) bool {
		if len(cr.Families) == 0 {
			return true
		}
		for _, want := range cr.Families {
			if f == want {
				return true
			}
		}
		return false
	}

	var out []SectionProperties
	for _, s := range c.sections {
		if !famOK(s.Family) {
			continue
		}
		grade := cr.Grade
		if grade == "" {
			grade = defaultGrade[s.Family]
		}
		fy, err := YieldStrength(grade)
		if err != nil {
			return nil, err
		}
		s.Grade = grade
		s.FyKsi = fy
		if s.SxIn3 < cr.MinSxIn3 || s.AreaIn2 < cr.MinAreaIn2 {
			continue
		}
		out = append(out, s)
	}

	key := cr.SortBy
	if key == "" {
		key = SortByWeight
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch key {
		case SortBySx:
			if a.SxIn3 != b.SxIn3 {
				return a.SxIn3 < b.SxIn3
			}
		case SortByDesignation:
			// fall through to the designation tie-break
		default: // SortByWeight
			if a.WeightPLF != b.WeightPLF {
				return a.WeightPLF < b.WeightPLF
			}
		}
		return a.Designation < b.Designation
	})
	return out, nil
}

// DemandFilter narrows a Filter to sections whose LRFD design flexural
// strength meets an ultimate moment demand.
type DemandFilter struct {
	MuKipFt  float64  `json:"mu_kipft"`
	Families []Family `json:"families,omitempty"`
	Grade    Grade    `json:"grade,omitempty"`
	SortBy   SortKey  `json:"sort_by,omitempty"`
	// Seed is carried into the result trace by callers. Designations are
	// unique per catalog, so ordering never depends on it.
	Seed int64 `json:"seed,omitempty"`
}

// FilterByMoment returns sections with phi*Mn >= Mu in the requested order.
// When nothing qualifies it returns an empty slice plus a warning naming the
// closest alternative, so the caller can report why selection failed.
func (c *Catalog) FilterByMoment(f DemandFilter) ([]SectionProperties, []string, error) {
	if err := units.Positive("mu_kipft", f.MuKipFt, "ultimate moment demand for section selection", "AISC 360-22 F1"); err != nil {
		return nil, nil, err
	}
	all, err := c.Filter(Criteria{Families: f.Families, Grade: f.Grade, SortBy: f.SortBy})
	if err != nil {
		return nil, nil, err
	}
	var out []SectionProperties
	best := SectionProperties{}
	for _, s := range all {
		if s.PhiMnKipFt() >= f.MuKipFt {
			out = append(out, s)
		} else if s.PhiMnKipFt() > best.PhiMnKipFt() || best.Designation == "" {
			best = s
		}
	}
	var warnings []string
	if len(out) == 0 {
		if best.Designation != "" {
			warnings = append(warnings, fmt.Sprintf(
				"no feasible section for Mu=%.2f kip-ft; closest is %s with phiMn=%.2f kip-ft",
				f.MuKipFt, best.Designation, units.RoundMoment(best.PhiMnKipFt())))
		} else {
			warnings = append(warnings, fmt.Sprintf("no feasible section for Mu=%.2f kip-ft in the requested families", f.MuKipFt))
		}
	}
	return out, warnings, nil
}
