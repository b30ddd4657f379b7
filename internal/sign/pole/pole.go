package pole

import (
	"fmt"
	"math"

	"github.com/EAGLE605/SignX-sub007/internal/sign/catalog"
	"github.com/EAGLE605/SignX-sub007/internal/sign/check"
	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
)

// Steel and serviceability constants, AISC 360-22 and IBC 2024.
const (
	ESteelKsi = 29000.0

	ASDBendingFactor = 0.66 // Fb = 0.66*Fy
	ASDShearFactor   = 0.40 // Fv = 0.40*Fy

	// ASDWindFactor is the 0.6 on W in the governing IBC ASD combinations
	// (D + 0.6W for strength, 0.6D + 0.6W for stability).
	ASDWindFactor = 0.6

	DefaultDeflectionRatio = 240.0

	// Overturning policy: below MinOverturningSF the check fails and the
	// design is flagged for review; between the two the check passes but
	// still earns a review note.
	MinOverturningSF      = 1.5
	AdvisoryOverturningSF = 2.0

	MaxSlendernessRatio = 200.0

	// ReviewUtilization marks the borderline band: a passing check with
	// utilization at or above this is flagged for engineering review.
	ReviewUtilization = 0.85

	// LateralSoilPcf is the passive-pressure coefficient used in the
	// overturning resisting moment for embedded round footings.
	LateralSoilPcf = 150.0

	MaxPoleHeightFt = 100.0

	// Footing diameter search band when the caller has not fixed one.
	minSearchDiameterFt  = 3.0
	maxSearchDiameterFt  = 10.0
	searchDiameterStepFt = 0.1
)

// State tracks how far the limit-state sequence progressed. The solver is
// terminal at the first failing check; a partial check set is still
// returned so the caller sees which state failed.
type State string

const (
	StateUnchecked          = State("unchecked")
	StateBendingChecked     = State("bending_checked")
	StateShearChecked       = State("shear_checked")
	StateDeflectionChecked  = State("deflection_checked")
	StateOverturningChecked = State("overturning_checked")
	StateFinal              = State("final")
)

// InvalidSectionError reports a section whose properties cannot support the
// solve. It can only occur when a caller bypasses the catalog lookup
// boundary, which validates properties positive.
type InvalidSectionError struct {
	Designation string
	Property    string
	Value       float64
}

func (e *InvalidSectionError) Error() string {
	return fmt.Sprintf("section %q has invalid %s=%g; catalog-validated sections are required",
		e.Designation, e.Property, e.Value)
}

// Input configures one single-pole analysis. Wind force and centroid come
// from load derivation, unfactored; the solver applies the ASD combination
// factors itself. Constructed per request, never shared.
type Input struct {
	PoleHeightFt float64                   `json:"pole_height_ft"`
	Section      catalog.SectionProperties `json:"section"`

	WindForceLb float64 `json:"wind_force_lb"`
	CentroidFt  float64 `json:"centroid_ft"`
	DeadLoadLb  float64 `json:"dead_load_lb"` // sign + hardware, excluding pole self-weight

	EmbedDepthFt      float64 `json:"embed_depth_ft"`
	FootingDiameterFt float64 `json:"footing_diameter_ft,omitempty"` // 0 searches 3..10 ft

	DeflectionRatio float64 `json:"deflection_ratio,omitempty"` // default height/240
	OverturningSF   float64 `json:"overturning_sf,omitempty"`   // default 1.5
}

// Result is the full single-pole analysis outcome.
type Result struct {
	State                    State     `json:"state"`
	Checks                   check.Set `json:"checks"`
	Approved                 bool      `json:"approved"`
	RequestEngineeringReview bool      `json:"request_engineering_review"`

	GoverningCombo string  `json:"governing_combo"`
	MomentKipFt    float64 `json:"design_moment_kipft"`
	ShearKip       float64 `json:"design_shear_kip"`

	FbKsi      float64 `json:"fb_ksi"`
	FbAllowKsi float64 `json:"fb_allow_ksi"`
	FvKsi      float64 `json:"fv_ksi"`
	FvAllowKsi float64 `json:"fv_allow_ksi"`

	DeflectionIn      float64 `json:"deflection_in"`
	DeflectionLimitIn float64 `json:"deflection_limit_in"`

	OverturningSF        float64 `json:"overturning_sf"`
	ResistingMomentKipFt float64 `json:"resisting_moment_kipft"`
	FootingDiameterFt    float64 `json:"footing_diameter_ft"`

	SlendernessRatio float64 `json:"slenderness_ratio"`

	Warnings []string `json:"warnings"`
	CodeRefs []string `json:"code_references"`
}

// Analyze runs the limit states in order (bending, shear, deflection,
// overturning), appending one check per state and stopping at the first
// failure. Engineering input errors are fatal; borderline results set the
// review flag instead.
func Analyze(in Input) (Result, error) {
	if err := validateInput(in); err != nil {
		return Result{}, err
	}
	deflRatio := in.DeflectionRatio
	if deflRatio == 0 {
		deflRatio = DefaultDeflectionRatio
	}
	minSF := in.OverturningSF
	if minSF == 0 {
		minSF = MinOverturningSF
	}

	res := Result{
		State:    StateUnchecked,
		Warnings: []string{},
		CodeRefs: []string{
			"IBC 2024 Section 1605.1 (ASD load combinations)",
			"AISC 360-22 Section F (flexure)",
			"AISC 360-22 Section G (shear)",
			"IBC 2024 Section 1807.3 (embedded posts and poles)",
		},
	}

	// Governing ASD combination with dead and wind only: D + 0.6W.
	serviceMoment := in.WindForceLb * in.CentroidFt / units.LbfPerKip // kip-ft
	designMoment := ASDWindFactor * serviceMoment
	designShearKip := ASDWindFactor * in.WindForceLb / units.LbfPerKip
	res.GoverningCombo = "IBC LC5: D + 0.6W"
	res.MomentKipFt = units.RoundMoment(designMoment)
	res.ShearKip = units.Round(designShearKip, 3)

	// Bending.
	fb := designMoment * units.InPerFt / in.Section.SxIn3 // kip-in / in^3 = ksi
	fbAllow := ASDBendingFactor * in.Section.FyKsi
	res.FbKsi = units.RoundStress(fb)
	res.FbAllowKsi = units.RoundStress(fbAllow)
	res.Checks = append(res.Checks, check.Result{
		Name: "Bending", Demand: res.FbKsi, Capacity: res.FbAllowKsi,
		Unit: "ksi", Pass: fb <= fbAllow, Governing: "flexure",
	})
	res.State = StateBendingChecked
	if fb > fbAllow {
		return finish(res, false), nil
	}
	flagReviewBand(&res, "bending", fb/fbAllow)

	// Shear.
	fv := designShearKip / in.Section.AreaIn2
	fvAllow := ASDShearFactor * in.Section.FyKsi
	res.FvKsi = units.RoundStress(fv)
	res.FvAllowKsi = units.RoundStress(fvAllow)
	res.Checks = append(res.Checks, check.Result{
		Name: "Shear", Demand: res.FvKsi, Capacity: res.FvAllowKsi,
		Unit: "ksi", Pass: fv <= fvAllow, Governing: "shear",
	})
	res.State = StateShearChecked
	if fv > fvAllow {
		return finish(res, false), nil
	}
	flagReviewBand(&res, "shear", fv/fvAllow)

	// Deflection at the load point, unfactored wind (serviceability).
	armIn := in.CentroidFt * units.InPerFt
	heightIn := in.PoleHeightFt * units.InPerFt
	deflection := in.WindForceLb * math.Pow(armIn, 3) / (3 * ESteelKsi * units.PsiPerKsi * in.Section.IxIn4)
	deflectionLimit := heightIn / deflRatio
	res.DeflectionIn = units.Round(deflection, 3)
	res.DeflectionLimitIn = units.Round(deflectionLimit, 3)
	res.Checks = append(res.Checks, check.Result{
		Name: "Deflection", Demand: res.DeflectionIn, Capacity: res.DeflectionLimitIn,
		Unit: "in", Pass: deflection <= deflectionLimit, Governing: "drift",
	})
	res.State = StateDeflectionChecked
	if deflection > deflectionLimit {
		return finish(res, false), nil
	}

	// Slenderness advisory; not a limit state on its own.
	res.SlendernessRatio = units.Round(heightIn/in.Section.RxIn, 1)
	if res.SlendernessRatio > MaxSlendernessRatio {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"warning: slenderness L/r=%.0f exceeds %g; verify bracing and erection handling",
			res.SlendernessRatio, MaxSlendernessRatio))
	}

	// Overturning stability against the unfactored wind moment. When the
	// caller fixed a diameter it is checked as-is; otherwise the smallest
	// diameter in the search band that reaches the safety factor is chosen.
	deadKip := (in.DeadLoadLb + in.Section.WeightPLF*in.PoleHeightFt) / units.LbfPerKip
	sf, resisting, diameter := overturning(deadKip, serviceMoment, in.EmbedDepthFt, in.FootingDiameterFt, minSF)
	res.OverturningSF = units.Round(sf, 2)
	res.ResistingMomentKipFt = units.RoundMoment(resisting)
	res.FootingDiameterFt = units.RoundArea(diameter)
	otPass := sf >= minSF
	res.Checks = append(res.Checks, check.Result{
		Name: "Overturning", Demand: units.RoundMoment(serviceMoment), Capacity: res.ResistingMomentKipFt,
		Unit: "kip-ft", Pass: otPass, Governing: "stability",
	})
	res.State = StateOverturningChecked
	if !otPass {
		res.RequestEngineeringReview = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"request engineering review: overturning SF=%.2f below %.2f at %.1f ft diameter",
			sf, minSF, diameter))
		return finish(res, false), nil
	}
	if sf < AdvisoryOverturningSF {
		res.RequestEngineeringReview = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"request engineering review: overturning SF=%.2f is between %.2f and %.2f",
			sf, minSF, AdvisoryOverturningSF))
	}

	return finish(res, true), nil
}

func finish(res Result, allPassed bool) Result {
	if allPassed {
		res.State = StateFinal
	}
	res.Approved = res.Checks.Approved()
	return res
}

func flagReviewBand(res *Result, name string, utilization float64) {
	if utilization >= ReviewUtilization && utilization <= 1.0 {
		res.RequestEngineeringReview = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"request engineering review: %s utilization %.2f in the %.2f-1.00 band",
			name, utilization, ReviewUtilization))
	}
}

// overturning evaluates the resisting moment at a diameter, or searches the
// band for the smallest passing diameter. Resisting = dead weight on a D/2
// lever plus the passive wedge 0.5*gamma*d^2*3D acting at d/3.
func overturning(deadKip, appliedKipFt, embedFt, fixedDiameterFt, minSF float64) (sf, resisting, diameter float64) {
	at := func(d float64) float64 {
		passive := 0.5 * LateralSoilPcf * embedFt * embedFt * 3 * d * (embedFt / 3) / units.LbfPerKip
		return deadKip*(d/2) + passive
	}
	if fixedDiameterFt > 0 {
		resisting = at(fixedDiameterFt)
		return resisting / appliedKipFt, resisting, fixedDiameterFt
	}
	diameter = minSearchDiameterFt
	for d := minSearchDiameterFt; d <= maxSearchDiameterFt+1e-9; d += searchDiameterStepFt {
		diameter = d
		resisting = at(d)
		sf = resisting / appliedKipFt
		if sf >= minSF {
			return sf, resisting, diameter
		}
	}
	return sf, resisting, diameter
}

func validateInput(in Input) error {
	if err := units.Positive("pole_height_ft", in.PoleHeightFt, "pole height above grade", ""); err != nil {
		return err
	}
	if in.PoleHeightFt > MaxPoleHeightFt {
		return &units.InvalidInputError{
			Param: "pole_height_ft", Value: in.PoleHeightFt,
			Valid: fmt.Sprintf("<= %g", MaxPoleHeightFt), Context: "single-pole practice limit",
		}
	}
	if in.Section.SxIn3 <= 0 {
		return &InvalidSectionError{Designation: in.Section.Designation, Property: "sx_in3", Value: in.Section.SxIn3}
	}
	if in.Section.AreaIn2 <= 0 {
		return &InvalidSectionError{Designation: in.Section.Designation, Property: "area_in2", Value: in.Section.AreaIn2}
	}
	if in.Section.IxIn4 <= 0 {
		return &InvalidSectionError{Designation: in.Section.Designation, Property: "ix_in4", Value: in.Section.IxIn4}
	}
	if in.Section.RxIn <= 0 {
		return &InvalidSectionError{Designation: in.Section.Designation, Property: "rx_in", Value: in.Section.RxIn}
	}
	if in.Section.FyKsi <= 0 {
		return &InvalidSectionError{Designation: in.Section.Designation, Property: "fy_ksi", Value: in.Section.FyKsi}
	}
	if err := units.Positive("wind_force_lb", in.WindForceLb, "resolved wind force on the sign", ""); err != nil {
		return err
	}
	if err := units.Positive("centroid_ft", in.CentroidFt, "height of the wind resultant", ""); err != nil {
		return err
	}
	if err := units.NonNegative("dead_load_lb", in.DeadLoadLb, "sign dead load", ""); err != nil {
		return err
	}
	if err := units.Positive("embed_depth_ft", in.EmbedDepthFt, "footing embedment for the stability check", "IBC 2024 Section 1807.3"); err != nil {
		return err
	}
	if in.FootingDiameterFt != 0 {
		if err := units.Positive("footing_diameter_ft", in.FootingDiameterFt, "fixed footing diameter", ""); err != nil {
			return err
		}
	}
	if in.DeflectionRatio < 0 {
		return &units.InvalidInputError{Param: "deflection_ratio", Value: in.DeflectionRatio, Valid: ">= 0"}
	}
	if in.OverturningSF < 0 {
		return &units.InvalidInputError{Param: "overturning_sf", Value: in.OverturningSF, Valid: ">= 0"}
	}
	return nil
}
