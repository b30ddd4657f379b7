package foundation

import (
	"fmt"
	"math"

	"github.com/EAGLE605/SignX-sub007/internal/sign/check"
	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
)

// Baseplate material defaults and anchor design factors. Anchor steel uses
// AISC 360-22 J3 with the net tensile area approximation; concrete breakout
// follows ACI 318-19 Chapter 17 for cast-in headed anchors.
const (
	DefaultPlateFyKsi     = 36.0 // ASTM A36 plate
	DefaultAnchorFuKsi    = 58.0 // ASTM F1554 Grade 36
	DefaultConcreteFcPsi  = 4000.0
	DefaultEdgeDistanceIn = 3.0
	DefaultSpacingIn      = 6.0
	DefaultWeldSizeIn     = 0.25
	DefaultElectrodeKsi   = 70.0 // E70XX

	PlateBendingFactor = 0.6  // Fb = 0.6*Fy on the plate strip
	PhiAnchorTension   = 0.75 // ACI 318-19 17.5.3, ductile steel
	PhiAnchorShear     = 0.75
	PhiBreakout        = 0.70 // ACI 318-19 17.5.3(c), no supplementary reinforcement
	NetTensileRatio    = 0.75 // Ase/Ag for UNC threads
	AnchorShearFactor  = 0.6  // Fnv = 0.6*Fu, threads included
	WeldPhiFactor      = 0.75 // AISC 360-22 J2
	WeldStrengthFactor = 0.6  // 0.6*Fexx
	WeldThroatFactor   = 0.707

	// BreakoutKc is the cast-in anchor coefficient of ACI 318-19 Eq 17.6.2.2.1.
	BreakoutKc = 24.0
)

// BaseplateInput describes one baseplate connection. Zero-valued material
// and detailing fields take the documented defaults; geometry and anchor
// count never default.
type BaseplateInput struct {
	PlateWidthIn     float64 `json:"plate_width_in"`
	PlateLengthIn    float64 `json:"plate_length_in"`
	PlateThicknessIn float64 `json:"plate_thickness_in"`
	PlateFyKsi       float64 `json:"plate_fy_ksi,omitempty"`

	NumAnchors       int     `json:"num_anchors"`
	AnchorDiameterIn float64 `json:"anchor_diameter_in"`
	AnchorFuKsi      float64 `json:"anchor_fu_ksi,omitempty"`
	EmbedDepthIn     float64 `json:"embed_depth_in"`
	EdgeDistanceIn   float64 `json:"edge_distance_in,omitempty"`
	AnchorSpacingIn  float64 `json:"anchor_spacing_in,omitempty"`

	ConcreteFcPsi float64 `json:"concrete_fc_psi,omitempty"`

	WeldSizeIn       float64 `json:"weld_size_in,omitempty"`
	ElectrodeFexxKsi float64 `json:"electrode_fexx_ksi,omitempty"`

	TensionKip  float64 `json:"tension_kip"`
	ShearKip    float64 `json:"shear_kip"`
	MomentKipIn float64 `json:"moment_kipin,omitempty"`
}

// BaseplateResult carries all four checks. The checks are independent and
// always all evaluated; a failed plate never hides an anchor problem.
type BaseplateResult struct {
	Checks   check.Set `json:"checks"`
	Approved bool      `json:"approved"`

	PlateMomentKipIn   float64 `json:"plate_moment_kipin"`
	PlateCapacityKipIn float64 `json:"plate_capacity_kipin"`

	WeldDemandKip   float64 `json:"weld_demand_kip"`
	WeldCapacityKip float64 `json:"weld_capacity_kip"`

	TensionPerAnchorKip float64 `json:"tension_per_anchor_kip"`
	TensionCapacityKip  float64 `json:"tension_capacity_kip"`
	TensionGoverning    string  `json:"tension_governing"` // steel or breakout
	ShearPerAnchorKip   float64 `json:"shear_per_anchor_kip"`
	ShearCapacityKip    float64 `json:"shear_capacity_kip"`

	Suggestions []string `json:"suggestions"`
	Assumptions []string `json:"assumptions"`
	Warnings    []string `json:"warnings"`
	CodeRefs    []string `json:"code_references"`
}

// CheckBaseplate evaluates plate bending, weld strength, anchor tension, and
// anchor shear. Defaults are recorded as assumptions; failures come back
// with concrete sizing suggestions rather than bare booleans.
func CheckBaseplate(in BaseplateInput) (BaseplateResult, error) {
	if err := validateBaseplate(in); err != nil {
		return BaseplateResult{}, err
	}
	res := BaseplateResult{
		Assumptions: []string{
			"applied moment transfers to the foundation through plate bearing; anchor tension taken from direct uplift only",
		},
		Warnings: []string{},
		CodeRefs: []string{
			"AISC 360-22 Section J2 (welds)",
			"AISC 360-22 Section J3 (bolts and threaded parts)",
			"ACI 318-19 Chapter 17 (anchoring to concrete)",
		},
		Suggestions: []string{},
	}

	fy := defaulted(in.PlateFyKsi, DefaultPlateFyKsi, "plate_fy_ksi", &res)
	fu := defaulted(in.AnchorFuKsi, DefaultAnchorFuKsi, "anchor_fu_ksi", &res)
	fc := defaulted(in.ConcreteFcPsi, DefaultConcreteFcPsi, "concrete_fc_psi", &res)
	edge := defaulted(in.EdgeDistanceIn, DefaultEdgeDistanceIn, "edge_distance_in", &res)
	spacing := defaulted(in.AnchorSpacingIn, DefaultSpacingIn, "anchor_spacing_in", &res)
	weldSize := defaulted(in.WeldSizeIn, DefaultWeldSizeIn, "weld_size_in", &res)
	fexx := defaulted(in.ElectrodeFexxKsi, DefaultElectrodeKsi, "electrode_fexx_ksi", &res)
	n := float64(in.NumAnchors)

	// Plate bending on the edge strip: uplift prying over the edge distance
	// against a 1 ft-equivalent strip of the plate width.
	sectionModulus := in.PlateWidthIn * in.PlateThicknessIn * in.PlateThicknessIn / 6
	plateMoment := in.TensionKip * edge
	plateCapacity := PlateBendingFactor * fy * sectionModulus
	res.PlateMomentKipIn = units.RoundMoment(plateMoment)
	res.PlateCapacityKipIn = units.RoundMoment(plateCapacity)
	platePass := plateMoment <= plateCapacity
	res.Checks = append(res.Checks, check.Result{
		Name: "Plate Bending", Demand: res.PlateMomentKipIn, Capacity: res.PlateCapacityKipIn,
		Unit: "kip-in", Pass: platePass, Governing: "plate flexure",
	})
	if !platePass {
		tReq := math.Sqrt(6 * plateMoment / (PlateBendingFactor * fy * in.PlateWidthIn))
		res.Suggestions = append(res.Suggestions, fmt.Sprintf(
			"increase plate thickness to at least %.3f in", roundUpSixteenth(tReq)))
	}

	// Fillet weld group around the plate perimeter, demand taken as the
	// base shear.
	weldLength := 2 * (in.PlateWidthIn + in.PlateLengthIn)
	weldCapacity := WeldPhiFactor * WeldStrengthFactor * fexx * WeldThroatFactor * weldSize * weldLength
	res.WeldDemandKip = units.RoundForce(in.ShearKip)
	res.WeldCapacityKip = units.RoundForce(weldCapacity)
	weldPass := in.ShearKip <= weldCapacity
	res.Checks = append(res.Checks, check.Result{
		Name: "Weld", Demand: res.WeldDemandKip, Capacity: res.WeldCapacityKip,
		Unit: "kip", Pass: weldPass, Governing: "weld shear",
	})
	if !weldPass {
		wReq := in.ShearKip / (WeldPhiFactor * WeldStrengthFactor * fexx * WeldThroatFactor * weldLength)
		res.Suggestions = append(res.Suggestions, fmt.Sprintf(
			"increase fillet weld size to at least %.4f in", roundUpSixteenth(wReq)))
	}

	// Anchor tension: steel rupture on the net tensile area versus concrete
	// breakout of the group, smaller governs.
	ab := math.Pi * in.AnchorDiameterIn * in.AnchorDiameterIn / 4
	tensionDemand := in.TensionKip / n
	steelCapacity := PhiAnchorTension * NetTensileRatio * ab * fu
	groupFactor := math.Min(1, spacing/in.EmbedDepthIn)
	breakoutCapacity := PhiBreakout * BreakoutKc * math.Sqrt(fc) *
		math.Pow(in.EmbedDepthIn, 1.5) * groupFactor / units.LbfPerKip
	tensionCapacity := steelCapacity
	res.TensionGoverning = "steel"
	if breakoutCapacity < steelCapacity {
		tensionCapacity = breakoutCapacity
		res.TensionGoverning = "breakout"
	}
	res.TensionPerAnchorKip = units.Round(tensionDemand, 3)
	res.TensionCapacityKip = units.RoundForce(tensionCapacity)
	tensionPass := tensionDemand <= tensionCapacity
	res.Checks = append(res.Checks, check.Result{
		Name: "Anchor Tension", Demand: res.TensionPerAnchorKip, Capacity: res.TensionCapacityKip,
		Unit: "kip", Pass: tensionPass, Governing: res.TensionGoverning,
	})
	if !tensionPass {
		if res.TensionGoverning == "breakout" {
			res.Suggestions = append(res.Suggestions, fmt.Sprintf(
				"increase embedment beyond %.1f in or add anchor reinforcement to move breakout off the governing path",
				in.EmbedDepthIn))
		} else {
			res.Suggestions = append(res.Suggestions, fmt.Sprintf(
				"increase anchor diameter beyond %.3f in or use %d anchors",
				in.AnchorDiameterIn, in.NumAnchors+2))
		}
	}

	// Anchor shear on the threaded section.
	shearDemand := in.ShearKip / n
	shearCapacity := PhiAnchorShear * AnchorShearFactor * ab * fu
	res.ShearPerAnchorKip = units.Round(shearDemand, 3)
	res.ShearCapacityKip = units.RoundForce(shearCapacity)
	shearPass := shearDemand <= shearCapacity
	res.Checks = append(res.Checks, check.Result{
		Name: "Anchor Shear", Demand: res.ShearPerAnchorKip, Capacity: res.ShearCapacityKip,
		Unit: "kip", Pass: shearPass, Governing: "anchor steel",
	})
	if !shearPass {
		res.Suggestions = append(res.Suggestions, fmt.Sprintf(
			"increase anchor diameter beyond %.3f in for shear", in.AnchorDiameterIn))
	}

	res.Approved = res.Checks.Approved()
	if !res.Approved {
		if f, ok := res.Checks.FirstFailure(); ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s check failed: demand %.2f %s exceeds capacity %.2f %s",
				f.Name, f.Demand, f.Unit, f.Capacity, f.Unit))
		}
	}
	return res, nil
}

func validateBaseplate(in BaseplateInput) error {
	if err := units.Positive("plate_width_in", in.PlateWidthIn, "baseplate width", ""); err != nil {
		return err
	}
	if err := units.Positive("plate_length_in", in.PlateLengthIn, "baseplate length", ""); err != nil {
		return err
	}
	if err := units.Positive("plate_thickness_in", in.PlateThicknessIn, "baseplate thickness", ""); err != nil {
		return err
	}
	if in.NumAnchors <= 0 {
		return &units.InvalidInputError{
			Param: "num_anchors", Value: float64(in.NumAnchors), Valid: ">= 1",
			Context: "anchor demands divide by the anchor count",
		}
	}
	if err := units.Positive("anchor_diameter_in", in.AnchorDiameterIn, "anchor rod diameter", ""); err != nil {
		return err
	}
	if err := units.Positive("embed_depth_in", in.EmbedDepthIn, "anchor embedment; breakout scales with hef^1.5", "ACI 318-19 Eq 17.6.2.2.1"); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"plate_fy_ksi", in.PlateFyKsi},
		{"anchor_fu_ksi", in.AnchorFuKsi},
		{"concrete_fc_psi", in.ConcreteFcPsi},
		{"edge_distance_in", in.EdgeDistanceIn},
		{"anchor_spacing_in", in.AnchorSpacingIn},
		{"weld_size_in", in.WeldSizeIn},
		{"electrode_fexx_ksi", in.ElectrodeFexxKsi},
	} {
		if f.v < 0 {
			return &units.InvalidInputError{Param: f.name, Value: f.v, Valid: ">= 0 (0 selects the default)"}
		}
		if err := units.Finite(f.name, f.v); err != nil {
			return err
		}
	}
	if err := units.NonNegative("tension_kip", in.TensionKip, "anchor group uplift", ""); err != nil {
		return err
	}
	if err := units.NonNegative("shear_kip", in.ShearKip, "base shear", ""); err != nil {
		return err
	}
	if err := units.NonNegative("moment_kipin", in.MomentKipIn, "applied base moment", ""); err != nil {
		return err
	}
	return nil
}

func defaulted(v, def float64, name string, res *BaseplateResult) float64 {
	if v == 0 {
		res.Assumptions = append(res.Assumptions, fmt.Sprintf("%s defaulted to %g", name, def))
		return def
	}
	return v
}

// roundUpSixteenth rounds a dimension up to the next 1/16 in, the practical
// plate and weld increment.
func roundUpSixteenth(v float64) float64 {
	return math.Ceil(v*16) / 16
}
