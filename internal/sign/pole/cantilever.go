package pole

import (
	"fmt"
	"math"

	"github.com/EAGLE605/SignX-sub007/internal/sign/catalog"
	"github.com/EAGLE605/SignX-sub007/internal/sign/check"
	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
)

// Cantilever limits and the simplified fatigue screen (AASHTO LTS galloping
// category, Detail Category E curve).
const (
	MaxArmLengthFt  = 30.0
	MaxArmAngleDeg  = 15.0
	MaxArms         = 4
	MaxMastHeightFt = 60.0

	ArmDeflectionRatio = 100.0 // tip limit L/100

	FatigueCAFLKsi      = 10.0   // constant-amplitude fatigue limit
	FatigueCurveC       = 1.0e9  // N = C / Sr^3
	FatigueCyclesPerYr  = 500000 // gust events per year
	FatigueDesignYears  = 50
	FatigueStressFactor = 0.5 // stress range as a fraction of peak wind stress

	// FoundationOverstrength scales the resultant handed to foundation
	// design so the footing is not the weakest link.
	FoundationOverstrength = 1.1
)

// ArmSection carries the explicit arm properties. There is no default arm:
// every property must be supplied positive, from the catalog or from shop
// drawings.
type ArmSection struct {
	Designation string  `json:"designation,omitempty"`
	SxIn3       float64 `json:"sx_in3"`
	IxIn4       float64 `json:"ix_in4"`
	AreaIn2     float64 `json:"area_in2"`
	WeightPLF   float64 `json:"weight_plf"`
	FyKsi       float64 `json:"fy_ksi"`
}

// CantileverInput describes a mast with one to four horizontal arms carrying
// sign faces. Wind force and sign weight are per arm, unfactored.
type CantileverInput struct {
	MastHeightFt float64                   `json:"mast_height_ft"`
	Mast         catalog.SectionProperties `json:"mast"`

	Arm         ArmSection `json:"arm"`
	ArmLengthFt float64    `json:"arm_length_ft"`
	ArmAngleDeg float64    `json:"arm_angle_deg,omitempty"`
	ArmRiseFt   float64    `json:"arm_rise_ft,omitempty"`
	NumArms     int        `json:"num_arms"`

	WindForceLb    float64 `json:"wind_force_lb"`
	SignWeightLb   float64 `json:"sign_weight_lb"`
	EccentricityFt float64 `json:"eccentricity_ft,omitempty"`
}

// CantileverResult reports the combined mast demands, the arm checks, and
// the fatigue screen. All checks are always evaluated.
type CantileverResult struct {
	Checks                   check.Set `json:"checks"`
	Approved                 bool      `json:"approved"`
	RequestEngineeringReview bool      `json:"request_engineering_review"`

	MxKipFt        float64 `json:"mx_kipft"` // wind about the horizontal axis
	MyKipFt        float64 `json:"my_kipft"` // dead about the perpendicular axis
	TorsionKipFt   float64 `json:"torsion_kipft"`
	ResultantKipFt float64 `json:"resultant_kipft"`

	ArmFbKsi      float64 `json:"arm_fb_ksi"`
	ArmFbAllowKsi float64 `json:"arm_fb_allow_ksi"`

	TipDeflectionIn   float64 `json:"tip_deflection_in"`
	TipDeflectionLim  float64 `json:"tip_deflection_limit_in"`
	TipRotationRad    float64 `json:"tip_rotation_rad"`
	MastFbKsi         float64 `json:"mast_fb_ksi"`
	MastFbAllowKsi    float64 `json:"mast_fb_allow_ksi"`
	StressRangeKsi    float64 `json:"fatigue_stress_range_ksi"`
	FatigueLifeFactor float64 `json:"fatigue_life_factor"`

	FoundationMomentKipFt float64 `json:"foundation_moment_kipft"`

	Assumptions []string `json:"assumptions"`
	Warnings    []string `json:"warnings"`
	CodeRefs    []string `json:"code_references"`
}

// AnalyzeCantilever resolves the three base moment components, checks the
// arm in bending and tip deflection, checks the mast against the resultant,
// and screens fatigue. Unlike the single-pole state machine every check is
// evaluated so a failed arm still reports the mast picture.
func AnalyzeCantilever(in CantileverInput) (CantileverResult, error) {
	if err := validateCantilever(in); err != nil {
		return CantileverResult{}, err
	}

	res := CantileverResult{
		Assumptions: []string{
			"all arms oriented on the same side of the mast (conservative for dead-load moment)",
			"torsion carried as a component of the resultant mast demand (simplified interaction)",
		},
		Warnings: []string{},
		CodeRefs: []string{
			"AISC 360-22 Section F (flexure)",
			"AASHTO LTS-1 Section 11 (fatigue design)",
		},
	}

	angleRad := in.ArmAngleDeg * math.Pi / 180
	armHorizFt := in.ArmLengthFt * math.Cos(angleRad)
	tipHeightFt := in.MastHeightFt + in.ArmRiseFt + in.ArmLengthFt*math.Sin(angleRad)
	narms := float64(in.NumArms)

	armSelfLb := in.Arm.WeightPLF * in.ArmLengthFt
	windTotalLb := in.WindForceLb * narms

	// Base moment components, service level.
	mx := windTotalLb * tipHeightFt / units.LbfPerKip
	my := narms * (in.SignWeightLb*armHorizFt + armSelfLb*armHorizFt/2) / units.LbfPerKip
	mz := windTotalLb * in.EccentricityFt / units.LbfPerKip
	resultant := math.Sqrt(mx*mx + my*my + mz*mz)
	res.MxKipFt = units.RoundMoment(mx)
	res.MyKipFt = units.RoundMoment(my)
	res.TorsionKipFt = units.RoundMoment(mz)
	res.ResultantKipFt = units.RoundMoment(resultant)
	res.FoundationMomentKipFt = units.RoundMoment(FoundationOverstrength * resultant)
	res.Assumptions = append(res.Assumptions, fmt.Sprintf(
		"foundation design moment includes a %.1f overstrength factor on the resultant",
		FoundationOverstrength))

	// Arm bending at the mast face: wind at the tip plus gravity at the
	// effective lever arms.
	armMomentLbFt := in.WindForceLb*armHorizFt + (in.SignWeightLb+armSelfLb)*armHorizFt/2
	armFb := armMomentLbFt * units.InPerFt / (units.LbfPerKip * in.Arm.SxIn3)
	armFbAllow := ASDBendingFactor * in.Arm.FyKsi
	res.ArmFbKsi = units.RoundStress(armFb)
	res.ArmFbAllowKsi = units.RoundStress(armFbAllow)
	res.Checks = append(res.Checks, check.Result{
		Name: "Arm Bending", Demand: res.ArmFbKsi, Capacity: res.ArmFbAllowKsi,
		Unit: "ksi", Pass: armFb <= armFbAllow, Governing: "flexure",
	})

	// Tip deflection and rotation under the wind point load.
	armIn := in.ArmLengthFt * units.InPerFt
	ei := ESteelKsi * units.PsiPerKsi * in.Arm.IxIn4
	tipDefl := in.WindForceLb * math.Pow(armIn, 3) / (3 * ei)
	tipLimit := armIn / ArmDeflectionRatio
	res.TipDeflectionIn = units.Round(tipDefl, 3)
	res.TipDeflectionLim = units.Round(tipLimit, 3)
	res.TipRotationRad = units.Round(in.WindForceLb*armIn*armIn/(2*ei), 5)
	res.Checks = append(res.Checks, check.Result{
		Name: "Arm Tip Deflection", Demand: res.TipDeflectionIn, Capacity: res.TipDeflectionLim,
		Unit: "in", Pass: tipDefl <= tipLimit, Governing: "drift",
	})

	// Mast bending against the resultant of all three components.
	mastFb := resultant * units.InPerFt / in.Mast.SxIn3
	mastFbAllow := ASDBendingFactor * in.Mast.FyKsi
	res.MastFbKsi = units.RoundStress(mastFb)
	res.MastFbAllowKsi = units.RoundStress(mastFbAllow)
	res.Checks = append(res.Checks, check.Result{
		Name: "Mast Bending", Demand: res.MastFbKsi, Capacity: res.MastFbAllowKsi,
		Unit: "ksi", Pass: mastFb <= mastFbAllow, Governing: "flexure",
	})

	// Fatigue screen on the arm: half the peak wind stress as the effective
	// range against the category E curve, floored at the CAFL.
	windFb := in.WindForceLb * armHorizFt * units.InPerFt / (units.LbfPerKip * in.Arm.SxIn3)
	stressRange := FatigueStressFactor * windFb
	cycles := float64(FatigueCyclesPerYr) * FatigueDesignYears
	allowRange := math.Max(FatigueCAFLKsi, math.Cbrt(FatigueCurveC/cycles))
	lifeFactor := 1.0
	if stressRange > FatigueCAFLKsi {
		lifeFactor = math.Min(1, FatigueCurveC/math.Pow(stressRange, 3)/cycles)
	}
	res.StressRangeKsi = units.RoundStress(stressRange)
	res.FatigueLifeFactor = units.Round(lifeFactor, 3)
	fatiguePass := stressRange <= allowRange
	res.Checks = append(res.Checks, check.Result{
		Name: "Arm Fatigue", Demand: res.StressRangeKsi, Capacity: units.RoundStress(allowRange),
		Unit: "ksi", Pass: fatiguePass, Governing: "fatigue",
	})
	if !fatiguePass {
		res.RequestEngineeringReview = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"request engineering review: fatigue stress range %.2f ksi exceeds %.2f ksi (life factor %.2f)",
			stressRange, allowRange, lifeFactor))
		if lifeFactor < 0.5 {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"warning: projected fatigue life is under half the %d-year design life; revise the arm connection detail",
				FatigueDesignYears))
		}
	}

	res.Approved = res.Checks.Approved()
	if !res.Approved && !res.RequestEngineeringReview {
		if f, ok := res.Checks.FirstFailure(); ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s check failed at utilization %.2f", f.Name, f.Utilization()))
		}
	}
	return res, nil
}

func validateCantilever(in CantileverInput) error {
	if err := units.Positive("mast_height_ft", in.MastHeightFt, "mast height above grade", ""); err != nil {
		return err
	}
	if in.MastHeightFt > MaxMastHeightFt {
		return &units.InvalidInputError{
			Param: "mast_height_ft", Value: in.MastHeightFt,
			Valid: fmt.Sprintf("<= %g", MaxMastHeightFt), Context: "cantilever mast practice limit",
		}
	}
	if in.Mast.SxIn3 <= 0 {
		return &InvalidSectionError{Designation: in.Mast.Designation, Property: "sx_in3", Value: in.Mast.SxIn3}
	}
	if in.Mast.FyKsi <= 0 {
		return &InvalidSectionError{Designation: in.Mast.Designation, Property: "fy_ksi", Value: in.Mast.FyKsi}
	}
	if err := units.Positive("arm_section.sx_in3", in.Arm.SxIn3, "explicit arm section modulus is required; there is no default arm", ""); err != nil {
		return err
	}
	if err := units.Positive("arm_section.ix_in4", in.Arm.IxIn4, "explicit arm moment of inertia is required; there is no default arm", ""); err != nil {
		return err
	}
	if err := units.Positive("arm_section.area_in2", in.Arm.AreaIn2, "explicit arm area is required", ""); err != nil {
		return err
	}
	if err := units.Positive("arm_section.weight_plf", in.Arm.WeightPLF, "explicit arm unit weight is required", ""); err != nil {
		return err
	}
	if err := units.Positive("arm_section.fy_ksi", in.Arm.FyKsi, "explicit arm yield strength is required", ""); err != nil {
		return err
	}
	if in.ArmLengthFt <= 0 || in.ArmLengthFt > MaxArmLengthFt {
		return &units.InvalidInputError{
			Param: "arm_length_ft", Value: in.ArmLengthFt,
			Valid: fmt.Sprintf("(0, %g]", MaxArmLengthFt),
		}
	}
	if math.Abs(in.ArmAngleDeg) > MaxArmAngleDeg {
		return &units.InvalidInputError{
			Param: "arm_angle_deg", Value: in.ArmAngleDeg,
			Valid: fmt.Sprintf("[-%g, %g]", MaxArmAngleDeg, MaxArmAngleDeg),
		}
	}
	if err := units.NonNegative("arm_rise_ft", in.ArmRiseFt, "rise from mast top to arm axis", ""); err != nil {
		return err
	}
	if in.NumArms < 1 || in.NumArms > MaxArms {
		return &units.InvalidInputError{
			Param: "num_arms", Value: float64(in.NumArms),
			Valid: fmt.Sprintf("1 to %d", MaxArms),
		}
	}
	if err := units.Positive("wind_force_lb", in.WindForceLb, "wind force per arm sign face", ""); err != nil {
		return err
	}
	if err := units.NonNegative("sign_weight_lb", in.SignWeightLb, "sign weight per arm", ""); err != nil {
		return err
	}
	if err := units.NonNegative("eccentricity_ft", in.EccentricityFt, "sign face offset from the arm axis", ""); err != nil {
		return err
	}
	return nil
}
