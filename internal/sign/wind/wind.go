package wind

import (
	"fmt"
	"math"

	"github.com/EAGLE605/SignX-sub007/internal/sign/memo"
	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
)

// Exposure is the ASCE 7-22 terrain roughness category.
type Exposure string

const (
	ExposureB Exposure = "B"
	ExposureC Exposure = "C"
	ExposureD Exposure = "D"
)

// RiskCategory per ASCE 7-22 Table 1.5-1.
type RiskCategory string

const (
	RiskI   RiskCategory = "I"
	RiskII  RiskCategory = "II"
	RiskIII RiskCategory = "III"
	RiskIV  RiskCategory = "IV"
)

// ASCE 7-22 constants for free-standing sign structures.
const (
	VelocityPressureCoeff = 0.00256 // Eq. 26.10-1, imperial units
	DirectionalityKd      = 0.85    // Table 26.6-1, solid signs
	GustEffectG           = 0.85    // Section 26.11, rigid structures
	ForceCoefficientCf    = 1.2     // Figure 29.3-1, flat sign panels

	// MinHeightFt is the lowest height the Kz tables are defined for.
	// Heights below it are rejected here; callers that need the code floor
	// apply it explicitly and record the assumption.
	MinHeightFt = 15.0

	// tableMaxFt is the last tabulated Kz height; above it the gradient
	// power law governs.
	tableMaxFt = 160.0

	// Basic wind speed band accepted from hazard maps, ASCE 7-22 Fig 26.5-1.
	MinWindSpeedMph = 85.0
	MaxWindSpeedMph = 200.0
)

var importanceFactors = map[RiskCategory]float64{
	RiskI:   0.87,
	RiskII:  1.00,
	RiskIII: 1.15,
	RiskIV:  1.15,
}

type kzPoint struct {
	z  float64
	kz float64
}

// exposureParams holds the tabulated exposure coefficients plus the gradient
// parameters used above the table, per ASCE 7-22 Table 26.11-1.
type exposureParams struct {
	alpha float64
	zgFt  float64
	table []kzPoint
}

var exposures = map[Exposure]exposureParams{
	ExposureB: {
		alpha: 7.0, zgFt: 1200,
		table: []kzPoint{
			{15, 0.57}, {20, 0.62}, {25, 0.66}, {30, 0.70}, {40, 0.76},
			{50, 0.81}, {60, 0.85}, {70, 0.89}, {80, 0.93}, {90, 0.96},
			{100, 0.99}, {120, 1.04}, {140, 1.09}, {160, 1.13},
		},
	},
	ExposureC: {
		alpha: 9.5, zgFt: 900,
		table: []kzPoint{
			{15, 0.85}, {20, 0.90}, {25, 0.94}, {30, 0.98}, {40, 1.04},
			{50, 1.09}, {60, 1.13}, {70, 1.17}, {80, 1.21}, {90, 1.24},
			{100, 1.26}, {120, 1.31}, {140, 1.36}, {160, 1.39},
		},
	},
	ExposureD: {
		alpha: 11.5, zgFt: 700,
		table: []kzPoint{
			{15, 1.03}, {20, 1.08}, {25, 1.12}, {30, 1.16}, {40, 1.22},
			{50, 1.27}, {60, 1.31}, {70, 1.34}, {80, 1.38}, {90, 1.40},
			{100, 1.43}, {120, 1.48}, {140, 1.52}, {160, 1.55},
		},
	},
}

// ImportanceFactor returns Iw for a risk category.
func ImportanceFactor(risk RiskCategory) (float64, error) {
	iw, ok := importanceFactors[risk]
	if !ok {
		return 0, &units.InvalidInputError{
			Param: "risk_category", Valid: "I, II, III, IV",
			Context: "wind importance factor selection", CodeRef: "ASCE 7-22 Table 1.5-2",
		}
	}
	return iw, nil
}

// ExposureCoefficient returns Kz at a height. Between tabulated heights it
// interpolates linearly; above the table it uses 2.01*(z/zg)^(2/alpha).
// Heights below MinHeightFt fail rather than silently taking the floor.
func ExposureCoefficient(heightFt float64, exp Exposure) (float64, error) {
	p, ok := exposures[exp]
	if !ok {
		return 0, &units.InvalidInputError{
			Param: "exposure", Valid: "B, C, D",
			Context: "exposure coefficient lookup", CodeRef: "ASCE 7-22 Table 26.10-1",
		}
	}
	if err := units.Finite("height_ft", heightFt); err != nil {
		return 0, err
	}
	if heightFt < MinHeightFt {
		return 0, &units.InvalidInputError{
			Param: "height_ft", Value: heightFt,
			Valid:   ">= 15",
			Context: "Kz is tabulated from 15 ft; apply the code floor explicitly",
			CodeRef: "ASCE 7-22 Table 26.10-1",
		}
	}
	if heightFt > p.zgFt {
		return 0, &units.InvalidInputError{
			Param: "height_ft", Value: heightFt,
			Valid:   fmt.Sprintf("<= %g (gradient height, exposure %s)", p.zgFt, exp),
			Context: "height exceeds the gradient height for this exposure",
			CodeRef: "ASCE 7-22 Table 26.11-1",
		}
	}
	if heightFt > tableMaxFt {
		return 2.01 * math.Pow(heightFt/p.zgFt, 2.0/p.alpha), nil
	}
	table := p.table
	for i := 1; i < len(table); i++ {
		if heightFt <= table[i].z {
			lo, hi := table[i-1], table[i]
			frac := (heightFt - lo.z) / (hi.z - lo.z)
			return lo.kz + frac*(hi.kz-lo.kz), nil
		}
	}
	return table[len(table)-1].kz, nil
}

// PressureInput describes one velocity-pressure evaluation.
type PressureInput struct {
	HeightFt     float64      `json:"height_ft"`
	Exposure     Exposure     `json:"exposure"`
	RiskCategory RiskCategory `json:"risk_category"`
	WindSpeedMph float64      `json:"wind_speed_mph"`
	Kzt          float64      `json:"kzt,omitempty"` // topographic factor, default 1.0
	Ke           float64      `json:"ke,omitempty"`  // elevation factor, default 1.0
}

// PressureResult carries qz plus the factored design pressure on a flat sign
// panel and the coefficients that produced them.
type PressureResult struct {
	Kz                float64  `json:"kz"`
	QzPsf             float64  `json:"qz_psf"`
	DesignPressurePsf float64  `json:"design_pressure_psf"`
	ImportanceIw      float64  `json:"importance_factor"`
	CodeRefs          []string `json:"code_references"`
}

// pressureCache memoizes the full evaluation: a batch run or a multi-cabinet
// derivation hits the same site tuple once per cabinet.
var pressureCache = memo.New(memo.DefaultCapacity)

// VelocityPressure computes qz = 0.00256*Kz*Kzt*Kd*Ke*V^2 and the design
// pressure p = qz*G*Cf*Iw. Pure: same input, same output.
func VelocityPressure(in PressureInput) (PressureResult, error) {
	if err := units.InRange("wind_speed_mph", in.WindSpeedMph, MinWindSpeedMph, MaxWindSpeedMph,
		"basic wind speed from the hazard map", "ASCE 7-22 Figure 26.5-1"); err != nil {
		return PressureResult{}, err
	}
	kzt := in.Kzt
	if kzt == 0 {
		kzt = 1.0
	}
	if err := units.InRange("kzt", kzt, 1.0, 3.0, "topographic factor", "ASCE 7-22 Section 26.8"); err != nil {
		return PressureResult{}, err
	}
	ke := in.Ke
	if ke == 0 {
		ke = 1.0
	}
	if err := units.InRange("ke", ke, 0.5, 1.0, "ground elevation factor", "ASCE 7-22 Table 26.9-1"); err != nil {
		return PressureResult{}, err
	}

	key := string(in.Exposure) + "|" + string(in.RiskCategory) + "|" +
		memo.Key(in.HeightFt, in.WindSpeedMph, kzt, ke)
	if v, ok := pressureCache.Get(key); ok {
		return v.(PressureResult), nil
	}

	kz, err := ExposureCoefficient(in.HeightFt, in.Exposure)
	if err != nil {
		return PressureResult{}, err
	}
	iw, err := ImportanceFactor(in.RiskCategory)
	if err != nil {
		return PressureResult{}, err
	}

	qz := VelocityPressureCoeff * kz * kzt * DirectionalityKd * ke * in.WindSpeedMph * in.WindSpeedMph
	design := qz * GustEffectG * ForceCoefficientCf * iw

	res := PressureResult{
		Kz:                kz,
		QzPsf:             qz,
		DesignPressurePsf: design,
		ImportanceIw:      iw,
		CodeRefs: []string{
			"ASCE 7-22 Eq. 26.10-1 (velocity pressure)",
			"ASCE 7-22 Table 26.10-1 (exposure coefficient)",
			"ASCE 7-22 Table 26.6-1 (directionality, signs)",
			"ASCE 7-22 Figure 29.3-1 (force coefficient, solid signs)",
		},
	}
	pressureCache.Put(key, res)
	return res, nil
}

// ForceInput applies a design pressure to a projected panel area with its
// centroid height above the base.
type ForceInput struct {
	Pressure   PressureInput `json:"pressure"`
	AreaFt2    float64       `json:"area_ft2"`
	CentroidFt float64       `json:"centroid_ft"`
}

// ForceResult is the resolved panel force and base moment.
type ForceResult struct {
	Pressure        PressureResult `json:"pressure"`
	ForceLb         float64        `json:"force_lb"`
	MomentArmFt     float64        `json:"moment_arm_ft"`
	BaseMomentKipFt float64        `json:"base_moment_kipft"`
}

// DesignForce multiplies the design pressure by the projected area and
// resolves the overturning moment at the base using the centroid arm.
func DesignForce(in ForceInput) (ForceResult, error) {
	if err := units.Positive("area_ft2", in.AreaFt2, "projected sign panel area", "ASCE 7-22 Section 29.3"); err != nil {
		return ForceResult{}, err
	}
	if err := units.Positive("centroid_ft", in.CentroidFt, "panel centroid height above base", ""); err != nil {
		return ForceResult{}, err
	}
	pr, err := VelocityPressure(in.Pressure)
	if err != nil {
		return ForceResult{}, err
	}
	force := pr.DesignPressurePsf * in.AreaFt2
	moment := force * in.CentroidFt / units.LbfPerKip
	return ForceResult{
		Pressure:        pr,
		ForceLb:         units.RoundForce(force),
		MomentArmFt:     units.RoundArea(in.CentroidFt),
		BaseMomentKipFt: units.RoundMoment(moment),
	}, nil
}
