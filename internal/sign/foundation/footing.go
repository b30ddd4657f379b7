package foundation

import (
	"fmt"
	"math"

	"github.com/EAGLE605/SignX-sub007/internal/sign/memo"
	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
)

// Direct-burial footing model, IBC 2024 Section 1807.3 (nonconstrained
// embedded posts). The quadratic Eq 18-1 is collapsed to a closed form that
// is linear in the applied moment, calibrated to the code solution for the
// lateral-load range of sign structures.
const (
	// EmbedmentConstantA is the 4.36 of IBC 2024 Equation 18-1.
	EmbedmentConstantA = 4.36
	// LateralRatio converts allowable bearing to allowable lateral bearing.
	LateralRatio = 2.0 / 3.0
	// CalibrationK aligns the closed form with the iterated Eq 18-1 result.
	CalibrationK = 0.9

	MinEmbedmentFt = 2.0
	ReviewDepthFt  = 8.0

	// OverExcavationFactor covers auger wobble and spoil: the poured volume
	// runs about a third over the neat-line cylinder.
	OverExcavationFactor = 4.0 / 3.0

	minBearingPsf = 500.0
	maxBearingPsf = 12000.0
)

// depthCoefficient is A^2 * LateralRatio * CalibrationK; depth is
// coefficient * M / (S * b^2) with M in lb-ft.
var depthCoefficient = EmbedmentConstantA * EmbedmentConstantA * LateralRatio * CalibrationK

// depthCache memoizes embedment solves; batch runs repeat the same
// moment/soil/width tuples across items.
var depthCache = memo.New(memo.DefaultCapacity)

func embedmentDepthFt(momentLbFt, soilPsf, widthFt float64) float64 {
	key := memo.Key(momentLbFt, soilPsf, widthFt)
	if v, ok := depthCache.Get(key); ok {
		return v.(float64)
	}
	d := depthCoefficient * momentLbFt / (soilPsf * widthFt * widthFt)
	depthCache.Put(key, d)
	return d
}

// Shape selects the footing cross-section.
type Shape string

const (
	ShapeRound  = Shape("round")
	ShapeSquare = Shape("square")
)

// FootingInput sizes direct-burial footings for one structure. MomentKipFt
// is the total unfactored base moment; with multiple poles each footing
// takes an equal share.
type FootingInput struct {
	MomentKipFt    float64 `json:"moment_kipft"`
	SoilBearingPsf float64 `json:"soil_bearing_psf"`
	DiameterFt     float64 `json:"diameter_ft"` // side width for square footings
	Shape          Shape   `json:"shape,omitempty"`
	NumPoles       int     `json:"num_poles,omitempty"`
}

// FootingResult reports the required embedment and concrete takeoff.
type FootingResult struct {
	DepthFt            float64 `json:"depth_ft"`
	DiameterFt         float64 `json:"diameter_ft"`
	Shape              Shape   `json:"shape"`
	NumPoles           int     `json:"num_poles"`
	MomentPerPoleKipFt float64 `json:"moment_per_pole_kipft"`

	ConcretePerFootingCuYd float64 `json:"concrete_per_footing_cuyd"`
	ConcreteTotalCuYd      float64 `json:"concrete_total_cuyd"`

	RequestEngineeringReview bool `json:"request_engineering_review"`

	Assumptions []string `json:"assumptions"`
	Warnings    []string `json:"warnings"`
	CodeRefs    []string `json:"code_references"`
}

// SolveFooting computes the embedment depth for each footing. Depth is
// linear in moment, so deeper never follows from a smaller load; the
// MinEmbedmentFt floor applies regardless of how light the sign is.
func SolveFooting(in FootingInput) (FootingResult, error) {
	if err := units.Positive("moment_kipft", in.MomentKipFt, "unfactored base moment", "IBC 2024 Section 1807.3"); err != nil {
		return FootingResult{}, err
	}
	if err := units.Positive("soil_bearing_psf", in.SoilBearingPsf, "allowable soil bearing", "IBC 2024 Table 1806.2"); err != nil {
		return FootingResult{}, err
	}
	if err := units.Positive("diameter_ft", in.DiameterFt, "footing diameter or side width", ""); err != nil {
		return FootingResult{}, err
	}
	shape := in.Shape
	if shape == "" {
		shape = ShapeRound
	}
	if shape != ShapeRound && shape != ShapeSquare {
		return FootingResult{}, &units.InvalidInputError{
			Param: "shape", Value: 0, Valid: "round or square", Context: string(shape),
		}
	}
	numPoles := in.NumPoles
	if numPoles == 0 {
		numPoles = 1
	}
	if numPoles < 1 || numPoles > 4 {
		return FootingResult{}, &units.InvalidInputError{
			Param: "num_poles", Value: float64(in.NumPoles), Valid: "1 to 4",
		}
	}

	res := FootingResult{
		DiameterFt: in.DiameterFt,
		Shape:      shape,
		NumPoles:   numPoles,
		Assumptions: []string{
			"nonconstrained embedded post per IBC 1807.3.2.1; no surface restraint at grade",
			fmt.Sprintf("lateral bearing taken as %.0f%% of allowable vertical bearing", LateralRatio*100),
			fmt.Sprintf("concrete volume includes a %.2f over-excavation allowance", OverExcavationFactor),
		},
		Warnings: []string{},
		CodeRefs: []string{
			"IBC 2024 Section 1807.3 (embedded posts and poles)",
			"IBC 2024 Equation 18-1",
		},
	}
	if in.SoilBearingPsf < minBearingPsf || in.SoilBearingPsf > maxBearingPsf {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"warning: soil bearing %.0f psf is outside the typical %g-%g psf range; confirm the geotechnical basis",
			in.SoilBearingPsf, minBearingPsf, maxBearingPsf))
	}

	momentPerPole := in.MomentKipFt / float64(numPoles)
	res.MomentPerPoleKipFt = units.RoundMoment(momentPerPole)
	if numPoles > 1 {
		res.Assumptions = append(res.Assumptions, fmt.Sprintf(
			"base moment split equally across %d footings", numPoles))
	}

	momentLbFt := momentPerPole * units.LbfPerKip
	depth := embedmentDepthFt(momentLbFt, in.SoilBearingPsf, in.DiameterFt)
	if depth <= 0 || math.IsNaN(depth) || math.IsInf(depth, 0) {
		return FootingResult{}, &units.PhysicalImpossibilityError{
			Quantity: "embedment_depth_ft", Value: depth,
			Detail: "closed-form embedment produced a non-physical depth",
		}
	}
	if depth < MinEmbedmentFt {
		depth = MinEmbedmentFt
		res.Assumptions = append(res.Assumptions, fmt.Sprintf(
			"embedment governed by the %.1f ft practice minimum", MinEmbedmentFt))
	}
	res.DepthFt = units.RoundArea(depth)
	if depth > ReviewDepthFt {
		res.RequestEngineeringReview = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"request engineering review: embedment %.2f ft exceeds %.1f ft; consider a wider footing or a drilled pier design",
			depth, ReviewDepthFt))
	}

	var sectionFt2 float64
	if shape == ShapeRound {
		sectionFt2 = math.Pi * in.DiameterFt * in.DiameterFt / 4
	} else {
		sectionFt2 = in.DiameterFt * in.DiameterFt
	}
	perFooting := OverExcavationFactor * sectionFt2 * depth / units.CuFtPerCuYd
	res.ConcretePerFootingCuYd = units.RoundArea(perFooting)
	res.ConcreteTotalCuYd = units.RoundArea(perFooting * float64(numPoles))

	return res, nil
}
