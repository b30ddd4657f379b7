package pole

import (
	"fmt"

	"github.com/EAGLE605/SignX-sub007/internal/sign/catalog"
	"github.com/EAGLE605/SignX-sub007/internal/sign/check"
	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
)

// Double-pole geometry limits. The stability ratio compares clear spacing
// to pole height; wide frames rack under skewed wind unless braced.
const (
	MinPoleSpacingFt = 3.0

	StabilityAdvisoryRatio = 1.5
	StabilityRequiredRatio = 2.0
)

// DistributionMethod selects how the total load splits across the pair.
type DistributionMethod string

const (
	DistributionEqual        = DistributionMethod("equal")
	DistributionProportional = DistributionMethod("proportional")
)

// DoubleInput describes a two-pole frame carrying one sign between the
// poles. Totals are for the whole sign, unfactored; both poles use the
// same section.
type DoubleInput struct {
	PoleHeightFt  float64                   `json:"pole_height_ft"`
	PoleSpacingFt float64                   `json:"pole_spacing_ft"`
	Section       catalog.SectionProperties `json:"section"`

	WindForceLb float64 `json:"wind_force_lb"`
	CentroidFt  float64 `json:"centroid_ft"`
	DeadLoadLb  float64 `json:"dead_load_lb"`

	EmbedDepthFt      float64 `json:"embed_depth_ft"`
	FootingDiameterFt float64 `json:"footing_diameter_ft,omitempty"`

	Method         DistributionMethod `json:"distribution_method,omitempty"`
	LateralBracing bool               `json:"lateral_bracing"`
}

// DoubleResult reports per-pole demands, the per-pole limit-state outcome,
// and the frame stability check.
type DoubleResult struct {
	Checks                   check.Set `json:"checks"`
	Approved                 bool      `json:"approved"`
	RequestEngineeringReview bool      `json:"request_engineering_review"`

	Method            DistributionMethod `json:"distribution_method"`
	WindPerPoleLb     float64            `json:"wind_per_pole_lb"`
	DeadPerPoleLb     float64            `json:"dead_per_pole_lb"`
	MomentPerPoleKip  float64            `json:"moment_per_pole_kipft"`
	StabilityRatio    float64            `json:"stability_ratio"`
	FootingDiameterFt float64            `json:"footing_diameter_ft"`

	PoleState State `json:"pole_state"`

	Assumptions []string `json:"assumptions"`
	Warnings    []string `json:"warnings"`
	CodeRefs    []string `json:"code_references"`
}

// AnalyzeDouble splits the sign loads across the pair, runs the single-pole
// limit states on one pole at the split demand, and appends the frame
// lateral stability check.
func AnalyzeDouble(in DoubleInput) (DoubleResult, error) {
	if in.PoleSpacingFt < MinPoleSpacingFt {
		return DoubleResult{}, &units.InvalidInputError{
			Param: "pole_spacing_ft", Value: in.PoleSpacingFt,
			Valid: fmt.Sprintf(">= %g", MinPoleSpacingFt), Context: "clear spacing between pole centerlines",
		}
	}
	method := in.Method
	if method == "" {
		method = DistributionEqual
	}
	if method != DistributionEqual && method != DistributionProportional {
		return DoubleResult{}, &units.InvalidInputError{
			Param: "distribution_method", Value: 0,
			Valid: "equal or proportional", Context: string(method),
		}
	}

	res := DoubleResult{
		Method: method,
		Assumptions: []string{
			"sign geometry symmetric about the frame centerline; each pole carries half the total",
		},
		Warnings: []string{},
		CodeRefs: []string{"IBC 2024 Section 1605.1 (ASD load combinations)"},
	}
	if method == DistributionProportional {
		// Proportional distribution needs tributary widths the frame input
		// does not carry; with a single sign panel it reduces to equal.
		res.Warnings = append(res.Warnings,
			"warning: proportional distribution reduces to an equal split for a symmetric single panel")
	}

	windPerPole := in.WindForceLb / 2
	deadPerPole := in.DeadLoadLb / 2
	res.WindPerPoleLb = units.RoundForce(windPerPole)
	res.DeadPerPoleLb = units.RoundForce(deadPerPole)

	single, err := Analyze(Input{
		PoleHeightFt:      in.PoleHeightFt,
		Section:           in.Section,
		WindForceLb:       windPerPole,
		CentroidFt:        in.CentroidFt,
		DeadLoadLb:        deadPerPole,
		EmbedDepthFt:      in.EmbedDepthFt,
		FootingDiameterFt: in.FootingDiameterFt,
	})
	if err != nil {
		return DoubleResult{}, err
	}
	res.Checks = append(res.Checks, single.Checks...)
	res.MomentPerPoleKip = single.MomentKipFt
	res.FootingDiameterFt = single.FootingDiameterFt
	res.PoleState = single.State
	res.Warnings = append(res.Warnings, single.Warnings...)
	if single.RequestEngineeringReview {
		res.RequestEngineeringReview = true
	}

	// Frame lateral stability: spacing/height ratio, waived by bracing.
	ratio := in.PoleSpacingFt / in.PoleHeightFt
	res.StabilityRatio = units.Round(ratio, 2)
	stable := true
	switch {
	case in.LateralBracing:
		res.Assumptions = append(res.Assumptions, "lateral bracing between poles relied on for frame stability")
	case ratio > StabilityRequiredRatio:
		stable = false
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"warning: spacing/height ratio %.2f exceeds %.2f; lateral bracing between poles is required",
			ratio, StabilityRequiredRatio))
	case ratio > StabilityAdvisoryRatio:
		stable = false
		res.RequestEngineeringReview = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"request engineering review: spacing/height ratio %.2f exceeds %.2f without lateral bracing",
			ratio, StabilityAdvisoryRatio))
	}
	res.Checks = append(res.Checks, check.Result{
		Name: "Lateral Stability", Demand: res.StabilityRatio, Capacity: StabilityAdvisoryRatio,
		Unit: "spacing/height", Pass: stable, Governing: "frame stability",
	})

	res.Approved = res.Checks.Approved()
	return res, nil
}
