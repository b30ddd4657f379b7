package foundation

import (
	"fmt"

	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
)

// Stock increments the fabricator can actually buy. Ordering matters: the
// auto-solve walks thinnest plate first, then fewest and smallest anchors,
// then smallest weld, so the first passing combination is the cheapest.
var (
	stockThicknessesIn = []float64{0.5, 0.625, 0.75, 0.875, 1.0, 1.25, 1.5}
	stockAnchorDiasIn  = []float64{0.625, 0.75, 0.875, 1.0, 1.25}
	stockAnchorCounts  = []int{4, 6, 8}
	stockWeldSizesIn   = []float64{0.25, 0.3125, 0.375, 0.5}
)

// AutoPlateInput fixes the plan geometry and demands; the solver picks
// thickness, anchors, and weld from stock sizes.
type AutoPlateInput struct {
	PlateWidthIn  float64 `json:"plate_width_in"`
	PlateLengthIn float64 `json:"plate_length_in"`
	EmbedDepthIn  float64 `json:"embed_depth_in"`

	PlateFyKsi    float64 `json:"plate_fy_ksi,omitempty"`
	AnchorFuKsi   float64 `json:"anchor_fu_ksi,omitempty"`
	ConcreteFcPsi float64 `json:"concrete_fc_psi,omitempty"`

	TensionKip  float64 `json:"tension_kip"`
	ShearKip    float64 `json:"shear_kip"`
	MomentKipIn float64 `json:"moment_kipin,omitempty"`
}

// AutoPlateResult is the selected configuration with its full check set.
type AutoPlateResult struct {
	Input           *BaseplateInput  `json:"input,omitempty"`
	Checks          *BaseplateResult `json:"checks,omitempty"`
	CandidatesTried int              `json:"candidates_tried"`
	Warnings        []string         `json:"warnings"`
}

// AutoPlate searches the stock grid for the first configuration that passes
// all four checks. The grid is fixed and walked in cost order, so equal
// inputs always select the same plate.
func AutoPlate(in AutoPlateInput) (AutoPlateResult, error) {
	if err := units.Positive("plate_width_in", in.PlateWidthIn, "baseplate width", ""); err != nil {
		return AutoPlateResult{}, err
	}
	if err := units.Positive("plate_length_in", in.PlateLengthIn, "baseplate length", ""); err != nil {
		return AutoPlateResult{}, err
	}
	if err := units.Positive("embed_depth_in", in.EmbedDepthIn, "anchor embedment", ""); err != nil {
		return AutoPlateResult{}, err
	}

	res := AutoPlateResult{Warnings: []string{}}
	for _, t := range stockThicknessesIn {
		for _, count := range stockAnchorCounts {
			for _, dia := range stockAnchorDiasIn {
				for _, weld := range stockWeldSizesIn {
					candidate := BaseplateInput{
						PlateWidthIn:     in.PlateWidthIn,
						PlateLengthIn:    in.PlateLengthIn,
						PlateThicknessIn: t,
						PlateFyKsi:       in.PlateFyKsi,
						NumAnchors:       count,
						AnchorDiameterIn: dia,
						AnchorFuKsi:      in.AnchorFuKsi,
						EmbedDepthIn:     in.EmbedDepthIn,
						ConcreteFcPsi:    in.ConcreteFcPsi,
						WeldSizeIn:       weld,
						TensionKip:       in.TensionKip,
						ShearKip:         in.ShearKip,
						MomentKipIn:      in.MomentKipIn,
					}
					out, err := CheckBaseplate(candidate)
					if err != nil {
						return AutoPlateResult{}, err
					}
					res.CandidatesTried++
					if out.Approved {
						res.Input = &candidate
						res.Checks = &out
						return res, nil
					}
				}
			}
		}
	}
	res.Warnings = append(res.Warnings, fmt.Sprintf(
		"no stock baseplate configuration passed all checks after %d candidates; the connection needs a custom design",
		res.CandidatesTried))
	return res, nil
}
