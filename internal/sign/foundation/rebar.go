package foundation

import (
	"fmt"
	"math"

	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
)

// Reinforcement defaults for cast-in-place round piers.
const (
	DefaultRebarFyPsi = 60000.0
	DefaultCoverIn    = 3.0

	MinVerticalBars  = 6
	SpiralPitchIn    = 4.0
	SpiralBar        = "#3"
	SpiralLapFactor  = 1.1 // splice and hook allowance per turn
	BarProjectionFt  = 2.0 // vertical bar run above the pier for the base connection
	MinDevelopmentIn = 12.0
	WasteFactor      = 1.05
	smallBarSizeCap  = 6 // #6 and smaller take the 0.8 size factor
	developmentDenom = 25.0
)

// BarProperties is one ASTM A615 bar designation.
type BarProperties struct {
	Size       string  `json:"size"`
	DiameterIn float64 `json:"diameter_in"`
	AreaIn2    float64 `json:"area_in2"`
	WeightPLF  float64 `json:"weight_plf"`
	number     int
}

var barTable = []BarProperties{
	{Size: "#3", DiameterIn: 0.375, AreaIn2: 0.11, WeightPLF: 0.376, number: 3},
	{Size: "#4", DiameterIn: 0.500, AreaIn2: 0.20, WeightPLF: 0.668, number: 4},
	{Size: "#5", DiameterIn: 0.625, AreaIn2: 0.31, WeightPLF: 1.043, number: 5},
	{Size: "#6", DiameterIn: 0.750, AreaIn2: 0.44, WeightPLF: 1.502, number: 6},
	{Size: "#7", DiameterIn: 0.875, AreaIn2: 0.60, WeightPLF: 2.044, number: 7},
	{Size: "#8", DiameterIn: 1.000, AreaIn2: 0.79, WeightPLF: 2.670, number: 8},
	{Size: "#9", DiameterIn: 1.128, AreaIn2: 1.00, WeightPLF: 3.400, number: 9},
	{Size: "#10", DiameterIn: 1.270, AreaIn2: 1.27, WeightPLF: 4.303, number: 10},
	{Size: "#11", DiameterIn: 1.410, AreaIn2: 1.56, WeightPLF: 5.313, number: 11},
}

// BarBySize resolves a designation like "#5".
func BarBySize(size string) (BarProperties, error) {
	for _, b := range barTable {
		if b.Size == size {
			return b, nil
		}
	}
	return BarProperties{}, &units.SectionNotFoundError{Designation: size}
}

// RebarInput schedules reinforcement for one round pier footing.
type RebarInput struct {
	DiameterFt    float64 `json:"diameter_ft"`
	DepthFt       float64 `json:"depth_ft"`
	BarSize       string  `json:"bar_size"`
	ConcreteFcPsi float64 `json:"concrete_fc_psi,omitempty"`
	SteelFyPsi    float64 `json:"steel_fy_psi,omitempty"`
	CoverIn       float64 `json:"cover_in,omitempty"`
	NumFootings   int     `json:"num_footings,omitempty"`
}

// RebarLine is one order line of the schedule.
type RebarLine struct {
	Mark     string  `json:"mark"`
	Size     string  `json:"size"`
	Count    int     `json:"count"`
	LengthFt float64 `json:"length_ft"`
	TotalFt  float64 `json:"total_ft"`
	WeightLb float64 `json:"weight_lb"`
}

// RebarResult is a per-footing schedule plus order totals with waste.
type RebarResult struct {
	Lines []RebarLine `json:"lines"`

	VerticalBarCount     int     `json:"vertical_bar_count"`
	SpiralTurns          int     `json:"spiral_turns"`
	DevelopmentIn        float64 `json:"development_length_in"`
	TotalWeightLb        float64 `json:"total_weight_lb"`
	TotalWeightWithWaste float64 `json:"total_weight_with_waste_lb"`
	NumFootings          int     `json:"num_footings"`

	Assumptions []string `json:"assumptions"`
	CodeRefs    []string `json:"code_references"`
}

// ScheduleRebar lays out the vertical cage and spiral ties for round piers
// and totals the order weight. Development length follows the simplified
// ACI 318-19 25.4.2.3 expression with normal-weight concrete and uncoated
// bars.
func ScheduleRebar(in RebarInput) (RebarResult, error) {
	if err := units.Positive("diameter_ft", in.DiameterFt, "pier diameter", ""); err != nil {
		return RebarResult{}, err
	}
	if err := units.Positive("depth_ft", in.DepthFt, "pier depth", ""); err != nil {
		return RebarResult{}, err
	}
	bar, err := BarBySize(in.BarSize)
	if err != nil {
		return RebarResult{}, err
	}
	fc := in.ConcreteFcPsi
	if fc == 0 {
		fc = DefaultConcreteFcPsi
	}
	if err := units.Positive("concrete_fc_psi", fc, "concrete strength", ""); err != nil {
		return RebarResult{}, err
	}
	fy := in.SteelFyPsi
	if fy == 0 {
		fy = DefaultRebarFyPsi
	}
	cover := in.CoverIn
	if cover == 0 {
		cover = DefaultCoverIn
	}
	if cover < 0 || cover*2 >= in.DiameterFt*units.InPerFt {
		return RebarResult{}, &units.InvalidInputError{
			Param: "cover_in", Value: cover,
			Valid: fmt.Sprintf("[0, %g)", in.DiameterFt*units.InPerFt/2), Context: "clear cover inside the pier",
		}
	}
	numFootings := in.NumFootings
	if numFootings == 0 {
		numFootings = 1
	}
	if numFootings < 1 || numFootings > 4 {
		return RebarResult{}, &units.InvalidInputError{
			Param: "num_footings", Value: float64(in.NumFootings), Valid: "1 to 4",
		}
	}

	res := RebarResult{
		NumFootings: numFootings,
		Assumptions: []string{
			fmt.Sprintf("clear cover %g in, normal-weight concrete, uncoated bars", cover),
			fmt.Sprintf("vertical bars project %g ft above the pier for the base connection", BarProjectionFt),
		},
		CodeRefs: []string{
			"ACI 318-19 Section 25.4.2.3 (development of deformed bars)",
			"ACI 318-19 Section 10.7.6 (column tie and spiral detailing)",
		},
	}

	// Vertical cage: one bar per foot of circumference, never fewer than six.
	vertCount := int(math.Pi * in.DiameterFt)
	if vertCount < MinVerticalBars {
		vertCount = MinVerticalBars
	}
	vertLen := in.DepthFt + BarProjectionFt
	vertical := RebarLine{
		Mark: "V1", Size: bar.Size, Count: vertCount,
		LengthFt: units.RoundArea(vertLen),
		TotalFt:  units.RoundArea(float64(vertCount) * vertLen),
		WeightLb: units.RoundForce(float64(vertCount) * vertLen * bar.WeightPLF),
	}
	res.VerticalBarCount = vertCount

	// Spiral ties at the standard pitch over the full depth.
	spiralBar, _ := BarBySize(SpiralBar)
	turns := int(in.DepthFt * units.InPerFt / SpiralPitchIn)
	loopFt := math.Pi * (in.DiameterFt*units.InPerFt - 2*cover) / units.InPerFt * SpiralLapFactor
	spiral := RebarLine{
		Mark: "S1", Size: spiralBar.Size, Count: turns,
		LengthFt: units.RoundArea(loopFt),
		TotalFt:  units.RoundArea(float64(turns) * loopFt),
		WeightLb: units.RoundForce(float64(turns) * loopFt * spiralBar.WeightPLF),
	}
	res.SpiralTurns = turns

	// Development length, size factor 0.8 for #6 and smaller.
	sizeFactor := 1.0
	if bar.number <= smallBarSizeCap {
		sizeFactor = 0.8
	}
	ld := fy * sizeFactor / (developmentDenom * math.Sqrt(fc)) * bar.DiameterIn
	if ld < MinDevelopmentIn {
		ld = MinDevelopmentIn
	}
	res.DevelopmentIn = units.RoundArea(ld)

	res.Lines = []RebarLine{vertical, spiral}
	perFooting := vertical.WeightLb + spiral.WeightLb
	total := perFooting * float64(numFootings)
	res.TotalWeightLb = units.RoundForce(total)
	res.TotalWeightWithWaste = units.RoundForce(total * WasteFactor)
	res.Assumptions = append(res.Assumptions, fmt.Sprintf(
		"order weight includes a %.0f%% cutting and lap waste allowance", (WasteFactor-1)*100))

	return res, nil
}
