package loads

import (
	"fmt"

	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
	"github.com/EAGLE605/SignX-sub007/internal/sign/wind"
)

// WindLoadFactorLRFD is the IBC 2024 strength-design load factor on wind.
const WindLoadFactorLRFD = 1.6

// Cabinet defaults applied when the optional fields are zero.
const (
	DefaultCabinetDepthIn   = 12.0
	DefaultCabinetWeightPsf = 10.0
)

// MaxPoles bounds the supported support count for the equal-split policy.
const MaxPoles = 4

// CodeRefs are the governing references for load derivation.
var CodeRefs = []string{
	"ASCE 7-22 Chapter 29 (wind on other structures)",
	"IBC 2024 Section 1605 (load combinations)",
}

// Site carries the already-resolved site hazard parameters. Values are
// range-checked here even though the resolution layer validates them too.
type Site struct {
	WindSpeedMph float64           `json:"wind_speed_mph"`
	Exposure     wind.Exposure     `json:"exposure"`
	RiskCategory wind.RiskCategory `json:"risk_category"`
	SnowLoadPsf  float64           `json:"snow_load_psf,omitempty"`
	Kzt          float64           `json:"kzt,omitempty"`
	Ke           float64           `json:"ke,omitempty"`
}

// Cabinet is one sign cabinet. OffsetFt is the height of the cabinet bottom
// above grade; cabinets are an ordered sequence and the order is preserved
// in centroid bookkeeping.
type Cabinet struct {
	WidthFt   float64 `json:"width_ft"`
	HeightFt  float64 `json:"height_ft"`
	DepthIn   float64 `json:"depth_in,omitempty"`
	WeightPsf float64 `json:"weight_psf,omitempty"`
	OffsetFt  float64 `json:"offset_ft"`
}

// Input is one load-derivation request.
type Input struct {
	Site     Site      `json:"site"`
	Cabinets []Cabinet `json:"cabinets"`
	NumPoles int       `json:"num_poles,omitempty"`
}

// Derivation is the resolved base loading. Immutable once computed.
type Derivation struct {
	AreaFt2             float64  `json:"area_ft2"`
	ZCgFt               float64  `json:"z_cg_ft"`
	WeightLb            float64  `json:"weight_lb"`
	BaseShearLb         float64  `json:"base_shear_lb"`
	ServiceMomentKipFt  float64  `json:"service_moment_kipft"`
	UltimateMomentKipFt float64  `json:"mu_kipft"`
	MomentPerPoleKipFt  float64  `json:"mu_per_pole_kipft"`
	NumPoles            int      `json:"num_poles"`
	Assumptions         []string `json:"assumptions"`
	Warnings            []string `json:"warnings"`
}

// Derive resolves cabinet geometry and site wind into base loads: summed
// projected area, area-weighted centroid, dead weight, and base shear and
// overturning moment from per-cabinet band pressures. An empty cabinet list
// is a valid zero-load result so designs can be built up incrementally.
func Derive(in Input) (Derivation, error) {
	numPoles := in.NumPoles
	if numPoles == 0 {
		numPoles = 1
	}
	if numPoles < 1 || numPoles > MaxPoles {
		return Derivation{}, &units.InvalidInputError{
			Param: "num_poles", Value: float64(in.NumPoles),
			Valid: fmt.Sprintf("[1, %d]", MaxPoles), Context: "supports sharing the base moment",
		}
	}
	if err := units.InRange("snow_load_psf", in.Site.SnowLoadPsf, 0, 300,
		"ground snow load", "ASCE 7-22 Figure 7.2-1"); err != nil {
		return Derivation{}, err
	}

	d := Derivation{NumPoles: numPoles, Assumptions: []string{}, Warnings: []string{}}
	if numPoles > 1 {
		d.Assumptions = append(d.Assumptions,
			fmt.Sprintf("multi-pole split: equal 1/%d of base moment per pole (not stiffness-weighted)", numPoles))
	}
	if in.Site.SnowLoadPsf > 0 {
		d.Assumptions = append(d.Assumptions, fmt.Sprintf(
			"snow_load=%.1f psf excluded from dead load: vertical panels carry no design snow", in.Site.SnowLoadPsf))
	}
	if len(in.Cabinets) == 0 {
		d.Assumptions = append(d.Assumptions, "no cabinets provided; zero-load derivation")
		return d, nil
	}

	var (
		areaSum     float64
		momentArea  float64 // sum of area_i * z_i for the centroid
		weightSum   float64
		shearSum    float64
		baseMoment  float64 // lb-ft
		flooredBand bool
		defaulted   bool
	)
	for i, c := range in.Cabinets {
		name := fmt.Sprintf("cabinets[%d]", i)
		if err := units.Positive(name+".width_ft", c.WidthFt, "cabinet width", ""); err != nil {
			return Derivation{}, err
		}
		if err := units.Positive(name+".height_ft", c.HeightFt, "cabinet height", ""); err != nil {
			return Derivation{}, err
		}
		if err := units.NonNegative(name+".offset_ft", c.OffsetFt, "cabinet bottom height above grade", ""); err != nil {
			return Derivation{}, err
		}
		depth := c.DepthIn
		weightPsf := c.WeightPsf
		if depth == 0 {
			depth = DefaultCabinetDepthIn
			defaulted = true
		}
		if weightPsf == 0 {
			weightPsf = DefaultCabinetWeightPsf
			defaulted = true
		}
		if err := units.Positive(name+".depth_in", depth, "cabinet depth", ""); err != nil {
			return Derivation{}, err
		}
		if err := units.Positive(name+".weight_psf", weightPsf, "cabinet weight per face area", ""); err != nil {
			return Derivation{}, err
		}

		area := c.WidthFt * c.HeightFt
		centroid := c.OffsetFt + c.HeightFt/2
		bandHeight := centroid
		if bandHeight < wind.MinHeightFt {
			bandHeight = wind.MinHeightFt
			flooredBand = true
		}
		pr, err := wind.VelocityPressure(wind.PressureInput{
			HeightFt:     bandHeight,
			Exposure:     in.Site.Exposure,
			RiskCategory: in.Site.RiskCategory,
			WindSpeedMph: in.Site.WindSpeedMph,
			Kzt:          in.Site.Kzt,
			Ke:           in.Site.Ke,
		})
		if err != nil {
			return Derivation{}, err
		}
		force := pr.DesignPressurePsf * area

		areaSum += area
		momentArea += area * centroid
		weightSum += area * weightPsf
		shearSum += force
		baseMoment += force * centroid
	}

	if defaulted {
		d.Assumptions = append(d.Assumptions, fmt.Sprintf(
			"cabinet depth/weight defaults applied where unset: %.0f in, %.0f psf", DefaultCabinetDepthIn, DefaultCabinetWeightPsf))
	}
	if flooredBand {
		d.Assumptions = append(d.Assumptions, fmt.Sprintf(
			"Kz height floor %.0f ft applied to low cabinet bands", wind.MinHeightFt))
	}

	service := baseMoment / units.LbfPerKip
	if service <= 0 {
		return Derivation{}, &units.PhysicalImpossibilityError{
			Quantity: "service_moment_kipft", Value: service,
			Detail: "cabinets are present but the derived base moment is not positive",
		}
	}
	ultimate := WindLoadFactorLRFD * service

	d.AreaFt2 = units.RoundArea(areaSum)
	d.ZCgFt = units.RoundArea(momentArea / areaSum)
	d.WeightLb = units.RoundForce(weightSum)
	d.BaseShearLb = units.RoundForce(shearSum)
	d.ServiceMomentKipFt = units.RoundMoment(service)
	d.UltimateMomentKipFt = units.RoundMoment(ultimate)
	d.MomentPerPoleKipFt = units.RoundMoment(ultimate / float64(numPoles))
	return d, nil
}
