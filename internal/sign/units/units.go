package units

import (
	"errors"
	"fmt"
	"math"
)

// Unit conversion constants.
const (
	InPerFt     = 12.0
	LbfPerKip   = 1000.0
	CuFtPerCuYd = 27.0
	PsiPerKsi   = 1000.0
)

// Rounding policy, decimal places. Every solver rounds through these so the
// precision of a reported quantity is defined in exactly one place.
const (
	AreaPlaces   = 2 // areas and lengths, 0.01
	ForcePlaces  = 1 // forces, 0.1
	MomentPlaces = 2 // moments, 0.01
	StressPlaces = 2
)

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func RoundArea(v float64) float64   { return Round(v, AreaPlaces) }
func RoundForce(v float64) float64  { return Round(v, ForcePlaces) }
func RoundMoment(v float64) float64 { return Round(v, MomentPlaces) }
func RoundStress(v float64) float64 { return Round(v, StressPlaces) }

// InvalidInputError reports an out-of-range or non-positive scalar with the
// engineering context needed to correct it. Always fatal; values are never
// coerced into range.
type InvalidInputError struct {
	Param   string
	Value   float64
	Valid   string
	Context string
	CodeRef string
}

func (e *InvalidInputError) Error() string {
	msg := fmt.Sprintf("invalid %s=%g: valid range %s", e.Param, e.Value, e.Valid)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	if e.CodeRef != "" {
		msg += " [" + e.CodeRef + "]"
	}
	return msg
}

// SectionNotFoundError is a reference-data lookup miss. Fatal; a zero-valued
// section must never substitute for a missing one.
type SectionNotFoundError struct {
	Designation string
	Grade       string
}

func (e *SectionNotFoundError) Error() string {
	if e.Grade != "" {
		return fmt.Sprintf("section %q not found for grade %q", e.Designation, e.Grade)
	}
	return fmt.Sprintf("section %q not found", e.Designation)
}

// PhysicalImpossibilityError marks a computed quantity that cannot occur
// physically (negative depth, zero modulus past validation). It indicates a
// defect upstream and is never clamped away.
type PhysicalImpossibilityError struct {
	Quantity string
	Value    float64
	Detail   string
}

func (e *PhysicalImpossibilityError) Error() string {
	msg := fmt.Sprintf("physically impossible %s=%g", e.Quantity, e.Value)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// IsInvalidInput reports whether err is (or wraps) an InvalidInputError.
func IsInvalidInput(err error) bool {
	var t *InvalidInputError
	return errors.As(err, &t)
}

// IsSectionNotFound reports whether err is (or wraps) a SectionNotFoundError.
func IsSectionNotFound(err error) bool {
	var t *SectionNotFoundError
	return errors.As(err, &t)
}

// Positive fails unless v > 0 and finite.
func Positive(param string, v float64, context, codeRef string) error {
	if err := Finite(param, v); err != nil {
		return err
	}
	if v <= 0 {
		return &InvalidInputError{Param: param, Value: v, Valid: "> 0", Context: context, CodeRef: codeRef}
	}
	return nil
}

// NonNegative fails unless v >= 0 and finite.
func NonNegative(param string, v float64, context, codeRef string) error {
	if err := Finite(param, v); err != nil {
		return err
	}
	if v < 0 {
		return &InvalidInputError{Param: param, Value: v, Valid: ">= 0", Context: context, CodeRef: codeRef}
	}
	return nil
}

// InRange fails unless lo <= v <= hi.
func InRange(param string, v, lo, hi float64, context, codeRef string) error {
	if err := Finite(param, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return &InvalidInputError{
			Param:   param,
			Value:   v,
			Valid:   fmt.Sprintf("[%g, %g]", lo, hi),
			Context: context,
			CodeRef: codeRef,
		}
	}
	return nil
}

// Finite rejects NaN and infinities before they can poison downstream math.
func Finite(param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidInputError{Param: param, Value: v, Valid: "finite"}
	}
	return nil
}
