package envelope

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// HashPrecision is the decimal precision floats are normalized to before
// canonical serialization, so equal-within-rounding results hash equally.
const HashPrecision = 3

// FieldError ties a validation failure to the input field that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Trace is the audit companion of a result: which solver produced it, at
// which version, citing which code provisions, through which intermediate
// values. It never carries wall-clock time; storage layers timestamp rows.
type Trace struct {
	Solver        string             `json:"solver"`
	Version       string             `json:"version"`
	CodeRefs      []string           `json:"code_references,omitempty"`
	Intermediates map[string]float64 `json:"intermediates,omitempty"`
	Seed          int64              `json:"seed"`
}

// Envelope wraps a solver result for PE review and idempotent persistence.
// Build one with New and treat it as immutable afterwards; ContentHash is a
// deterministic function of the result and its governing inputs.
type Envelope struct {
	Result      any          `json:"result"`
	Assumptions []string     `json:"assumptions"`
	Warnings    []string     `json:"warnings"`
	Errors      []FieldError `json:"errors"`
	Confidence  float64      `json:"confidence"`
	ContentHash string       `json:"content_hash"`
	Trace       Trace        `json:"trace"`
}

// Options carries the optional envelope fields.
type Options struct {
	Assumptions   []string
	Warnings      []string
	Errors        []FieldError
	CodeRefs      []string
	Intermediates map[string]float64
	Seed          int64
}

// New builds an envelope around a solver result. Confidence is scored from
// the assumptions, warnings, and error messages; the content hash covers the
// canonicalized result and governing inputs.
func New(solver string, result any, governingInputs any, opts Options) (Envelope, error) {
	hash, err := ContentHash(result, governingInputs)
	if err != nil {
		return Envelope{}, fmt.Errorf("content hash: %w", err)
	}
	assumptions := opts.Assumptions
	if assumptions == nil {
		assumptions = []string{}
	}
	warnings := opts.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	fieldErrors := opts.Errors
	if fieldErrors == nil {
		fieldErrors = []FieldError{}
	}

	notes := make([]string, 0, len(assumptions)+len(warnings)+len(fieldErrors))
	notes = append(notes, assumptions...)
	notes = append(notes, warnings...)
	for _, fe := range fieldErrors {
		notes = append(notes, fe.Message)
	}

	return Envelope{
		Result:      result,
		Assumptions: assumptions,
		Warnings:    warnings,
		Errors:      fieldErrors,
		Confidence:  Confidence(notes),
		ContentHash: hash,
		Trace: Trace{
			Solver:        solver,
			Version:       Version(solver),
			CodeRefs:      opts.CodeRefs,
			Intermediates: opts.Intermediates,
			Seed:          opts.Seed,
		},
	}, nil
}

// Confidence starts at 1.0 and is reduced per note by the first matching
// keyword: abstain/cannot solve -0.5, no feasible -0.4, fail -0.3, request
// engineering -0.3, warning -0.1. Clamped to [0, 1].
func Confidence(notes []string) float64 {
	confidence := 1.0
	for _, note := range notes {
		n := strings.ToLower(note)
		switch {
		case strings.Contains(n, "abstain") || strings.Contains(n, "cannot solve"):
			confidence -= 0.5
		case strings.Contains(n, "no feasible"):
			confidence -= 0.4
		case strings.Contains(n, "fail"):
			confidence -= 0.3
		case strings.Contains(n, "request engineering"):
			confidence -= 0.3
		case strings.Contains(n, "warning"):
			confidence -= 0.1
		}
	}
	return math.Max(0.0, math.Min(1.0, confidence))
}

// ContentHash is SHA-256 over the canonical JSON of {result, inputs}.
// Canonical form round-trips through generic JSON values so struct field
// order cannot matter (object keys serialize sorted) and rounds every float
// to HashPrecision decimals.
func ContentHash(result any, inputs any) (string, error) {
	payload := map[string]any{
		"result": result,
		"inputs": inputs,
	}
	canonical, err := canonicalize(payload)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(canonical)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// canonicalize converts v to generic JSON values with floats rounded.
func canonicalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return nil, err
	}
	return roundFloats(generic), nil
}

func roundFloats(v any) any {
	switch t := v.(type) {
	case float64:
		p := math.Pow(10, HashPrecision)
		return math.Round(t*p) / p
	case map[string]any:
		for k, val := range t {
			t[k] = roundFloats(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = roundFloats(val)
		}
		return t
	default:
		return v
	}
}
