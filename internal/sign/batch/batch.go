package batch

import (
	"encoding/json"
	"fmt"

	"github.com/EAGLE605/SignX-sub007/internal/sign/catalog"
	"github.com/EAGLE605/SignX-sub007/internal/sign/envelope"
	"github.com/EAGLE605/SignX-sub007/internal/sign/foundation"
	"github.com/EAGLE605/SignX-sub007/internal/sign/loads"
	"github.com/EAGLE605/SignX-sub007/internal/sign/pole"
	"github.com/EAGLE605/SignX-sub007/internal/sign/wind"
)

// Request is one solver invocation inside a batch: the registry name of the
// solver plus its raw JSON input.
type Request struct {
	Solver  string          `json:"solver"`
	Payload json.RawMessage `json:"payload"`
}

// Input is a batch of requests solved in order.
type Input struct {
	Items []Request `json:"items"`
}

// Result carries one envelope per request, in request order.
type Result struct {
	Count     int                 `json:"count"`
	Envelopes []envelope.Envelope `json:"envelopes"`
}

// Solvers lists the dispatchable solver names; job submission validates
// against this set so a typo fails at enqueue time, not in the worker.
var Solvers = map[string]bool{
	"wind.pressure":    true,
	"wind.force":       true,
	"loads.derive":     true,
	"pole.analyze":     true,
	"pole.cantilever":  true,
	"pole.double":      true,
	"pole.autodesign":  true,
	"catalog.filter":   true,
	"footing.solve":    true,
	"baseplate.checks": true,
	"baseplate.auto":   true,
	"rebar.schedule":   true,
}

// Runner dispatches batch items to the pure solvers. Selection solvers read
// the shared catalog.
type Runner struct {
	Catalog *catalog.Catalog
}

func NewRunner(cat *catalog.Catalog) *Runner {
	return &Runner{Catalog: cat}
}

// Solve runs the items sequentially and stops at the first error: a batch is
// one engineering submission, and a half-solved submission is worse than a
// rejected one. Results computed before the failure are discarded.
func (b *Runner) Solve(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	out := Result{Envelopes: make([]envelope.Envelope, 0, len(in.Items))}
	for i, item := range in.Items {
		env, err := b.solveOne(item)
		if err != nil {
			return Result{}, fmt.Errorf("item %d (%s): %w", i, item.Solver, err)
		}
		out.Envelopes = append(out.Envelopes, env)
	}
	out.Count = len(out.Envelopes)
	return out, nil
}

func (b *Runner) solveOne(item Request) (envelope.Envelope, error) {
	switch item.Solver {
	case "wind.pressure":
		var in wind.PressureInput
		if err := json.Unmarshal(item.Payload, &in); err != nil {
			return envelope.Envelope{}, fmt.Errorf("decode payload: %w", err)
		}
		res, err := wind.VelocityPressure(in)
		if err != nil {
			return envelope.Envelope{}, err
		}
		return envelope.New(item.Solver, res, in, envelope.Options{
			CodeRefs:      res.CodeRefs,
			Intermediates: map[string]float64{"kz": res.Kz, "iw": res.ImportanceIw},
		})

	case "wind.force":
		var in wind.ForceInput
		if err := json.Unmarshal(item.Payload, &in); err != nil {
			return envelope.Envelope{}, fmt.Errorf("decode payload: %w", err)
		}
		res, err := wind.DesignForce(in)
		if err != nil {
			return envelope.Envelope{}, err
		}
		return envelope.New(item.Solver, res, in, envelope.Options{CodeRefs: res.Pressure.CodeRefs})

	case "loads.derive":
		var in loads.Input
		if err := json.Unmarshal(item.Payload, &in); err != nil {
			return envelope.Envelope{}, fmt.Errorf("decode payload: %w", err)
		}
		res, err := loads.Derive(in)
		if err != nil {
			return envelope.Envelope{}, err
		}
		return envelope.New(item.Solver, res, in, envelope.Options{
			Assumptions: res.Assumptions,
			Warnings:    res.Warnings,
			CodeRefs:    loads.CodeRefs,
			Intermediates: map[string]float64{
				"service_moment_kipft": res.ServiceMomentKipFt,
				"wind_load_factor":     loads.WindLoadFactorLRFD,
			},
		})

	case "pole.analyze":
		var in pole.Input
		if err := json.Unmarshal(item.Payload, &in); err != nil {
			return envelope.Envelope{}, fmt.Errorf("decode payload: %w", err)
		}
		res, err := pole.Analyze(in)
		if err != nil {
			return envelope.Envelope{}, err
		}
		return envelope.New(item.Solver, res, in, envelope.Options{
			Warnings: res.Warnings,
			CodeRefs: res.CodeRefs,
			Intermediates: map[string]float64{
				"design_moment_kipft": res.MomentKipFt,
				"overturning_sf":      res.OverturningSF,
			},
		})

	case "pole.cantilever":
		var in pole.CantileverInput
		if err := json.Unmarshal(item.Payload, &in); err != nil {
			return envelope.Envelope{}, fmt.Errorf("decode payload: %w", err)
		}
		res, err := pole.AnalyzeCantilever(in)
		if err != nil {
			return envelope.Envelope{}, err
		}
		return envelope.New(item.Solver, res, in, envelope.Options{
			Assumptions: res.Assumptions,
			Warnings:    res.Warnings,
			CodeRefs:    res.CodeRefs,
		})

	case "pole.double":
		var in pole.DoubleInput
		if err := json.Unmarshal(item.Payload, &in); err != nil {
			return envelope.Envelope{}, fmt.Errorf("decode payload: %w", err)
		}
		res, err := pole.AnalyzeDouble(in)
		if err != nil {
			return envelope.Envelope{}, err
		}
		return envelope.New(item.Solver, res, in, envelope.Options{
			Assumptions: res.Assumptions,
			Warnings:    res.Warnings,
			CodeRefs:    res.CodeRefs,
		})

	case "catalog.filter":
		var in pole.SelectInput
		if err := json.Unmarshal(item.Payload, &in); err != nil {
			return envelope.Envelope{}, fmt.Errorf("decode payload: %w", err)
		}
		res, err := pole.Select(b.Catalog, in)
		if err != nil {
			return envelope.Envelope{}, err
		}
		return envelope.New(item.Solver, res, in, envelope.Options{
			Warnings: res.Warnings,
			CodeRefs: []string{"AISC 360-22 F1", "AISC Shapes Database v16.0"},
			Seed:     in.Filter.Seed,
		})

	case "pole.autodesign":
		var in pole.AutoDesignInput
		if err := json.Unmarshal(item.Payload, &in); err != nil {
			return envelope.Envelope{}, fmt.Errorf("decode payload: %w", err)
		}
		res, err := pole.AutoDesign(b.Catalog, in)
		if err != nil {
			return envelope.Envelope{}, err
		}
		opts := envelope.Options{
			Warnings: res.Warnings,
			CodeRefs: []string{"AISC 360-22 F1", "IBC 2024 Section 1605.1 (ASD load combinations)"},
			Seed:     in.Filter.Seed,
		}
		if res.Analysis != nil {
			opts.Warnings = append(opts.Warnings, res.Analysis.Warnings...)
		}
		return envelope.New(item.Solver, res, in, opts)

	case "baseplate.auto":
		var in foundation.AutoPlateInput
		if err := json.Unmarshal(item.Payload, &in); err != nil {
			return envelope.Envelope{}, fmt.Errorf("decode payload: %w", err)
		}
		res, err := foundation.AutoPlate(in)
		if err != nil {
			return envelope.Envelope{}, err
		}
		opts := envelope.Options{Warnings: res.Warnings}
		if res.Checks != nil {
			opts.Assumptions = res.Checks.Assumptions
			opts.CodeRefs = res.Checks.CodeRefs
		}
		return envelope.New(item.Solver, res, in, opts)

	case "footing.solve":
		var in foundation.FootingInput
		if err := json.Unmarshal(item.Payload, &in); err != nil {
			return envelope.Envelope{}, fmt.Errorf("decode payload: %w", err)
		}
		res, err := foundation.SolveFooting(in)
		if err != nil {
			return envelope.Envelope{}, err
		}
		return envelope.New(item.Solver, res, in, envelope.Options{
			Assumptions: res.Assumptions,
			Warnings:    res.Warnings,
			CodeRefs:    res.CodeRefs,
			Intermediates: map[string]float64{
				"moment_per_pole_kipft": res.MomentPerPoleKipFt,
				"depth_ft":              res.DepthFt,
			},
		})

	case "baseplate.checks":
		var in foundation.BaseplateInput
		if err := json.Unmarshal(item.Payload, &in); err != nil {
			return envelope.Envelope{}, fmt.Errorf("decode payload: %w", err)
		}
		res, err := foundation.CheckBaseplate(in)
		if err != nil {
			return envelope.Envelope{}, err
		}
		return envelope.New(item.Solver, res, in, envelope.Options{
			Assumptions: res.Assumptions,
			Warnings:    res.Warnings,
			CodeRefs:    res.CodeRefs,
		})

	case "rebar.schedule":
		var in foundation.RebarInput
		if err := json.Unmarshal(item.Payload, &in); err != nil {
			return envelope.Envelope{}, fmt.Errorf("decode payload: %w", err)
		}
		res, err := foundation.ScheduleRebar(in)
		if err != nil {
			return envelope.Envelope{}, err
		}
		return envelope.New(item.Solver, res, in, envelope.Options{
			Assumptions: res.Assumptions,
			CodeRefs:    res.CodeRefs,
		})

	default:
		return envelope.Envelope{}, fmt.Errorf("unknown solver %q", item.Solver)
	}
}
