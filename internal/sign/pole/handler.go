package pole

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/EAGLE605/SignX-sub007/internal/sign/catalog"
	"github.com/EAGLE605/SignX-sub007/internal/sign/envelope"
)

// Handler serves the pole solvers. Selection endpoints read the shared
// immutable catalog.
type Handler struct {
	Catalog *catalog.Catalog
}

func NewHandler(cat *catalog.Catalog) *Handler {
	return &Handler{Catalog: cat}
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Analyze(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	env, err := envelope.New("pole.analyze", res, input, envelope.Options{
		Warnings: withFailureNote(res),
		CodeRefs: res.CodeRefs,
		Intermediates: map[string]float64{
			"design_moment_kipft": res.MomentKipFt,
			"overturning_sf":      res.OverturningSF,
			"slenderness_ratio":   res.SlendernessRatio,
		},
	})
	if err != nil {
		http.Error(w, "Envelope error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}

func (h *Handler) Cantilever(w http.ResponseWriter, r *http.Request) {
	var input CantileverInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := AnalyzeCantilever(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	env, err := envelope.New("pole.cantilever", res, input, envelope.Options{
		Assumptions: res.Assumptions,
		Warnings:    res.Warnings,
		CodeRefs:    res.CodeRefs,
		Intermediates: map[string]float64{
			"resultant_kipft":     res.ResultantKipFt,
			"torsion_kipft":       res.TorsionKipFt,
			"fatigue_life_factor": res.FatigueLifeFactor,
		},
	})
	if err != nil {
		http.Error(w, "Envelope error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}

func (h *Handler) Double(w http.ResponseWriter, r *http.Request) {
	var input DoubleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := AnalyzeDouble(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	env, err := envelope.New("pole.double", res, input, envelope.Options{
		Assumptions: res.Assumptions,
		Warnings:    res.Warnings,
		CodeRefs:    res.CodeRefs,
		Intermediates: map[string]float64{
			"wind_per_pole_lb": res.WindPerPoleLb,
			"stability_ratio":  res.StabilityRatio,
		},
	})
	if err != nil {
		http.Error(w, "Envelope error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}

func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	var input SelectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Select(h.Catalog, input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	env, err := envelope.New("catalog.filter", res, input, envelope.Options{
		Warnings: res.Warnings,
		CodeRefs: []string{"AISC 360-22 F1", "AISC Shapes Database v16.0"},
		Seed:     input.Filter.Seed,
	})
	if err != nil {
		http.Error(w, "Envelope error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}

func (h *Handler) AutoDesign(w http.ResponseWriter, r *http.Request) {
	var input AutoDesignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := AutoDesign(h.Catalog, input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts := envelope.Options{
		Warnings: res.Warnings,
		CodeRefs: []string{"AISC 360-22 F1", "IBC 2024 Section 1605.1 (ASD load combinations)"},
		Seed:     input.Filter.Seed,
	}
	if res.Analysis != nil {
		opts.Warnings = append(opts.Warnings, res.Analysis.Warnings...)
		opts.Intermediates = map[string]float64{
			"design_moment_kipft": res.Analysis.MomentKipFt,
			"overturning_sf":      res.Analysis.OverturningSF,
		}
	}
	env, err := envelope.New("pole.autodesign", res, input, opts)
	if err != nil {
		http.Error(w, "Envelope error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}

func withFailureNote(res Result) []string {
	notes := append([]string{}, res.Warnings...)
	if f, ok := res.Checks.FirstFailure(); ok {
		notes = append(notes, fmt.Sprintf("%s check failed: demand %.2f %s exceeds capacity %.2f %s",
			f.Name, f.Demand, f.Unit, f.Capacity, f.Unit))
	}
	return notes
}
