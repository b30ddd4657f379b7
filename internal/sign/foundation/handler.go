package foundation

import (
	"encoding/json"
	"net/http"

	"github.com/EAGLE605/SignX-sub007/internal/sign/envelope"
)

type Handler struct{}

func (h *Handler) Footing(w http.ResponseWriter, r *http.Request) {
	var input FootingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := SolveFooting(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	env, err := envelope.New("footing.solve", res, input, envelope.Options{
		Assumptions: res.Assumptions,
		Warnings:    res.Warnings,
		CodeRefs:    res.CodeRefs,
		Intermediates: map[string]float64{
			"moment_per_pole_kipft": res.MomentPerPoleKipFt,
			"depth_ft":              res.DepthFt,
		},
	})
	if err != nil {
		http.Error(w, "Envelope error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}

func (h *Handler) Baseplate(w http.ResponseWriter, r *http.Request) {
	var input BaseplateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CheckBaseplate(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	env, err := envelope.New("baseplate.checks", res, input, envelope.Options{
		Assumptions: res.Assumptions,
		Warnings:    res.Warnings,
		CodeRefs:    res.CodeRefs,
		Intermediates: map[string]float64{
			"plate_moment_kipin":     res.PlateMomentKipIn,
			"tension_per_anchor_kip": res.TensionPerAnchorKip,
		},
	})
	if err != nil {
		http.Error(w, "Envelope error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}

func (h *Handler) AutoPlate(w http.ResponseWriter, r *http.Request) {
	var input AutoPlateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := AutoPlate(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts := envelope.Options{Warnings: res.Warnings}
	if res.Checks != nil {
		opts.Assumptions = res.Checks.Assumptions
		opts.CodeRefs = res.Checks.CodeRefs
	}
	env, err := envelope.New("baseplate.auto", res, input, opts)
	if err != nil {
		http.Error(w, "Envelope error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}

func (h *Handler) Rebar(w http.ResponseWriter, r *http.Request) {
	var input RebarInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := ScheduleRebar(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	env, err := envelope.New("rebar.schedule", res, input, envelope.Options{
		Assumptions: res.Assumptions,
		CodeRefs:    res.CodeRefs,
		Intermediates: map[string]float64{
			"development_length_in": res.DevelopmentIn,
			"total_weight_lb":       res.TotalWeightLb,
		},
	})
	if err != nil {
		http.Error(w, "Envelope error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}
