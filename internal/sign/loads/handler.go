package loads

import (
	"encoding/json"
	"net/http"

	"github.com/EAGLE605/SignX-sub007/internal/sign/envelope"
)

type Handler struct{}

func (h *Handler) Derive(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Derive(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	env, err := envelope.New("loads.derive", res, input, envelope.Options{
		Assumptions: res.Assumptions,
		Warnings:    res.Warnings,
		CodeRefs:    CodeRefs,
		Intermediates: map[string]float64{
			"service_moment_kipft": res.ServiceMomentKipFt,
			"wind_load_factor":     WindLoadFactorLRFD,
		},
	})
	if err != nil {
		http.Error(w, "Envelope error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}
