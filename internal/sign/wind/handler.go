package wind

import (
	"encoding/json"
	"net/http"

	"github.com/EAGLE605/SignX-sub007/internal/sign/envelope"
)

type Handler struct{}

func (h *Handler) Pressure(w http.ResponseWriter, r *http.Request) {
	var input PressureInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := VelocityPressure(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	env, err := envelope.New("wind.pressure", res, input, envelope.Options{
		CodeRefs: res.CodeRefs,
		Intermediates: map[string]float64{
			"kz": res.Kz,
			"iw": res.ImportanceIw,
		},
	})
	if err != nil {
		http.Error(w, "Envelope error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}

func (h *Handler) Force(w http.ResponseWriter, r *http.Request) {
	var input ForceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := DesignForce(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	env, err := envelope.New("wind.force", res, input, envelope.Options{
		CodeRefs: res.Pressure.CodeRefs,
	})
	if err != nil {
		http.Error(w, "Envelope error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}
