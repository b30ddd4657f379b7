package report

import (
	"encoding/json"
	"net/http"
	"time"
)

type Handler struct{}

// Generate renders the calculation package as a PDF download. The date line
// defaults to today; callers regenerating an archived design pass the
// original date to reproduce the document exactly.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.DateLine == "" {
		input.DateLine = time.Now().Format("2006-01-02")
	}

	pdf := Build(input)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"calculation-package.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}
