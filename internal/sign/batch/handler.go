package batch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/EAGLE605/SignX-sub007/internal/sign/envelope"
	"github.com/EAGLE605/SignX-sub007/internal/sign/loads"
	"github.com/EAGLE605/SignX-sub007/internal/sign/wind"
)

type Handler struct {
	Runner *Runner
}

func NewHandler(runner *Runner) *Handler {
	return &Handler{Runner: runner}
}

func (h *Handler) Solve(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Runner.Solve(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	env, err := envelope.New("batch.solve", res, input, envelope.Options{
		Intermediates: map[string]float64{"count": float64(res.Count)},
	})
	if err != nil {
		http.Error(w, "Envelope error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}

// ImportCabinets reads a cabinet takeoff workbook and derives base loads.
// Site parameters come from form fields; each data row is one cabinet:
// width_ft, height_ft, offset_ft, then optional depth_in and weight_psf.
// Malformed rows are skipped and counted rather than failing the import.
func (h *Handler) ImportCabinets(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	site, derr := siteFromForm(r)
	if derr != nil {
		http.Error(w, derr.Error(), http.StatusBadRequest)
		return
	}
	numPoles := 1
	if v := r.FormValue("num_poles"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			numPoles = n
		}
	}

	var cabinets []loads.Cabinet
	skipped := 0
	for i := 1; i < len(rows); i++ {
		cab, err := parseCabinetRow(rows[i])
		if err != nil {
			skipped++
			continue
		}
		cabinets = append(cabinets, cab)
	}
	if len(cabinets) == 0 {
		http.Error(w, "No usable cabinet rows", http.StatusBadRequest)
		return
	}

	input := loads.Input{Site: site, Cabinets: cabinets, NumPoles: numPoles}
	res, err := loads.Derive(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	warnings := append([]string{}, res.Warnings...)
	if skipped > 0 {
		warnings = append(warnings, fmt.Sprintf("warning: skipped %d malformed cabinet rows", skipped))
	}
	env, err := envelope.New("loads.derive", res, input, envelope.Options{
		Assumptions: res.Assumptions,
		Warnings:    warnings,
		CodeRefs:    loads.CodeRefs,
		Intermediates: map[string]float64{
			"cabinets_imported": float64(len(cabinets)),
			"rows_skipped":      float64(skipped),
		},
	})
	if err != nil {
		http.Error(w, "Envelope error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}

func siteFromForm(r *http.Request) (loads.Site, error) {
	speed, err := toFloat(r.FormValue("wind_speed_mph"))
	if err != nil {
		return loads.Site{}, fmt.Errorf("wind_speed_mph form field required")
	}
	exposure := r.FormValue("exposure")
	if exposure == "" {
		return loads.Site{}, fmt.Errorf("exposure form field required")
	}
	risk := r.FormValue("risk_category")
	if risk == "" {
		risk = "II"
	}
	site := loads.Site{
		WindSpeedMph: speed,
		Exposure:     wind.Exposure(exposure),
		RiskCategory: wind.RiskCategory(risk),
	}
	if v := r.FormValue("snow_load_psf"); v != "" {
		if snow, err := toFloat(v); err == nil {
			site.SnowLoadPsf = snow
		}
	}
	return site, nil
}

// parseCabinetRow expects width_ft, height_ft, offset_ft, depth_in(optional),
// weight_psf(optional).
func parseCabinetRow(row []string) (loads.Cabinet, error) {
	if len(row) < 3 {
		return loads.Cabinet{}, fmt.Errorf("bad row")
	}
	width, err := toFloat(row[0])
	if err != nil {
		return loads.Cabinet{}, err
	}
	height, err := toFloat(row[1])
	if err != nil {
		return loads.Cabinet{}, err
	}
	offset, err := toFloat(row[2])
	if err != nil {
		return loads.Cabinet{}, err
	}
	cab := loads.Cabinet{WidthFt: width, HeightFt: height, OffsetFt: offset}
	if len(row) > 3 && row[3] != "" {
		if depth, err := toFloat(row[3]); err == nil {
			cab.DepthIn = depth
		}
	}
	if len(row) > 4 && row[4] != "" {
		if weight, err := toFloat(row[4]); err == nil {
			cab.WeightPsf = weight
		}
	}
	return cab, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", "")), 64)
}
