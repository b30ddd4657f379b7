package report

import (
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/EAGLE605/SignX-sub007/internal/sign/check"
	"github.com/EAGLE605/SignX-sub007/internal/sign/foundation"
	"github.com/EAGLE605/SignX-sub007/internal/sign/loads"
	"github.com/EAGLE605/SignX-sub007/internal/sign/pole"
)

// Input assembles the solved pieces of one sign design into a calculation
// package. Sections are optional; only what is present is rendered. DateLine
// is supplied by the caller so the document body stays reproducible.
type Input struct {
	Project     string `json:"project"`
	Engineer    string `json:"engineer"`
	Title       string `json:"title"`
	Notes       string `json:"notes,omitempty"`
	DateLine    string `json:"date_line,omitempty"`
	ContentHash string `json:"content_hash,omitempty"`

	Loads     *loads.Derivation           `json:"loads,omitempty"`
	Pole      *pole.Result                `json:"pole,omitempty"`
	Section   string                      `json:"section,omitempty"`
	Footing   *foundation.FootingResult   `json:"footing,omitempty"`
	Baseplate *foundation.BaseplateResult `json:"baseplate,omitempty"`
	Rebar     *foundation.RebarResult     `json:"rebar,omitempty"`
}

// Build renders the calculation package. The output depends only on the
// input, so two identical designs produce byte-identical documents.
func Build(in Input) *gofpdf.Fpdf {
	title := in.Title
	if title == "" {
		title = "Sign Structure Calculation Package"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// The metadata date is pinned; regenerated archives must hash the same.
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", in.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Engineer: %s", in.Engineer))
	pdf.Ln(6)
	if in.DateLine != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Date: %s", in.DateLine))
		pdf.Ln(6)
	}
	if in.ContentHash != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Result hash: %s", in.ContentHash))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	if in.Loads != nil {
		sectionTitle(pdf, "Design Loads")
		line(pdf, fmt.Sprintf("Sign area: %.2f sq ft at centroid %.2f ft", in.Loads.AreaFt2, in.Loads.ZCgFt))
		line(pdf, fmt.Sprintf("Dead load: %.1f lb", in.Loads.WeightLb))
		line(pdf, fmt.Sprintf("Base shear: %.1f lb", in.Loads.BaseShearLb))
		line(pdf, fmt.Sprintf("Service moment: %.2f kip-ft, ultimate Mu: %.2f kip-ft",
			in.Loads.ServiceMomentKipFt, in.Loads.UltimateMomentKipFt))
		notesList(pdf, in.Loads.Assumptions)
		pdf.Ln(4)
	}

	if in.Pole != nil {
		heading := "Pole Analysis"
		if in.Section != "" {
			heading = fmt.Sprintf("Pole Analysis - %s", in.Section)
		}
		sectionTitle(pdf, heading)
		line(pdf, fmt.Sprintf("Governing combination: %s", in.Pole.GoverningCombo))
		line(pdf, fmt.Sprintf("Design moment: %.2f kip-ft", in.Pole.MomentKipFt))
		checkTable(pdf, in.Pole.Checks)
		line(pdf, verdict(in.Pole.Approved))
		pdf.Ln(4)
	}

	if in.Footing != nil {
		sectionTitle(pdf, "Direct-Burial Footing")
		line(pdf, fmt.Sprintf("%d x %.2f ft %s footing, embedment %.2f ft",
			in.Footing.NumPoles, in.Footing.DiameterFt, in.Footing.Shape, in.Footing.DepthFt))
		line(pdf, fmt.Sprintf("Concrete: %.2f cu yd per footing, %.2f cu yd total",
			in.Footing.ConcretePerFootingCuYd, in.Footing.ConcreteTotalCuYd))
		notesList(pdf, in.Footing.Assumptions)
		pdf.Ln(4)
	}

	if in.Baseplate != nil {
		sectionTitle(pdf, "Baseplate and Anchorage")
		checkTable(pdf, in.Baseplate.Checks)
		line(pdf, verdict(in.Baseplate.Approved))
		for _, s := range in.Baseplate.Suggestions {
			line(pdf, "Suggestion: "+s)
		}
		pdf.Ln(4)
	}

	if in.Rebar != nil {
		sectionTitle(pdf, "Pier Reinforcement")
		for _, l := range in.Rebar.Lines {
			line(pdf, fmt.Sprintf("%s: %d x %s, %.2f ft each, %.1f lb",
				l.Mark, l.Count, l.Size, l.LengthFt, l.WeightLb))
		}
		line(pdf, fmt.Sprintf("Order weight with waste: %.1f lb", in.Rebar.TotalWeightWithWaste))
		pdf.Ln(4)
	}

	if in.Notes != "" {
		sectionTitle(pdf, "Notes")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, in.Notes, "", "L", false)
	}

	return pdf
}

func sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, s)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}

func line(pdf *gofpdf.Fpdf, s string) {
	pdf.Cell(0, 5, s)
	pdf.Ln(5)
}

func notesList(pdf *gofpdf.Fpdf, notes []string) {
	for _, n := range notes {
		line(pdf, "- "+n)
	}
}

func verdict(approved bool) string {
	if approved {
		return "Result: all checks pass"
	}
	return "Result: NOT approved; see failing checks above"
}

func checkTable(pdf *gofpdf.Fpdf, checks check.Set) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(50, 6, "Check", "1", 0, "L", false, 0, "")
	pdf.CellFormat(28, 6, "Demand", "1", 0, "R", false, 0, "")
	pdf.CellFormat(28, 6, "Capacity", "1", 0, "R", false, 0, "")
	pdf.CellFormat(22, 6, "Unit", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 6, "Util", "1", 0, "R", false, 0, "")
	pdf.CellFormat(22, 6, "Status", "1", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, c := range checks {
		status := "PASS"
		if !c.Pass {
			status = "FAIL"
		}
		pdf.CellFormat(50, 6, c.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 6, fmt.Sprintf("%.2f", c.Demand), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 6, fmt.Sprintf("%.2f", c.Capacity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, c.Unit, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.2f", c.Utilization()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, status, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(2)
}
