package pole

import (
	"fmt"

	"github.com/EAGLE605/SignX-sub007/internal/sign/catalog"
	"github.com/EAGLE605/SignX-sub007/internal/sign/units"
)

// DefaultCandidateLimit bounds how many catalog sections an auto-design
// pass will fully analyze before giving up.
const DefaultCandidateLimit = 10

// SelectInput asks for catalog sections able to carry an ultimate moment.
type SelectInput struct {
	Filter catalog.DemandFilter `json:"filter"`
	Limit  int                  `json:"limit,omitempty"`
}

// SectionOption is one feasible section with its flexural utilization.
type SectionOption struct {
	Designation string         `json:"designation"`
	Family      catalog.Family `json:"family"`
	Grade       catalog.Grade  `json:"grade"`
	WeightPLF   float64        `json:"weight_plf"`
	PhiMnKipFt  float64        `json:"phi_mn_kipft"`
	Utilization float64        `json:"utilization"`
}

// SelectResult lists feasible sections lightest-first. Recommended is the
// first option, nil when nothing qualifies.
type SelectResult struct {
	Recommended *SectionOption  `json:"recommended,omitempty"`
	Options     []SectionOption `json:"options"`
	Warnings    []string        `json:"warnings"`
}

// Select screens the catalog for sections with phi*Mn >= Mu and reports
// them with utilizations. It never fails on an empty match; the warning
// names the closest alternative instead.
func Select(cat *catalog.Catalog, in SelectInput) (SelectResult, error) {
	sections, warnings, err := cat.FilterByMoment(in.Filter)
	if err != nil {
		return SelectResult{}, err
	}
	limit := in.Limit
	if limit <= 0 || limit > len(sections) {
		limit = len(sections)
	}
	res := SelectResult{Options: []SectionOption{}, Warnings: warnings}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	for _, s := range sections[:limit] {
		res.Options = append(res.Options, SectionOption{
			Designation: s.Designation,
			Family:      s.Family,
			Grade:       s.Grade,
			WeightPLF:   s.WeightPLF,
			PhiMnKipFt:  units.RoundMoment(s.PhiMnKipFt()),
			Utilization: units.Round(in.Filter.MuKipFt/s.PhiMnKipFt(), 3),
		})
	}
	if len(res.Options) > 0 {
		res.Recommended = &res.Options[0]
	}
	return res, nil
}

// AutoDesignInput combines a catalog screen with a full single-pole
// analysis. MuKipFt drives the screen; Analysis supplies everything except
// the section, which is filled per candidate.
type AutoDesignInput struct {
	Filter   catalog.DemandFilter `json:"filter"`
	Analysis Input                `json:"analysis"`
	Limit    int                  `json:"limit,omitempty"`
}

// CandidateOutcome records one analyzed candidate for the trace.
type CandidateOutcome struct {
	Designation string `json:"designation"`
	Approved    bool   `json:"approved"`
	FailedCheck string `json:"failed_check,omitempty"`
}

// AutoDesignResult reports the first fully approved candidate, or the
// attempts made when none passes.
type AutoDesignResult struct {
	Section    *catalog.SectionProperties `json:"section,omitempty"`
	Analysis   *Result                    `json:"analysis,omitempty"`
	Candidates []CandidateOutcome         `json:"candidates"`
	Warnings   []string                   `json:"warnings"`
}

// AutoDesign walks the feasible sections lightest-first, running the full
// limit-state analysis on each until one is approved. Candidates that fail
// a check are recorded and skipped; input errors abort since they would
// fail for every candidate.
func AutoDesign(cat *catalog.Catalog, in AutoDesignInput) (AutoDesignResult, error) {
	sections, warnings, err := cat.FilterByMoment(in.Filter)
	if err != nil {
		return AutoDesignResult{}, err
	}
	limit := in.Limit
	if limit <= 0 || limit > DefaultCandidateLimit {
		limit = DefaultCandidateLimit
	}
	if limit > len(sections) {
		limit = len(sections)
	}

	res := AutoDesignResult{Candidates: []CandidateOutcome{}, Warnings: warnings}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	for _, s := range sections[:limit] {
		analysis := in.Analysis
		analysis.Section = s
		out, err := Analyze(analysis)
		if err != nil {
			return AutoDesignResult{}, err
		}
		outcome := CandidateOutcome{Designation: s.Designation, Approved: out.Approved}
		if f, ok := out.Checks.FirstFailure(); ok {
			outcome.FailedCheck = f.Name
		}
		res.Candidates = append(res.Candidates, outcome)
		if out.Approved {
			section := s
			res.Section = &section
			res.Analysis = &out
			return res, nil
		}
	}
	if len(sections) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"no feasible section passed all checks among the %d lightest candidates; revise geometry or loads",
			len(res.Candidates)))
	}
	return res, nil
}
