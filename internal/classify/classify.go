// Package classify decides a plan's funding arrangement from header-level
// funding/benefit flags cross-referenced against Schedule A coverage
// indicators. The precedence policy is an explicit ordered rule table
// evaluated top to bottom; the first matching rule wins.
package classify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/benefits-cli/internal/model"
	"github.com/sells-group/benefits-cli/internal/parse"
	"github.com/sells-group/benefits-cli/internal/scheda"
)

// healthBenefitMarker is the welfare-benefit type code for health/medical
// coverage on Form 5500 (code 4A).
const healthBenefitMarker = "4A"

// Overall verdicts for the company-level roll-up.
const (
	OverallSelfFunded = "Self-funded (at least one plan)"
	OverallInsured    = "Insured"
	OverallMixed      = "Mixed/Indeterminate"
)

// Evidence is the resolved signal set for one plan: header flags plus
// Schedule A coverage indicators looked up on both year boundaries.
type Evidence struct {
	SponsorName   string
	PlanName      string
	EIN           string
	PlanNum       string
	WelfareCode   string
	PlanYearBegin string
	PlanYearEnd   string
	BeginYear     string
	EndYear       string

	BenefitInsurance bool
	BenefitGenAssets bool
	FundingInsurance bool
	FundingGenAssets bool
	SchAAttached     bool

	SAHealth   bool
	SAStopLoss bool
}

// BuildEvidence extracts one plan's evidence from its header row, resolving
// Schedule A coverage flags via the index. Missing header fields default to
// empty strings and read as false.
func BuildEvidence(h model.HeaderRow, idx *scheda.Index) Evidence {
	ev := Evidence{
		SponsorName:   h.SponsorName,
		PlanName:      h.PlanName,
		EIN:           strings.TrimSpace(h.EIN),
		PlanNum:       strings.TrimSpace(h.PlanNum),
		WelfareCode:   h.WelfareCode,
		PlanYearBegin: strings.TrimSpace(h.PlanYearBegin),
		PlanYearEnd:   strings.TrimSpace(h.TaxPeriodEnd),

		BenefitInsurance: parse.ParseBoolFlag(h.BenefitInsurance),
		BenefitGenAssets: parse.ParseBoolFlag(h.BenefitGenAssets),
		FundingInsurance: parse.ParseBoolFlag(h.FundingInsurance),
		FundingGenAssets: parse.ParseBoolFlag(h.FundingGenAssets),
	}
	ev.BeginYear = parse.YearPrefix(ev.PlanYearBegin)
	ev.EndYear = parse.YearPrefix(ev.PlanYearEnd)

	// Attachment counts as present on either the indicator or a nonzero count.
	cnt := strings.TrimSpace(h.NumSchAAttached)
	ev.SchAAttached = parse.ParseBoolFlag(h.SchAAttached) || (cnt != "" && cnt != "0")

	flags := idx.Lookup(ev.EIN, ev.PlanNum, ev.BeginYear, ev.EndYear)
	ev.SAHealth = flags.Health
	ev.SAStopLoss = flags.StopLoss

	return ev
}

// rule pairs a predicate with its label and reason generator. Rules are
// evaluated in order; the last rule always matches.
type rule struct {
	label   string
	match   func(Evidence) bool
	reasons func(Evidence) []string
}

var rules = []rule{
	{
		label: "Insured",
		match: func(ev Evidence) bool { return ev.SAHealth },
		reasons: func(ev Evidence) []string {
			rs := []string{"Schedule A shows health/medical coverage"}
			if ev.BenefitInsurance || ev.FundingInsurance {
				rs = append(rs, "Header insurance arrangement flags present")
			}
			return rs
		},
	},
	{
		label: "Self-funded w/ stop-loss",
		match: func(ev Evidence) bool { return ev.SAStopLoss && !ev.SAHealth },
		reasons: func(ev Evidence) []string {
			rs := []string{"Schedule A shows stop-loss but no medical"}
			if ev.BenefitGenAssets || ev.FundingGenAssets {
				rs = append(rs, "Header general-assets arrangement present")
			}
			return rs
		},
	},
	{
		label: "Likely self-funded (non-medical Schedule A)",
		match: func(ev Evidence) bool {
			return (ev.BenefitGenAssets || ev.FundingGenAssets) && ev.SchAAttached
		},
		reasons: func(ev Evidence) []string {
			return []string{
				"Header indicates general assets funding/benefit",
				"Schedule A attached (non-medical or unknown)",
			}
		},
	},
	{
		label: "Self-funded",
		match: func(ev Evidence) bool { return ev.BenefitGenAssets || ev.FundingGenAssets },
		reasons: func(ev Evidence) []string {
			return []string{"Header indicates general assets funding/benefit"}
		},
	},
	{
		label: "Likely insured (needs Sched A verification)",
		match: func(ev Evidence) bool { return ev.BenefitInsurance || ev.FundingInsurance },
		reasons: func(ev Evidence) []string {
			return []string{"Header indicates insurance arrangement but no SA health flag found"}
		},
	},
	{
		label: "Indeterminate (needs Sched A detail)",
		match: func(ev Evidence) bool { return ev.SchAAttached },
		reasons: func(ev Evidence) []string {
			return []string{"Schedule A attached but lacks health/stop-loss flags for this plan-year"}
		},
	},
	{
		label: "Likely self-funded (absence of health Schedule A)",
		match: func(ev Evidence) bool { return true },
		reasons: func(ev Evidence) []string {
			return []string{"No Sched A and no clear arrangement flags"}
		},
	},
}

// Classify assigns a funding-arrangement label to one plan's evidence.
func Classify(ev Evidence) model.PlanClassification {
	for _, r := range rules {
		if !r.match(ev) {
			continue
		}
		return model.PlanClassification{
			PlanName:       ev.PlanName,
			PlanNumber:     ev.PlanNum,
			EIN:            ev.EIN,
			PlanYearBegin:  ev.PlanYearBegin,
			PlanYearEnd:    ev.PlanYearEnd,
			Classification: r.label,
			Reasons:        r.reasons(ev),
		}
	}
	// Unreachable: the final rule always matches.
	return model.PlanClassification{}
}

// IsMedicalPlan reports whether a plan is in scope for classification:
// either its welfare-benefit code carries the health marker or its
// resolved Schedule A flags show health coverage.
func IsMedicalPlan(ev Evidence) bool {
	return strings.Contains(ev.WelfareCode, healthBenefitMarker) || ev.SAHealth
}

// RollUp combines per-plan labels into one company-level verdict. An
// empty label list is the caller's "no matching plans" outcome and is
// reported separately, never folded into one of the three verdicts.
func RollUp(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	allInsured := true
	for _, l := range labels {
		if strings.HasPrefix(l, "Self-funded") || strings.HasPrefix(l, "Likely self-funded") {
			return OverallSelfFunded
		}
		if l != "Insured" && !strings.HasPrefix(l, "Likely insured") {
			allInsured = false
		}
	}
	if allInsured {
		return OverallInsured
	}
	return OverallMixed
}

// Options filters which header rows a classification run considers.
type Options struct {
	Company string // sponsor-name query, normalized substring match
	Exact   bool   // require full normalized equality instead
	Year    int    // when nonzero, keep plans whose begin or end year matches
	Debug   bool   // trace skipped rows via the logger
}

// Evaluate classifies every matching plan and rolls the labels up into a
// company verdict. An empty Plans slice with empty Overall is the distinct
// "no matching plans" outcome.
func Evaluate(headers []model.HeaderRow, idx *scheda.Index, opts Options) model.ClassificationReport {
	log := zap.L().With(zap.String("component", "classify"))
	query := parse.Normalize(opts.Company)

	report := model.ClassificationReport{
		ReportID:   uuid.NewString(),
		Company:    opts.Company,
		YearFilter: opts.Year,
		Plans:      []model.PlanClassification{},
	}

	for _, h := range headers {
		sponsor := parse.Normalize(h.SponsorName)
		if opts.Exact {
			if sponsor != query {
				continue
			}
		} else if !strings.Contains(sponsor, query) {
			continue
		}

		ev := BuildEvidence(h, idx)

		if opts.Year != 0 && !matchesYear(ev, opts.Year) {
			if opts.Debug {
				log.Debug("skip: year filter",
					zap.String("sponsor", h.SponsorName),
					zap.String("begin_year", ev.BeginYear),
					zap.String("end_year", ev.EndYear),
					zap.Int("want", opts.Year),
				)
			}
			continue
		}

		if opts.Debug {
			log.Debug("schedule A lookup",
				zap.String("sponsor", h.SponsorName),
				zap.String("plan_number", ev.PlanNum),
				zap.String("begin_year", ev.BeginYear),
				zap.String("end_year", ev.EndYear),
				zap.Bool("sa_health", ev.SAHealth),
				zap.Bool("sa_stop_loss", ev.SAStopLoss),
			)
		}

		if !IsMedicalPlan(ev) {
			if opts.Debug {
				log.Debug("skip: not a medical plan",
					zap.String("sponsor", h.SponsorName),
					zap.String("plan_number", ev.PlanNum),
					zap.String("welfare_code", ev.WelfareCode),
				)
			}
			continue
		}

		report.Plans = append(report.Plans, Classify(ev))
	}

	if len(report.Plans) > 0 {
		labels := make([]string, len(report.Plans))
		for i, p := range report.Plans {
			labels[i] = p.Classification
		}
		report.Overall = RollUp(labels)
	}

	return report
}

// matchesYear reports whether either year boundary equals the filter year.
func matchesYear(ev Evidence, year int) bool {
	for _, y := range []string{ev.BeginYear, ev.EndYear} {
		if y == "" {
			continue
		}
		if v, err := strconv.Atoi(y); err == nil && v == year {
			return true
		}
	}
	return false
}

// FormatText renders a classification report in the analyst-facing text
// layout: overall verdict first, then each plan with its reasons in
// evaluation order.
func FormatText(report model.ClassificationReport) string {
	var b strings.Builder

	if len(report.Plans) == 0 {
		fmt.Fprintf(&b, "NO MEDICAL PLANS FOUND for company match: %q", report.Company)
		if report.YearFilter != 0 {
			fmt.Fprintf(&b, " in year %d", report.YearFilter)
		}
		b.WriteString("\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Company: %s\n", report.Company)
	if report.YearFilter != 0 {
		fmt.Fprintf(&b, "Year filter: %d\n", report.YearFilter)
	}
	fmt.Fprintf(&b, "Overall: %s\n", report.Overall)
	for _, p := range report.Plans {
		fmt.Fprintf(&b, "  - Plan %s  (%s)\n", p.PlanNumber, p.PlanName)
		fmt.Fprintf(&b, "    EIN: %s  Year: %s → %s\n", p.EIN, p.PlanYearBegin, p.PlanYearEnd)
		fmt.Fprintf(&b, "    Classification: %s\n", p.Classification)
		for _, r := range p.Reasons {
			fmt.Fprintf(&b, "      • %s\n", r)
		}
		b.WriteString("\n")
	}

	return b.String()
}
