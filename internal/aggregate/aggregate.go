// Package aggregate implements the select-then-aggregate pipeline over a
// firm's raw filing dataset: resolve one reporting year per company, then
// sum premiums, fees, and covered-person counts across that year's plans.
package aggregate

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/benefits-cli/internal/model"
	"github.com/sells-group/benefits-cli/internal/parse"
	"github.com/sells-group/benefits-cli/internal/yearpref"
)

// YearTotals holds one company's parsed Schedule A figures for a single
// resolved year. A zero value with an empty Plans slice is the valid
// "no data for that year" outcome, not an error.
type YearTotals struct {
	TotalPremiums      float64
	TotalBrokerageFees float64
	TotalPeopleCovered int
	Plans              []model.PlanAggregate
}

// SumScheduleA aggregates one year's plan detail. Blank monetary and
// count fields parse as zero; malformed non-empty text aborts the run.
func SumScheduleA(details map[string][]model.PlanDetail, year string) (YearTotals, error) {
	totals := YearTotals{Plans: []model.PlanAggregate{}}

	yearData, ok := details[year]
	if !ok {
		return totals, nil
	}

	for _, plan := range yearData {
		premiums, err := parse.ParseCurrency(plan.TotalCharges)
		if err != nil {
			return YearTotals{}, eris.Wrapf(err, "aggregate: total charges for carrier %q", plan.CarrierName)
		}
		brokerage, err := parse.ParseCurrency(plan.BrokerCommission)
		if err != nil {
			return YearTotals{}, eris.Wrapf(err, "aggregate: broker commission for carrier %q", plan.CarrierName)
		}
		people, err := parse.ParseCount(plan.PersonsCovered)
		if err != nil {
			return YearTotals{}, eris.Wrapf(err, "aggregate: persons covered for carrier %q", plan.CarrierName)
		}

		totals.TotalPremiums += premiums
		totals.TotalBrokerageFees += brokerage
		totals.TotalPeopleCovered += people
		totals.Plans = append(totals.Plans, model.PlanAggregate{
			BenefitType:   plan.BenefitType,
			CarrierName:   plan.CarrierName,
			Premiums:      premiums,
			BrokerageFees: brokerage,
			PeopleCovered: people,
		})
	}

	return totals, nil
}

// Participants sums Form 5500 active-participant counts for the resolved
// year, zero if the year is absent. This total is independent of the
// Schedule A figures and is not cross-validated against them.
func Participants(records map[string][]model.ParticipantRecord, year string) int {
	total := 0
	for _, rec := range records[year] {
		total += rec.ActiveParticipants
	}
	return total
}

// ProcessCompany resolves a company's reporting year and aggregates its
// filings for that year. Year candidates come from the Schedule A detail
// keys; if none exist, the Form 5500 year list is used for display only.
func ProcessCompany(company model.CompanyRecord) (model.CompanyAggregate, error) {
	name := company.CompanyName
	if name == "" {
		name = "Unknown Company"
	}

	details := company.ScheduleA.Details
	candidates := make([]string, 0, len(details))
	for year := range details {
		candidates = append(candidates, year)
	}

	year, ok := yearpref.Resolve(candidates)
	if !ok {
		year, ok = yearpref.Resolve(company.Form5500.Years)
	}

	agg := model.CompanyAggregate{
		CompanyName: name,
		Plans:       []model.PlanAggregate{},
	}
	if !ok {
		return agg, nil
	}
	agg.DataYear = year

	if _, hasYear := details[year]; hasYear {
		totals, err := SumScheduleA(details, year)
		if err != nil {
			return model.CompanyAggregate{}, eris.Wrapf(err, "aggregate: company %q year %s", name, year)
		}
		agg.HasData = true
		agg.TotalPremiums = totals.TotalPremiums
		agg.TotalBrokerageFees = totals.TotalBrokerageFees
		agg.TotalPeopleCovered = totals.TotalPeopleCovered
		agg.Plans = totals.Plans
	}

	agg.TotalParticipants = Participants(company.Form5500.Records, year)

	return agg, nil
}

// ProcessFirm aggregates every company in the firm dataset and computes
// the portfolio summary.
func ProcessFirm(firm model.FirmData, firmName string) (model.ProcessedReport, error) {
	companies := make([]model.CompanyAggregate, 0, len(firm.Companies))
	withData := 0
	yearsFound := make(map[string]bool)

	for _, company := range firm.Companies {
		agg, err := ProcessCompany(company)
		if err != nil {
			return model.ProcessedReport{}, err
		}
		companies = append(companies, agg)
		if agg.HasData {
			withData++
		}
		if agg.DataYear != "" {
			yearsFound[agg.DataYear] = true
		}
	}

	return model.ProcessedReport{
		ReportID:  uuid.NewString(),
		FirmName:  firmName,
		Timestamp: firm.Timestamp,
		Summary: model.ReportSummary{
			TotalCompanies:    len(companies),
			CompaniesWithData: withData,
			MostRecentYear:    mostRecentYear(yearsFound),
		},
		Companies: companies,
	}, nil
}

// mostRecentYear picks the portfolio-level display year: 2023 when any
// company selected it, else 2022, else the greatest selected year.
// Defaults to 2023 when no company has a year at all.
func mostRecentYear(yearsFound map[string]bool) string {
	if len(yearsFound) == 0 {
		return "2023"
	}
	if yearsFound["2023"] {
		return "2023"
	}
	if yearsFound["2022"] {
		return "2022"
	}
	years := make([]string, 0, len(yearsFound))
	for y := range yearsFound {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years[0]
}

// FirmNameFromPath derives a display firm name from the input file path:
// strip the extension and the "_research_results" suffix, replace
// underscores with spaces, and title-case each word.
func FirmNameFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.ReplaceAll(stem, "_research_results", "")
	stem = strings.ReplaceAll(stem, "_", " ")

	words := strings.Fields(stem)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
