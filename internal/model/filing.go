// Package model holds the domain types shared by the aggregation and
// classification pipelines: raw filing records in, report structures out.
package model

// FirmData is the raw research export for one PE firm's portfolio.
type FirmData struct {
	Timestamp string          `json:"timestamp,omitempty"`
	Companies []CompanyRecord `json:"companies"`
}

// CompanyRecord is one portfolio company's raw filing data.
type CompanyRecord struct {
	CompanyName string       `json:"companyName"`
	ScheduleA   ScheduleAset `json:"scheduleA"`
	Form5500    Form5500Set  `json:"form5500"`
}

// ScheduleAset maps filing year to that year's Schedule A plan detail.
type ScheduleAset struct {
	Details map[string][]PlanDetail `json:"details"`
}

// Form5500Set holds the Form 5500 side of a company's filings: the years
// a filing exists for, and participant records keyed by year.
type Form5500Set struct {
	Years   []string                       `json:"years"`
	Records map[string][]ParticipantRecord `json:"records"`
}

// PlanDetail is one Schedule A plan row. Monetary and count fields are
// text-typed as they arrive from filing extracts; empty means zero.
type PlanDetail struct {
	BenefitType      string `json:"benefitType"`
	CarrierName      string `json:"carrierName"`
	TotalCharges     string `json:"totalCharges"`
	BrokerCommission string `json:"brokerCommission"`
	PersonsCovered   string `json:"personsCovered"`
}

// ParticipantRecord carries a Form 5500 participant count for one filing.
type ParticipantRecord struct {
	ActiveParticipants int `json:"active_participants"`
}

// HeaderRow is one Form 5500 header record (classification pipeline).
// Missing columns default to empty strings; the classifier tolerates that.
type HeaderRow struct {
	SponsorName      string
	EIN              string
	PlanNum          string
	PlanName         string
	WelfareCode      string
	PlanYearBegin    string
	TaxPeriodEnd     string
	BenefitInsurance string
	BenefitGenAssets string
	FundingInsurance string
	FundingGenAssets string
	SchAAttached     string
	NumSchAAttached  string
}

// ScheduleARow is one Schedule A record (classification pipeline).
type ScheduleARow struct {
	EIN           string
	PlanNum       string
	PlanYearBegin string
	PlanYearEnd   string
	HealthInd     string
	StopLossInd   string
}

// PlanAggregate is one plan's parsed figures retained for detail display.
type PlanAggregate struct {
	BenefitType   string  `json:"benefit_type"`
	CarrierName   string  `json:"carrier_name"`
	Premiums      float64 `json:"premiums"`
	BrokerageFees float64 `json:"brokerage_fees"`
	PeopleCovered int     `json:"people_covered"`
}

// CompanyAggregate is one company's selected-year totals.
type CompanyAggregate struct {
	CompanyName        string          `json:"company_name"`
	DataYear           string          `json:"data_year,omitempty"`
	HasData            bool            `json:"has_data"`
	TotalPremiums      float64         `json:"total_premiums"`
	TotalBrokerageFees float64         `json:"total_brokerage_fees"`
	TotalPeopleCovered int             `json:"total_people_covered"`
	TotalParticipants  int             `json:"total_participants"`
	Plans              []PlanAggregate `json:"plans"`
}

// ReportSummary is the portfolio-level summary block.
type ReportSummary struct {
	TotalCompanies    int    `json:"total_companies"`
	CompaniesWithData int    `json:"companies_with_data"`
	MostRecentYear    string `json:"most_recent_year"`
}

// ProcessedReport is the aggregation pipeline's output artifact.
type ProcessedReport struct {
	ReportID  string             `json:"report_id"`
	FirmName  string             `json:"firm_name"`
	Timestamp string             `json:"timestamp,omitempty"`
	Summary   ReportSummary      `json:"summary"`
	Companies []CompanyAggregate `json:"companies"`
}

// PlanClassification is one plan's funding-arrangement verdict.
type PlanClassification struct {
	PlanName       string   `json:"plan_name" yaml:"plan_name"`
	PlanNumber     string   `json:"plan_number" yaml:"plan_number"`
	EIN            string   `json:"ein" yaml:"ein"`
	PlanYearBegin  string   `json:"plan_year_begin" yaml:"plan_year_begin"`
	PlanYearEnd    string   `json:"plan_year_end" yaml:"plan_year_end"`
	Classification string   `json:"classification" yaml:"classification"`
	Reasons        []string `json:"reasons" yaml:"reasons"`
}

// ClassificationReport is the classification pipeline's output for one
// company query: the overall verdict plus per-plan detail in evaluation
// order. Overall is empty when no plans matched.
type ClassificationReport struct {
	ReportID   string               `json:"report_id" yaml:"report_id"`
	Company    string               `json:"company" yaml:"company"`
	YearFilter int                  `json:"year_filter,omitempty" yaml:"year_filter,omitempty"`
	Overall    string               `json:"overall,omitempty" yaml:"overall,omitempty"`
	Plans      []PlanClassification `json:"plans" yaml:"plans"`
}
