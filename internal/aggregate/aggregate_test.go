package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/benefits-cli/internal/model"
)

func TestSumScheduleA(t *testing.T) {
	details := map[string][]model.PlanDetail{
		"2023": {
			{
				BenefitType:      "Medical",
				CarrierName:      "Acme Health",
				TotalCharges:     "1000.50",
				BrokerCommission: "150.25",
				PersonsCovered:   "120",
			},
			{
				BenefitType:      "Dental",
				CarrierName:      "Smile Corp",
				TotalCharges:     "2500.00",
				BrokerCommission: "",
				PersonsCovered:   "95",
			},
		},
	}

	totals, err := SumScheduleA(details, "2023")
	require.NoError(t, err)

	assert.InDelta(t, 3500.50, totals.TotalPremiums, 0.0001)
	assert.InDelta(t, 150.25, totals.TotalBrokerageFees, 0.0001)
	assert.Equal(t, 215, totals.TotalPeopleCovered)
	require.Len(t, totals.Plans, 2)

	// Per-plan figures retained in emission order.
	assert.Equal(t, "Medical", totals.Plans[0].BenefitType)
	assert.Equal(t, "Acme Health", totals.Plans[0].CarrierName)
	assert.InDelta(t, 1000.50, totals.Plans[0].Premiums, 0.0001)
	assert.InDelta(t, 0, totals.Plans[1].BrokerageFees, 0.0001)
	assert.Equal(t, 95, totals.Plans[1].PeopleCovered)
}

func TestSumScheduleA_YearAbsent(t *testing.T) {
	details := map[string][]model.PlanDetail{
		"2022": {{TotalCharges: "100"}},
	}

	totals, err := SumScheduleA(details, "2023")
	require.NoError(t, err)

	assert.Zero(t, totals.TotalPremiums)
	assert.Zero(t, totals.TotalBrokerageFees)
	assert.Zero(t, totals.TotalPeopleCovered)
	assert.Empty(t, totals.Plans)
	assert.NotNil(t, totals.Plans)
}

func TestSumScheduleA_MalformedCurrencyAborts(t *testing.T) {
	details := map[string][]model.PlanDetail{
		"2023": {{CarrierName: "Bad Carrier", TotalCharges: "$1,000"}},
	}

	_, err := SumScheduleA(details, "2023")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad Carrier")
}

func TestSumScheduleA_Associative(t *testing.T) {
	plans := []model.PlanDetail{
		{TotalCharges: "100.10", BrokerCommission: "10", PersonsCovered: "5"},
		{TotalCharges: "200.20", BrokerCommission: "", PersonsCovered: "7"},
		{TotalCharges: "", BrokerCommission: "3.30", PersonsCovered: ""},
		{TotalCharges: "400", BrokerCommission: "40", PersonsCovered: "11"},
	}

	whole, err := SumScheduleA(map[string][]model.PlanDetail{"2023": plans}, "2023")
	require.NoError(t, err)

	left, err := SumScheduleA(map[string][]model.PlanDetail{"2023": plans[:2]}, "2023")
	require.NoError(t, err)
	right, err := SumScheduleA(map[string][]model.PlanDetail{"2023": plans[2:]}, "2023")
	require.NoError(t, err)

	assert.InDelta(t, whole.TotalPremiums, left.TotalPremiums+right.TotalPremiums, 0.0001)
	assert.InDelta(t, whole.TotalBrokerageFees, left.TotalBrokerageFees+right.TotalBrokerageFees, 0.0001)
	assert.Equal(t, whole.TotalPeopleCovered, left.TotalPeopleCovered+right.TotalPeopleCovered)
	assert.Equal(t, whole.Plans, append(left.Plans, right.Plans...))
}

func TestParticipants(t *testing.T) {
	records := map[string][]model.ParticipantRecord{
		"2023": {{ActiveParticipants: 100}, {ActiveParticipants: 250}},
		"2022": {{ActiveParticipants: 999}},
	}

	assert.Equal(t, 350, Participants(records, "2023"))
	assert.Equal(t, 0, Participants(records, "2021"))
	assert.Equal(t, 0, Participants(nil, "2023"))
}

func TestProcessCompany(t *testing.T) {
	company := model.CompanyRecord{
		CompanyName: "Acme Holdings",
		ScheduleA: model.ScheduleAset{
			Details: map[string][]model.PlanDetail{
				"2022": {{BenefitType: "Medical", TotalCharges: "9000", PersonsCovered: "80"}},
				"2024": {{BenefitType: "Medical", TotalCharges: "100"}},
			},
		},
		Form5500: model.Form5500Set{
			Records: map[string][]model.ParticipantRecord{
				"2022": {{ActiveParticipants: 85}},
			},
		},
	}

	agg, err := ProcessCompany(company)
	require.NoError(t, err)

	assert.Equal(t, "Acme Holdings", agg.CompanyName)
	assert.Equal(t, "2022", agg.DataYear) // 2024 deprioritized
	assert.True(t, agg.HasData)
	assert.InDelta(t, 9000, agg.TotalPremiums, 0.0001)
	assert.Equal(t, 80, agg.TotalPeopleCovered)
	assert.Equal(t, 85, agg.TotalParticipants)
}

func TestProcessCompany_Form5500YearFallback(t *testing.T) {
	company := model.CompanyRecord{
		CompanyName: "No Sched A Inc",
		Form5500: model.Form5500Set{
			Years: []string{"2021", "2023"},
			Records: map[string][]model.ParticipantRecord{
				"2023": {{ActiveParticipants: 40}},
			},
		},
	}

	agg, err := ProcessCompany(company)
	require.NoError(t, err)

	// The Form 5500 year is selected for display, but there is no cost data.
	assert.Equal(t, "2023", agg.DataYear)
	assert.False(t, agg.HasData)
	assert.Zero(t, agg.TotalPremiums)
	assert.Empty(t, agg.Plans)
	assert.Equal(t, 40, agg.TotalParticipants)
}

func TestProcessCompany_NoYearsAtAll(t *testing.T) {
	agg, err := ProcessCompany(model.CompanyRecord{CompanyName: "Empty Co"})
	require.NoError(t, err)

	assert.Equal(t, "", agg.DataYear)
	assert.False(t, agg.HasData)
	assert.Zero(t, agg.TotalParticipants)
}

func TestProcessCompany_BlankNameDefaults(t *testing.T) {
	agg, err := ProcessCompany(model.CompanyRecord{})
	require.NoError(t, err)
	assert.Equal(t, "Unknown Company", agg.CompanyName)
}

func TestProcessFirm(t *testing.T) {
	firm := model.FirmData{
		Timestamp: "2025-06-01T12:00:00Z",
		Companies: []model.CompanyRecord{
			{
				CompanyName: "Alpha",
				ScheduleA: model.ScheduleAset{Details: map[string][]model.PlanDetail{
					"2023": {{TotalCharges: "500"}},
				}},
			},
			{
				CompanyName: "Beta",
				ScheduleA: model.ScheduleAset{Details: map[string][]model.PlanDetail{
					"2021": {{TotalCharges: "300"}},
				}},
			},
			{CompanyName: "Gamma"},
		},
	}

	report, err := ProcessFirm(firm, "Test Firm")
	require.NoError(t, err)

	assert.NotEmpty(t, report.ReportID)
	assert.Equal(t, "Test Firm", report.FirmName)
	assert.Equal(t, "2025-06-01T12:00:00Z", report.Timestamp)
	assert.Equal(t, 3, report.Summary.TotalCompanies)
	assert.Equal(t, 2, report.Summary.CompaniesWithData)
	assert.Equal(t, "2023", report.Summary.MostRecentYear)
	require.Len(t, report.Companies, 3)
}

func TestMostRecentYear(t *testing.T) {
	tests := []struct {
		name  string
		years []string
		want  string
	}{
		{"none defaults to 2023", nil, "2023"},
		{"2023 preferred", []string{"2021", "2023", "2024"}, "2023"},
		{"2022 next", []string{"2020", "2022"}, "2022"},
		{"greatest otherwise", []string{"2019", "2021", "2024"}, "2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := make(map[string]bool, len(tt.years))
			for _, y := range tt.years {
				found[y] = true
			}
			assert.Equal(t, tt.want, mostRecentYear(found))
		})
	}
}

func TestFirmNameFromPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"research results suffix", "data/summit_partners_research_results.json", "Summit Partners"},
		{"plain name", "/tmp/blackstone.json", "Blackstone"},
		{"underscores", "vista_equity.json", "Vista Equity"},
		{"already titled", "KKR.json", "Kkr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirmNameFromPath(tt.path))
		})
	}
}
