// Package report renders processed portfolio aggregates as an interactive
// HTML report and as an XLSX workbook.
package report

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/benefits-cli/internal/model"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency renders a dollar amount rounded to whole dollars with thousands
// grouping, e.g. 3500.75 → "$3,501".
func Currency(v float64) string {
	return printer.Sprintf("$%.0f", v)
}

// Count renders an integer with thousands grouping.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

var reportTmpl = template.Must(template.New("report.html.tmpl").
	Funcs(template.FuncMap{
		"currency": Currency,
		"count":    Count,
	}).
	ParseFS(templateFS, "templates/report.html.tmpl"))

// RenderHTML renders the full interactive report document.
func RenderHTML(processed model.ProcessedReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, processed); err != nil {
		return nil, eris.Wrap(err, "report: execute template")
	}
	return buf.Bytes(), nil
}

// WriteXLSX writes the aggregates as a workbook with summary, company,
// and plan-detail sheets.
func WriteXLSX(processed model.ProcessedReport, path string) error {
	f := xlsx.NewFile()

	summary, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}
	addRow(summary, "Firm", processed.FirmName)
	addRow(summary, "Report ID", processed.ReportID)
	addRow(summary, "Total Companies", Count(processed.Summary.TotalCompanies))
	addRow(summary, "Companies with Cost Data", Count(processed.Summary.CompaniesWithData))
	addRow(summary, "Most Recent Year", processed.Summary.MostRecentYear)

	companies, err := f.AddSheet("Companies")
	if err != nil {
		return eris.Wrap(err, "report: add companies sheet")
	}
	addRow(companies, "Company Name", "Data Year", "Total Premiums", "Total Brokerage Fees", "People Covered", "Participants")
	for _, c := range processed.Companies {
		year := c.DataYear
		if !c.HasData && year == "" {
			year = "No Data"
		}
		addRow(companies, c.CompanyName, year,
			Currency(c.TotalPremiums), Currency(c.TotalBrokerageFees),
			Count(c.TotalPeopleCovered), Count(c.TotalParticipants))
	}

	detail, err := f.AddSheet("Plan Detail")
	if err != nil {
		return eris.Wrap(err, "report: add plan detail sheet")
	}
	addRow(detail, "Company Name", "Data Year", "Benefit Type", "Carrier", "Premiums", "Brokerage Fees", "People Covered")
	for _, c := range processed.Companies {
		for _, p := range c.Plans {
			addRow(detail, c.CompanyName, c.DataYear, p.BenefitType, p.CarrierName,
				Currency(p.Premiums), Currency(p.BrokerageFees), Count(p.PeopleCovered))
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save workbook %s", path)
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
