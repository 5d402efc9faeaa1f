// Package filing loads Form 5500 header and Schedule A records from the
// tabular extracts the Department of Labor publishes. Files are CSV by
// default; .xlsx workbooks are accepted too since that is how the extracts
// often circulate. Missing columns default to empty strings; the
// classification pipeline tolerates partial records.
package filing

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sells-group/benefits-cli/internal/model"
	"github.com/sells-group/benefits-cli/internal/parse"
)

// Options configures filing loads.
type Options struct {
	// Charset names the file's text encoding (e.g. "latin1", "windows-1252").
	// Empty means the file is read as-is (UTF-8). Government extracts are
	// frequently Latin-1.
	Charset string

	// Sheet selects the worksheet by name for .xlsx inputs; empty means the
	// first sheet.
	Sheet string
}

// Form 5500 header extract column names.
const (
	colSponsorName      = "SPONSOR_DFE_NAME"
	colSponsorEIN       = "SPONS_DFE_EIN"
	colSponsorPN        = "SPONS_DFE_PN"
	colPlanName         = "PLAN_NAME"
	colWelfareCode      = "TYPE_WELFARE_BNFT_CODE"
	colPlanYearBegin    = "FORM_PLAN_YEAR_BEGIN_DATE"
	colTaxPeriod        = "FORM_TAX_PRD"
	colBenefitInsurance = "BENEFIT_INSURANCE_IND"
	colBenefitGenAsset  = "BENEFIT_GEN_ASSET_IND"
	colFundingInsurance = "FUNDING_INSURANCE_IND"
	colFundingGenAsset  = "FUNDING_GEN_ASSET_IND"
	colSchAAttached     = "SCH_A_ATTACHED_IND"
	colNumSchAAttached  = "NUM_SCH_A_ATTACHED_CNT"
)

// Schedule A extract column names.
const (
	colSchAEIN       = "SCH_A_EIN"
	colSchAPlanNum   = "SCH_A_PLAN_NUM"
	colSchAYearBegin = "SCH_A_PLAN_YEAR_BEGIN_DATE"
	colSchAYearEnd   = "SCH_A_PLAN_YEAR_END_DATE"
	colSchAHealth    = "WLFR_BNFT_HEALTH_IND"
	colSchAStopLoss  = "WLFR_BNFT_STOP_LOSS_IND"
)

// LoadHeaderRows reads Form 5500 header records from path.
func LoadHeaderRows(path string, opts Options) ([]model.HeaderRow, error) {
	var rows []model.HeaderRow
	err := loadTable(path, opts, func(record []string, colIdx map[string]int) {
		rows = append(rows, model.HeaderRow{
			SponsorName:      parse.GetCol(record, colIdx, colSponsorName),
			EIN:              parse.GetCol(record, colIdx, colSponsorEIN),
			PlanNum:          parse.GetCol(record, colIdx, colSponsorPN),
			PlanName:         parse.GetCol(record, colIdx, colPlanName),
			WelfareCode:      parse.GetCol(record, colIdx, colWelfareCode),
			PlanYearBegin:    parse.GetCol(record, colIdx, colPlanYearBegin),
			TaxPeriodEnd:     parse.GetCol(record, colIdx, colTaxPeriod),
			BenefitInsurance: parse.GetCol(record, colIdx, colBenefitInsurance),
			BenefitGenAssets: parse.GetCol(record, colIdx, colBenefitGenAsset),
			FundingInsurance: parse.GetCol(record, colIdx, colFundingInsurance),
			FundingGenAssets: parse.GetCol(record, colIdx, colFundingGenAsset),
			SchAAttached:     parse.GetCol(record, colIdx, colSchAAttached),
			NumSchAAttached:  parse.GetCol(record, colIdx, colNumSchAAttached),
		})
	})
	if err != nil {
		return nil, eris.Wrap(err, "filing: load header rows")
	}
	return rows, nil
}

// LoadScheduleARows reads Schedule A records from path.
func LoadScheduleARows(path string, opts Options) ([]model.ScheduleARow, error) {
	var rows []model.ScheduleARow
	err := loadTable(path, opts, func(record []string, colIdx map[string]int) {
		rows = append(rows, model.ScheduleARow{
			EIN:           parse.GetCol(record, colIdx, colSchAEIN),
			PlanNum:       parse.GetCol(record, colIdx, colSchAPlanNum),
			PlanYearBegin: parse.GetCol(record, colIdx, colSchAYearBegin),
			PlanYearEnd:   parse.GetCol(record, colIdx, colSchAYearEnd),
			HealthInd:     parse.GetCol(record, colIdx, colSchAHealth),
			StopLossInd:   parse.GetCol(record, colIdx, colSchAStopLoss),
		})
	})
	if err != nil {
		return nil, eris.Wrap(err, "filing: load schedule A rows")
	}
	return rows, nil
}

// loadTable dispatches on file extension and feeds each data row to emit
// together with the header's column index.
func loadTable(path string, opts Options, emit func(record []string, colIdx map[string]int)) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadXLSX(path, opts, emit)
	}
	return loadCSV(path, opts, emit)
}

func loadCSV(path string, opts Options, emit func(record []string, colIdx map[string]int)) error {
	f, err := os.Open(path)
	if err != nil {
		return eris.Wrapf(err, "filing: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	var r io.Reader = f
	if opts.Charset != "" {
		enc, err := htmlindex.Get(opts.Charset)
		if err != nil {
			return eris.Wrapf(err, "filing: unsupported charset %q", opts.Charset)
		}
		r = enc.NewDecoder().Reader(f)
	}

	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return eris.Wrapf(err, "filing: read CSV header of %s", path)
	}
	colIdx := parse.MapColumns(header)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		emit(record, colIdx)
	}

	return nil
}

func loadXLSX(path string, opts Options, emit func(record []string, colIdx map[string]int)) error {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return eris.Wrapf(err, "filing: open xlsx %s", path)
	}

	var sheet *xlsx.Sheet
	if opts.Sheet != "" {
		s, ok := f.Sheet[opts.Sheet]
		if !ok {
			return eris.Errorf("filing: sheet %q not found in %s", opts.Sheet, path)
		}
		sheet = s
	} else {
		if len(f.Sheets) == 0 {
			return eris.Errorf("filing: no sheets in %s", path)
		}
		sheet = f.Sheets[0]
	}

	var colIdx map[string]int
	for i, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		if i == 0 {
			colIdx = parse.MapColumns(cells)
			continue
		}
		emit(cells, colIdx)
	}

	return nil
}
