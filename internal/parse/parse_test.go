package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoolFlag(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want bool
	}{
		{"one", "1", true},
		{"upper Y", "Y", true},
		{"lower y", "y", true},
		{"TRUE", "TRUE", true},
		{"True", "True", true},
		{"true", "true", true},
		{"padded", "  Y  ", true},
		{"zero", "0", false},
		{"N", "N", false},
		{"empty", "", false},
		{"whitespace", "   ", false},
		{"yes", "yes", false},
		{"mixed case TrUe", "TrUe", false},
		{"t", "t", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBoolFlag(tt.s))
		})
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		want    float64
		wantErr bool
	}{
		{"integer", "1000", 1000, false},
		{"decimal", "1000.50", 1000.50, false},
		{"empty", "", 0, false},
		{"whitespace", "  ", 0, false},
		{"padded", " 2500.00 ", 2500, false},
		{"negative", "-12.5", -12.5, false},
		{"malformed", "N/A", 0, true},
		{"currency symbol", "$100", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCurrency(tt.s)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		want    int
		wantErr bool
	}{
		{"valid", "250", 250, false},
		{"zero", "0", 0, false},
		{"empty", "", 0, false},
		{"whitespace", "   ", 0, false},
		{"padded", " 12 ", 12, false},
		{"float", "3.5", 0, true},
		{"malformed", "abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCount(tt.s)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYearPrefix(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want string
	}{
		{"iso date", "2023-01-01", "2023"},
		{"year only", "2022", "2022"},
		{"padded", "  2021-06-30  ", "2021"},
		{"empty", "", ""},
		{"short", "202", ""},
		{"non-numeric prefix", "20AB-01-01", ""},
		{"leading alpha", "FY2023", ""},
		{"slash date", "2024/12/31", "2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YearPrefix(tt.s))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "acme holdings", Normalize("  ACME Holdings "))
	assert.Equal(t, "", Normalize("   "))
}

func TestMapColumnsAndGetCol(t *testing.T) {
	header := []string{"SPONSOR_DFE_NAME", " SPONS_DFE_EIN ", "spons_dfe_pn"}
	colIdx := MapColumns(header)
	row := []string{"Acme Holdings", "12-3456789", "001"}

	assert.Equal(t, "Acme Holdings", GetCol(row, colIdx, "sponsor_dfe_name"))
	assert.Equal(t, "12-3456789", GetCol(row, colIdx, "SPONS_DFE_EIN"))
	assert.Equal(t, "001", GetCol(row, colIdx, "Spons_Dfe_Pn"))

	// Absent column and short row both read as empty.
	assert.Equal(t, "", GetCol(row, colIdx, "missing"))
	colIdx["beyond"] = 99
	assert.Equal(t, "", GetCol(row, colIdx, "beyond"))
}
