package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "history.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadPriceSeriesXLSX(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Date", "Open(NTD)", "High(NTD)", "Low(NTD)", "Close(NTD)", "Volume(1000S)"},
		{"2024-01-03", "101", "103", "99", "102", "1,500"},
		{"2024-01-02", "100", "102", "98", "101", "1200"},
	})

	series, err := ReadPriceSeriesXLSX(path, "", "9921")
	require.NoError(t, err)

	require.Equal(t, 2, series.Len())
	// rows come back sorted by date even when the sheet is not
	assert.Equal(t, "2024-01-02", series.FirstDate().Format("2006-01-02"))
	assert.Equal(t, "2024-01-03", series.LastDate().Format("2006-01-02"))
	assert.Equal(t, "101", series.At(0).Close.String())
	assert.Equal(t, "1500", series.At(1).Volume.String())
	assert.Equal(t, "9921", series.At(0).Ticker)
}

func TestReadPriceSeriesXLSX_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]interface{}
	}{
		{
			name: "missing column",
			rows: [][]interface{}{
				{"Date", "Open", "High", "Low", "Close"},
				{"2024-01-02", "100", "102", "98", "101"},
			},
		},
		{
			name: "malformed price",
			rows: [][]interface{}{
				{"Date", "Open", "High", "Low", "Close", "Volume"},
				{"2024-01-02", "abc", "102", "98", "101", "1200"},
			},
		},
		{
			name: "malformed date",
			rows: [][]interface{}{
				{"Date", "Open", "High", "Low", "Close", "Volume"},
				{"someday", "100", "102", "98", "101", "1200"},
			},
		},
		{
			name: "negative volume",
			rows: [][]interface{}{
				{"Date", "Open", "High", "Low", "Close", "Volume"},
				{"2024-01-02", "100", "102", "98", "101", "-5"},
			},
		},
		{
			name: "no data rows",
			rows: [][]interface{}{
				{"Date", "Open", "High", "Low", "Close", "Volume"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeWorkbook(t, tt.rows)
			_, err := ReadPriceSeriesXLSX(path, "", "9921")
			assert.Error(t, err)
		})
	}
}

func TestReadPriceSeriesXLSX_MissingFile(t *testing.T) {
	_, err := ReadPriceSeriesXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), "", "9921")
	assert.Error(t, err)
}
