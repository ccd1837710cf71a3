package utils_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ldsec/platedrift/utils"
)

const volcanoes = `name,0.4,0
Kilauea,0.4,0
Mauna Kea,0.9, 54
Haleakala,1.3,182
West Maui,??,221
Kahoolawe,1.3,
Lanai,1.45,268
Molokai,NaN,316
Oahu,3.0,374
Kauai,5.1,519
`

func TestExtractAgeDistance(t *testing.T) {
	tbl, err := utils.ReadCSV(strings.NewReader(volcanoes))
	require.NoError(t, err)
	require.Equal(t, []string{"name", "0.4", "0"}, tbl.Header)
	require.Len(t, tbl.Rows, 9)

	age, dist, err := utils.ExtractAgeDistance(tbl, "0.4", "0")
	require.NoError(t, err)
	require.Equal(t, []float64{0.4, 0.9, 1.3, 1.45, 3.0, 5.1}, age)
	require.Equal(t, []float64{0, 54, 182, 268, 374, 519}, dist)
}

func TestExtractAgeDistanceShortRows(t *testing.T) {
	tbl, err := utils.ReadCSV(strings.NewReader("age,dist\n1,10\n2\n3,30,extra\n"))
	require.NoError(t, err)

	age, dist, err := utils.ExtractAgeDistance(tbl, "age", "dist")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3}, age)
	require.Equal(t, []float64{10, 30}, dist)
}

func TestExtractAgeDistanceMissingColumn(t *testing.T) {
	tbl, err := utils.ReadCSV(strings.NewReader(volcanoes))
	require.NoError(t, err)

	_, _, err = utils.ExtractAgeDistance(tbl, "age", "0")
	require.ErrorIs(t, err, utils.ErrNoColumn)
	_, _, err = utils.ExtractAgeDistance(tbl, "0.4", "distance")
	require.ErrorIs(t, err, utils.ErrNoColumn)
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := utils.ReadCSV(strings.NewReader(""))
	require.Error(t, err)
}

func TestLoadTableCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volcanoes.csv")
	require.NoError(t, os.WriteFile(path, []byte(volcanoes), 0o644))

	tbl, err := utils.LoadTable(path)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 9)

	_, err = utils.LoadTable(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestLoadTableWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volcanoes.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"age", "distance"},
		{0.4, 0},
		{1.3, 182},
		{"n/a", 200},
		{3.0, 374},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := utils.LoadTable(path)
	require.NoError(t, err)
	require.Equal(t, []string{"age", "distance"}, tbl.Header)

	age, dist, err := utils.ExtractAgeDistance(tbl, "age", "distance")
	require.NoError(t, err)
	require.Equal(t, []float64{0.4, 1.3, 3}, age)
	require.Equal(t, []float64{0, 182, 374}, dist)
}
