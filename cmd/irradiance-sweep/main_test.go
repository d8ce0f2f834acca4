package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv_simulator/internal/pvmodel"
)

func TestParseLevels(t *testing.T) {
	levels, err := parseLevels("200,400,600,800,1000")
	require.NoError(t, err)
	assert.Equal(t, []float64{200, 400, 600, 800, 1000}, levels)
}

func TestParseLevelsWhitespaceAndGaps(t *testing.T) {
	levels, err := parseLevels(" 500 , ,750,")
	require.NoError(t, err)
	assert.Equal(t, []float64{500, 750}, levels)
}

func TestParseLevelsRejectsNonNumeric(t *testing.T) {
	_, err := parseLevels("200,bright,600")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bright"`)
}

func TestParseLevelsRejectsNonPositive(t *testing.T) {
	_, err := parseLevels("200,0,600")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")

	_, err = parseLevels("-100")
	require.Error(t, err)
}

func TestParseLevelsEmpty(t *testing.T) {
	_, err := parseLevels(" , ,")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no irradiance levels")
}

func TestWriteSweepCSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sweep.csv")

	results := []result{
		{irradiance: 500, isc: 14.02, mpp: pvmodel.MPP{VoltageV: 150.5, CurrentA: 13.1, PowerW: 1971.55}},
		{irradiance: 1000, isc: 28.03, mpp: pvmodel.MPP{VoltageV: 152.1, CurrentA: 27.2, PowerW: 4137.12}},
	}

	writeSweepCSV(csvPath, results)

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	assert.Len(t, rows, 3) // header + 2 levels
	assert.Equal(t, []string{"irradiance_wm2", "isc_a", "vmpp_v", "impp_a", "pmax_w"}, rows[0])
	assert.Equal(t, "500", rows[1][0])
	assert.Equal(t, "14.0200", rows[1][1])
	assert.Equal(t, "1000", rows[2][0])
	assert.Equal(t, "4137.1200", rows[2][4])
}
