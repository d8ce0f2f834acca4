package pvmodel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArrayConfig_DerivedRatings(t *testing.T) {
	cfg, err := NewArrayConfig(4, 3)
	require.NoError(t, err)

	// 9.35 A * 3 branches, 47.4 V * 4 panels, 72 cells * 4 panels
	assert.InDelta(t, 28.05, cfg.IscA, 1e-9)
	assert.InDelta(t, 189.6, cfg.VocV, 1e-9)
	assert.Equal(t, 288, cfg.CellCount)
	assert.Equal(t, 4, cfg.SeriesPanels)
	assert.Equal(t, 3, cfg.ParallelPanels)
}

func TestNewArrayConfig_RejectsNonPositiveCounts(t *testing.T) {
	cases := []struct {
		name             string
		series, parallel int
	}{
		{"zero series", 0, 3},
		{"negative series", -1, 3},
		{"zero parallel", 4, 0},
		{"negative parallel", 4, -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewArrayConfig(tc.series, tc.parallel)
			assert.ErrorIs(t, err, ErrInvalidArrayConfig)
		})
	}
}

func TestOperatingCondition_Validate(t *testing.T) {
	cases := []struct {
		name string
		cond OperatingCondition
		ok   bool
	}{
		{"standard test condition", OperatingCondition{IrradianceWm2: 1000, TemperatureK: 298}, true},
		{"dim but positive", OperatingCondition{IrradianceWm2: 0.5, TemperatureK: 250}, true},
		{"zero irradiance", OperatingCondition{IrradianceWm2: 0, TemperatureK: 298}, false},
		{"negative irradiance", OperatingCondition{IrradianceWm2: -5, TemperatureK: 298}, false},
		{"zero temperature", OperatingCondition{IrradianceWm2: 1000, TemperatureK: 0}, false},
		{"negative temperature", OperatingCondition{IrradianceWm2: 1000, TemperatureK: -10}, false},
		{"NaN irradiance", OperatingCondition{IrradianceWm2: math.NaN(), TemperatureK: 298}, false},
		{"Inf irradiance", OperatingCondition{IrradianceWm2: math.Inf(1), TemperatureK: 298}, false},
		{"NaN temperature", OperatingCondition{IrradianceWm2: 1000, TemperatureK: math.NaN()}, false},
		{"Inf temperature", OperatingCondition{IrradianceWm2: 1000, TemperatureK: math.Inf(1)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cond.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidOperatingCondition)
			}
		})
	}
}
