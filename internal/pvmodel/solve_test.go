package pvmodel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solveReference runs the 4-series 3-parallel array at standard test
// conditions (1000 W/m², 298 K).
func solveReference(t *testing.T) (Curve, MPP) {
	t.Helper()
	curve, mpp, err := Solve(4, 3, 1000, 298)
	require.NoError(t, err)
	return curve, mpp
}

func TestSolve_CurveShape(t *testing.T) {
	curve, _ := solveReference(t)

	require.Len(t, curve, CurveSamples)
	assert.InDelta(t, 0, curve[0].VoltageV, 1e-12)
	assert.InDelta(t, 189.6, curve[len(curve)-1].VoltageV, 1e-12)

	for i, s := range curve {
		if i > 0 {
			require.Greater(t, s.VoltageV, curve[i-1].VoltageV, "sample %d", i)
		}
		require.False(t, math.IsNaN(s.CurrentA), "sample %d", i)
		require.InDelta(t, s.VoltageV*s.CurrentA, s.PowerW, 1e-12, "sample %d", i)
	}
}

func TestSolve_CurveEndpoints(t *testing.T) {
	curve, _ := solveReference(t)

	// At V=0 the current sits just under Isc (series/shunt losses only)
	assert.InDelta(t, 28.05, curve[0].CurrentA, 0.1)

	// At V=Voc the diode and shunt terms pull the current slightly
	// negative; the raw root is kept rather than clamped to zero.
	last := curve[len(curve)-1]
	assert.InDelta(t, 0, last.CurrentA, 0.5)
	assert.Less(t, last.CurrentA, 0.0)
}

func TestSolve_MaxPowerPoint(t *testing.T) {
	curve, mpp := solveReference(t)

	// MPP is the best sample of the curve
	var best Sample
	for _, s := range curve {
		if s.PowerW > best.PowerW {
			best = s
		}
	}
	assert.Equal(t, best.VoltageV, mpp.VoltageV)
	assert.Equal(t, best.CurrentA, mpp.CurrentA)
	assert.Equal(t, best.PowerW, mpp.PowerW)

	// Fill factor for this array lands in the usual crystalline band
	ratedW := 28.05 * 189.6
	assert.Greater(t, mpp.PowerW, 0.70*ratedW)
	assert.Less(t, mpp.PowerW, 0.85*ratedW)
}

func TestSolve_PmaxGrowsWithIrradiance(t *testing.T) {
	var prev float64
	for _, g := range []float64{200, 400, 600, 800, 1000} {
		_, mpp, err := Solve(4, 3, g, 298)
		require.NoError(t, err)
		assert.Greater(t, mpp.PowerW, prev, "irradiance %v", g)
		prev = mpp.PowerW
	}
}

func TestSolve_HotterCellProducesLess(t *testing.T) {
	_, cool, err := Solve(4, 3, 1000, 298)
	require.NoError(t, err)
	_, hot, err := Solve(4, 3, 1000, 330)
	require.NoError(t, err)

	assert.Less(t, hot.PowerW, cool.PowerW)
}

func TestSolve_LowIrradianceScalesCurrent(t *testing.T) {
	curve, _, err := Solve(4, 3, 100, 298)
	require.NoError(t, err)

	// Photo current scales linearly: 28.05 A * 100/1000
	assert.InDelta(t, 2.805, curve[0].CurrentA, 0.05)
}

func TestSolve_Idempotent(t *testing.T) {
	c1, m1, err := Solve(4, 3, 1000, 298)
	require.NoError(t, err)
	c2, m2, err := Solve(4, 3, 1000, 298)
	require.NoError(t, err)

	assert.Equal(t, c1, c2)
	assert.Equal(t, m1, m2)
}

func TestSolve_RejectsInvalidInputs(t *testing.T) {
	cases := []struct {
		name             string
		series, parallel int
		g, temp          float64
		want             error
	}{
		{"zero series", 0, 3, 1000, 298, ErrInvalidArrayConfig},
		{"negative parallel", 4, -1, 1000, 298, ErrInvalidArrayConfig},
		{"negative irradiance", 4, 3, -5, 298, ErrInvalidOperatingCondition},
		{"zero temperature", 4, 3, 1000, 0, ErrInvalidOperatingCondition},
		{"NaN temperature", 4, 3, 1000, math.NaN(), ErrInvalidOperatingCondition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			curve, _, err := Solve(tc.series, tc.parallel, tc.g, tc.temp)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, curve)
		})
	}
}

func TestDeriveParams_ReferenceTemperature(t *testing.T) {
	cfg, err := NewArrayConfig(4, 3)
	require.NoError(t, err)

	// At T=Tref the temperature shift is a no-op: Io equals Irs
	p := deriveParams(cfg, OperatingCondition{IrradianceWm2: 1000, TemperatureK: refTempK})
	irs := cfg.IscA / (math.Exp(p.expInv*cfg.VocV) - 1)
	assert.InDelta(t, irs, p.ioA, irs*1e-9)
	assert.InDelta(t, cfg.IscA, p.iphA, 1e-9)
	assert.False(t, math.IsNaN(p.ioA))
}
