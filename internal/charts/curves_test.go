package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv_simulator/internal/pvmodel"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func testCurve(t *testing.T) pvmodel.Curve {
	t.Helper()
	curve, _, err := pvmodel.Solve(2, 1, 1000, 298)
	require.NoError(t, err)
	return curve
}

func TestPVCurvePNG_ProducesPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PVCurvePNG(&buf, testCurve(t)))

	assert.Greater(t, buf.Len(), len(pngMagic))
	assert.Equal(t, pngMagic, buf.Bytes()[:len(pngMagic)])
}

func TestIVCurvePNG_ProducesPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, IVCurvePNG(&buf, testCurve(t)))

	assert.Greater(t, buf.Len(), len(pngMagic))
	assert.Equal(t, pngMagic, buf.Bytes()[:len(pngMagic)])
}

func TestRenderLine_EmptyCurveStillRenders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PVCurvePNG(&buf, nil))
	assert.Greater(t, buf.Len(), 0)
}
