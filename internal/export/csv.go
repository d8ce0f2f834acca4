package export

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"io"

	"pv_simulator/internal/pvmodel"
)

// WriteCurveCSV writes the solved curve as CSV.
//
// Format:
//
//	voltage_v,current_a,power_w
//	0.000000,28.034812,0.000000
func WriteCurveCSV(w io.Writer, curve pvmodel.Curve) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"voltage_v", "current_a", "power_w"})
	for _, s := range curve {
		cw.Write([]string{
			fmt.Sprintf("%.6f", s.VoltageV),
			fmt.Sprintf("%.6f", s.CurrentA),
			fmt.Sprintf("%.6f", s.PowerW),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing curve CSV: %w", err)
	}
	return nil
}

// CurveCSVBase64 returns the curve CSV base64-encoded for embedding in a
// JSON response.
func CurveCSVBase64(curve pvmodel.Curve) (string, error) {
	var buf bytes.Buffer
	if err := WriteCurveCSV(&buf, curve); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
