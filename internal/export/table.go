package export

import (
	"fmt"
	"io"

	"pv_simulator/internal/pvmodel"
)

// WriteReport writes the solve summary and the sampled data as a fixed-width
// console table. maxRows caps the data table; zero or negative prints every
// sample.
func WriteReport(w io.Writer, cfg pvmodel.ArrayConfig, cond pvmodel.OperatingCondition, curve pvmodel.Curve, mpp pvmodel.MPP, maxRows int) {
	fmt.Fprintf(w, "Results for %d panels in parallel and %d panels in series\n",
		cfg.ParallelPanels, cfg.SeriesPanels)
	fmt.Fprintf(w, "Irradiance: %g W/m², Temperature: %g K\n", cond.IrradianceWm2, cond.TemperatureK)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Results ===")
	fmt.Fprintf(w, "  Short-circuit current (Isc): %8.2f A\n", cfg.IscA)
	fmt.Fprintf(w, "  Open-circuit voltage (Voc):  %8.2f V\n", cfg.VocV)
	fmt.Fprintf(w, "  MPP current (Impp):          %8.2f A\n", mpp.CurrentA)
	fmt.Fprintf(w, "  MPP voltage (Vmpp):          %8.2f V\n", mpp.VoltageV)
	fmt.Fprintf(w, "  Maximum power (Pmax):        %8.2f W\n", mpp.PowerW)
	fmt.Fprintln(w)

	limit := len(curve)
	if maxRows > 0 && maxRows < limit {
		limit = maxRows
	}

	fmt.Fprintln(w, "=== Simulation Data ===")
	fmt.Fprintf(w, "  %10s │ %10s │ %10s\n", "Voltage V", "Current A", "Power W")
	fmt.Fprintf(w, "  ───────────┼────────────┼───────────\n")
	for i := 0; i < limit; i++ {
		s := curve[i]
		fmt.Fprintf(w, "  %10.4f │ %10.4f │ %10.4f\n", s.VoltageV, s.CurrentA, s.PowerW)
	}
	if limit < len(curve) {
		fmt.Fprintf(w, "  ... and %d more samples\n", len(curve)-limit)
	}
	fmt.Fprintln(w)
}
