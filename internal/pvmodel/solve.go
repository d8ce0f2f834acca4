package pvmodel

import (
	"gonum.org/v1/gonum/floats"
)

// Sample is one point of a solved characteristic curve.
type Sample struct {
	VoltageV float64 `json:"voltage_v"`
	CurrentA float64 `json:"current_a"`
	PowerW   float64 `json:"power_w"`
}

// Curve is an I-V/P-V characteristic ordered by strictly increasing voltage,
// spanning 0 to Voc inclusive.
type Curve []Sample

// MPP is the maximum power point of a curve. Ties go to the lowest voltage.
// The point is the best curve sample as-is; resolution is bounded by the
// sweep spacing, with no interpolation between samples.
type MPP struct {
	VoltageV float64 `json:"voltage_v"`
	CurrentA float64 `json:"current_a"`
	PowerW   float64 `json:"power_w"`
}

// diodeParams holds the per-solve currents and the exponent scale of the
// single-diode equation.
type diodeParams struct {
	iphA   float64 // photo-generated current
	ioA    float64 // diode saturation current
	expInv float64 // q / (n·K·Ns·T), multiplies the diode voltage V + I·Rs
}

// deriveParams computes the saturation and photo currents for one condition.
func deriveParams(cfg ArrayConfig, cond OperatingCondition) diodeParams {
	t := cond.TemperatureK
	ns := float64(cfg.CellCount)

	expInv := electronCharge / (idealityFactor * boltzmann * ns * t)

	// Reverse saturation current pinned at the open-circuit point
	irs := cfg.IscA / (stableExp(expInv*cfg.VocV) - 1)

	// Saturation current shifted from the reference temperature
	io := irs * (t / refTempK) *
		stableExp(electronCharge*bandgapEV*(1/refTempK-1/t)/(idealityFactor*boltzmann))

	// Photo current scales with irradiance and the temperature offset
	iph := (cfg.IscA + tempCoeffAPerK*(t-refTempK)) * (cond.IrradianceWm2 / 1000)

	return diodeParams{iphA: iph, ioA: io, expInv: expInv}
}

// Solve sweeps the voltage range and solves the implicit single-diode
// equation at each sample, returning the full curve and its maximum power
// point. A root-finding failure on any sample aborts the whole solve.
//
// The solve is stateless and allocation-local, so one ArrayConfig may be
// shared by concurrent callers.
func (cfg ArrayConfig) Solve(cond OperatingCondition) (Curve, MPP, error) {
	if err := cond.Validate(); err != nil {
		return nil, MPP{}, err
	}

	p := deriveParams(cfg, cond)

	// f(I) = Iph − Io·(exp(k·(V+I·Rs)) − 1) − (V+I·Rs)/Rsh − I
	fn := func(v float64) func(float64) float64 {
		return func(i float64) float64 {
			vd := v + i*seriesOhms
			return p.iphA - p.ioA*(stableExp(p.expInv*vd)-1) - vd/shuntOhms - i
		}
	}
	deriv := func(v float64) func(float64) float64 {
		return func(i float64) float64 {
			vd := v + i*seriesOhms
			return -p.ioA*stableExp(p.expInv*vd)*p.expInv*seriesOhms - seriesOhms/shuntOhms - 1
		}
	}

	voltages := make([]float64, CurveSamples)
	floats.Span(voltages, 0, cfg.VocV)

	curve := make(Curve, CurveSamples)
	powers := make([]float64, CurveSamples)
	for idx, v := range voltages {
		// Every sample starts from the short-circuit current; the sweep
		// result must not depend on neighboring samples.
		current, iters, err := newtonSolve(fn(v), deriv(v), cfg.IscA)
		if err != nil {
			return nil, MPP{}, &RootFindingError{VoltageV: v, Iterations: iters, Err: err}
		}
		curve[idx] = Sample{VoltageV: v, CurrentA: current, PowerW: v * current}
		powers[idx] = curve[idx].PowerW
	}

	// MaxIdx returns the first index on ties
	best := floats.MaxIdx(powers)
	mpp := MPP{
		VoltageV: curve[best].VoltageV,
		CurrentA: curve[best].CurrentA,
		PowerW:   curve[best].PowerW,
	}
	return curve, mpp, nil
}

// Solve builds an array from the panel counts and solves one condition.
func Solve(seriesPanels, parallelPanels int, irradianceWm2, temperatureK float64) (Curve, MPP, error) {
	cfg, err := NewArrayConfig(seriesPanels, parallelPanels)
	if err != nil {
		return nil, MPP{}, err
	}
	return cfg.Solve(OperatingCondition{IrradianceWm2: irradianceWm2, TemperatureK: temperatureK})
}
