package pvmodel

import (
	"errors"
	"fmt"
	"math"
)

// Single-diode model constants. The per-panel ratings describe the reference
// module; none of these are user-configurable.
const (
	electronCharge = 1.60217646e-19 // C
	boltzmann      = 1.3806503e-23  // J/K
	idealityFactor = 1.0
	bandgapEV      = 1.1    // silicon bandgap energy, eV
	shuntOhms      = 545.82 // shunt resistance
	seriesOhms     = 0.39   // series resistance
	tempCoeffAPerK = 0.037  // short-circuit current temperature coefficient
	refTempK       = 298.0  // reference cell temperature

	panelIscA     = 9.35 // per-panel short-circuit current
	panelVocV     = 47.4 // per-panel open-circuit voltage
	cellsPerPanel = 72
)

// CurveSamples is the number of voltage points in a solved curve.
const CurveSamples = 1000

var (
	// ErrInvalidArrayConfig reports non-positive panel counts.
	ErrInvalidArrayConfig = errors.New("invalid array config")

	// ErrInvalidOperatingCondition reports a non-finite or non-positive
	// irradiance or temperature.
	ErrInvalidOperatingCondition = errors.New("invalid operating condition")
)

// ArrayConfig describes a PV array built from identical panels wired in
// series strings and parallel branches. The electrical ratings are derived
// from the panel counts at construction and never mutated afterwards.
type ArrayConfig struct {
	SeriesPanels   int `json:"series_panels"`
	ParallelPanels int `json:"parallel_panels"`

	// Derived
	IscA      float64 `json:"isc_a"`      // array short-circuit current
	VocV      float64 `json:"voc_v"`      // array open-circuit voltage
	CellCount int     `json:"cell_count"` // cells in series along one string
}

// NewArrayConfig validates the panel counts and derives the array ratings.
func NewArrayConfig(seriesPanels, parallelPanels int) (ArrayConfig, error) {
	if seriesPanels <= 0 {
		return ArrayConfig{}, fmt.Errorf("%w: series panel count must be positive, got %d", ErrInvalidArrayConfig, seriesPanels)
	}
	if parallelPanels <= 0 {
		return ArrayConfig{}, fmt.Errorf("%w: parallel panel count must be positive, got %d", ErrInvalidArrayConfig, parallelPanels)
	}
	return ArrayConfig{
		SeriesPanels:   seriesPanels,
		ParallelPanels: parallelPanels,
		IscA:           panelIscA * float64(parallelPanels),
		VocV:           panelVocV * float64(seriesPanels),
		CellCount:      cellsPerPanel * seriesPanels,
	}, nil
}

// OperatingCondition is the environment a solve runs under.
type OperatingCondition struct {
	IrradianceWm2 float64 `json:"irradiance_wm2"`
	TemperatureK  float64 `json:"temperature_k"`
}

// Validate rejects non-finite or non-positive values before any numeric work.
func (c OperatingCondition) Validate() error {
	if !isFinite(c.IrradianceWm2) || c.IrradianceWm2 <= 0 {
		return fmt.Errorf("%w: irradiance must be a positive finite number of W/m², got %v", ErrInvalidOperatingCondition, c.IrradianceWm2)
	}
	if !isFinite(c.TemperatureK) || c.TemperatureK <= 0 {
		return fmt.Errorf("%w: temperature must be a positive finite number of kelvin, got %v", ErrInvalidOperatingCondition, c.TemperatureK)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
