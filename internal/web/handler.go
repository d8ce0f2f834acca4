package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"pv_simulator/internal/charts"
	"pv_simulator/internal/export"
	"pv_simulator/internal/pvmodel"
)

// Handler serves the JSON API, the curve images and the HTML results page.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Register attaches all routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/solve", h.handleSolve)
	mux.HandleFunc("GET /api/solve.csv", h.handleSolveCSV)
	mux.HandleFunc("GET /curves/pv.png", h.handlePVCurve)
	mux.HandleFunc("GET /curves/iv.png", h.handleIVCurve)
	mux.HandleFunc("GET /{$}", h.handleIndex)
}

type solveRequest struct {
	SeriesPanels   int     `json:"series_panels"`
	ParallelPanels int     `json:"parallel_panels"`
	IrradianceWm2  float64 `json:"irradiance_wm2"`
	TemperatureK   float64 `json:"temperature_k"`
}

type solveResponse struct {
	SeriesPanels   int     `json:"series_panels"`
	ParallelPanels int     `json:"parallel_panels"`
	IrradianceWm2  float64 `json:"irradiance_wm2"`
	TemperatureK   float64 `json:"temperature_k"`

	IscA  float64 `json:"isc_a"`
	VocV  float64 `json:"voc_v"`
	VmppV float64 `json:"vmpp_v"`
	ImppA float64 `json:"impp_a"`
	PmaxW float64 `json:"pmax_w"`

	Curve     pvmodel.Curve `json:"curve"`
	CSVBase64 string        `json:"csv_base64"`
}

// solved bundles everything one request needs from a finished solve.
type solved struct {
	cfg   pvmodel.ArrayConfig
	cond  pvmodel.OperatingCondition
	curve pvmodel.Curve
	mpp   pvmodel.MPP
}

// runSolve applies the standard-condition defaults, builds the array and
// solves. A zero irradiance or temperature selects 1000 W/m² / 298 K.
func runSolve(series, parallel int, irradianceWm2, temperatureK float64) (solved, error) {
	if irradianceWm2 == 0 {
		irradianceWm2 = 1000
	}
	if temperatureK == 0 {
		temperatureK = 298
	}

	cfg, err := pvmodel.NewArrayConfig(series, parallel)
	if err != nil {
		return solved{}, err
	}

	cond := pvmodel.OperatingCondition{IrradianceWm2: irradianceWm2, TemperatureK: temperatureK}
	curve, mpp, err := cfg.Solve(cond)
	if err != nil {
		return solved{}, err
	}

	return solved{cfg: cfg, cond: cond, curve: curve, mpp: mpp}, nil
}

// solveFromQuery reads panel counts and conditions from URL parameters.
// Missing parameters fall back to the 4-series 3-parallel reference array
// at standard test conditions.
func solveFromQuery(r *http.Request) (solved, error) {
	q := r.URL.Query()

	series, err := intParam(q, "series", 4)
	if err != nil {
		return solved{}, err
	}
	parallel, err := intParam(q, "parallel", 3)
	if err != nil {
		return solved{}, err
	}
	irradiance, err := floatParam(q, "irradiance", 1000)
	if err != nil {
		return solved{}, err
	}
	temperature, err := floatParam(q, "temperature", 298)
	if err != nil {
		return solved{}, err
	}

	return runSolve(series, parallel, irradiance, temperature)
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be an integer, got %q", name, raw)
	}
	return v, nil
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be a number, got %q", name, raw)
	}
	return v, nil
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := runSolve(req.SeriesPanels, req.ParallelPanels, req.IrradianceWm2, req.TemperatureK)
	if err != nil {
		writeSolveError(w, err)
		return
	}

	csvB64, err := export.CurveCSVBase64(res.curve)
	if err != nil {
		log.Printf("Error encoding curve CSV: %v", err)
		writeJSONError(w, "encoding curve CSV", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(solveResponse{
		SeriesPanels:   res.cfg.SeriesPanels,
		ParallelPanels: res.cfg.ParallelPanels,
		IrradianceWm2:  res.cond.IrradianceWm2,
		TemperatureK:   res.cond.TemperatureK,
		IscA:           res.cfg.IscA,
		VocV:           res.cfg.VocV,
		VmppV:          res.mpp.VoltageV,
		ImppA:          res.mpp.CurrentA,
		PmaxW:          res.mpp.PowerW,
		Curve:          res.curve,
		CSVBase64:      csvB64,
	}); err != nil {
		log.Printf("Error encoding solve response: %v", err)
	}
}

func (h *Handler) handleSolveCSV(w http.ResponseWriter, r *http.Request) {
	res, err := solveFromQuery(r)
	if err != nil {
		writeSolveError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="pv_curve.csv"`)
	if err := export.WriteCurveCSV(w, res.curve); err != nil {
		log.Printf("Error writing CSV response: %v", err)
	}
}

func (h *Handler) handlePVCurve(w http.ResponseWriter, r *http.Request) {
	h.renderCurve(w, r, charts.PVCurvePNG)
}

func (h *Handler) handleIVCurve(w http.ResponseWriter, r *http.Request) {
	h.renderCurve(w, r, charts.IVCurvePNG)
}

// renderCurve solves from the query and streams a rendered chart. The PNG is
// rendered into a buffer first so a failure can still produce an error status.
func (h *Handler) renderCurve(w http.ResponseWriter, r *http.Request, render func(io.Writer, pvmodel.Curve) error) {
	res, err := solveFromQuery(r)
	if err != nil {
		writeSolveError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := render(&buf, res.curve); err != nil {
		log.Printf("Error rendering curve: %v", err)
		writeJSONError(w, "rendering curve", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing PNG response: %v", err)
	}
}

// writeSolveError maps solver errors onto HTTP status codes: non-convergence
// is 422, everything else the caller sent is 400.
func writeSolveError(w http.ResponseWriter, err error) {
	var rfe *pvmodel.RootFindingError
	if errors.As(err, &rfe) {
		writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSONError(w, err.Error(), http.StatusBadRequest)
}

func writeJSONError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg}); err != nil {
		log.Printf("Error writing error response: %v", err)
	}
}
