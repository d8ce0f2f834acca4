package ws

import (
	"encoding/json"

	"pv_simulator/internal/pvmodel"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeSolveRequest = "solve:request"

	// Server -> Client
	TypeSolveResult = "solve:result"
	TypeSolveError  = "solve:error"
)

// SolveRequestPayload asks for one characteristic solve. A zero irradiance
// or temperature selects the standard test condition (1000 W/m², 298 K).
type SolveRequestPayload struct {
	SeriesPanels   int     `json:"series_panels"`
	ParallelPanels int     `json:"parallel_panels"`
	IrradianceWm2  float64 `json:"irradiance_wm2"`
	TemperatureK   float64 `json:"temperature_k"`
}

// SolveResultPayload carries a full solve to every connected viewer.
type SolveResultPayload struct {
	SeriesPanels   int     `json:"series_panels"`
	ParallelPanels int     `json:"parallel_panels"`
	IrradianceWm2  float64 `json:"irradiance_wm2"`
	TemperatureK   float64 `json:"temperature_k"`

	IscA  float64 `json:"isc_a"`
	VocV  float64 `json:"voc_v"`
	VmppV float64 `json:"vmpp_v"`
	ImppA float64 `json:"impp_a"`
	PmaxW float64 `json:"pmax_w"`

	Curve pvmodel.Curve `json:"curve"`
}

// SolveErrorPayload is sent back to the requesting client only.
type SolveErrorPayload struct {
	Error string `json:"error"`
}

// NewSolveResult assembles the broadcast payload from a finished solve.
func NewSolveResult(cfg pvmodel.ArrayConfig, cond pvmodel.OperatingCondition, curve pvmodel.Curve, mpp pvmodel.MPP) SolveResultPayload {
	return SolveResultPayload{
		SeriesPanels:   cfg.SeriesPanels,
		ParallelPanels: cfg.ParallelPanels,
		IrradianceWm2:  cond.IrradianceWm2,
		TemperatureK:   cond.TemperatureK,
		IscA:           cfg.IscA,
		VocV:           cfg.VocV,
		VmppV:          mpp.VoltageV,
		ImppA:          mpp.CurrentA,
		PmaxW:          mpp.PowerW,
		Curve:          curve,
	}
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}
