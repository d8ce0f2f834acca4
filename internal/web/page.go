package web

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"pv_simulator/internal/pvmodel"
)

const indexHTML = `<!DOCTYPE html>
<html>
<head>
	<title>PV Model Results</title>
	<style>
		body { font-family: sans-serif; margin: 2em; }
		table { border-collapse: collapse; margin: 1em 0; }
		th, td { border: 1px solid #444; padding: 0.3em 0.8em; text-align: right; }
		th { background: #eee; }
		form label { margin-right: 1.5em; }
	</style>
</head>
<body>
	<h1>PV Model Results</h1>

	<form method="get" action="/">
		<label>Panels in series <input type="number" name="series" value="{{.Cfg.SeriesPanels}}" min="1"></label>
		<label>Panels in parallel <input type="number" name="parallel" value="{{.Cfg.ParallelPanels}}" min="1"></label>
		<label>Irradiance (W/m²) <input type="number" name="irradiance" value="{{.Cond.IrradianceWm2}}" step="any" min="1"></label>
		<label>Temperature (K) <input type="number" name="temperature" value="{{.Cond.TemperatureK}}" step="any" min="1"></label>
		<button type="submit">Solve</button>
	</form>

	<h2>Results for {{.Cfg.ParallelPanels}} panels in parallel and {{.Cfg.SeriesPanels}} panels in series</h2>
	<p>Irradiance: {{.Cond.IrradianceWm2}} W/m², Temperature: {{.Cond.TemperatureK}} K</p>
	<table>
		<tr>
			<th>Short-circuit current (Isc)</th>
			<th>Open-circuit voltage (Voc)</th>
			<th>MPP current (Impp)</th>
			<th>MPP voltage (Vmpp)</th>
			<th>Maximum power (Pmax)</th>
		</tr>
		<tr>
			<td>{{printf "%.2f" .Cfg.IscA}} A</td>
			<td>{{printf "%.2f" .Cfg.VocV}} V</td>
			<td>{{printf "%.2f" .Mpp.CurrentA}} A</td>
			<td>{{printf "%.2f" .Mpp.VoltageV}} V</td>
			<td>{{printf "%.2f" .Mpp.PowerW}} W</td>
		</tr>
	</table>

	<h2>P-V Curve</h2>
	<img src="{{.PVCurveURL}}" alt="P-V Curve">
	<h2>I-V Curve</h2>
	<img src="{{.IVCurveURL}}" alt="I-V Curve">

	<p><a href="{{.CSVURL}}">Download CSV</a></p>

	<h2>Simulation Data</h2>
	<table>
		<tr><th>Voltage (V)</th><th>Current (A)</th><th>Power (W)</th></tr>
		{{range .Curve}}<tr><td>{{printf "%.4f" .VoltageV}}</td><td>{{printf "%.4f" .CurrentA}}</td><td>{{printf "%.4f" .PowerW}}</td></tr>
		{{end}}
	</table>
</body>
</html>
`

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

type indexData struct {
	Cfg   pvmodel.ArrayConfig
	Cond  pvmodel.OperatingCondition
	Mpp   pvmodel.MPP
	Curve pvmodel.Curve

	PVCurveURL string
	IVCurveURL string
	CSVURL     string
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	res, err := solveFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := solveQuery(res.cfg, res.cond)
	data := indexData{
		Cfg:        res.cfg,
		Cond:       res.cond,
		Mpp:        res.mpp,
		Curve:      res.curve,
		PVCurveURL: "/curves/pv.png?" + query,
		IVCurveURL: "/curves/iv.png?" + query,
		CSVURL:     "/api/solve.csv?" + query,
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		log.Printf("Error rendering index page: %v", err)
		http.Error(w, "rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing index page: %v", err)
	}
}

// solveQuery encodes the solved parameters so the image and CSV links
// reproduce exactly this solve.
func solveQuery(cfg pvmodel.ArrayConfig, cond pvmodel.OperatingCondition) string {
	q := url.Values{}
	q.Set("series", strconv.Itoa(cfg.SeriesPanels))
	q.Set("parallel", strconv.Itoa(cfg.ParallelPanels))
	q.Set("irradiance", strconv.FormatFloat(cond.IrradianceWm2, 'f', -1, 64))
	q.Set("temperature", strconv.FormatFloat(cond.TemperatureK, 'f', -1, 64))
	return q.Encode()
}
