package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"pv_simulator/internal/export"
	"pv_simulator/internal/pvmodel"
)

func main() {
	series := flag.Int("series", 4, "panels connected in series")
	parallel := flag.Int("parallel", 3, "panels connected in parallel")
	irradiance := flag.Float64("irradiance", 1000, "irradiance (W/m²)")
	temperature := flag.Float64("temperature", 298, "cell temperature (K)")
	rows := flag.Int("rows", 20, "curve samples to print (0 for all)")
	csvOut := flag.String("csv-out", "", "optional CSV output for the full curve")
	flag.Parse()

	cfg, err := pvmodel.NewArrayConfig(*series, *parallel)
	if err != nil {
		log.Fatalf("Array config: %v", err)
	}
	cond := pvmodel.OperatingCondition{IrradianceWm2: *irradiance, TemperatureK: *temperature}

	curve, mpp, err := cfg.Solve(cond)
	if err != nil {
		log.Fatalf("Solving curve: %v", err)
	}

	export.WriteReport(os.Stdout, cfg, cond, curve, mpp, *rows)

	if *csvOut != "" {
		writeCurveCSV(*csvOut, curve)
	}
}

func writeCurveCSV(path string, curve pvmodel.Curve) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Creating CSV file: %v", err)
	}
	defer f.Close()

	if err := export.WriteCurveCSV(f, curve); err != nil {
		log.Fatalf("Writing CSV: %v", err)
	}
	fmt.Printf("  Curve data written to %s (%d samples)\n\n", path, len(curve))
}
