package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"pv_simulator/internal/pvmodel"
)

type result struct {
	irradiance float64
	isc        float64
	mpp        pvmodel.MPP
}

func main() {
	series := flag.Int("series", 4, "panels connected in series")
	parallel := flag.Int("parallel", 3, "panels connected in parallel")
	temperature := flag.Float64("temperature", 298, "cell temperature (K)")
	levelsFlag := flag.String("levels", "200,400,600,800,1000", "comma-separated irradiance levels in W/m²")
	csvOut := flag.String("csv-out", "", "optional CSV output for sweep results")
	flag.Parse()

	levels, err := parseLevels(*levelsFlag)
	if err != nil {
		log.Fatalf("Invalid levels %q: %v", *levelsFlag, err)
	}
	sort.Float64s(levels)

	cfg, err := pvmodel.NewArrayConfig(*series, *parallel)
	if err != nil {
		log.Fatalf("Array config: %v", err)
	}

	results := make([]result, 0, len(levels))
	for _, g := range levels {
		cond := pvmodel.OperatingCondition{IrradianceWm2: g, TemperatureK: *temperature}
		curve, mpp, err := cfg.Solve(cond)
		if err != nil {
			log.Fatalf("Solving curve at %g W/m²: %v", g, err)
		}
		results = append(results, result{
			irradiance: g,
			isc:        curve[0].CurrentA,
			mpp:        mpp,
		})
	}

	printTable(results, cfg, *temperature)

	if *csvOut != "" {
		writeSweepCSV(*csvOut, results)
	}
}

func printTable(results []result, cfg pvmodel.ArrayConfig, temperature float64) {
	if len(results) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Irradiance Sweep")
	fmt.Printf("  Array: %d series × %d parallel (%.2f A / %.2f V rated)\n",
		cfg.SeriesPanels, cfg.ParallelPanels, cfg.IscA, cfg.VocV)
	fmt.Printf("  Temperature: %g K\n", temperature)
	fmt.Println()

	fmt.Printf(" %10s │ %8s │ %8s │ %8s │ %10s │ %8s\n",
		"Irradiance", "I at 0V", "Vmpp", "Impp", "Pmax", "Marginal")
	fmt.Printf("────────────┼──────────┼──────────┼──────────┼────────────┼─────────\n")

	for i, r := range results {
		marginal := "-"
		if i > 0 {
			prev := results[i-1]
			dG := r.irradiance - prev.irradiance
			if dG > 0 {
				m := (r.mpp.PowerW - prev.mpp.PowerW) / dG
				marginal = fmt.Sprintf("%.2f", m)
			}
		}

		fmt.Printf(" %5.0f W/m² │ %6.2f A │ %6.1f V │ %6.2f A │ %8.1f W │ %8s\n",
			r.irradiance,
			r.isc,
			r.mpp.VoltageV,
			r.mpp.CurrentA,
			r.mpp.PowerW,
			marginal,
		)
	}
	fmt.Println()
}

func parseLevels(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	levels := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("irradiance must be positive, got %v", v)
		}
		levels = append(levels, v)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no irradiance levels specified")
	}
	return levels, nil
}

func writeSweepCSV(path string, results []result) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Creating CSV file: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"irradiance_wm2", "isc_a", "vmpp_v", "impp_a", "pmax_w"})
	for _, r := range results {
		w.Write([]string{
			fmt.Sprintf("%.0f", r.irradiance),
			fmt.Sprintf("%.4f", r.isc),
			fmt.Sprintf("%.4f", r.mpp.VoltageV),
			fmt.Sprintf("%.4f", r.mpp.CurrentA),
			fmt.Sprintf("%.4f", r.mpp.PowerW),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("Writing CSV: %v", err)
	}

	fmt.Printf("  Sweep data written to %s (%d levels)\n\n", path, len(results))
}
