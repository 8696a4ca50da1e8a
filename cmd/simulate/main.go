package main

import (
	"flag"
	"log/slog"
	"os"

	"solardirect/internal/report"
	"solardirect/internal/scenario"
)

func main() {
	scenarioPath := flag.String("scenario", "scenarios/remote_clinic.yaml", "scenario file (YAML or JSON)")
	outPath := flag.String("out", "", "write the per-interval history as CSV to this path")
	durationHours := flag.Float64("duration", 0, "override the scenario's duration_hours")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	scn, err := scenario.Read(*scenarioPath)
	if err != nil {
		slog.Error("Failed to read scenario", "path", *scenarioPath, "error", err)
		os.Exit(1)
	}
	if *durationHours > 0 {
		scn.Simulation.DurationHours = *durationHours
	}

	sim, err := scn.Build()
	if err != nil {
		slog.Error("Invalid scenario", "path", *scenarioPath, "error", err)
		os.Exit(1)
	}

	slog.Info("Starting simulation",
		"scenario", scn.Name,
		"run_id", sim.RunID(),
		"loads", len(sim.Loads()),
		"duration_hours", scn.Simulation.DurationHours,
	)

	history := sim.Run()

	loadNames := report.Names(sim.Loads())
	summary := report.Summarize(history, loadNames, sim.Timestep())

	slog.Info("Simulation complete",
		"intervals", summary.Intervals,
		"solar_delivered_wh", summary.SolarDeliveredWh,
		"battery_discharge_wh", summary.BatteryDischargeWh,
		"battery_charge_wh", summary.BatteryChargeWh,
		"unserved_wh", summary.UnservedWh,
		"curtailed_wh", summary.CurtailedWh,
		"min_soc", summary.MinSOC,
		"final_soc", summary.FinalSOC,
	)
	for _, ls := range summary.Loads {
		slog.Info("Load summary",
			"load", ls.Name,
			"uptime_frac", ls.UptimeFrac,
			"shed_events", ls.ShedEvents,
			"restore_events", ls.RestoreEvents,
		)
	}

	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			slog.Error("Failed to create output file", "path", *outPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := report.WriteCSV(f, history, loadNames); err != nil {
			slog.Error("Failed to write CSV", "path", *outPath, "error", err)
			os.Exit(1)
		}
		slog.Info("History written", "path", *outPath, "rows", len(history))
	}
}
