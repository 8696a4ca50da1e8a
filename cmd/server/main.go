package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"solardirect/internal/report"
	"solardirect/internal/scenario"
	"solardirect/internal/simulator"
	"solardirect/internal/ws"
)

func main() {
	scenarioPath := flag.String("scenario", "scenarios/remote_clinic.yaml", "scenario file (YAML or JSON)")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	scn, err := scenario.Read(*scenarioPath)
	if err != nil {
		slog.Error("Failed to read scenario", "path", *scenarioPath, "error", err)
		os.Exit(1)
	}

	// Build once up front so configuration errors surface before serving.
	sim, err := scn.Build()
	if err != nil {
		slog.Error("Invalid scenario", "path", *scenarioPath, "error", err)
		os.Exit(1)
	}

	hub := ws.NewHub()
	bridge := ws.NewBridge(hub, report.Names(sim.Loads()), sim.Timestep())
	player, err := simulator.NewPlayer(scn.Build, bridge)
	if err != nil {
		slog.Error("Failed to create player", "error", err)
		os.Exit(1)
	}

	handler := ws.NewHandler(hub, player, scn)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/ws", handler)

	slog.Info("Starting server",
		"addr", *addr,
		"scenario", scn.Name,
		"timestep", sim.Timestep().String(),
		"duration_hours", scn.Simulation.DurationHours,
	)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
