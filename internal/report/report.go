// Package report turns a simulation history into a dataframe for export and
// computes summary statistics. Everything here is a pure reduction over the
// per-interval records; no simulation state is recomputed.
package report

import (
	"io"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"solardirect/internal/component"
	"solardirect/internal/simulator"
)

// LoadStats summarises one load over a run.
type LoadStats struct {
	Name          string  `json:"name"`
	UptimeFrac    float64 `json:"uptime_frac"`
	ShedEvents    int     `json:"shed_events"`
	RestoreEvents int     `json:"restore_events"`
}

// Summary holds the run-level statistics derivable from the history.
type Summary struct {
	Intervals int     `json:"intervals"`
	SimHours  float64 `json:"sim_hours"`

	SolarDeliveredWh   float64 `json:"solar_delivered_wh"`
	BatteryDischargeWh float64 `json:"battery_discharge_wh"`
	BatteryChargeWh    float64 `json:"battery_charge_wh"`
	DemandWh           float64 `json:"demand_wh"`
	UnservedWh         float64 `json:"unserved_wh"`
	CurtailedWh        float64 `json:"curtailed_wh"`

	MinSOC   float64 `json:"min_soc"`
	MaxSOC   float64 `json:"max_soc"`
	FinalSOC float64 `json:"final_soc"`

	Loads []LoadStats `json:"loads"`
}

// Frame builds a dataframe with one row per interval. Load activity appears
// as one 0/1 column per load, named active_<load>, in declaration order.
func Frame(records []simulator.HistoryRecord, loadNames []string) dataframe.DataFrame {
	n := len(records)
	elapsed := make([]float64, n)
	hourOfDay := make([]float64, n)
	irradiance := make([]float64, n)
	solarOut := make([]float64, n)
	soc := make([]float64, n)
	chargeWh := make([]float64, n)
	fromSolar := make([]float64, n)
	fromBattery := make([]float64, n)
	toBattery := make([]float64, n)
	demand := make([]float64, n)
	unserved := make([]float64, n)
	shed := make([]string, n)
	restored := make([]string, n)
	faults := make([]string, n)

	active := make(map[string][]int, len(loadNames))
	for _, name := range loadNames {
		active[name] = make([]int, n)
	}

	for i, r := range records {
		elapsed[i] = r.ElapsedHours
		hourOfDay[i] = r.HourOfDay
		irradiance[i] = r.Irradiance
		solarOut[i] = r.SolarOutputW
		soc[i] = r.BatterySOC
		chargeWh[i] = r.BatteryChargeWh
		fromSolar[i] = r.PowerFromSolarW
		fromBattery[i] = r.PowerFromBatteryW
		toBattery[i] = r.PowerToBatteryW
		demand[i] = r.TotalDemandW
		unserved[i] = r.UnservedW
		shed[i] = strings.Join(r.Shed, ";")
		restored[i] = strings.Join(r.Restored, ";")
		faults[i] = strings.Join(r.ActiveFaults, ";")
		for _, name := range loadNames {
			if r.LoadActive[name] {
				active[name][i] = 1
			}
		}
	}

	cols := []series.Series{
		series.New(elapsed, series.Float, "elapsed_hours"),
		series.New(hourOfDay, series.Float, "hour_of_day"),
		series.New(irradiance, series.Float, "irradiance"),
		series.New(solarOut, series.Float, "solar_output_w"),
		series.New(soc, series.Float, "battery_soc"),
		series.New(chargeWh, series.Float, "battery_charge_wh"),
		series.New(fromSolar, series.Float, "power_from_solar_w"),
		series.New(fromBattery, series.Float, "power_from_battery_w"),
		series.New(toBattery, series.Float, "power_to_battery_w"),
		series.New(demand, series.Float, "total_demand_w"),
		series.New(unserved, series.Float, "unserved_w"),
	}
	for _, name := range loadNames {
		cols = append(cols, series.New(active[name], series.Int, "active_"+name))
	}
	cols = append(cols,
		series.New(shed, series.String, "shed"),
		series.New(restored, series.String, "restored"),
		series.New(faults, series.String, "active_faults"),
	)

	return dataframe.New(cols...)
}

// WriteCSV exports the history as CSV, one row per interval.
func WriteCSV(w io.Writer, records []simulator.HistoryRecord, loadNames []string) error {
	df := Frame(records, loadNames)
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}

// Summarize reduces the history to run-level statistics. The timestep is
// needed to convert the per-interval power figures to energy.
func Summarize(records []simulator.HistoryRecord, loadNames []string, timestep time.Duration) Summary {
	var s Summary
	s.Intervals = len(records)
	if len(records) == 0 {
		return s
	}
	hours := timestep.Hours()
	s.SimHours = hours * float64(len(records))

	df := Frame(records, loadNames)
	s.SolarDeliveredWh = df.Col("power_from_solar_w").Sum() * hours
	s.BatteryDischargeWh = df.Col("power_from_battery_w").Sum() * hours
	s.BatteryChargeWh = df.Col("power_to_battery_w").Sum() * hours
	s.DemandWh = df.Col("total_demand_w").Sum() * hours
	s.UnservedWh = df.Col("unserved_w").Sum() * hours
	curtailedW := df.Col("solar_output_w").Sum() - df.Col("power_from_solar_w").Sum() - df.Col("power_to_battery_w").Sum()
	if curtailedW > 0 {
		s.CurtailedWh = curtailedW * hours
	}

	s.MinSOC = df.Col("battery_soc").Min()
	s.MaxSOC = df.Col("battery_soc").Max()
	s.FinalSOC = records[len(records)-1].BatterySOC

	shedEvents := make(map[string]int, len(loadNames))
	restoreEvents := make(map[string]int, len(loadNames))
	for _, r := range records {
		for _, name := range r.Shed {
			shedEvents[name]++
		}
		for _, name := range r.Restored {
			restoreEvents[name]++
		}
	}
	for _, name := range loadNames {
		s.Loads = append(s.Loads, LoadStats{
			Name:          name,
			UptimeFrac:    df.Col("active_" + name).Mean(),
			ShedEvents:    shedEvents[name],
			RestoreEvents: restoreEvents[name],
		})
	}

	return s
}

// Names returns the declaration-order load names used for Frame columns.
func Names(loads []*component.Load) []string {
	names := make([]string, len(loads))
	for i, load := range loads {
		names[i] = load.Name
	}
	return names
}
