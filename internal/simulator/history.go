package simulator

// HistoryRecord is the immutable per-interval snapshot appended by the loop,
// stamped with the interval's start time. The sequence is complete and
// ordered: one record per interval, no gaps, no duplicates.
type HistoryRecord struct {
	ElapsedHours float64 `json:"elapsed_hours"`
	HourOfDay    float64 `json:"hour_of_day"`

	Irradiance      float64 `json:"irradiance"`
	SolarOutputW    float64 `json:"solar_output_w"`
	BatterySOC      float64 `json:"battery_soc"`
	BatteryChargeWh float64 `json:"battery_charge_wh"`

	PowerFromSolarW   float64 `json:"power_from_solar_w"`
	PowerFromBatteryW float64 `json:"power_from_battery_w"`
	PowerToBatteryW   float64 `json:"power_to_battery_w"`
	TotalDemandW      float64 `json:"total_demand_w"`
	UnservedW         float64 `json:"unserved_w"`

	LoadActive map[string]bool `json:"load_active"`

	Shed         []string `json:"shed,omitempty"`
	Restored     []string `json:"restored,omitempty"`
	ActiveFaults []string `json:"active_faults,omitempty"`
	Notes        []string `json:"notes,omitempty"`
}
