package rack

// Thresholds holds every product-tuned constant of the derivation pipeline.
// The defaults are the reference values; none of them has a stated
// derivation, so they are carried as overridable configuration rather than
// re-derived.
type Thresholds struct {
	// Rack status escalation ratios (strict greater-than).
	RackCriticalRatio float64
	RackWarningRatio  float64

	// Datacenter status escalation ratios (strict greater-than).
	DatacenterCriticalRatio float64
	DatacenterWarningRatio  float64

	// Temperature classification (°C).
	TempWarning  float64
	TempCritical float64
	TempCold     float64

	// Plausible temperature window, exclusive on both ends.
	TempPlausibleMin float64
	TempPlausibleMax float64

	// Rack temperature when no temperature sensors exist.
	DefaultTemperature float64

	// Network throughput classification (Mbps).
	NetWarning  float64
	NetCritical float64

	// Power sums above this are taken to be watts and converted to kW.
	PowerWattsCutover float64

	// Synthetic server power status (average of power/watt sensors).
	ServerPowerWarning  float64
	ServerPowerCritical float64
}

// DefaultThresholds returns the reference threshold values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RackCriticalRatio:       0.10,
		RackWarningRatio:        0.20,
		DatacenterCriticalRatio: 0.20,
		DatacenterWarningRatio:  0.30,
		TempWarning:             75,
		TempCritical:            85,
		TempCold:                20,
		TempPlausibleMin:        -10,
		TempPlausibleMax:        120,
		DefaultTemperature:      40.0,
		NetWarning:              85,
		NetCritical:             95,
		PowerWattsCutover:       10000,
		ServerPowerWarning:      800,
		ServerPowerCritical:     1000,
	}
}
