package models

// Reading kinds distinguish plain sensor rows from network interface rows.
const (
	KindSensor  = "sensor"
	KindNetwork = "network"
)

// Sensor and rack status values. Raw status text from input files is kept
// verbatim on the reading; these constants cover the derived statuses.
const (
	StatusOK       = "ok"
	StatusNormal   = "normal"
	StatusWarning  = "warning"
	StatusCritical = "critical"
	StatusUnknown  = "unknown"
	StatusCold     = "cold"
)

// Cooling statuses for synthetic servers.
const (
	CoolingNormal       = "normal"
	CoolingInsufficient = "insufficient"
	CoolingExcessive    = "excessive"
)

// SensorReading is one normalized measurement from a rack table.
// Value is always a finite number; parsing never fails, it falls back to 0.
type SensorReading struct {
	Value     float64 `json:"value"`
	Status    string  `json:"status"`
	Units     string  `json:"units"`
	RawValue  string  `json:"raw_value"`
	Type      string  `json:"type"`
	Interface string  `json:"interface,omitempty"`
}
