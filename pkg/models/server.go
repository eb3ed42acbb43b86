package models

// ServerStatus holds the per-dimension statuses of a synthetic server.
// Overall mirrors thermal only; power, network and cooling never escalate it.
type ServerStatus struct {
	Thermal string `json:"thermal"`
	Power   string `json:"power"`
	Network string `json:"network"`
	Cooling string `json:"cooling"`
	Overall string `json:"overall"`
}

// ServerPosition locates a synthetic server inside its rack.
type ServerPosition struct {
	UPosition int    `json:"u_position"`
	Slot      string `json:"slot"`
}

// Server is a server-level view manufactured from a rack's sensors.
// PowerUsage and MemoryUsage are randomized placeholders, not telemetry.
type Server struct {
	RackID       int            `json:"rack_id"`
	ServerID     int            `json:"server_id"`
	ServerName   string         `json:"server_name"`
	Temperature  float64        `json:"temperature"`
	PowerUsage   float64        `json:"power_usage"`
	CPUUsage     float64        `json:"cpu_usage"`
	MemoryUsage  float64        `json:"memory_usage"`
	NetworkUsage float64        `json:"network_usage"`
	Status       ServerStatus   `json:"status"`
	Position     ServerPosition `json:"position"`
}
