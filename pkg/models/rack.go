package models

// NetworkSummary aggregates the network-kind readings of one rack.
type NetworkSummary struct {
	TotalThroughput float64 `json:"total_throughput"`
	AvgThroughput   float64 `json:"avg_throughput"`
	MaxThroughput   float64 `json:"max_throughput"`
	InterfaceCount  int     `json:"interface_count"`
	Status          string  `json:"status"`
}

// RackMetadata carries provenance and category counts for one rack.
type RackMetadata struct {
	RackID         int            `json:"rack_id"`
	Filename       string         `json:"filename"`
	AllFiles       []string       `json:"all_files"`
	CategoryCounts map[string]int `json:"sensor_categories"`
}

// NetworkInterface is the per-interface view exposed by the network
// detail endpoint. Utilization assumes Mbps readings capped at 100.
type NetworkInterface struct {
	Name        string  `json:"name,omitempty"`
	Interface   string  `json:"interface"`
	Throughput  float64 `json:"throughput"`
	Status      string  `json:"status"`
	Units       string  `json:"units"`
	Utilization float64 `json:"utilization,omitempty"`
}
