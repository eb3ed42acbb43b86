package registry

import (
	"sort"
	"time"

	"rackmond/pkg/models"
	"rackmond/pkg/rack"
)

// RackState is everything derived for one rack during a reload cycle.
type RackState struct {
	ID          int
	Sensors     map[string]models.SensorReading
	Status      string
	Temperature float64
	Power       float64
	Network     models.NetworkSummary
	ServerCount int
	Categories  map[rack.Category][]string
	Metadata    models.RackMetadata
}

// CategoryCounts returns the per-category sensor counts for the rack,
// plus a "total" entry.
func (r *RackState) CategoryCounts() map[string]int {
	counts := make(map[string]int, len(r.Categories)+1)
	total := 0
	for category, names := range r.Categories {
		counts[string(category)] = len(names)
		total += len(names)
	}
	counts["total"] = total
	return counts
}

// Interfaces returns the rack's network readings as interface records,
// sorted by sensor name.
func (r *RackState) Interfaces() []models.NetworkInterface {
	var names []string
	for name, reading := range r.Sensors {
		if reading.Type == models.KindNetwork {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	interfaces := make([]models.NetworkInterface, 0, len(names))
	for _, name := range names {
		reading := r.Sensors[name]
		utilization := reading.Value
		if utilization > 100 {
			utilization = 100
		}
		interfaces = append(interfaces, models.NetworkInterface{
			Name:        name,
			Interface:   reading.Interface,
			Throughput:  reading.Value,
			Status:      reading.Status,
			Units:       reading.Units,
			Utilization: utilization,
		})
	}
	return interfaces
}

// State is one immutable derived view of the datacenter. A State is
// fully built before it is published and never mutated afterwards.
type State struct {
	Racks         map[int]*RackState
	RackIDs       []int
	CurrentValues map[string]float64
	Sample        bool
	ReloadID      string
	LoadedAt      time.Time
}

func emptyState() *State {
	return &State{
		Racks:         map[int]*RackState{},
		CurrentValues: map[string]float64{},
	}
}

// Rack looks up one rack by id.
func (s *State) Rack(id int) (*RackState, bool) {
	r, ok := s.Racks[id]
	return r, ok
}

// SensorCount is the total number of readings across all racks.
func (s *State) SensorCount() int {
	count := 0
	for _, r := range s.Racks {
		count += len(r.Sensors)
	}
	return count
}
