package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"rackmond/pkg/log"
	"rackmond/pkg/models"
	"rackmond/pkg/rack"
	"rackmond/pkg/table"
)

// Loader runs reload cycles: discover input files, derive a fresh State
// and publish it. A failed cycle leaves the previous State in place.
type Loader struct {
	SensorDir  string
	NetworkDir string
	Engine     *rack.Engine
	Registry   *Registry

	// OnReload, when set, is called after every completed cycle, whether
	// scheduled or on-demand.
	OnReload func(*Report)
}

// Report summarizes one completed reload cycle.
type Report struct {
	ReloadID    string  `json:"reload_id"`
	RackIDs     []int   `json:"racks"`
	RackCount   int     `json:"rack_count"`
	SensorCount int     `json:"sensor_count"`
	Sample      bool    `json:"sample_data"`
	DurationMS  float64 `json:"duration_ms"`
}

// Reload performs one full cycle. Per-file failures are logged and the
// file's rack skipped; when no usable sensor input exists at all, sample
// racks are synthesized so the service always has data to serve.
func (l *Loader) Reload(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()
	reloadID := uuid.NewString()

	sensorFiles := l.discover(l.SensorDir)
	networkFiles := l.discover(l.NetworkDir)

	state := emptyState()
	state.ReloadID = reloadID
	state.LoadedAt = started

	if len(sensorFiles) == 0 {
		l.loadSampleRacks(state)
	} else {
		l.loadRacks(state, sensorFiles, networkFiles)
		if len(state.Racks) == 0 {
			log.Warn().Msg("All discovered sensor files were unreadable, serving sample racks")
			l.loadSampleRacks(state)
		}
	}

	for id := range state.Racks {
		state.RackIDs = append(state.RackIDs, id)
	}
	sort.Ints(state.RackIDs)

	for _, id := range state.RackIDs {
		r := state.Racks[id]
		for name, reading := range r.Sensors {
			state.CurrentValues[fmt.Sprintf("rack_%d_%s", id, name)] = reading.Value
		}
	}

	l.Registry.Publish(state)

	report := &Report{
		ReloadID:    state.ReloadID,
		RackIDs:     state.RackIDs,
		RackCount:   len(state.RackIDs),
		SensorCount: state.SensorCount(),
		Sample:      state.Sample,
		DurationMS:  float64(time.Since(started).Microseconds()) / 1000,
	}
	log.Info().
		Str("reload_id", report.ReloadID).
		Int("racks", report.RackCount).
		Int("sensors", report.SensorCount).
		Bool("sample", report.Sample).
		Float64("duration_ms", report.DurationMS).
		Msg("Reload cycle complete")

	if l.OnReload != nil {
		l.OnReload(report)
	}
	return report, nil
}

// Run drives reloads on a fixed interval until the context is cancelled.
// It is the only writer; failures are logged and the loop continues.
func (l *Loader) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Reload driver stopping")
			return
		case <-ticker.C:
			if _, err := l.Reload(ctx); err != nil {
				log.Error().Err(err).Msg("Scheduled reload failed")
			}
		}
	}
}

// discover lists rack files in dir; a missing or unreadable directory is
// the same as an empty one.
func (l *Loader) discover(dir string) map[int][]string {
	if dir == "" {
		return nil
	}
	files, err := table.DiscoverRacks(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("Data directory not readable")
		return nil
	}
	return files
}

func (l *Loader) loadRacks(state *State, sensorFiles, networkFiles map[int][]string) {
	for id, files := range sensorFiles {
		filename := files[0]
		tbl, err := table.ReadCSVFile(filepath.Join(l.SensorDir, filename))
		if err != nil {
			log.Warn().Err(err).Str("file", filename).Int("rack", id).Msg("Skipping unreadable sensor file")
			continue
		}

		sensors := l.Engine.LoadSensors(tbl)
		if len(sensors) == 0 {
			log.Warn().Str("file", filename).Int("rack", id).Msg("Sensor file produced no readings, skipping rack")
			continue
		}

		l.mergeNetwork(sensors, id, networkFiles)

		state.Racks[id] = l.buildRack(id, filename, files, sensors)
	}
}

// mergeNetwork folds the rack's network interfaces into its sensor map
// under "Network_<interface>" keys. Only racks with a readable network
// file get network readings; LoadNetwork itself substitutes placeholder
// interfaces when the file parses to zero rows.
func (l *Loader) mergeNetwork(sensors map[string]models.SensorReading, id int, networkFiles map[int][]string) {
	files, ok := networkFiles[id]
	if !ok {
		return
	}

	tbl, err := table.ReadCSVFile(filepath.Join(l.NetworkDir, files[0]))
	if err != nil {
		log.Warn().Err(err).Str("file", files[0]).Int("rack", id).Msg("Skipping unreadable network file")
		return
	}

	for iface, reading := range l.Engine.LoadNetwork(tbl) {
		sensors["Network_"+iface] = reading
	}
}

func (l *Loader) loadSampleRacks(state *State) {
	state.Sample = true
	for id := 1; id <= rack.SampleRackCount; id++ {
		sensors := l.Engine.SampleSensors()
		for iface, reading := range l.Engine.SynthesizeInterfaces() {
			sensors["Network_"+iface] = reading
		}
		filename := fmt.Sprintf("sample_rack_%d.csv", id)
		state.Racks[id] = l.buildRack(id, filename, []string{filename}, sensors)
	}
}

// buildRack derives the full per-rack view from a merged reading map.
func (l *Loader) buildRack(id int, filename string, files []string, sensors map[string]models.SensorReading) *RackState {
	categories := make(map[rack.Category][]string)
	names := make([]string, 0, len(sensors))
	for name := range sensors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		category := rack.Classify(name, sensors[name])
		categories[category] = append(categories[category], name)
	}

	r := &RackState{
		ID:          id,
		Sensors:     sensors,
		Status:      l.Engine.RackStatus(sensors),
		Temperature: l.Engine.RackTemperature(sensors),
		Power:       l.Engine.RackPower(sensors),
		Network:     l.Engine.NetworkSummary(sensors),
		ServerCount: l.Engine.ServerCount(sensors),
		Categories:  categories,
	}
	r.Metadata = models.RackMetadata{
		RackID:         id,
		Filename:       filename,
		AllFiles:       files,
		CategoryCounts: r.CategoryCounts(),
	}
	return r
}
