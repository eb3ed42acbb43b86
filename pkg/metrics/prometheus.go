package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"rackmond/pkg/hostmetrics"
)

// Metrics holds all Prometheus metrics for the monitoring daemon
type Metrics struct {
	// Host metrics
	SystemCPUPercent      prometheus.Gauge
	SystemMemoryPercent   prometheus.Gauge
	SystemDiskUsage       prometheus.Gauge
	CPULoad1Min           prometheus.Gauge
	CPULoad5Min           prometheus.Gauge
	CPULoad15Min          prometheus.Gauge
	MemoryAvailableBytes  prometheus.Gauge
	DiskReadBytesTotal    prometheus.Gauge
	DiskWriteBytesTotal   prometheus.Gauge
	NetworkBytesSentTotal prometheus.Gauge
	NetworkBytesRecvTotal prometheus.Gauge

	// Sensor metrics
	SensorReading prometheus.GaugeVec

	// Reload metrics
	ReloadsTotal          prometheus.Counter
	ReloadDurationSeconds prometheus.Histogram
	RacksLoaded           prometheus.Gauge
	SensorsLoaded         prometheus.Gauge
}

// New creates and registers all metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SystemCPUPercent: factory.NewGauge(prometheus.GaugeOpts{
			Name: "system_cpu_percent",
			Help: "Host CPU utilization percentage",
		}),
		SystemMemoryPercent: factory.NewGauge(prometheus.GaugeOpts{
			Name: "system_memory_percent",
			Help: "Host memory utilization percentage",
		}),
		SystemDiskUsage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "system_disk_usage",
			Help: "Host disk usage percentage for the data path",
		}),
		CPULoad1Min: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cpu_load_1min",
			Help: "1 minute load average",
		}),
		CPULoad5Min: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cpu_load_5min",
			Help: "5 minute load average",
		}),
		CPULoad15Min: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cpu_load_15min",
			Help: "15 minute load average",
		}),
		MemoryAvailableBytes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "memory_available_bytes",
			Help: "Host memory available in bytes",
		}),
		DiskReadBytesTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "disk_read_bytes_total",
			Help: "Cumulative bytes read from block devices",
		}),
		DiskWriteBytesTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "disk_write_bytes_total",
			Help: "Cumulative bytes written to block devices",
		}),
		NetworkBytesSentTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "network_bytes_sent_total",
			Help: "Cumulative bytes sent over all interfaces",
		}),
		NetworkBytesRecvTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "network_bytes_recv_total",
			Help: "Cumulative bytes received over all interfaces",
		}),
		SensorReading: *factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rack_sensor_reading",
			Help: "Current value of one rack sensor",
		}, []string{"sensor"}),
		ReloadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "rack_reloads_total",
			Help: "Total number of completed reload cycles",
		}),
		ReloadDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rack_reload_duration_seconds",
			Help:    "Histogram of reload cycle durations",
			Buckets: prometheus.DefBuckets,
		}),
		RacksLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "racks_loaded",
			Help: "Number of racks in the current state",
		}),
		SensorsLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sensors_loaded",
			Help: "Number of readings in the current state",
		}),
	}
}

// SetHost updates the host gauges from one snapshot.
func (m *Metrics) SetHost(snap *hostmetrics.Snapshot) {
	m.SystemCPUPercent.Set(snap.CPU.Percent)
	m.SystemMemoryPercent.Set(snap.Memory.Percent)
	m.SystemDiskUsage.Set(snap.Disk.Percent)
	m.CPULoad1Min.Set(snap.CPU.Load1)
	m.CPULoad5Min.Set(snap.CPU.Load5)
	m.CPULoad15Min.Set(snap.CPU.Load15)
	m.MemoryAvailableBytes.Set(float64(snap.Memory.Available))
	m.DiskReadBytesTotal.Set(float64(snap.DiskIO.ReadBytes))
	m.DiskWriteBytesTotal.Set(float64(snap.DiskIO.WriteBytes))

	var sent, recv uint64
	for _, iface := range snap.Network {
		sent += iface.BytesSent
		recv += iface.BytesRecv
	}
	m.NetworkBytesSentTotal.Set(float64(sent))
	m.NetworkBytesRecvTotal.Set(float64(recv))
}

// SetSensors replaces the sensor gauge set with the given flattened
// current values.
func (m *Metrics) SetSensors(values map[string]float64) {
	m.SensorReading.Reset()
	for name, value := range values {
		m.SensorReading.WithLabelValues(name).Set(value)
	}
}

// RecordReload records one completed reload cycle.
func (m *Metrics) RecordReload(durationSeconds float64, racks, sensors int) {
	m.ReloadsTotal.Inc()
	m.ReloadDurationSeconds.Observe(durationSeconds)
	m.RacksLoaded.Set(float64(racks))
	m.SensorsLoaded.Set(float64(sensors))
}
