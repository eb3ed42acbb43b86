package rack

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"rackmond/pkg/models"
)

// RollupTestSuite tests the rollup engine
type RollupTestSuite struct {
	suite.Suite
	engine *Engine
}

// SetupTest runs before each test
func (s *RollupTestSuite) SetupTest() {
	s.engine = New(DefaultThresholds(), rand.New(rand.NewSource(1)))
}

func reading(value float64, status string) models.SensorReading {
	return models.SensorReading{Value: value, Status: status, Type: models.KindSensor}
}

func networkReading(value float64) models.SensorReading {
	return models.SensorReading{Value: value, Status: "ok", Type: models.KindNetwork, Units: "Mbps"}
}

// TestSensorStatusTexts tests explicit status text classification
func (s *RollupTestSuite) TestSensorStatusTexts() {
	cases := map[string]string{
		"ok":              models.StatusNormal,
		"OK":              models.StatusNormal,
		"normal":          models.StatusNormal,
		"warning":         models.StatusWarning,
		"Non-Critical":    models.StatusWarning,
		"critical":        models.StatusCritical,
		"Non-Recoverable": models.StatusCritical,
	}

	for text, want := range cases {
		s.Equal(want, s.engine.SensorStatus("FAN1", reading(1000, text)), text)
	}
}

// TestSensorStatusHeuristic tests the fallback for unrecognized status text
func (s *RollupTestSuite) TestSensorStatusHeuristic() {
	s.Equal(models.StatusCritical, s.engine.SensorStatus("CPU1 Temp", reading(90, "???")))
	s.Equal(models.StatusWarning, s.engine.SensorStatus("CPU1 Temp", reading(80, "???")))
	s.Equal(models.StatusNormal, s.engine.SensorStatus("CPU1 Temp", reading(50, "???")))
	s.Equal(models.StatusNormal, s.engine.SensorStatus("FAN1", reading(99999, "???")))
}

// TestRackStatusCriticalRatio tests the strict 10% critical boundary
func (s *RollupTestSuite) TestRackStatusCriticalRatio() {
	// 1 critical of 10 is exactly 0.10: not critical.
	sensors := make(map[string]models.SensorReading)
	sensors["bad"] = reading(0, "critical")
	for i := 0; i < 9; i++ {
		sensors[fmt.Sprintf("ok%d", i)] = reading(0, "ok")
	}
	s.Equal(models.StatusNormal, s.engine.RackStatus(sensors))

	// 1 critical of 9 exceeds 0.10: critical.
	delete(sensors, "ok8")
	s.Equal(models.StatusCritical, s.engine.RackStatus(sensors))
}

// TestRackStatusWarningRatio tests the strict 20% warning boundary
func (s *RollupTestSuite) TestRackStatusWarningRatio() {
	sensors := map[string]models.SensorReading{
		"w1":  reading(0, "warning"),
		"ok1": reading(0, "ok"),
		"ok2": reading(0, "ok"),
		"ok3": reading(0, "ok"),
		"ok4": reading(0, "ok"),
	}
	// 1 of 5 is exactly 0.20: not warning.
	s.Equal(models.StatusNormal, s.engine.RackStatus(sensors))

	delete(sensors, "ok4")
	// 1 of 4 exceeds 0.20: warning.
	s.Equal(models.StatusWarning, s.engine.RackStatus(sensors))
}

// TestRackStatusEmpty tests the zero-sensor rack
func (s *RollupTestSuite) TestRackStatusEmpty() {
	s.Equal(models.StatusUnknown, s.engine.RackStatus(map[string]models.SensorReading{}))
}

// TestRackTemperatureTrimmedMean tests quartile trimming with outlier exclusion
func (s *RollupTestSuite) TestRackTemperatureTrimmedMean() {
	// 200 is outside the plausible window and excluded before trimming;
	// the remaining 4 samples are averaged untrimmed.
	sensors := map[string]models.SensorReading{
		"Temp A": reading(10, "ok"),
		"Temp B": reading(20, "ok"),
		"Temp C": reading(30, "ok"),
		"Temp D": reading(40, "ok"),
		"Temp E": reading(200, "ok"),
	}
	s.InDelta(25.0, s.engine.RackTemperature(sensors), 0.0001)
}

// TestRackTemperatureTrimsQuartiles tests the n/4..3n/4 trim above 4 samples
func (s *RollupTestSuite) TestRackTemperatureTrimsQuartiles() {
	sensors := make(map[string]models.SensorReading)
	for i, v := range []float64{10, 20, 30, 40, 50, 60, 70, 80} {
		sensors[fmt.Sprintf("Temp %d", i)] = reading(v, "ok")
	}
	// Sorted samples 10..80, trim to [2:6] = 30,40,50,60.
	s.InDelta(45.0, s.engine.RackTemperature(sensors), 0.0001)
}

// TestRackTemperatureExcludesVoltNames tests the volt exclusion
func (s *RollupTestSuite) TestRackTemperatureExcludesVoltNames() {
	sensors := map[string]models.SensorReading{
		"Voltage Temp": reading(12, "ok"),
	}
	s.InDelta(40.0, s.engine.RackTemperature(sensors), 0.0001)
}

// TestRackTemperatureDefault tests the no-sample default
func (s *RollupTestSuite) TestRackTemperatureDefault() {
	s.InDelta(40.0, s.engine.RackTemperature(map[string]models.SensorReading{
		"FAN1": reading(2000, "ok"),
	}), 0.0001)
}

// TestRackPowerKilowatts tests the sum-as-kW path
func (s *RollupTestSuite) TestRackPowerKilowatts() {
	sensors := map[string]models.SensorReading{
		"PSU1 Power": reading(1.2, "ok"),
		"PSU2 Power": reading(1.4, "ok"),
	}
	s.InDelta(2.6, s.engine.RackPower(sensors), 0.0001)
}

// TestRackPowerWattsConversion tests the watts cutover
func (s *RollupTestSuite) TestRackPowerWattsConversion() {
	sensors := map[string]models.SensorReading{
		"PSU1 Watt": reading(8000, "ok"),
		"PSU2 Watt": reading(4500, "ok"),
	}
	s.InDelta(12.5, s.engine.RackPower(sensors), 0.0001)
}

// TestRackPowerDensityFallback tests the temperature-count proxy
func (s *RollupTestSuite) TestRackPowerDensityFallback() {
	sensors := map[string]models.SensorReading{
		"CPU1 Temp":   reading(50, "ok"),
		"CPU2 Temp":   reading(52, "ok"),
		"System Temp": reading(40, "ok"),
		"FAN1":        reading(2000, "ok"),
	}
	// 1.0 + 3 temperature sensors * 0.05.
	s.InDelta(1.15, s.engine.RackPower(sensors), 0.0001)
}

// TestNetworkSummary tests aggregation over network readings
func (s *RollupTestSuite) TestNetworkSummary() {
	sensors := map[string]models.SensorReading{
		"Network_eth0": networkReading(40),
		"Network_eth1": networkReading(60),
		"CPU1 Temp":    reading(50, "ok"),
	}

	summary := s.engine.NetworkSummary(sensors)
	s.InDelta(100, summary.TotalThroughput, 0.0001)
	s.InDelta(50, summary.AvgThroughput, 0.0001)
	s.InDelta(60, summary.MaxThroughput, 0.0001)
	s.Equal(2, summary.InterfaceCount)
	s.Equal(models.StatusNormal, summary.Status)
}

// TestNetworkSummaryCriticalMax tests that one saturated interface flips the rack network status
func (s *RollupTestSuite) TestNetworkSummaryCriticalMax() {
	sensors := map[string]models.SensorReading{
		"Network_eth0": networkReading(96),
	}
	s.Equal(models.StatusCritical, s.engine.NetworkSummary(sensors).Status)
}

// TestNetworkSummaryEmpty tests the all-zero default
func (s *RollupTestSuite) TestNetworkSummaryEmpty() {
	summary := s.engine.NetworkSummary(map[string]models.SensorReading{})
	s.Zero(summary.TotalThroughput)
	s.Zero(summary.InterfaceCount)
	s.Equal(models.StatusNormal, summary.Status)
}

// TestDatacenterStatus tests the 20%/30% strict boundaries
func (s *RollupTestSuite) TestDatacenterStatus() {
	// 1 of 5 critical is exactly 0.20: not critical.
	s.Equal(models.StatusNormal, s.engine.DatacenterStatus(1, 0, 5))
	// 1 of 4 exceeds 0.20: critical.
	s.Equal(models.StatusCritical, s.engine.DatacenterStatus(1, 0, 4))
	// 3 of 10 warning is exactly 0.30: not warning.
	s.Equal(models.StatusNormal, s.engine.DatacenterStatus(0, 3, 10))
	s.Equal(models.StatusWarning, s.engine.DatacenterStatus(0, 4, 10))
	s.Equal(models.StatusNormal, s.engine.DatacenterStatus(0, 0, 0))
}

// TestSuite runs the rollup test suite
func TestRollupSuite(t *testing.T) {
	suite.Run(t, new(RollupTestSuite))
}
