package rack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"rackmond/pkg/models"
)

// ServersTestSuite tests synthetic server decomposition
type ServersTestSuite struct {
	suite.Suite
	engine *Engine
}

// SetupTest runs before each test
func (s *ServersTestSuite) SetupTest() {
	s.engine = New(DefaultThresholds(), rand.New(rand.NewSource(1)))
}

// TestServerCountFromCPUTemps tests the primary count rule
func (s *ServersTestSuite) TestServerCountFromCPUTemps() {
	sensors := map[string]models.SensorReading{
		"CPU1 Temp":   reading(55, "ok"),
		"CPU2 Temp":   reading(58, "ok"),
		"CPU3 Temp":   reading(52, "ok"),
		"System Temp": reading(40, "ok"),
	}
	s.Equal(3, s.engine.ServerCount(sensors))
}

// TestServerCountFromCPUNumbers tests the cpuN name fallback
func (s *ServersTestSuite) TestServerCountFromCPUNumbers() {
	sensors := map[string]models.SensorReading{
		"Vcpu1": reading(1.1, "ok"),
		"Vcpu2": reading(1.1, "ok"),
		"FAN1":  reading(2000, "ok"),
	}
	s.Equal(2, s.engine.ServerCount(sensors))
}

// TestServerCountDefault tests the empty-rack default
func (s *ServersTestSuite) TestServerCountDefault() {
	s.Equal(2, s.engine.ServerCount(map[string]models.SensorReading{}))
}

// TestCPUTempPatternLookup tests the direct CPU{i} sensor lookup
func (s *ServersTestSuite) TestCPUTempPatternLookup() {
	sensors := map[string]models.SensorReading{
		"CPU1 Temp": reading(55, "ok"),
		"CPU2 Temp": reading(90, "ok"),
	}

	server := s.engine.BuildServer(1, 2, 2, sensors)
	s.InDelta(90, server.Temperature, 0.0001)
	s.Equal(models.StatusCritical, server.Status.Thermal)
	s.Equal(models.StatusCritical, server.Status.Overall)
	s.Equal(models.CoolingInsufficient, server.Status.Cooling)
}

// TestCPUTempInterpolation tests the rack-temperature fallback with
// position offset when no CPU sensor matches the server
func (s *ServersTestSuite) TestCPUTempInterpolation() {
	sensors := map[string]models.SensorReading{
		"System Temp":  reading(40, "ok"),
		"Chassis Temp": reading(44, "ok"),
	}

	// Rack temperature is 42; server 1 offset is -2.5.
	server := s.engine.BuildServer(3, 1, 2, sensors)
	s.InDelta(39.5, server.Temperature, 0.0001)
	s.Equal(models.StatusNormal, server.Status.Thermal)
}

// TestColdServer tests the cold thermal band
func (s *ServersTestSuite) TestColdServer() {
	sensors := map[string]models.SensorReading{
		"CPU1 Temp": reading(15, "ok"),
	}

	server := s.engine.BuildServer(1, 1, 1, sensors)
	s.Equal(models.StatusCold, server.Status.Thermal)
	s.Equal(models.CoolingExcessive, server.Status.Cooling)
	// Cold never escalates the overall status.
	s.Equal(models.StatusNormal, server.Status.Overall)
}

// TestPowerStatusFromAverage tests the power sensor average bands
func (s *ServersTestSuite) TestPowerStatusFromAverage() {
	sensors := map[string]models.SensorReading{
		"CPU1 Temp":  reading(50, "ok"),
		"PSU1 Power": reading(900, "ok"),
		"PSU2 Power": reading(800, "ok"),
	}
	server := s.engine.BuildServer(1, 1, 1, sensors)
	s.Equal(models.StatusWarning, server.Status.Power)

	sensors["PSU2 Power"] = reading(1200, "ok")
	server = s.engine.BuildServer(1, 1, 1, sensors)
	s.Equal(models.StatusCritical, server.Status.Power)
}

// TestNetworkShare tests the per-server network distribution
func (s *ServersTestSuite) TestNetworkShare() {
	sensors := map[string]models.SensorReading{
		"CPU1 Temp":    reading(50, "ok"),
		"CPU2 Temp":    reading(52, "ok"),
		"Network_eth0": networkReading(120),
		"Network_eth1": networkReading(80),
	}

	// total=200, count=2: server 1 gets (200/2)*(1/2)=50, server 2 capped
	// at (200/2)*(2/2)=100.
	s.InDelta(50, s.engine.BuildServer(1, 1, 2, sensors).NetworkUsage, 0.0001)
	second := s.engine.BuildServer(1, 2, 2, sensors)
	s.InDelta(100, second.NetworkUsage, 0.0001)
	s.Equal(models.StatusCritical, second.Status.Network)
}

// TestNetworkDefault tests the no-network placeholder usage
func (s *ServersTestSuite) TestNetworkDefault() {
	sensors := map[string]models.SensorReading{
		"CPU1 Temp": reading(50, "ok"),
	}
	server := s.engine.BuildServer(1, 1, 1, sensors)
	s.InDelta(50, server.NetworkUsage, 0.0001)
	s.Equal(models.StatusNormal, server.Status.Network)
}

// TestCPUUsageClamped tests the temperature-derived CPU usage bounds
func (s *ServersTestSuite) TestCPUUsageClamped() {
	cold := s.engine.BuildServer(1, 1, 1, map[string]models.SensorReading{
		"CPU1 Temp": reading(10, "ok"),
	})
	s.Zero(cold.CPUUsage)

	hot := s.engine.BuildServer(1, 1, 1, map[string]models.SensorReading{
		"CPU1 Temp": reading(110, "ok"),
	})
	s.InDelta(100, hot.CPUUsage, 0.0001)
}

// TestNamingAndPosition tests the identity fields
func (s *ServersTestSuite) TestNamingAndPosition() {
	server := s.engine.BuildServer(7, 3, 4, map[string]models.SensorReading{})
	s.Equal(7, server.RackID)
	s.Equal(3, server.ServerID)
	s.Equal("Rack7_Server3", server.ServerName)
	s.Equal(3, server.Position.UPosition)
	s.Equal("U3", server.Position.Slot)
}

// TestSuite runs the server synthesis test suite
func TestServersSuite(t *testing.T) {
	suite.Run(t, new(ServersTestSuite))
}
