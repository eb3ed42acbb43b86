package rack

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"rackmond/pkg/models"
	"rackmond/pkg/table"
)

// NetworkTestSuite tests the network table loader
type NetworkTestSuite struct {
	suite.Suite
	engine *Engine
}

// SetupTest runs before each test
func (s *NetworkTestSuite) SetupTest() {
	s.engine = New(DefaultThresholds(), rand.New(rand.NewSource(1)))
}

func (s *NetworkTestSuite) load(csv string) map[string]models.SensorReading {
	tbl, err := table.ReadCSV(strings.NewReader(csv))
	s.Require().NoError(err)
	return s.engine.LoadNetwork(tbl)
}

// TestStandardTable tests loading a labeled interface table
func (s *NetworkTestSuite) TestStandardTable() {
	interfaces := s.load("Interface,Throughput\neth0,45.5\neth1,12\n")

	s.Len(interfaces, 2)
	s.InDelta(45.5, interfaces["eth0"].Value, 0.0001)
	s.Equal("Mbps", interfaces["eth0"].Units)
	s.Equal(models.KindNetwork, interfaces["eth0"].Type)
	s.Equal("eth0", interfaces["eth0"].Interface)
}

// TestCriticalThroughput tests the per-row status thresholds
func (s *NetworkTestSuite) TestCriticalThroughput() {
	interfaces := s.load("Interface,Throughput\neth0,96\neth1,90\neth2,85\n")

	s.Equal(models.StatusCritical, interfaces["eth0"].Status)
	s.Equal(models.StatusWarning, interfaces["eth1"].Status)
	s.Equal(models.StatusOK, interfaces["eth2"].Status)
}

// TestPositiveColumnFallback tests the unlabeled-throughput fallback
func (s *NetworkTestSuite) TestPositiveColumnFallback() {
	interfaces := s.load("Interface,Errors,Load\neth0,0,62.5\n")

	s.InDelta(62.5, interfaces["eth0"].Value, 0.0001)
}

// TestNonPositiveRowsDropped tests that zero-throughput rows do not appear
func (s *NetworkTestSuite) TestNonPositiveRowsDropped() {
	interfaces := s.load("Interface,Throughput\neth0,45\neth1,0\n")

	s.Len(interfaces, 1)
	s.NotContains(interfaces, "eth1")
}

// TestSynthesizedInterfaces tests the placeholder policy for empty tables
func (s *NetworkTestSuite) TestSynthesizedInterfaces() {
	interfaces := s.load("Interface,Throughput\neth0,0\n")

	s.Len(interfaces, 4)
	for i := 1; i <= 4; i++ {
		name := fmt.Sprintf("eth%d", i)
		s.Require().Contains(interfaces, name)
		reading := interfaces[name]
		s.GreaterOrEqual(reading.Value, 10.0)
		s.Less(reading.Value, 80.0)
		s.Equal(models.StatusOK, reading.Status)
		s.Equal("Mbps", reading.Units)
	}
}

// TestSynthesizedInterfacesDeterministicWithSeed tests the injected random source
func (s *NetworkTestSuite) TestSynthesizedInterfacesDeterministicWithSeed() {
	a := New(DefaultThresholds(), rand.New(rand.NewSource(7))).SynthesizeInterfaces()
	b := New(DefaultThresholds(), rand.New(rand.NewSource(7))).SynthesizeInterfaces()

	s.Equal(a, b)
}

// TestSuite runs the network loader test suite
func TestNetworkSuite(t *testing.T) {
	suite.Run(t, new(NetworkTestSuite))
}
