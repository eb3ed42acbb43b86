package table

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DiscoverTestSuite tests filename rack-id extraction and directory discovery
type DiscoverTestSuite struct {
	suite.Suite
	tempDir string
}

// SetupTest runs before each test
func (s *DiscoverTestSuite) SetupTest() {
	var err error
	s.tempDir, err = os.MkdirTemp("", "discover-test-*")
	s.Require().NoError(err)
}

// TearDownTest runs after each test
func (s *DiscoverTestSuite) TearDownTest() {
	if s.tempDir != "" {
		os.RemoveAll(s.tempDir)
	}
}

// TestExtractRackIDPatterns tests the documented pattern list
func (s *DiscoverTestSuite) TestExtractRackIDPatterns() {
	cases := map[string]int{
		"rack_12.csv":        12,
		"Rack 7 sensors.csv": 7,
		"rack-03.csv":        3,
		"r42_data.csv":       42,
		"server_5.csv":       5,
		"node-9.csv":         9,
		"12_rack.csv":        12,
		"8_server.csv":       8,
		"sensors_33.csv":     33,
	}

	for filename, want := range cases {
		id, err := ExtractRackID(filename)
		s.NoError(err, filename)
		s.Equal(want, id, filename)
	}
}

// TestExtractRackIDPrecedence tests that the rack pattern beats bare numbers
func (s *DiscoverTestSuite) TestExtractRackIDPrecedence() {
	// "2024" appears first but the rack pattern is tried before bare numbers.
	id, err := ExtractRackID("export_2024_rack_5.csv")
	s.NoError(err)
	s.Equal(5, id)
}

// TestExtractRackIDNoNumber tests the unusable-file error
func (s *DiscoverTestSuite) TestExtractRackIDNoNumber() {
	_, err := ExtractRackID("sensors.csv")
	s.ErrorIs(err, ErrNoRackID)
}

// TestDiscoverRacks tests grouping and sorted order
func (s *DiscoverTestSuite) TestDiscoverRacks() {
	for _, name := range []string{"rack_2_b.csv", "rack_1.csv", "rack_2_a.csv", "notes.txt", "mystery.csv"} {
		s.Require().NoError(os.WriteFile(filepath.Join(s.tempDir, name), []byte("Sensor,Value\n"), 0o600))
	}

	racks, err := DiscoverRacks(s.tempDir)
	s.Require().NoError(err)
	s.Len(racks, 2)
	s.Equal([]string{"rack_1.csv"}, racks[1])
	// Sorted so that the first file per rack is stable.
	s.Equal([]string{"rack_2_a.csv", "rack_2_b.csv"}, racks[2])
}

// TestDiscoverRacksMissingDir tests the unreadable-directory error
func (s *DiscoverTestSuite) TestDiscoverRacksMissingDir() {
	_, err := DiscoverRacks(filepath.Join(s.tempDir, "nope"))
	s.Error(err)
}

// TestSuite runs the discover test suite
func TestDiscoverSuite(t *testing.T) {
	suite.Run(t, new(DiscoverTestSuite))
}
