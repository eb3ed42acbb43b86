package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ServersAPITestSuite tests the synthetic server endpoints
type ServersAPITestSuite struct {
	suite.Suite
	server *MonitorServer
}

// SetupTest runs before each test
func (s *ServersAPITestSuite) SetupTest() {
	s.server = newTestServer(s.T())
}

// TestListServers tests GET /api/rack/:id/servers
func (s *ServersAPITestSuite) TestListServers() {
	req := httptest.NewRequest(http.MethodGet, "/api/rack/1/servers", nil)
	rec := httptest.NewRecorder()
	c := s.server.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	s.NoError(s.server.listRackServers(c))
	s.Equal(http.StatusOK, rec.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	// Two CPU temperature sensors decompose into two servers.
	s.EqualValues(2, response["server_count"])

	servers := response["servers"].([]interface{})
	s.Require().Len(servers, 2)
	first := servers[0].(map[string]interface{})
	s.Equal("Rack1_Server1", first["server_name"])
	s.InDelta(55, first["temperature"].(float64), 0.0001)
}

// TestGetServer tests GET /api/rack/:id/server/:sid
func (s *ServersAPITestSuite) TestGetServer() {
	req := httptest.NewRequest(http.MethodGet, "/api/rack/1/server/2", nil)
	rec := httptest.NewRecorder()
	c := s.server.echo.NewContext(req, rec)
	c.SetParamNames("id", "sid")
	c.SetParamValues("1", "2")

	s.NoError(s.server.getRackServer(c))
	s.Equal(http.StatusOK, rec.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.EqualValues(2, response["server_id"])
	s.InDelta(58, response["temperature"].(float64), 0.0001)
	s.Equal("U2", response["position"].(map[string]interface{})["slot"])
}

// TestGetServerNotFound tests the structured server 404
func (s *ServersAPITestSuite) TestGetServerNotFound() {
	req := httptest.NewRequest(http.MethodGet, "/api/rack/1/server/9", nil)
	rec := httptest.NewRecorder()
	c := s.server.echo.NewContext(req, rec)
	c.SetParamNames("id", "sid")
	c.SetParamValues("1", "9")

	s.NoError(s.server.getRackServer(c))
	s.Equal(http.StatusNotFound, rec.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("server not found", response["error"])
	s.Equal([]interface{}{float64(1), float64(2)}, response["available_servers"])
}

// TestServersSuite runs the servers API test suite
func TestServersAPISuite(t *testing.T) {
	suite.Run(t, new(ServersAPITestSuite))
}
