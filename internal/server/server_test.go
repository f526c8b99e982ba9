package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rockit-astro/lmountd/internal/config"
	"github.com/rockit-astro/lmountd/internal/daemon"
	"github.com/rockit-astro/lmountd/internal/registry"
	"github.com/rockit-astro/lmountd/pkg/lmount"
)

func testServer(t *testing.T) (*Server, *daemon.Daemon) {
	t.Helper()

	cfg := &config.Config{
		Daemon:  registry.Daemon{Name: "mount_daemon", Host: "lmount", Port: 9003},
		LogName: "lmountd",
		ControlIPs: []registry.Machine{
			{Name: "tcs", Addr: netip.MustParseAddr("192.0.2.1")},
		},
		ParkPositions: map[string]config.ParkPosition{
			"zenith": {Desc: "Pointing at zenith", Alt: 88, Az: 0},
		},
	}

	d := daemon.New(cfg, zap.NewNop())
	return New(d, zap.NewNop(), ":0"), d
}

func doRequest(t *testing.T, s *Server, method, path, remoteAddr, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = remoteAddr
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeCommand(t *testing.T, rec *httptest.ResponseRecorder) commandResponse {
	t.Helper()
	var resp commandResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestServer_Status(t *testing.T) {
	s, d := testServer(t)
	d.SetState(lmount.Tracking)

	rec := doRequest(t, s, http.MethodGet, "/status", "198.51.100.7:4242", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report daemon.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "TRACKING", report.Label)
	assert.Equal(t, int(lmount.Tracking), report.State)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_ParkPositions(t *testing.T) {
	s, _ := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/park-positions", "198.51.100.7:4242", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var positions map[string]config.ParkPosition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &positions))
	assert.Contains(t, positions, "zenith")
}

func TestServer_ControlIPAllowlist(t *testing.T) {
	t.Run("configured machine is accepted", func(t *testing.T) {
		s, d := testServer(t)
		d.SetState(lmount.Stopped)

		rec := doRequest(t, s, http.MethodPost, "/command/park", "192.0.2.1:5000", `{"position":"zenith"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int(lmount.MountControlNotRunning), decodeCommand(t, rec).Status)
	})

	t.Run("loopback is accepted", func(t *testing.T) {
		s, _ := testServer(t)

		rec := doRequest(t, s, http.MethodPost, "/command/park", "127.0.0.1:5000", `{"position":"zenith"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other addresses are rejected", func(t *testing.T) {
		s, _ := testServer(t)

		rec := doRequest(t, s, http.MethodPost, "/command/park", "203.0.113.9:5000", `{"position":"zenith"}`)
		require.Equal(t, http.StatusForbidden, rec.Code)

		resp := decodeCommand(t, rec)
		assert.Equal(t, int(lmount.InvalidControlIP), resp.Status)
		assert.Equal(t, lmount.InvalidControlIP.Message(), resp.Error)
	})
}

func TestServer_ParkCommand(t *testing.T) {
	t.Run("unknown position", func(t *testing.T) {
		s, d := testServer(t)
		d.SetState(lmount.Stopped)

		rec := doRequest(t, s, http.MethodPost, "/command/park", "192.0.2.1:5000", `{"position":"nonexistent"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeCommand(t, rec)
		assert.Equal(t, int(lmount.UnknownParkPosition), resp.Status)
		assert.Equal(t, "error: unknown park position", resp.Error)
	})

	t.Run("disabled mount", func(t *testing.T) {
		s, _ := testServer(t)

		rec := doRequest(t, s, http.MethodPost, "/command/park", "192.0.2.1:5000", `{"position":"zenith"}`)
		assert.Equal(t, int(lmount.MountNotInitialized), decodeCommand(t, rec).Status)
	})

	t.Run("malformed body", func(t *testing.T) {
		s, _ := testServer(t)

		rec := doRequest(t, s, http.MethodPost, "/command/park", "192.0.2.1:5000", `{broken`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int(lmount.Failed), decodeCommand(t, rec).Status)
	})
}

func TestServer_InitializeCommand(t *testing.T) {
	s, d := testServer(t)
	d.SetState(lmount.Stopped)

	rec := doRequest(t, s, http.MethodPost, "/command/initialize", "192.0.2.1:5000", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int(lmount.MountNotDisabled), decodeCommand(t, rec).Status)
}
