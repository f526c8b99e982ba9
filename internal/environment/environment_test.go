package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	e := New()

	assert.Equal(t, "info", e.LogLevel)
	assert.Equal(t, ":9003", e.BindAddr)
	assert.False(t, e.IsDebug())
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("LMOUNTD_CONFIG", "/etc/lmountd.json")
	t.Setenv("LMOUNTD_LOG_LEVEL", "debug")
	t.Setenv("LMOUNTD_BIND", ":8080")
	t.Setenv("LMOUNTD_BROKER_URL", "tcp://mqtt:1883")

	e := New()

	assert.Equal(t, "/etc/lmountd.json", e.ConfigPath)
	assert.Equal(t, "debug", e.LogLevel)
	assert.True(t, e.IsDebug())
	assert.Equal(t, ":8080", e.BindAddr)
	assert.Equal(t, "tcp://mqtt:1883", e.BrokerURL)
}
