package lmount

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandStatus_Message(t *testing.T) {
	t.Run("known codes return fixed messages", func(t *testing.T) {
		assert.Equal(t, "error: command failed", Failed.Message())
		assert.Equal(t, "error: another command is already running", Blocked.Message())
		assert.Equal(t, "error: command not accepted from this IP", InvalidControlIP.Message())
		assert.Equal(t, "error: unknown park position", UnknownParkPosition.Message())
		assert.Equal(t, "error: requested coordinates outside HA limits", OutsideHALimits.Message())
		assert.Equal(t, "error: requested coordinates outside Dec limits", OutsideDecLimits.Message())
	})

	t.Run("client side codes return fixed messages", func(t *testing.T) {
		assert.Equal(t, "error: terminated by user", TerminatedByUser.Message())
		assert.Equal(t, "error: unable to communicate with telescope daemon", DaemonCommunicationFailed.Message())
		assert.Equal(t, "error: command not available for this telescope", CommandUnavailable.Message())
	})

	t.Run("unknown codes fall back to generated message", func(t *testing.T) {
		assert.Equal(t, "error: Unknown error code 9999", CommandStatus(9999).Message())
		assert.Equal(t, "error: Unknown error code -7", CommandStatus(-7).Message())
	})

	// Succeeded deliberately has no message entry: callers must never
	// render a successful result as an error.
	t.Run("success has no message entry", func(t *testing.T) {
		assert.Equal(t, "error: Unknown error code 0", Succeeded.Message())
	})
}

func TestCommandStatus_MessageIsTotal(t *testing.T) {
	for code := CommandStatus(-150); code <= 50; code++ {
		assert.NotEmpty(t, code.Message(), fmt.Sprintf("code %d", code))
	}
}
