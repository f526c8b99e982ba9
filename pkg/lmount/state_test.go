package lmount

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMountState_Label(t *testing.T) {
	tests := []struct {
		state MountState
		label string
	}{
		{Disabled, "DISABLED"},
		{NotHomed, "NOT HOMED"},
		{Parked, "PARKED"},
		{Stopped, "STOPPED"},
		{Slewing, "SLEWING"},
		{Tracking, "TRACKING"},
		{Homing, "HOMING"},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			assert.Equal(t, tc.label, tc.state.Label(false))
		})
	}

	t.Run("unknown state renders UNKNOWN", func(t *testing.T) {
		assert.Equal(t, "UNKNOWN", MountState(99).Label(false))
		assert.Equal(t, "UNKNOWN", MountState(-1).Label(false))
	})
}

func TestMountState_LabelFormatted(t *testing.T) {
	// Every formatted label must contain the plain label and close with
	// a reset sequence.
	for state := Disabled; state <= Homing; state++ {
		formatted := state.Label(true)
		assert.Contains(t, formatted, state.Label(false))
		assert.Contains(t, formatted, ansiReset)
	}

	t.Run("unknown state is error styled", func(t *testing.T) {
		formatted := MountState(99).Label(true)
		assert.Equal(t, StyleRedBold.ANSI("UNKNOWN"), formatted)
	})
}

func TestMountState_Markup(t *testing.T) {
	assert.Equal(t, "[b][green]TRACKING[/green][/b]", Tracking.Markup())
	assert.Equal(t, "[b][yellow]SLEWING[/yellow][/b]", Slewing.Markup())
	assert.Equal(t, "[b][red]DISABLED[/red][/b]", Disabled.Markup())
	assert.Equal(t, "[b][red]UNKNOWN[/red][/b]", MountState(99).Markup())
}

func TestMountState_Style(t *testing.T) {
	assert.Equal(t, StyleGreenBold, Tracking.Style())
	assert.Equal(t, StyleYellowBold, Homing.Style())
	assert.Equal(t, StyleRedBold, Stopped.Style())
	assert.Equal(t, StyleRedBold, MountState(42).Style())
}

func TestStyle_Renderers(t *testing.T) {
	assert.Equal(t, "text", StyleNone.ANSI("text"))
	assert.Equal(t, "text", StyleNone.Markup("text"))
	assert.Equal(t, "\033[1;32mtext\033[0m", StyleGreenBold.ANSI("text"))
}
