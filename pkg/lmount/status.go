// Package lmount defines the command status codes and mount states shared
// between the mount daemon and its clients.
package lmount

import "fmt"

// CommandStatus is the numeric result of a daemon command.
type CommandStatus int

// General codes.
const (
	Succeeded CommandStatus = 0
	Failed    CommandStatus = 1
	Blocked   CommandStatus = 2

	InvalidControlIP CommandStatus = 5
)

// Command-specific codes.
const (
	MountControlNotRunning CommandStatus = 9
	MountNotInitialized    CommandStatus = 10
	MountNotHomed          CommandStatus = 11
	MountNotStopped        CommandStatus = 12
	MountNotDisabled       CommandStatus = 14
	UnknownParkPosition    CommandStatus = 15

	OutsideHALimits  CommandStatus = 20
	OutsideDecLimits CommandStatus = 21
)

// Client-side codes reported by the tel CLI rather than the daemon.
const (
	TerminatedByUser          CommandStatus = -100
	DaemonCommunicationFailed CommandStatus = -101
	CommandUnavailable        CommandStatus = -102
)

// statusMessages maps every non-Succeeded code onto its fixed message.
// Succeeded has no entry: success is never rendered as an error.
var statusMessages = map[CommandStatus]string{
	Failed:           "error: command failed",
	Blocked:          "error: another command is already running",
	InvalidControlIP: "error: command not accepted from this IP",

	MountControlNotRunning: "error: PWI4 software is not running",
	MountNotInitialized:    "error: mount has not been initialized",
	MountNotHomed:          "error: mount has not been homed",
	MountNotStopped:        "error: mount is not stopped",
	MountNotDisabled:       "error: mount has already been initialized",
	UnknownParkPosition:    "error: unknown park position",

	OutsideHALimits:  "error: requested coordinates outside HA limits",
	OutsideDecLimits: "error: requested coordinates outside Dec limits",

	TerminatedByUser:          "error: terminated by user",
	DaemonCommunicationFailed: "error: unable to communicate with telescope daemon",
	CommandUnavailable:        "error: command not available for this telescope",
}

// Message returns a human readable string describing an error code.
// It is total: codes without a table entry produce a generated fallback.
func (s CommandStatus) Message() string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return fmt.Sprintf("error: Unknown error code %d", int(s))
}
