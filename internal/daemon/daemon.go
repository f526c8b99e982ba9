// Package daemon holds the mount daemon's runtime state and status
// reporting. The motion engine that drives PWI is not part of this
// package; command handlers here validate as far as the control surface
// allows and report the appropriate status code.
package daemon

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rockit-astro/lmountd/internal/config"
	"github.com/rockit-astro/lmountd/pkg/lmount"
)

// Daemon is the mount daemon runtime. Config is read-only after
// construction; the state field is guarded for concurrent readers.
type Daemon struct {
	cfg    *config.Config
	logger *zap.Logger

	mu        sync.RWMutex
	state     lmount.MountState
	startTime time.Time
}

// Report is a point-in-time snapshot of the daemon published to status
// clients and telemetry consumers.
type Report struct {
	Daemon        string    `json:"daemon"`
	State         int       `json:"state"`
	Label         string    `json:"label"`
	Markup        string    `json:"markup"`
	ParkPositions []string  `json:"park_positions"`
	UptimeSeconds float64   `json:"uptime"`
	Timestamp     time.Time `json:"timestamp"`
}

// New creates a daemon runtime for the given validated configuration.
// The mount starts Disabled until the controller enables it.
func New(cfg *config.Config, logger *zap.Logger) *Daemon {
	return &Daemon{
		cfg:       cfg,
		logger:    logger.With(zap.String("daemon", cfg.Daemon.Name)),
		state:     lmount.Disabled,
		startTime: time.Now(),
	}
}

// Config returns the daemon's immutable configuration.
func (d *Daemon) Config() *config.Config {
	return d.cfg
}

// State returns the current mount state.
func (d *Daemon) State() lmount.MountState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// SetState records a state change reported by the mount controller.
func (d *Daemon) SetState(state lmount.MountState) {
	d.mu.Lock()
	previous := d.state
	d.state = state
	d.mu.Unlock()

	if previous != state {
		d.logger.Info("Mount state changed",
			zap.String("from", previous.Label(false)),
			zap.String("to", state.Label(false)))
	}
}

// Report builds a status snapshot of the daemon.
func (d *Daemon) Report() Report {
	state := d.State()

	positions := make([]string, 0, len(d.cfg.ParkPositions))
	for name := range d.cfg.ParkPositions {
		positions = append(positions, name)
	}
	sort.Strings(positions)

	return Report{
		Daemon:        d.cfg.Daemon.Name,
		State:         int(state),
		Label:         state.Label(false),
		Markup:        state.Markup(),
		ParkPositions: positions,
		UptimeSeconds: time.Since(d.startTime).Seconds(),
		Timestamp:     time.Now().UTC(),
	}
}

// Park validates a park command as far as the control surface allows:
// the position must be configured and the mount must be in a state that
// accepts motion commands. The PWI motion client is outside this build,
// so requests that pass validation report the control software as not
// running rather than moving anything.
func (d *Daemon) Park(position string) lmount.CommandStatus {
	if _, ok := d.cfg.ParkPositions[position]; !ok {
		return lmount.UnknownParkPosition
	}

	switch d.State() {
	case lmount.Disabled:
		return lmount.MountNotInitialized
	case lmount.NotHomed:
		return lmount.MountNotHomed
	case lmount.Slewing, lmount.Homing:
		return lmount.Blocked
	}

	return lmount.MountControlNotRunning
}

// Initialize validates an initialize command: only a disabled mount may
// be initialized.
func (d *Daemon) Initialize() lmount.CommandStatus {
	if d.State() != lmount.Disabled {
		return lmount.MountNotDisabled
	}
	return lmount.MountControlNotRunning
}
