package lmount

// MountState represents the current mount lifecycle state.
// The daemon owns transitions between states; this type only names and
// renders them.
type MountState int

const (
	Disabled MountState = iota
	NotHomed
	Parked
	Stopped
	Slewing
	Tracking
	Homing
)

const unknownLabel = "UNKNOWN"

var stateLabels = map[MountState]string{
	Disabled: "DISABLED",
	NotHomed: "NOT HOMED",
	Parked:   "PARKED",
	Stopped:  "STOPPED",
	Slewing:  "SLEWING",
	Tracking: "TRACKING",
	Homing:   "HOMING",
}

var stateStyles = map[MountState]Style{
	Disabled: StyleRedBold,
	NotHomed: StyleRedBold,
	Parked:   StyleYellowBold,
	Stopped:  StyleRedBold,
	Slewing:  StyleYellowBold,
	Tracking: StyleGreenBold,
	Homing:   StyleYellowBold,
}

// Style returns the visual style for the state. Unrecognised values use
// the error style.
func (s MountState) Style() Style {
	if st, ok := stateStyles[s]; ok {
		return st
	}
	return StyleRedBold
}

// Label returns a human readable string describing a state.
// Set formatted to wrap the label in terminal formatting characters.
// It is total: unrecognised values render as UNKNOWN.
func (s MountState) Label(formatted bool) string {
	label, ok := stateLabels[s]
	if !ok {
		label = unknownLabel
	}
	if formatted {
		return s.Style().ANSI(label)
	}
	return label
}

// Markup returns the label wrapped in rich-text tags for report surfaces.
func (s MountState) Markup() string {
	label, ok := stateLabels[s]
	if !ok {
		label = unknownLabel
	}
	return s.Style().Markup(label)
}
