package lmount

// Style is the visual emphasis category attached to a mount state.
// The state-to-style mapping is independent of any one output target;
// renderers below translate a style into concrete escape or markup syntax.
type Style int

const (
	// StyleNone renders text unchanged.
	StyleNone Style = iota
	// StyleRedBold marks inactive or error-adjacent states.
	StyleRedBold
	// StyleYellowBold marks transitional states.
	StyleYellowBold
	// StyleGreenBold marks the nominal operating state.
	StyleGreenBold
)

const ansiReset = "\033[0m"

var ansiCodes = map[Style]string{
	StyleRedBold:    "\033[1;31m",
	StyleYellowBold: "\033[1;33m",
	StyleGreenBold:  "\033[1;32m",
}

var markupColors = map[Style]string{
	StyleRedBold:    "red",
	StyleYellowBold: "yellow",
	StyleGreenBold:  "green",
}

// ANSI wraps text in the terminal escape sequence for the style.
func (st Style) ANSI(text string) string {
	code, ok := ansiCodes[st]
	if !ok {
		return text
	}
	return code + text + ansiReset
}

// Markup wraps text in rich-text tags ([b][red]...[/red][/b]) for the style.
func (st Style) Markup(text string) string {
	color, ok := markupColors[st]
	if !ok {
		return text
	}
	return "[b][" + color + "]" + text + "[/" + color + "][/b]"
}
