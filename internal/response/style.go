package response

// Style is the display style of a notification.
type Style string

const (
	StyleDefault Style = "DEFAULT"
	StylePrimary Style = "PRIMARY"
	StyleSuccess Style = "SUCCESS"
	StyleDanger  Style = "DANGER"
	StyleWarning Style = "WARNING"
	StyleInfo    Style = "INFO"
)

var styleCycle = [...]Style{
	StyleDefault,
	StylePrimary,
	StyleSuccess,
	StyleDanger,
	StyleWarning,
	StyleInfo,
}

// Valid reports whether s is one of the styles the host renders.
func (s Style) Valid() bool {
	for _, known := range styleCycle {
		if s == known {
			return true
		}
	}
	return false
}

// StyleAt returns the style at position seq of the repeating style cycle.
func StyleAt(seq uint64) Style {
	return styleCycle[seq%uint64(len(styleCycle))]
}
