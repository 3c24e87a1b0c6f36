package ui

// ColorReset returns the reset code of the active theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorGrey returns the secondary color.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// Colorize wraps s in code and the reset sequence. With the no-color theme
// the codes are empty and s is returned unchanged.
func Colorize(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + ColorReset()
}

// OutcomeColor maps an outcome name ("pass", "fail", "crash", "timeout")
// to its color.
func OutcomeColor(outcome string) string {
	switch outcome {
	case "pass":
		return ColorGreen()
	case "timeout":
		return ColorYellow()
	case "fail", "crash":
		return ColorRed()
	}
	return ""
}
