package cli

import "github.com/fatih/color"

// Output colors. fatih/color disables them when stdout is not a terminal.
var (
	Brand  = color.New(color.FgHiMagenta, color.Bold)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
	Warn   = color.New(color.FgYellow)
	Subtle = color.New(color.FgHiBlack)
)
