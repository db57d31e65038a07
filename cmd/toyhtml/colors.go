package main

import (
	"fmt"

	"github.com/dpotapov/toyhtml/treediff"

	"github.com/fatih/color"
)

type palette struct {
	Error   func(string, ...any) string
	Warning func(string, ...any) string
	Caret   func(string, ...any) string
	Faint   func(string, ...any) string
}

func newPalette(enabled bool) *palette {
	if !enabled {
		return &palette{
			Error:   fmt.Sprintf,
			Warning: fmt.Sprintf,
			Caret:   fmt.Sprintf,
			Faint:   fmt.Sprintf,
		}
	}
	return &palette{
		Error:   treediff.ColorFunc(color.FgRed, color.Bold),
		Warning: treediff.ColorFunc(color.FgYellow),
		Caret:   treediff.ColorFunc(color.FgGreen, color.Bold),
		Faint:   treediff.ColorFunc(color.Faint),
	}
}
