package http

import (
	xutil "PortfolioPulse/pkg/util"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int { return xutil.ParseIntDefault(s, def) }

// SplitCSV splits a comma separated query value into trimmed, non-empty items.
func SplitCSV(s string) []string { return xutil.SplitCSV(s) }
