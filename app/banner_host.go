//go:build !tinygo

package app

import "github.com/fatih/color"

var bannerColor = color.New(color.FgHiWhite, color.BgRed, color.Bold)

// panicBanner highlights s when the host logger is a color terminal.
func panicBanner(s string) string {
	return bannerColor.Sprint(s)
}
