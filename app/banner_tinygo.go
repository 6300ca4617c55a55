//go:build tinygo

package app

func panicBanner(s string) string { return s }
