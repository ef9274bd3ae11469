//go:build windows

package platform

const label = WindowsLabel
