//go:build linux && !android

package platform

const label = LinuxLabel
