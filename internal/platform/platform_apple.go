//go:build darwin || ios

package platform

const label = AppleLabel
