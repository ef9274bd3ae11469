//go:build !windows && !(linux && !android) && !darwin && !ios

package platform

const label = UnknownLabel
