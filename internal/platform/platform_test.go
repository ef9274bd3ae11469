package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	t.Parallel()

	assert.Contains(t, Labels(), Label())
	assert.Len(t, Labels(), 4)
}

func TestLabel_MatchesBuildTarget(t *testing.T) {
	t.Parallel()

	want := UnknownLabel
	switch runtime.GOOS {
	case "windows":
		want = WindowsLabel
	case "linux":
		want = LinuxLabel
	case "darwin", "ios":
		want = AppleLabel
	}

	assert.Equal(t, want, Label())
}
