// Package platform 빌드 대상 운영체제 계열을 나타내는 레이블을 제공합니다.
//
// 레이블은 런타임 감지가 아니라 빌드 제약(build constraint)으로 컴파일 시점에 결정됩니다.
package platform

const (
	// WindowsLabel Windows 대상 빌드의 레이블
	WindowsLabel = "Running on Windows platform"

	// LinuxLabel Linux 대상 빌드의 레이블
	LinuxLabel = "Running on Linux platform"

	// AppleLabel macOS, iOS 대상 빌드의 레이블
	AppleLabel = "Running on Apple platform"

	// UnknownLabel 그 밖의 모든 대상의 레이블
	UnknownLabel = "Running on unknown platform"
)

// Label 현재 바이너리가 빌드된 대상 플랫폼의 레이블을 반환합니다.
func Label() string {
	return label
}

// Labels 가능한 모든 레이블을 반환합니다.
func Labels() []string {
	return []string{WindowsLabel, LinuxLabel, AppleLabel, UnknownLabel}
}
