// Package app 샘플 애플리케이션(App)을 제공합니다.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/darkkaiser/go-module-template/internal/pkg/version"
)

const (
	// Version 애플리케이션의 제품 버전입니다.
	Version = "1.0.0"

	// Greeting Run이 출력하는 인사말입니다.
	Greeting = "Hello World from Go Module Template!"

	// unknownBuildVersion ldflags와 모듈 정보 모두에서 버전을 얻지 못한 빌드의 버전 값
	unknownBuildVersion = "unknown"
)

// App 버전 문자열을 보유한 샘플 애플리케이션입니다.
// 생성 시점에 버전이 정해지며 이후 변경되지 않습니다.
type App struct {
	version string
	out     io.Writer
}

// Option App 생성 옵션입니다.
type Option func(*App)

// WithOutput Run의 출력 대상을 지정합니다. 기본값은 표준 출력입니다.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		if w != nil {
			a.out = w
		}
	}
}

// New 바로 사용할 수 있는 App을 생성합니다.
func New(opts ...Option) *App {
	a := &App{
		version: Version,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run 인사말 한 줄을 출력합니다. 쓰기 실패는 무시합니다.
func (a *App) Run() {
	_, _ = fmt.Fprintln(a.out, Greeting)
}

// Version 생성 시점에 설정된 버전을 반환합니다.
func (a *App) Version() string {
	return a.version
}

// RegisterBuildInfo 빌드 버전이 주입되지 않은 빌드(go run, go test 등)는 제품 버전을 빌드 버전으로 등록합니다.
// 등록된 빌드 정보를 반환합니다.
func RegisterBuildInfo() version.Info {
	bi := version.Get()
	if bi.Version == "" || bi.Version == unknownBuildVersion {
		bi.Version = Version
		version.Set(bi)
	}
	return version.Get()
}
