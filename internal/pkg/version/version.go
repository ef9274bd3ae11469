// Package version strbench 바이너리가 어떤 빌드와 환경에서 실행되었는지를 기록합니다.
//
// 벤치마크 수치는 Go 버전과 플랫폼에 따라 달라지므로, 실행 기록(history)에는 측정값과 함께
// 이 패키지의 Info(Go 버전, OS, 아키텍처)가 저장되고 --version 출력과 시작 로그에도 같은 정보가 쓰입니다.
//
// 릴리스 빌드는 링커 플래그로 값을 주입합니다.
//
//	go build -ldflags "-X github.com/darkkaiser/go-module-template/internal/pkg/version.gitCommitHash=$(git rev-parse HEAD)" ./cmd/strbench
//
// 주입이 없으면 모듈의 VCS 메타데이터(debug.ReadBuildInfo)로 보강하며, 그래도 비어있는 버전은
// app.RegisterBuildInfo가 제품 버전으로 채웁니다.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

const (
	unknown = "unknown"
	none    = "none"
)

var current atomic.Value

// readBuildInfo 테스트에서 교체할 수 있도록 변수로 둡니다.
var readBuildInfo = debug.ReadBuildInfo

// 링커 플래그(-X)로 주입되는 값
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = "" // clean 또는 dirty
	buildDate     = ""
	buildNumber   = ""
)

func init() {
	current.Store(enrich(linkerInfo()))
}

func linkerInfo() Info {
	return Info{
		Version:     strings.TrimSpace(appVersion),
		Commit:      strings.TrimSpace(gitCommitHash),
		BuildDate:   strings.TrimSpace(buildDate),
		BuildNumber: strings.TrimSpace(buildNumber),
		DirtyBuild:  strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	}
}

// Info 빌드 정보와 실행 환경입니다.
type Info struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	BuildNumber string `json:"build_number"`
	GoVersion   string `json:"go_version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	DirtyBuild  bool   `json:"dirty_build"`
}

// Get 현재 등록된 빌드 정보를 반환합니다. 여러 고루틴에서 동시에 호출해도 안전합니다.
func Get() Info {
	if bi, ok := current.Load().(Info); ok {
		return bi
	}
	return Info{Version: unknown, Commit: unknown, BuildDate: unknown, BuildNumber: "0"}
}

// Set 빌드 정보를 교체합니다. 비어있는 런타임 필드(GoVersion, OS, Arch)는 자동으로 채워집니다.
func Set(bi Info) {
	current.Store(enrich(bi))
}

// Version 빌드 버전 문자열을 반환합니다.
func Version() string {
	return Get().Version
}

// enrich 비어있는 필드를 실행 환경과 모듈 VCS 메타데이터로 채웁니다.
func enrich(bi Info) Info {
	fillRuntime(&bi)
	if mod, ok := readBuildInfo(); ok && mod != nil {
		fillFromModule(&bi, mod)
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" || bi.Commit == none {
		bi.Commit = unknown
	}
	return bi
}

func fillRuntime(bi *Info) {
	if bi.GoVersion == "" {
		bi.GoVersion = runtime.Version()
	}
	if bi.OS == "" {
		bi.OS = runtime.GOOS
	}
	if bi.Arch == "" {
		bi.Arch = runtime.GOARCH
	}
}

// fillFromModule `go run`, `go test`처럼 ldflags 주입이 없는 빌드의 커밋, 빌드 시각, 수정 여부를 채운다.
func fillFromModule(bi *Info, mod *debug.BuildInfo) {
	missing := func(v string) bool { return v == "" || v == unknown || v == none }

	for _, s := range mod.Settings {
		switch s.Key {
		case "vcs.revision":
			if missing(bi.Commit) {
				bi.Commit = s.Value
			}
		case "vcs.time":
			if missing(bi.BuildDate) {
				bi.BuildDate = s.Value
			}
		case "vcs.modified":
			bi.DirtyBuild = bi.DirtyBuild || s.Value == "true"
		}
	}

	if bi.Version == "" && mod.Main.Version != "" && mod.Main.Version != "(devel)" {
		bi.Version = mod.Main.Version
	}
}

// ToMap 구조적 로깅용 필드 맵을 반환합니다.
func (i Info) ToMap() map[string]any {
	return map[string]any{
		"version":      i.Version,
		"commit":       i.Commit,
		"build_date":   i.BuildDate,
		"build_number": i.BuildNumber,
		"go_version":   i.GoVersion,
		"os":           i.OS,
		"arch":         i.Arch,
		"dirty_build":  i.DirtyBuild,
	}
}

// String --version 출력용 한 줄 요약입니다. 예: "1.0.0+dirty (commit: f25b8bf, go_version: go1.24.11, os: linux, arch: amd64)"
func (i Info) String() string {
	if i.Version == "" {
		return unknown
	}

	v := i.Version
	if i.DirtyBuild {
		v += "+dirty"
	}

	commit := i.Commit
	if commit == unknown {
		commit = ""
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	date := i.BuildDate
	if date == unknown {
		date = ""
	}

	var details []string
	for _, d := range [...]struct{ label, value string }{
		{"commit", commit},
		{"build", i.BuildNumber},
		{"date", date},
		{"go_version", i.GoVersion},
		{"os", i.OS},
		{"arch", i.Arch},
	} {
		if d.value != "" {
			details = append(details, d.label+": "+d.value)
		}
	}

	if len(details) == 0 {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}
