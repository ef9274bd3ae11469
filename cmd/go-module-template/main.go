// go-module-template 인사말, 제품 버전, 실행 플랫폼을 한 줄씩 출력합니다.
//
// 인자를 받지 않으며 항상 종료 코드 0으로 끝납니다. 진단 로그는 표준 에러로만 출력됩니다.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/darkkaiser/go-module-template/internal/app"
	"github.com/darkkaiser/go-module-template/internal/config"
	"github.com/darkkaiser/go-module-template/internal/platform"
	applog "github.com/darkkaiser/go-module-template/pkg/log"
)

func main() {
	run(os.Stdout, os.Stderr)
}

// run 표준 출력에 정확히 세 줄을 기록합니다.
//
//  1. 인사말
//  2. "Project version: " + 제품 버전
//  3. 컴파일 대상 플랫폼 라벨
func run(stdout, stderr io.Writer) {
	// 1. 로그 시스템 초기화 (실패해도 출력은 계속한다)
	if cfg, err := config.Default(); err != nil {
		fmt.Fprintf(stderr, "[WARN] 기본 설정 로드 실패: %v\n", err)
	} else if closer, err := applog.Setup(cfg.LogOptions(config.AppName, stderr)); err != nil {
		fmt.Fprintf(stderr, "[WARN] 로그 시스템 초기화 실패: %v\n", err)
	} else {
		defer closer.Close()
	}

	applog.WithComponentAndFields("main", app.RegisterBuildInfo().ToMap()).
		WithField("platform", platform.Label()).
		Debug("애플리케이션 시작")

	// 2. 결과 출력
	a := app.New(app.WithOutput(stdout))
	a.Run()
	fmt.Fprintf(stdout, "Project version: %s\n", a.Version())
	fmt.Fprintln(stdout, platform.Label())
}
