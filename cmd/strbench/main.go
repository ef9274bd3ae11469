// strbench 문자열 구성 방식(이어 붙이기, 스트림 서식 출력)의 성능을 측정하고 리포트를 출력합니다.
//
// 표준 출력에는 리포트만 기록하고, 진행 상태와 로그는 표준 에러로 출력합니다.
//
//	strbench --limit 4096 --format markdown
//	strbench --benchtime 100x --store
//	strbench --last 3
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/darkkaiser/go-module-template/internal/app"
	"github.com/darkkaiser/go-module-template/internal/config"
	apperrors "github.com/darkkaiser/go-module-template/internal/pkg/errors"
	"github.com/darkkaiser/go-module-template/internal/pkg/version"
	"github.com/darkkaiser/go-module-template/internal/strbench"
	"github.com/darkkaiser/go-module-template/internal/strbench/history"
	applog "github.com/darkkaiser/go-module-template/pkg/log"
	"github.com/spf13/pflag"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// flags 명령행 인자입니다. 지정된 값만 설정을 덮어씁니다.
type flags struct {
	fs *pflag.FlagSet

	configFile  string
	format      string
	benchTime   string
	start       int
	limit       int
	multiplier  int
	store       bool
	historyPath string
	last        int
	debug       bool
	showVersion bool
}

func newFlags(stderr io.Writer) *flags {
	f := &flags{fs: pflag.NewFlagSet(config.BenchAppName, pflag.ContinueOnError)}
	f.fs.SetOutput(stderr)

	f.fs.StringVarP(&f.configFile, "config", "c", "", "설정 파일 경로 (.json, .yaml, .yml)")
	f.fs.StringVarP(&f.format, "format", "f", "", "리포트 형식 (table, markdown, csv, html, json)")
	f.fs.StringVar(&f.benchTime, "benchtime", "", "케이스당 측정 시간 또는 반복 횟수 (예: 1s, 100x)")
	f.fs.IntVar(&f.start, "start", 0, "측정 크기 시작값")
	f.fs.IntVar(&f.limit, "limit", 0, "측정 크기 최대값")
	f.fs.IntVar(&f.multiplier, "multiplier", 0, "측정 크기 증가 배수")
	f.fs.BoolVar(&f.store, "store", false, "측정 결과를 기록 데이터베이스에 저장")
	f.fs.StringVar(&f.historyPath, "history", "", "기록 데이터베이스 경로")
	f.fs.IntVar(&f.last, "last", 0, "측정하지 않고 최근 기록 N개를 출력")
	f.fs.BoolVar(&f.debug, "debug", false, "디버그 로그 출력")
	f.fs.BoolVarP(&f.showVersion, "version", "v", false, "빌드 정보를 출력하고 종료")

	return f
}

// apply 명시적으로 지정된 인자로 설정값을 덮어쓰고 다시 검증합니다.
func (f *flags) apply(cfg *config.AppConfig) error {
	if f.fs.Changed("format") {
		cfg.Bench.Format = f.format
	}
	if f.fs.Changed("benchtime") {
		cfg.Bench.BenchTime = f.benchTime
	}
	if f.fs.Changed("start") {
		cfg.Bench.RangeStart = f.start
	}
	if f.fs.Changed("limit") {
		cfg.Bench.RangeLimit = f.limit
	}
	if f.fs.Changed("multiplier") {
		cfg.Bench.Multiplier = f.multiplier
	}
	if f.fs.Changed("history") {
		cfg.Bench.HistoryPath = f.historyPath
	}
	if f.fs.Changed("debug") {
		cfg.Debug = f.debug
	}
	return cfg.Validate()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f := newFlags(stderr)
	if err := f.fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if f.fs.NArg() > 0 {
		fmt.Fprintf(stderr, "[ERROR] 알 수 없는 인자입니다: %v\n", f.fs.Args())
		return exitUsage
	}

	buildInfo := app.RegisterBuildInfo()
	if f.showVersion {
		fmt.Fprintln(stdout, buildInfo.String())
		return exitOK
	}

	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	cfg, err := config.Load(f.configFile)
	if err != nil {
		printError(stderr, "환경설정 로드 실패", err, f.debug)
		return exitError
	}
	if err := f.apply(cfg); err != nil {
		printError(stderr, "실행 인자가 올바르지 않습니다", err, f.debug)
		return exitUsage
	}

	// 2. 로그 시스템 초기화
	closer, err := applog.Setup(cfg.LogOptions(config.BenchAppName, stderr))
	if err != nil {
		fmt.Fprintf(stderr, "[ERROR] 로그 시스템 초기화 실패: %v\n", err)
		return exitError
	}
	defer closer.Close()

	// 3. 로그 레벨 최종 확정 (Setup은 프로세스당 한 번만 적용된다)
	if cfg.Debug {
		applog.SetDebugMode(true)
	}

	for _, w := range cfg.VerifyRecommendations() {
		applog.WithComponent("main").Warn(w)
	}

	applog.WithComponentAndFields("main", buildInfo.ToMap()).
		WithField("config", f.configFile).
		Debug("strbench 시작")

	// 4. 실행
	if f.last > 0 {
		err = showHistory(ctx, cfg, f.last, stdout)
	} else {
		err = measure(ctx, cfg, f.store, stdout, stderr)
	}
	if err != nil {
		applog.WithComponentAndFields("main", applog.Fields{
			"error_type": apperrors.UnderlyingType(err).String(),
		}).WithError(err).Error("strbench 실행 실패")
		printError(stderr, "strbench 실행 실패", err, cfg.Debug)
		return exitError
	}

	return exitOK
}

// printError 에러를 표준 에러로 출력합니다. debug이면 AppError의 원인 체인과 호출 스택까지 출력합니다.
func printError(w io.Writer, msg string, err error, debug bool) {
	var appErr *apperrors.AppError
	if debug && apperrors.As(err, &appErr) {
		fmt.Fprintf(w, "[ERROR] %s: %+v\n", msg, err)
		return
	}
	fmt.Fprintf(w, "[ERROR] %s: %v\n", msg, err)
}

// measure 벤치마크를 실행하고 리포트를 출력합니다. store가 true이면 결과를 기록합니다.
func measure(ctx context.Context, cfg *config.AppConfig, store bool, stdout, stderr io.Writer) error {
	bench := cfg.Bench

	// 리포트를 출력하기 전에 저장소를 열어 경로 문제를 먼저 드러낸다.
	var st *history.Store
	if store {
		var err error
		if st, err = history.Open(bench.HistoryPath); err != nil {
			return err
		}
		defer st.Close()
	}

	p := newProgress(stderr)
	runner, err := strbench.NewRunner(strbench.Options{
		Sizes:     strbench.Sizes(bench.RangeStart, bench.RangeLimit, bench.Multiplier),
		BenchTime: bench.BenchTime,
		Progress:  p.update,
	})
	if err != nil {
		return err
	}

	startedAt := time.Now()
	p.start()
	results, err := runner.Run(ctx)
	p.stop()
	if err != nil {
		return err
	}

	if err := strbench.Render(stdout, bench.Format, results); err != nil {
		return err
	}

	if st != nil {
		id, err := st.Save(ctx, newHistoryRun(version.Get(), startedAt, runner.BenchTime(), results))
		if err != nil {
			return err
		}
		applog.WithComponentAndFields("main", applog.Fields{
			"run_id": id,
			"path":   st.Path(),
		}).Info("측정 결과를 저장했습니다")
	}

	return nil
}

// newHistoryRun 측정 결과에 빌드 환경(앱 버전, Go 버전, OS, 아키텍처)을 붙여 기록을 만듭니다.
func newHistoryRun(bi version.Info, startedAt time.Time, benchTime string, results []strbench.Result) history.Run {
	return history.Run{
		StartedAt:  startedAt,
		AppVersion: bi.Version,
		GoVersion:  bi.GoVersion,
		OS:         bi.OS,
		Arch:       bi.Arch,
		BenchTime:  benchTime,
		Results:    results,
	}
}

// showHistory 저장된 최근 실행 기록을 최신순으로 출력합니다.
func showHistory(ctx context.Context, cfg *config.AppConfig, limit int, stdout io.Writer) error {
	st, err := history.Open(cfg.Bench.HistoryPath)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		applog.WithComponentAndFields("main", applog.Fields{"path": st.Path()}).Warn("저장된 실행 기록이 없습니다")
		return nil
	}

	for i, r := range runs {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		fmt.Fprintf(stdout, "# %s  %s  version=%s  go=%s  platform=%s/%s  benchtime=%s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.AppVersion, r.GoVersion, r.OS, r.Arch, r.BenchTime)
		if err := strbench.Render(stdout, cfg.Bench.Format, r.Results); err != nil {
			return err
		}
	}

	return nil
}
