package strbench

import (
	"context"
	"errors"
	"flag"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/go-module-template/internal/pkg/errors"
	applog "github.com/darkkaiser/go-module-template/pkg/log"
	"github.com/darkkaiser/go-module-template/pkg/validation"
)

const component = "strbench.runner"

var initTestingOnce sync.Once

// Result 측정 케이스 하나의 결과입니다.
type Result struct {
	Strategy    string        `json:"strategy"`
	Size        int           `json:"size"`
	Iterations  int           `json:"iterations"`
	NsPerOp     int64         `json:"ns_per_op"`
	BytesPerOp  int64         `json:"bytes_per_op"`
	AllocsPerOp int64         `json:"allocs_per_op"`
	ResultLen   int           `json:"result_len"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Name `go test -bench` 출력과 같은 형식의 이름을 반환합니다. (예: BenchmarkStringConcatenation/64)
func (r Result) Name() string {
	return BenchmarkName(r.Strategy, r.Size)
}

// ProgressFunc 케이스 하나가 시작되기 직전에 호출됩니다. done은 완료된 케이스 수입니다.
type ProgressFunc func(done, total int, name string)

// Options Runner 생성 옵션입니다.
type Options struct {
	// Sizes 측정 크기 목록 (비어 있으면 에러)
	Sizes []int

	// BenchTime `go test -benchtime` 과 같은 형식 (비어 있으면 "1s")
	BenchTime string

	// Strategies 비어 있으면 기본 Strategies를 사용합니다.
	Strategies []Strategy

	// Progress 선택 사항
	Progress ProgressFunc
}

// Runner 모든 Strategy와 크기의 조합을 순서대로 측정합니다.
type Runner struct {
	sizes      []int
	benchTime  string
	strategies []Strategy
	progress   ProgressFunc

	// 테스트에서 교체할 수 있도록 분리합니다.
	benchmark func(func(b *testing.B)) testing.BenchmarkResult
}

// NewRunner 옵션을 검증하고 Runner를 생성합니다.
func NewRunner(opts Options) (*Runner, error) {
	if len(opts.Sizes) == 0 {
		return nil, apperrors.New(apperrors.InvalidInput, "측정 크기 목록이 비어 있습니다")
	}
	for _, n := range opts.Sizes {
		if n < 1 {
			return nil, apperrors.Newf(apperrors.InvalidInput, "측정 크기는 1 이상이어야 합니다: %d", n)
		}
	}

	// -test.benchtime 플래그는 공백을 허용하지 않는다.
	benchTime := strings.TrimSpace(opts.BenchTime)
	if benchTime == "" {
		benchTime = "1s"
	}
	if err := validation.ValidateBenchTime(benchTime); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "benchtime 값이 올바르지 않습니다")
	}

	strategies := opts.Strategies
	if len(strategies) == 0 {
		strategies = Strategies
	}

	return &Runner{
		sizes:      opts.Sizes,
		benchTime:  benchTime,
		strategies: strategies,
		progress:   opts.Progress,
		benchmark:  testing.Benchmark,
	}, nil
}

// BenchTime 실제로 적용되는 -test.benchtime 값을 반환합니다.
func (r *Runner) BenchTime() string {
	return r.benchTime
}

// Total 측정할 케이스 수를 반환합니다.
func (r *Runner) Total() int {
	return len(r.strategies) * len(r.sizes)
}

// Run 모든 케이스를 측정합니다.
// ctx가 취소되면 그때까지의 결과와 함께 에러를 반환합니다.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	if err := r.applyBenchTime(); err != nil {
		return nil, err
	}

	total := r.Total()
	results := make([]Result, 0, total)

	for _, s := range r.strategies {
		for _, n := range r.sizes {
			if err := ctx.Err(); err != nil {
				return results, canceled(err)
			}

			name := BenchmarkName(s.Name, n)
			if r.progress != nil {
				r.progress(len(results), total, name)
			}

			applog.WithComponentAndFields(component, applog.Fields{
				"name":       name,
				"bench_time": r.benchTime,
			}).Debug("측정 시작")

			build, size := s.Build, n
			resultLen := len(build(size))
			br := r.benchmark(func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					sink = build(size)
				}
			})
			if br.N == 0 {
				return results, apperrors.Newf(apperrors.ExecutionFailed, "벤치마크 실행에 실패했습니다: %s", name)
			}

			res := Result{
				Strategy:    s.Name,
				Size:        n,
				Iterations:  br.N,
				NsPerOp:     br.NsPerOp(),
				BytesPerOp:  br.AllocedBytesPerOp(),
				AllocsPerOp: br.AllocsPerOp(),
				ResultLen:   resultLen,
				Elapsed:     br.T,
			}
			results = append(results, res)

			applog.WithComponentAndFields(component, applog.Fields{
				"name":          name,
				"iterations":    res.Iterations,
				"ns_per_op":     res.NsPerOp,
				"allocs_per_op": res.AllocsPerOp,
			}).Debug("측정 완료")
		}
	}

	if r.progress != nil {
		r.progress(total, total, "")
	}

	return results, nil
}

// applyBenchTime testing 패키지의 플래그를 초기화하고 -test.benchtime 값을 설정합니다.
func (r *Runner) applyBenchTime() error {
	initTestingOnce.Do(testing.Init)

	if err := flag.Set("test.benchtime", r.benchTime); err != nil {
		return apperrors.Wrapf(err, apperrors.Internal, "benchtime 설정에 실패했습니다: '%s'", r.benchTime)
	}
	return nil
}

func canceled(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(err, apperrors.Timeout, "벤치마크 실행 시간이 초과되었습니다")
	}
	return apperrors.Wrap(err, apperrors.ExecutionFailed, "벤치마크 실행이 취소되었습니다")
}
