package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// 이 값을 넘는 range_limit은 측정 시간이 크게 늘어납니다.
const recommendedMaxRangeLimit = 1 << 16

// AppConfig 애플리케이션의 최상위 설정 구조체
type AppConfig struct {
	Debug bool        `json:"debug"`
	Log   LogConfig   `json:"log"`
	Bench BenchConfig `json:"bench"`
}

// Validate 실행 인자 등으로 값을 변경한 뒤 설정 전체를 다시 검증합니다.
func (c *AppConfig) Validate() error {
	return c.validate(newValidator())
}

func (c *AppConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c.Log, "로그(log)"); err != nil {
		return err
	}
	if err := checkStruct(v, c.Bench, "벤치마크(bench)"); err != nil {
		return err
	}
	return nil
}

// VerifyRecommendations 권장 설정을 벗어난 항목에 대한 경고 메시지를 반환합니다.
// 에러는 아니므로 실행은 계속됩니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.Bench.RangeLimit > recommendedMaxRangeLimit {
		warnings = append(warnings, fmt.Sprintf("bench.range_limit(%d)이 권장 최대값(%d)보다 큽니다. 측정 시간이 길어질 수 있습니다", c.Bench.RangeLimit, recommendedMaxRangeLimit))
	}
	if c.Debug && c.Log.Level != "debug" && c.Log.Level != "trace" {
		warnings = append(warnings, fmt.Sprintf("debug 모드가 활성화되었지만 log.level이 '%s'입니다. 디버그 로그는 debug 모드 기준으로 출력됩니다", c.Log.Level))
	}

	return warnings
}

// LogConfig 로그 출력 설정
type LogConfig struct {
	// Level trace, debug, info, warn, error 중 하나
	Level string `json:"level" validate:"oneof=trace debug info warn error"`

	// Dir 비어 있으면 파일 로그를 남기지 않습니다.
	Dir string `json:"dir"`
}

// BenchConfig 벤치마크 측정 범위와 리포트 설정
type BenchConfig struct {
	RangeStart  int    `json:"range_start" validate:"min=1"`
	RangeLimit  int    `json:"range_limit" validate:"gtefield=RangeStart"`
	Multiplier  int    `json:"multiplier" validate:"min=2"`
	BenchTime   string `json:"bench_time" validate:"bench_time"`
	Format      string `json:"format" validate:"oneof=table markdown csv html json"`
	HistoryPath string `json:"history_path" validate:"required"`
}
