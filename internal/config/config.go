// Package config 애플리케이션 설정을 정의하고 로드합니다.
//
// 설정은 다음 순서로 겹쳐서 적용됩니다. (뒤에 오는 것이 우선)
//
//  1. 컴파일 시점에 정해진 기본값
//  2. 설정 파일 (.json, .yaml, .yml)
//  3. 환경 변수 (STRBENCH_ 접두사, 이중 언더스코어(__)는 계층 구분자)
//
// hello 바이너리는 Default()만 사용하므로 파일이나 환경 변수를 읽지 않습니다.
package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	apperrors "github.com/darkkaiser/go-module-template/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName = "go-module-template"

	// BenchAppName 벤치마크 러너의 식별자입니다.
	BenchAppName = "strbench"

	// EnvPrefix 벤치마크 러너가 읽는 환경 변수의 접두사입니다.
	// 예: STRBENCH_BENCH__RANGE_LIMIT -> bench.range_limit
	EnvPrefix = "STRBENCH_"

	// DefaultRangeStart, DefaultRangeLimit, DefaultMultiplier 기본 측정 범위 (1, 8, 64, 512, 1024)
	DefaultRangeStart = 1
	DefaultRangeLimit = 1024
	DefaultMultiplier = 8

	// DefaultBenchTime 측정 케이스 하나당 최소 실행 시간
	DefaultBenchTime = "1s"

	// DefaultFormat 기본 리포트 형식
	DefaultFormat = "table"

	// DefaultHistoryPath 측정 기록을 저장할 SQLite 파일의 기본 경로
	DefaultHistoryPath = "~/." + BenchAppName + "/history.db"
)

// Formats 지원하는 리포트 형식 목록입니다.
var Formats = []string{"table", "markdown", "csv", "html", "json"}

// defaults 기본 설정값을 반환합니다.
func defaults() AppConfig {
	return AppConfig{
		Debug: false,
		Log: LogConfig{
			Level: "warn",
		},
		Bench: BenchConfig{
			RangeStart:  DefaultRangeStart,
			RangeLimit:  DefaultRangeLimit,
			Multiplier:  DefaultMultiplier,
			BenchTime:   DefaultBenchTime,
			Format:      DefaultFormat,
			HistoryPath: DefaultHistoryPath,
		},
	}
}

// Default 기본값만으로 구성된 설정을 반환합니다. 파일과 환경 변수는 읽지 않습니다.
func Default() (*AppConfig, error) {
	return load("", false)
}

// Load 기본값 위에 설정 파일과 환경 변수를 겹쳐 설정을 로드합니다.
// filename이 빈 문자열이면 설정 파일 단계를 건너뜁니다.
func Load(filename string) (*AppConfig, error) {
	return load(filename, true)
}

func load(filename string, withEnv bool) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값
	if err := k.Load(structs.Provider(defaults(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "기본 설정 로드에 실패했습니다")
	}

	// 2. 설정 파일
	if filename != "" {
		parser, err := parserFor(filename)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(filename), parser); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, apperrors.Wrapf(err, apperrors.NotFound, "설정 파일을 찾을 수 없습니다: '%s'", filename)
			}
			return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 파일 로드 중 오류가 발생했습니다: '%s'", filename)
		}
	}

	// 3. 환경 변수
	if withEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
			return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
		}
	}

	// 4. 구조체 변환 (알 수 없는 키는 에러)
	var cfg AppConfig
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사
	if err := cfg.validate(newValidator()); err != nil {
		source := filename
		if source == "" {
			source = "기본값"
		}
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정('%s')의 유효성 검증에 실패했습니다", source)
	}

	return &cfg, nil
}

// parserFor 파일 확장자에 맞는 koanf 파서를 선택합니다.
func parserFor(filename string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return json.Parser(), nil
	case ".yaml", ".yml":
		return yamlParser{}, nil
	default:
		return nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 설정 파일 형식입니다: '%s' (.json, .yaml, .yml)", filename)
	}
}

// normalizeEnvKey 환경 변수 이름을 koanf 키로 변환합니다.
// 이중 언더스코어(__)는 계층 구분자(.)가 됩니다.
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}
