package config

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/darkkaiser/go-module-template/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile 임시 디렉터리에 설정 파일을 만들고 경로를 반환합니다.
func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// =============================================================================
// Unit Tests: Helpers
// =============================================================================

func TestNormalizeEnvKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"STRBENCH_DEBUG", "debug"},
		{"STRBENCH_BENCH__RANGE_LIMIT", "bench.range_limit"},
		{"STRBENCH_LOG__LEVEL", "log.level"},
		{"STRBENCH_Mixed_Case__Key", "mixed_case.key"},
	}

	for _, tt := range tests {
		tt := tt
		assert.Equal(t, tt.expected, normalizeEnvKey(tt.input), "Input: %s", tt.input)
	}
}

func TestParserFor(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"a.json", "a.JSON", "a.yaml", "a.yml"} {
		p, err := parserFor(name)
		assert.NoError(t, err, name)
		assert.NotNil(t, p, name)
	}

	_, err := parserFor("a.toml")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}

// =============================================================================
// Default
// =============================================================================

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg, err := Default()
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.Log.Dir)
	assert.Equal(t, DefaultRangeStart, cfg.Bench.RangeStart)
	assert.Equal(t, DefaultRangeLimit, cfg.Bench.RangeLimit)
	assert.Equal(t, DefaultMultiplier, cfg.Bench.Multiplier)
	assert.Equal(t, DefaultBenchTime, cfg.Bench.BenchTime)
	assert.Equal(t, DefaultFormat, cfg.Bench.Format)
	assert.Equal(t, DefaultHistoryPath, cfg.Bench.HistoryPath)
	assert.Empty(t, cfg.VerifyRecommendations())
}

// 환경 변수를 사용하므로 병렬로 실행하지 않습니다.
func TestDefault_IgnoresEnvironment(t *testing.T) {
	t.Setenv("STRBENCH_BENCH__RANGE_LIMIT", "64")
	t.Setenv("STRBENCH_UNKNOWN_KEY", "x")

	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, DefaultRangeLimit, cfg.Bench.RangeLimit)
}

// =============================================================================
// Load
// =============================================================================

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRangeLimit, cfg.Bench.RangeLimit)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfigFile(t, "strbench.json", `{
		"debug": true,
		"log": { "level": "debug" },
		"bench": { "range_limit": 64, "format": "markdown", "bench_time": "100x" }
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 64, cfg.Bench.RangeLimit)
	assert.Equal(t, "markdown", cfg.Bench.Format)
	assert.Equal(t, "100x", cfg.Bench.BenchTime)

	// 파일에 없는 값은 기본값을 유지한다.
	assert.Equal(t, DefaultRangeStart, cfg.Bench.RangeStart)
	assert.Equal(t, DefaultMultiplier, cfg.Bench.Multiplier)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfigFile(t, "strbench.yaml", `
log:
  level: info
bench:
  range_start: 2
  range_limit: 32
  multiplier: 2
  format: csv
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Bench.RangeStart)
	assert.Equal(t, 32, cfg.Bench.RangeLimit)
	assert.Equal(t, 2, cfg.Bench.Multiplier)
	assert.Equal(t, "csv", cfg.Bench.Format)
}

func TestLoad_EmptyYAML(t *testing.T) {
	path := writeConfigFile(t, "empty.yml", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultRangeLimit, cfg.Bench.RangeLimit)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "strbench.json", `{ "bench": { "range_limit": 64 } }`)
	t.Setenv("STRBENCH_BENCH__RANGE_LIMIT", "512")
	t.Setenv("STRBENCH_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Bench.RangeLimit)
	assert.True(t, cfg.Debug)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		content   string
		wantType  apperrors.ErrorType
		errSubstr string
	}{
		{
			name:     "Unsupported extension",
			filename: "strbench.toml",
			content:  "",
			wantType: apperrors.InvalidInput,
		},
		{
			name:     "Malformed JSON",
			filename: "strbench.json",
			content:  `{ "bench": `,
			wantType: apperrors.InvalidInput,
		},
		{
			name:      "Unknown key",
			filename:  "strbench.json",
			content:   `{ "bench": { "range_limt": 10 } }`,
			wantType:  apperrors.InvalidInput,
			errSubstr: "range_limt",
		},
		{
			name:      "Range start below one",
			filename:  "strbench.json",
			content:   `{ "bench": { "range_start": 0 } }`,
			wantType:  apperrors.InvalidInput,
			errSubstr: "range_start",
		},
		{
			name:      "Range limit below start",
			filename:  "strbench.json",
			content:   `{ "bench": { "range_start": 100, "range_limit": 10 } }`,
			wantType:  apperrors.InvalidInput,
			errSubstr: "range_limit",
		},
		{
			name:      "Multiplier below two",
			filename:  "strbench.json",
			content:   `{ "bench": { "multiplier": 1 } }`,
			wantType:  apperrors.InvalidInput,
			errSubstr: "multiplier",
		},
		{
			name:      "Invalid bench time",
			filename:  "strbench.json",
			content:   `{ "bench": { "bench_time": "soon" } }`,
			wantType:  apperrors.InvalidInput,
			errSubstr: "bench_time",
		},
		{
			name:      "Unknown format",
			filename:  "strbench.json",
			content:   `{ "bench": { "format": "xml" } }`,
			wantType:  apperrors.InvalidInput,
			errSubstr: "format",
		},
		{
			name:      "Unknown log level",
			filename:  "strbench.json",
			content:   `{ "log": { "level": "verbose" } }`,
			wantType:  apperrors.InvalidInput,
			errSubstr: "level",
		},
		{
			name:      "Empty history path",
			filename:  "strbench.yaml",
			content:   "bench:\n  history_path: \"\"\n",
			wantType:  apperrors.InvalidInput,
			errSubstr: "history_path",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfigFile(t, tt.filename, tt.content)

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, tt.wantType), "err=%v", err)
			if tt.errSubstr != "" {
				assert.Contains(t, err.Error(), tt.errSubstr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.NotFound), "err=%v", err)
}

// =============================================================================
// VerifyRecommendations
// =============================================================================

func TestVerifyRecommendations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		modify       func(*AppConfig)
		wantWarnings int
		wantContains string
	}{
		{name: "Defaults", modify: func(*AppConfig) {}},
		{
			name:         "Large range limit",
			modify:       func(c *AppConfig) { c.Bench.RangeLimit = recommendedMaxRangeLimit + 1 },
			wantWarnings: 1,
			wantContains: "range_limit",
		},
		{
			name:         "Debug with quiet log level",
			modify:       func(c *AppConfig) { c.Debug = true },
			wantWarnings: 1,
			wantContains: "debug",
		},
		{
			name:   "Debug with debug log level",
			modify: func(c *AppConfig) {
				c.Debug = true
				c.Log.Level = "debug"
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaults()
			tt.modify(&cfg)

			warnings := cfg.VerifyRecommendations()
			assert.Len(t, warnings, tt.wantWarnings)
			if tt.wantContains != "" {
				require.NotEmpty(t, warnings)
				assert.Contains(t, warnings[0], tt.wantContains)
			}
		})
	}
}
