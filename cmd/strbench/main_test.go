package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/darkkaiser/go-module-template/internal/config"
	"github.com/darkkaiser/go-module-template/internal/pkg/version"
	"github.com/darkkaiser/go-module-template/internal/strbench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// runCLI 인자를 실행하고 종료 코드와 출력을 반환합니다.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// quickArgs 빠르게 끝나는 측정 인자입니다.
func quickArgs(extra ...string) []string {
	return append([]string{"--benchtime", "1x", "--start", "1", "--limit", "8", "--multiplier", "8"}, extra...)
}

// =============================================================================
// Flags
// =============================================================================

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")
	assert.Equal(t, exitOK, code)
	assert.NotEmpty(t, strings.TrimSpace(stdout))
}

func TestRun_Help(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--help")
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "--benchtime")
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "Unknown flag", args: []string{"--nope"}},
		{name: "Positional argument", args: []string{"extra"}},
		{name: "Start below one", args: []string{"--start", "0"}},
		{name: "Limit below start", args: []string{"--start", "64", "--limit", "8"}},
		{name: "Bad format", args: []string{"--format", "xml"}},
		{name: "Bad benchtime", args: []string{"--benchtime", "later"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runCLI(t, tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Empty(t, stdout)
		})
	}
}

func TestRun_MissingConfigFile(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, exitError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "[ERROR]")
}

func TestFlags_Apply(t *testing.T) {
	f := newFlags(&bytes.Buffer{})
	require.NoError(t, f.fs.Parse([]string{"--limit", "64", "--format", "json", "--debug"}))

	cfg, err := config.Default()
	require.NoError(t, err)
	require.NoError(t, f.apply(cfg))

	assert.Equal(t, 64, cfg.Bench.RangeLimit)
	assert.Equal(t, "json", cfg.Bench.Format)
	assert.True(t, cfg.Debug)

	// 지정하지 않은 값은 그대로 유지한다.
	assert.Equal(t, config.DefaultRangeStart, cfg.Bench.RangeStart)
	assert.Equal(t, config.DefaultBenchTime, cfg.Bench.BenchTime)
}

// =============================================================================
// Measure & History
// =============================================================================

func TestRun_Measure(t *testing.T) {
	if testing.Short() {
		t.Skip("실제 측정은 -short 모드에서 건너뜁니다")
	}

	code, stdout, stderr := runCLI(t, quickArgs("--format", "json")...)
	require.Equal(t, exitOK, code, "stderr: %s", stderr)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows), stdout)
	require.Len(t, rows, 4)

	var names []string
	for _, r := range rows {
		names = append(names, r["name"].(string))
	}
	assert.Equal(t, []string{
		"BenchmarkStringConcatenation/1",
		"BenchmarkStringConcatenation/8",
		"BenchmarkStringStream/1",
		"BenchmarkStringStream/8",
	}, names)
}

func TestRun_ConfigFile(t *testing.T) {
	if testing.Short() {
		t.Skip("실제 측정은 -short 모드에서 건너뜁니다")
	}

	path := filepath.Join(t.TempDir(), "strbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bench:\n  range_limit: 4\n  multiplier: 2\n  bench_time: 1x\n  format: csv\n"), 0o600))

	code, stdout, stderr := runCLI(t, "--config", path, "--limit", "2")
	require.Equal(t, exitOK, code, "stderr: %s", stderr)

	assert.Contains(t, stdout, "Benchmark,Iterations")
	assert.Contains(t, stdout, "BenchmarkStringStream/2,")
	assert.NotContains(t, stdout, "BenchmarkStringStream/4,")
}

func TestRun_StoreAndLast(t *testing.T) {
	if testing.Short() {
		t.Skip("실제 측정은 -short 모드에서 건너뜁니다")
	}

	db := filepath.Join(t.TempDir(), "history.db")

	code, _, stderr := runCLI(t, quickArgs("--store", "--history", db, "--format", "csv")...)
	require.Equal(t, exitOK, code, "stderr: %s", stderr)

	code, stdout, stderr := runCLI(t, "--last", "5", "--history", db, "--format", "csv")
	require.Equal(t, exitOK, code, "stderr: %s", stderr)

	assert.Equal(t, 1, strings.Count(stdout, "# "))
	assert.Contains(t, stdout, "benchtime=1x")
	assert.Contains(t, stdout, "go="+runtime.Version())
	assert.Contains(t, stdout, "platform="+runtime.GOOS+"/"+runtime.GOARCH)
	assert.Contains(t, stdout, "BenchmarkStringConcatenation/8,")
}

func TestRun_PaddedBenchTime(t *testing.T) {
	if testing.Short() {
		t.Skip("실제 측정은 -short 모드에서 건너뜁니다")
	}

	db := filepath.Join(t.TempDir(), "history.db")
	args := []string{"--benchtime", " 1x ", "--start", "1", "--limit", "1", "--format", "csv", "--store", "--history", db}

	code, stdout, stderr := runCLI(t, args...)
	require.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "BenchmarkStringStream/1,")

	// 기록에는 정리된 값이 남는다.
	code, stdout, stderr = runCLI(t, "--last", "1", "--history", db, "--format", "csv")
	require.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "benchtime=1x\n")
}

func TestNewHistoryRun(t *testing.T) {
	bi := version.Info{Version: "1.0.0", GoVersion: "go1.24.11", OS: "linux", Arch: "arm64"}
	startedAt := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	results := []strbench.Result{{Strategy: "string stream", Size: 1, ResultLen: 5}}

	run := newHistoryRun(bi, startedAt, "1x", results)

	assert.Empty(t, run.ID)
	assert.Equal(t, startedAt, run.StartedAt)
	assert.Equal(t, "1.0.0", run.AppVersion)
	assert.Equal(t, "go1.24.11", run.GoVersion)
	assert.Equal(t, "linux", run.OS)
	assert.Equal(t, "arm64", run.Arch)
	assert.Equal(t, "1x", run.BenchTime)
	assert.Equal(t, results, run.Results)
}

func TestRun_DebugPrintsErrorDetails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	code, _, stderr := runCLI(t, "--config", missing)
	assert.Equal(t, exitError, code)
	assert.NotContains(t, stderr, "Stack trace:")

	code, _, stderr = runCLI(t, "--debug", "--config", missing)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "[NotFound]")
	assert.Contains(t, stderr, "Stack trace:")
	assert.Contains(t, stderr, "Caused by:")
}

func TestRun_LastWithEmptyHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")

	code, stdout, _ := runCLI(t, "--last", "1", "--history", db)
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := run(ctx, quickArgs(), &stdout, &stderr)
	assert.Equal(t, exitError, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "[ERROR]")
}
