// Package history 벤치마크 실행 기록을 SQLite 데이터베이스에 저장하고 조회합니다.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/go-module-template/internal/pkg/errors"
	"github.com/darkkaiser/go-module-template/internal/strbench"
	applog "github.com/darkkaiser/go-module-template/pkg/log"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const component = "strbench.history"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  INTEGER NOT NULL,
	app_version TEXT NOT NULL,
	go_version  TEXT NOT NULL,
	os          TEXT NOT NULL,
	arch        TEXT NOT NULL,
	bench_time  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

CREATE TABLE IF NOT EXISTS results (
	run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq           INTEGER NOT NULL,
	strategy      TEXT NOT NULL,
	size          INTEGER NOT NULL,
	iterations    INTEGER NOT NULL,
	ns_per_op     INTEGER NOT NULL,
	bytes_per_op  INTEGER NOT NULL,
	allocs_per_op INTEGER NOT NULL,
	result_len    INTEGER NOT NULL,
	elapsed_ns    INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// Run 한 번의 벤치마크 실행 기록입니다.
// 다른 장비에서 측정한 기록과 비교할 수 있도록 빌드 환경을 함께 남깁니다.
type Run struct {
	ID         string
	StartedAt  time.Time
	AppVersion string
	GoVersion  string
	OS         string
	Arch       string
	BenchTime  string
	Results    []strbench.Result
}

// Store SQLite 기반 실행 기록 저장소입니다.
type Store struct {
	db   *sql.DB
	path string
}

// Open path의 데이터베이스를 열고 스키마를 준비합니다. 파일과 상위 디렉터리가 없으면 생성합니다.
// "~/"로 시작하는 경로는 사용자 홈 디렉터리 기준으로 해석합니다.
func Open(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.System, "기록 디렉터리 생성에 실패했습니다: '%s'", filepath.Dir(resolved))
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.System, "기록 데이터베이스를 열 수 없습니다: '%s'", resolved)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(err, apperrors.System, "foreign key 설정에 실패했습니다")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(err, apperrors.System, "기록 스키마 생성에 실패했습니다")
	}

	applog.WithComponentAndFields(component, applog.Fields{"path": resolved}).Debug("기록 데이터베이스 열림")

	return &Store{db: db, path: resolved}, nil
}

// Path 실제로 사용 중인 데이터베이스 파일 경로를 반환합니다.
func (s *Store) Path() string {
	return s.path
}

// Save 실행 기록을 하나의 트랜잭션으로 저장하고 새로 발급한 ID를 반환합니다.
// run.ID는 무시되며, run.StartedAt이 비어 있으면 저장 시각을 사용합니다.
func (s *Store) Save(ctx context.Context, run Run) (id string, err error) {
	if len(run.Results) == 0 {
		return "", apperrors.New(apperrors.InvalidInput, "저장할 측정 결과가 없습니다")
	}

	id = uuid.NewString()
	startedAt := run.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.System, "트랜잭션을 시작할 수 없습니다")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, app_version, go_version, os, arch, bench_time) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, startedAt.UnixNano(), run.AppVersion, run.GoVersion, run.OS, run.Arch, run.BenchTime,
	); err != nil {
		return "", apperrors.Wrap(err, apperrors.System, "실행 기록 저장에 실패했습니다")
	}

	for i, r := range run.Results {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO results (
				run_id, seq, strategy, size, iterations,
				ns_per_op, bytes_per_op, allocs_per_op, result_len, elapsed_ns
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, i, r.Strategy, r.Size, r.Iterations,
			r.NsPerOp, r.BytesPerOp, r.AllocsPerOp, r.ResultLen, int64(r.Elapsed)); err != nil {
			return "", apperrors.Wrapf(err, apperrors.System, "측정 결과 저장에 실패했습니다: %s", r.Name())
		}
	}

	if err = tx.Commit(); err != nil {
		return "", apperrors.Wrap(err, apperrors.System, "트랜잭션 커밋에 실패했습니다")
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"run_id":  id,
		"results": len(run.Results),
	}).Info("실행 기록 저장 완료")

	return id, nil
}

// Recent 최근 실행 기록을 최신순으로 최대 limit개 반환합니다.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit < 1 {
		return nil, apperrors.Newf(apperrors.InvalidInput, "조회 개수는 1 이상이어야 합니다: %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, app_version, go_version, os, arch, bench_time
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "실행 기록 조회에 실패했습니다")
	}

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			startedAt int64
		)
		if err := rows.Scan(&run.ID, &startedAt, &run.AppVersion, &run.GoVersion, &run.OS, &run.Arch, &run.BenchTime); err != nil {
			_ = rows.Close()
			return nil, apperrors.Wrap(err, apperrors.System, "실행 기록을 읽을 수 없습니다")
		}
		run.StartedAt = time.Unix(0, startedAt).UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, apperrors.Wrap(err, apperrors.System, "실행 기록 조회 중 오류가 발생했습니다")
	}
	_ = rows.Close()

	// 연결이 하나뿐이므로 위 rows를 닫은 뒤에 결과를 조회한다.
	for i := range runs {
		results, err := s.results(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Results = results
	}

	return runs, nil
}

func (s *Store) results(ctx context.Context, runID string) ([]strbench.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT strategy, size, iterations, ns_per_op, bytes_per_op, allocs_per_op, result_len, elapsed_ns
		FROM results
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.System, "측정 결과 조회에 실패했습니다: run_id=%s", runID)
	}
	defer rows.Close()

	var results []strbench.Result
	for rows.Next() {
		var (
			r       strbench.Result
			elapsed int64
		)
		if err := rows.Scan(&r.Strategy, &r.Size, &r.Iterations, &r.NsPerOp, &r.BytesPerOp, &r.AllocsPerOp, &r.ResultLen, &elapsed); err != nil {
			return nil, apperrors.Wrap(err, apperrors.System, "측정 결과를 읽을 수 없습니다")
		}
		r.Elapsed = time.Duration(elapsed)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "측정 결과 조회 중 오류가 발생했습니다")
	}

	return results, nil
}

// Close 데이터베이스 연결을 닫습니다.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return apperrors.Wrap(err, apperrors.System, "기록 데이터베이스를 닫는 중 오류가 발생했습니다")
	}
	return nil
}

// resolvePath "~" 접두사를 홈 디렉터리로 확장하고 경로를 정리합니다.
func resolvePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", apperrors.New(apperrors.InvalidInput, "기록 데이터베이스 경로가 비어 있습니다")
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", apperrors.Wrap(err, apperrors.System, "홈 디렉터리를 확인할 수 없습니다")
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p), nil
}
