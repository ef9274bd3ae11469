// Package validation 설정값과 실행 인자의 형식을 검증하는 함수를 제공합니다.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidateBenchTime 주어진 문자열이 `go test -benchtime` 과 동일한 형식인지 검증합니다.
//
// 허용 형식:
//   - 양의 실행 시간 (예: "1s", "500ms", "2m")
//   - 양의 반복 횟수 뒤에 'x' (예: "100x")
func ValidateBenchTime(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return fmt.Errorf("benchtime은 비어있을 수 없습니다")
	}

	if count, ok := strings.CutSuffix(trimmed, "x"); ok {
		n, err := strconv.Atoi(count)
		if err != nil {
			return fmt.Errorf("benchtime 반복 횟수 형식 오류 (input=%q): %w", trimmed, err)
		}
		if n <= 0 {
			return fmt.Errorf("benchtime 반복 횟수는 0보다 커야 합니다 (input=%q)", trimmed)
		}
		return nil
	}

	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return fmt.Errorf("benchtime 실행 시간 형식 오류 (input=%q): %w", trimmed, err)
	}
	if d <= 0 {
		return fmt.Errorf("benchtime 실행 시간은 0보다 커야 합니다 (input=%q)", trimmed)
	}

	return nil
}
