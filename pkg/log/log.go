// Package log logrus 기반의 애플리케이션 로깅을 제공합니다.
//
// Setup으로 출력 대상(콘솔, 로테이션 파일)을 구성하고, 로그는 WithComponent 계열 함수로
// component 필드를 붙여 기록합니다. 콘솔 로그는 기본적으로 표준 에러로 출력되므로
// 표준 출력은 프로그램 결과물 전용으로 남습니다.
package log

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["component"] = component
	return logrus.WithFields(merged)
}

// SetDebugMode 디버그 모드이면 Trace, 아니면 Info로 로그 레벨을 변경합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}

// ParseLevel 설정 파일의 레벨 문자열("warn", "Debug" 등)을 Level로 변환합니다.
func ParseLevel(s string) (Level, error) {
	return logrus.ParseLevel(strings.TrimSpace(s))
}
