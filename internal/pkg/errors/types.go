package errors

import "strconv"

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

// 에러 타입 상수
const (
	// Unknown 알 수 없는 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그 등)
	Internal

	// System 시스템 또는 인프라 오류 (디스크, 데이터베이스 등)
	System

	// InvalidInput 잘못된 입력값 (설정값, 실행 인자의 유효성 검사 실패)
	InvalidInput

	// NotFound 리소스를 찾을 수 없음 (설정 파일, 저장된 실행 기록 등)
	NotFound

	// ExecutionFailed 벤치마크 실행 또는 리포트 출력 실패
	ExecutionFailed

	// Timeout 작업 시간 초과 또는 취소
	Timeout
)

var errorTypeNames = [...]string{
	Unknown:         "Unknown",
	Internal:        "Internal",
	System:          "System",
	InvalidInput:    "InvalidInput",
	NotFound:        "NotFound",
	ExecutionFailed: "ExecutionFailed",
	Timeout:         "Timeout",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
