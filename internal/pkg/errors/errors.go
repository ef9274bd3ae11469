// Package errors strbench 전반에서 사용하는 AppError 타입을 제공합니다.
//
// 모든 에러는 ErrorType으로 분류되고, 생성 지점의 호출 스택을 함께 기록합니다.
// CLI는 ErrorType으로 종료 코드와 로그 필드를 결정하고, --debug 모드에서는 %+v로 원인 체인 전체를 출력합니다.
//
//	// 실행 기록 저장소
//	if err := db.PingContext(ctx); err != nil {
//	    return errors.Wrapf(err, errors.System, "실행 기록 저장소를 열 수 없습니다: '%s'", path)
//	}
//
//	// 실행 인자 검증
//	if limit <= 0 {
//	    return errors.Newf(errors.InvalidInput, "조회 개수는 1 이상이어야 합니다 (limit=%d)", limit)
//	}
//
//	// 설정 파일 누락은 기본 설정으로 대체할 수 있다
//	if errors.Is(err, errors.NotFound) {
//	    // ...
//	}
//
// # ErrorType 선택 기준
//
//   - InvalidInput: 설정 파일 내용, 실행 인자 등 사용자가 고칠 수 있는 입력 오류
//   - NotFound: 명시적으로 지정한 파일이나 기록이 존재하지 않음
//   - System: 파일 시스템, 데이터베이스 등 환경 수준의 장애
//   - ExecutionFailed: 벤치마크 실행 및 리포트 출력 실패
//   - Timeout: 컨텍스트 취소 또는 시간 초과
//   - Internal: 발생해서는 안 되는 내부 상태 (버그)
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError 분류(ErrorType), 메시지, 원인 에러, 생성 지점의 호출 스택을 담는 에러입니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	stack   []StackFrame
}

// Type 에러의 분류를 반환합니다.
func (e *AppError) Type() ErrorType {
	return e.errType
}

// Message 원인 에러를 제외한 메시지만 반환합니다.
func (e *AppError) Message() string {
	return e.message
}

// Stack 에러 생성 시점에 수집된 호출 스택을 반환합니다.
func (e *AppError) Stack() []StackFrame {
	return e.stack
}

func (e *AppError) Error() string {
	if e.cause == nil {
		return e.header()
	}
	return e.header() + ": " + e.cause.Error()
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// header "[NotFound] 설정 파일을 찾을 수 없습니다" 형태의 머리말
func (e *AppError) header() string {
	return "[" + e.errType.String() + "] " + e.message
}

// Format fmt.Formatter 인터페이스를 구현합니다.
// %+v는 원인 체인을 한 단계씩 나열하고, 가장 안쪽 AppError의 호출 스택을 덧붙입니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			e.writeChain(s)
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func (e *AppError) writeChain(w io.Writer) {
	for cur := e; ; {
		_, _ = io.WriteString(w, cur.header())

		var next *AppError
		if cur.cause == nil || !errors.As(cur.cause, &next) {
			cur.writeStack(w)
			if cur.cause != nil {
				fmt.Fprintf(w, "\nCaused by:\n\t%v", cur.cause)
			}
			return
		}

		_, _ = io.WriteString(w, "\nCaused by:\n")
		cur = next
	}
}

func (e *AppError) writeStack(w io.Writer) {
	if len(e.stack) == 0 {
		return
	}

	_, _ = io.WriteString(w, "\nStack trace:")
	for _, frame := range e.stack {
		funcName := frame.Function
		if idx := strings.LastIndex(funcName, "/"); idx != -1 {
			funcName = funcName[idx+1:]
		}
		fmt.Fprintf(w, "\n\t%s:%d %s", frame.File, frame.Line, funcName)
	}
}

// newAppError 공개 생성 함수들의 공통 구현입니다. 반드시 공개 함수에서 직접 호출해야 스택 위치가 맞습니다.
func newAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{errType: errType, message: message, cause: cause, stack: captureStack(defaultCallerSkip)}
}

// New 새로운 에러를 생성합니다.
func New(errType ErrorType, message string) error {
	return newAppError(errType, message, nil)
}

// Newf 포맷 문자열을 사용하여 새로운 에러를 생성합니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return newAppError(errType, fmt.Sprintf(format, args...), nil)
}

// Wrap 기존 에러를 감싸서 새로운 에러를 생성합니다. err가 nil이면 nil을 반환합니다.
//
//	rows, err := s.db.QueryContext(ctx, query, limit)
//	if err != nil {
//	    return nil, errors.Wrap(err, errors.System, "실행 기록 조회에 실패했습니다")
//	}
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return newAppError(errType, message, err)
}

// Wrapf 포맷 문자열을 사용하여 기존 에러를 감쌉니다. err가 nil이면 nil을 반환합니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return newAppError(errType, fmt.Sprintf(format, args...), err)
}

// Is 에러 체인에 특정 ErrorType의 AppError가 포함되어 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if appErr, ok := err.(*AppError); ok && appErr.errType == errType {
			return true
		}
	}
	return false
}

// As 표준 errors.As의 별칭입니다. 호출부에서 표준 errors 패키지를 함께 임포트하지 않아도 됩니다.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// UnderlyingType 에러 체인에서 가장 안쪽에 있는 AppError의 ErrorType을 반환합니다.
// 체인에 AppError가 없거나 err가 nil이면 Unknown을 반환합니다.
//
//	err := Wrap(New(NotFound, "설정 파일을 찾을 수 없습니다"), InvalidInput, "환경설정 로드 실패")
//	UnderlyingType(err) // NotFound
func UnderlyingType(err error) ErrorType {
	last := Unknown
	for ; err != nil; err = errors.Unwrap(err) {
		if appErr, ok := err.(*AppError); ok {
			last = appErr.errType
		}
	}
	return last
}
