// Package strbench 두 가지 문자열 구성 방식의 성능을 비교합니다.
//
//   - StringConcatenation: 가변 버퍼에 "test"를 n번 이어 붙입니다.
//   - StringStream: 스트림 빌더에 "test"와 반복 인덱스를 n번 서식 출력합니다.
//
// 측정 크기(n)는 Sizes로 계산하며, 기본 범위는 1, 8, 64, 512, 1024 입니다.
package strbench

import (
	"fmt"
	"strings"
)

// unit 반복마다 추가되는 리터럴입니다.
const unit = "test"

// Strategy 측정 대상이 되는 문자열 구성 방식입니다.
type Strategy struct {
	// Name 리포트와 기록에 사용되는 이름 (예: "string concatenation")
	Name string

	// Build n번 반복하여 문자열을 구성합니다.
	Build func(n int) string
}

// Strategies 기본 측정 대상 목록입니다.
var Strategies = []Strategy{
	{Name: "string concatenation", Build: Concat},
	{Name: "string stream", Build: Stream},
}

// sink 측정 결과를 보관하여 컴파일러가 호출을 제거하지 못하게 합니다.
var sink string

// Concat 가변 버퍼에 "test"를 n번 이어 붙인 결과를 반환합니다. 결과 길이는 4*n 입니다.
func Concat(n int) string {
	var buf []byte
	for i := 0; i < n; i++ {
		buf = append(buf, unit...)
	}
	return string(buf)
}

// Stream 스트림 빌더에 "test"와 반복 인덱스를 n번 기록한 결과를 반환합니다.
//
//	Stream(3) // "test0test1test2"
func Stream(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprint(&sb, unit, i)
	}
	return sb.String()
}

// Sizes start부터 limit까지의 측정 크기 목록을 반환합니다.
//
// start, start와 limit 사이에 있는 multiplier의 거듭제곱, limit 순서로 구성되며
// 중복 없이 오름차순입니다.
//
//	Sizes(1, 1024, 8) // [1 8 64 512 1024]
//	Sizes(10, 100, 2) // [10 16 32 64 100]
//
// start < 1, limit < start, multiplier < 2 이면 nil을 반환합니다.
func Sizes(start, limit, multiplier int) []int {
	if start < 1 || limit < start || multiplier < 2 {
		return nil
	}

	sizes := []int{start}
	for p := 1; p < limit; p *= multiplier {
		if p > start {
			sizes = append(sizes, p)
		}
		// 다음 곱셈이 overflow 되는 경우
		if p > limit/multiplier {
			break
		}
	}
	if limit != start {
		sizes = append(sizes, limit)
	}

	return sizes
}
