package config

import (
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/darkkaiser/go-module-template/internal/pkg/errors"
	"github.com/darkkaiser/go-module-template/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// newValidator 새로운 Validator 인스턴스를 생성하고 커스텀 유효성 검사 함수를 등록합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 Go 필드명(RangeLimit) 대신 JSON 이름(range_limit)을 보여줍니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("bench_time", validateBenchTime); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'bench_time' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

func validateBenchTime(fl validator.FieldLevel) bool {
	return validation.ValidateBenchTime(fl.Field().String()) == nil
}

// checkStruct 구조체의 유효성을 검사하고, 사용자 친화적인 에러 메시지를 반환합니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	if err := v.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			// 첫 번째 에러만 상세히 보고
			firstErr := validationErrors[0]
			return apperrors.Newf(apperrors.InvalidInput, "%s의 설정이 올바르지 않습니다: %s=%v (조건: %s)", contextName, firstErr.Field(), firstErr.Value(), firstErr.Tag())
		}
		return apperrors.Wrapf(err, apperrors.InvalidInput, "%s 유효성 검증에 실패했습니다", contextName)
	}
	return nil
}
