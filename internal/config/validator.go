package config

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/yoohooguru/mcp-server/internal/pkg/errors"
)

// logLevels LOG_LEVEL 에 허용되는 값 목록입니다.
var logLevels = []string{"critical", "error", "warning", "warn", "info", "debug", "trace"}

var validate = newValidator()

// newValidator 새로운 Validator 인스턴스를 생성하고 커스텀 유효성 검사 함수를 등록합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 검증 에러 메시지에 Go 구조체 필드명 대신 JSON 이름(예: log_level)을 보여주도록 설정합니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("log_level", validateLogLevel); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'log_level' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

// validateLogLevel 대소문자 구분 없이 허용된 로그 레벨인지 검증합니다.
func validateLogLevel(fl validator.FieldLevel) bool {
	return slices.Contains(logLevels, strings.ToLower(strings.TrimSpace(fl.Field().String())))
}

// validate 설정 로드 직후 각 항목의 유효성을 검증하고, 첫 번째 위반 항목을 사용자 친화적인 메시지로 반환합니다.
func (c *AppConfig) validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !apperrors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, "설정 유효성 검증에 실패했습니다")
	}

	fieldErr := validationErrors[0]
	switch fieldErr.StructField() {
	case "Port":
		return apperrors.Newf(apperrors.InvalidInput, "PORT 는 1에서 65535 사이의 값이어야 합니다: %v", fieldErr.Value())
	case "LogLevel":
		return apperrors.Newf(apperrors.InvalidInput, "LOG_LEVEL 값이 올바르지 않습니다: '%v' (허용: %s)", fieldErr.Value(), strings.Join(logLevels, ", "))
	case "AccessTokenExpireMinutes":
		return apperrors.Newf(apperrors.InvalidInput, "ACCESS_TOKEN_EXPIRE_MINUTES 는 0 이상이어야 합니다: %v", fieldErr.Value())
	default:
		return apperrors.Newf(apperrors.InvalidInput, "설정 값이 올바르지 않습니다: %s (조건: %s)", fieldErr.Field(), fieldErr.Tag())
	}
}
