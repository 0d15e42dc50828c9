package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	apperrors "github.com/yoohooguru/mcp-server/internal/pkg/errors"
	applog "github.com/yoohooguru/mcp-server/pkg/log"
)

const (
	// AppName API 문서와 상태 응답에 노출되는 서비스 이름입니다.
	AppName = "yoohoo.guru MCP Server"

	// AppVersion 상태 응답의 version 필드로 프로세스 수명 동안 고정됩니다.
	AppVersion = "1.0.0"

	// AppID 로그 파일명 등 식별자로 사용되는 이름입니다.
	AppID = "mcp-server"

	// AppDescription API 문서(info.description)에 노출되는 서비스 설명입니다.
	AppDescription = "Multi-Component Platform server for neighborhood skill-sharing"

	// DefaultEnvFile 실행 인자로 경로가 주어지지 않을 때 탐색하는 dotenv 파일명입니다.
	DefaultEnvFile = ".env"

	// EnvironmentDevelopment 개발 환경을 나타내는 ENVIRONMENT 값입니다.
	EnvironmentDevelopment = "development"
)

// envKeys 설정으로 인정하는 환경변수 목록입니다. 그 외의 환경변수는 모두 무시됩니다.
var envKeys = map[string]string{
	"HOST":                        "host",
	"PORT":                        "port",
	"LOG_LEVEL":                   "log_level",
	"ENVIRONMENT":                 "environment",
	"DATABASE_URL":                "database_url",
	"REDIS_URL":                   "redis_url",
	"SECRET_KEY":                  "secret_key",
	"JWT_ALGORITHM":               "jwt_algorithm",
	"ACCESS_TOKEN_EXPIRE_MINUTES": "access_token_expire_minutes",
}

// AppConfig 프로세스 시작 시 한 번 구성되어 이후 읽기 전용으로 전달되는 애플리케이션 설정입니다.
//
// DatabaseURL, RedisURL, SecretKey, JWTAlgorithm, AccessTokenExpireMinutes 는 아직 이를 사용하는
// 컴포넌트가 없는 예약 항목입니다. 빈 문자열은 값이 설정되지 않았음을 의미합니다.
type AppConfig struct {
	Host                     string `json:"host"`
	Port                     int    `json:"port" validate:"min=1,max=65535"`
	LogLevel                 string `json:"log_level" validate:"log_level"`
	Environment              string `json:"environment"`
	DatabaseURL              string `json:"database_url"`
	RedisURL                 string `json:"redis_url"`
	SecretKey                string `json:"secret_key"`
	JWTAlgorithm             string `json:"jwt_algorithm"`
	AccessTokenExpireMinutes int    `json:"access_token_expire_minutes" validate:"min=0"`
}

// Defaults 환경변수가 하나도 없을 때 적용되는 기본 설정을 반환합니다.
func Defaults() AppConfig {
	return AppConfig{
		Host:                     "0.0.0.0",
		Port:                     8000,
		LogLevel:                 "info",
		Environment:              EnvironmentDevelopment,
		JWTAlgorithm:             "HS256",
		AccessTokenExpireMinutes: 30,
	}
}

// Address 서버가 바인딩할 "host:port" 문자열을 반환합니다.
func (c *AppConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// IsDevelopment 개발 환경 여부를 반환합니다. (대소문자 구분 없음)
func (c *AppConfig) IsDevelopment() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), EnvironmentDevelopment)
}

// PlaceholderSettings 값이 지정되었지만 아직 사용처가 없는 예약 설정들을 마스킹된 값과 함께 반환합니다.
// 로그에 비밀값이 그대로 노출되지 않도록 반드시 이 함수를 통해 출력합니다.
func (c *AppConfig) PlaceholderSettings() applog.Fields {
	fields := applog.Fields{}
	if c.DatabaseURL != "" {
		fields["database_url"] = applog.MaskSensitiveData(c.DatabaseURL)
	}
	if c.RedisURL != "" {
		fields["redis_url"] = applog.MaskSensitiveData(c.RedisURL)
	}
	if c.SecretKey != "" {
		fields["secret_key"] = applog.MaskSensitiveData(c.SecretKey)
	}
	return fields
}

// LoadOptions 설정 로드에 사용할 부가 소스를 지정합니다.
type LoadOptions struct {
	// File 선택적인 JSON 설정 파일 경로입니다. 빈 값이면 건너뜁니다.
	File string

	// EnvFile 선택적인 dotenv 파일 경로입니다. 파일이 없으면 조용히 건너뜁니다.
	EnvFile string
}

// Load 기본값, 설정 파일, dotenv 파일, 환경변수 순서로 설정을 병합하고 검증합니다.
// 뒤에 오는 소스일수록 우선순위가 높습니다.
func Load(opts LoadOptions) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	if err := k.Load(structs.Provider(Defaults(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드
	if opts.File != "" {
		if err := k.Load(file.Provider(opts.File), json.Parser()); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", opts.File))
			}
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", opts.File))
		}
	}

	// 3. dotenv 파일을 프로세스 환경에 병합 (이미 설정된 환경변수는 덮어쓰지 않는다)
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("dotenv 파일 로드 중 오류가 발생했습니다: '%s'", opts.EnvFile))
		}
	}

	// 4. 환경변수 로드 (최우선 순위)
	// 문서화된 키만 받아들이며, 나머지 환경변수는 빈 키로 변환하여 건너뛴다.
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 5. 구조체 언마샬링
	// PORT=notanumber 처럼 정수형 항목에 숫자가 아닌 값이 오면 여기서 실패한다.
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 값을 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 6. 유효성 검사
	if err := appConfig.validate(); err != nil {
		return nil, err
	}

	return &appConfig, nil
}

// LoadFromEnv 부가 소스 없이 기본값과 현재 프로세스 환경변수만으로 설정을 구성합니다.
func LoadFromEnv() (*AppConfig, error) {
	return Load(LoadOptions{})
}
