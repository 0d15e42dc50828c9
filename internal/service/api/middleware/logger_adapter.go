package middleware

import (
	"io"

	"github.com/labstack/gommon/log"
	applog "github.com/yoohooguru/mcp-server/pkg/log"
)

// componentEcho Echo 프레임워크 내부에서 발생한 로그의 컴포넌트 이름입니다.
const componentEcho = "echo"

// Logger Echo의 log.Logger 인터페이스(github.com/labstack/gommon/log)를 애플리케이션 로거로 연결하는 어댑터입니다.
//
// Echo 내부 로그는 모두 component=echo 필드를 달고 애플리케이션 로그 파일로 기록됩니다.
type Logger struct {
	*applog.Logger
}

func (l Logger) entry() *applog.Entry {
	return l.Logger.WithField("component", componentEcho)
}

func (l Logger) Output() io.Writer {
	return l.Logger.Out
}

func (l Logger) SetOutput(w io.Writer) {
	l.Logger.SetOutput(w)
}

// Echo 전용 출력 형식(Prefix, Header)은 사용하지 않는다.

func (l Logger) Prefix() string { return "" }

func (l Logger) SetPrefix(string) {}

func (l Logger) SetHeader(string) {}

// Level 애플리케이션 로그 레벨을 Echo 로그 레벨로 변환합니다.
// Trace 는 DEBUG 로, Fatal/Panic 은 대응하는 레벨이 없어 OFF 로 취급합니다.
func (l Logger) Level() log.Lvl {
	switch l.Logger.GetLevel() {
	case applog.TraceLevel, applog.DebugLevel:
		return log.DEBUG
	case applog.InfoLevel:
		return log.INFO
	case applog.WarnLevel:
		return log.WARN
	case applog.ErrorLevel:
		return log.ERROR
	default:
		return log.OFF
	}
}

// SetLevel Echo 로그 레벨을 애플리케이션 로그 레벨로 변환하여 설정합니다. OFF 는 무시합니다.
func (l Logger) SetLevel(lvl log.Lvl) {
	switch lvl {
	case log.DEBUG:
		l.Logger.SetLevel(applog.DebugLevel)
	case log.INFO:
		l.Logger.SetLevel(applog.InfoLevel)
	case log.WARN:
		l.Logger.SetLevel(applog.WarnLevel)
	case log.ERROR:
		l.Logger.SetLevel(applog.ErrorLevel)
	}
}

func (l Logger) Print(i ...any) { l.entry().Print(i...) }
func (l Logger) Printf(format string, a ...any) { l.entry().Printf(format, a...) }
func (l Logger) Printj(j log.JSON) { l.entry().WithFields(applog.Fields(j)).Print() }

func (l Logger) Debug(i ...any) { l.entry().Debug(i...) }
func (l Logger) Debugf(format string, a ...any) { l.entry().Debugf(format, a...) }
func (l Logger) Debugj(j log.JSON) { l.entry().WithFields(applog.Fields(j)).Debug() }

func (l Logger) Info(i ...any) { l.entry().Info(i...) }
func (l Logger) Infof(format string, a ...any) { l.entry().Infof(format, a...) }
func (l Logger) Infoj(j log.JSON) { l.entry().WithFields(applog.Fields(j)).Info() }

func (l Logger) Warn(i ...any) { l.entry().Warn(i...) }
func (l Logger) Warnf(format string, a ...any) { l.entry().Warnf(format, a...) }
func (l Logger) Warnj(j log.JSON) { l.entry().WithFields(applog.Fields(j)).Warn() }

func (l Logger) Error(i ...any) { l.entry().Error(i...) }
func (l Logger) Errorf(format string, a ...any) { l.entry().Errorf(format, a...) }
func (l Logger) Errorj(j log.JSON) { l.entry().WithFields(applog.Fields(j)).Error() }

func (l Logger) Fatal(i ...any) { l.entry().Fatal(i...) }
func (l Logger) Fatalf(format string, a ...any) { l.entry().Fatalf(format, a...) }
func (l Logger) Fatalj(j log.JSON) { l.entry().WithFields(applog.Fields(j)).Fatal() }

func (l Logger) Panic(i ...any) { l.entry().Panic(i...) }
func (l Logger) Panicf(format string, a ...any) { l.entry().Panicf(format, a...) }
func (l Logger) Panicj(j log.JSON) { l.entry().WithFields(applog.Fields(j)).Panic() }
