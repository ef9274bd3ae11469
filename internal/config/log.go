package config

import (
	"io"

	applog "github.com/darkkaiser/go-module-template/pkg/log"
)

// LogOptions 설정값으로 로그 시스템 초기화 옵션을 만듭니다.
// 콘솔 로그는 console로 출력되며, 파일 로그는 log.dir이 지정된 경우에만 남깁니다.
func (c *AppConfig) LogOptions(appName string, console io.Writer) applog.Options {
	var opts applog.Options
	if c.Debug {
		opts = applog.NewDevelopmentOptions(appName)
	} else {
		opts = applog.NewProductionOptions(appName)
		if level, err := applog.ParseLevel(c.Log.Level); err == nil {
			opts.Level = level
		}
	}

	opts.Dir = c.Log.Dir
	opts.EnableConsoleLog = true
	opts.ConsoleWriter = console

	return opts
}
