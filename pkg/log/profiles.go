package log

// callerPathPrefix 호출자 경로 축약에 사용하는 모듈 경로의 앞부분
const callerPathPrefix = "github.com/darkkaiser"

// NewProductionOptions 일반 실행에 사용하는 설정을 반환합니다.
// 경고 이상만 표준 에러로 출력하고, 파일 로그는 Dir이 지정된 경우에만 남깁니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: WarnLevel,

		MaxAge:     30,
		MaxSizeMB:  100,
		MaxBackups: 20,

		EnableCriticalLog: true,
		EnableVerboseLog:  false,
		EnableConsoleLog:  true,

		ReportCaller:     false,
		CallerPathPrefix: callerPathPrefix,
	}
}

// NewDevelopmentOptions 디버그 모드에서 사용하는 설정을 반환합니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: TraceLevel,

		MaxAge:     1,
		MaxSizeMB:  50,
		MaxBackups: 5,

		EnableCriticalLog: false,
		EnableVerboseLog:  false,
		EnableConsoleLog:  true,

		ReportCaller:     true,
		CallerPathPrefix: callerPathPrefix,
	}
}
