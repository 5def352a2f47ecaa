//go:build test

package log

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// resetForTest Setup의 sync.Once 상태와 logrus 전역 설정을 초기화합니다.
// 'go test -tags test' 실행 시에만 컴파일됩니다.
func resetForTest() {
	setupOnce = sync.Once{}
	globalCloser = nil
	globalSetupErr = nil

	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetReportCaller(false)
	logrus.SetFormatter(&logrus.TextFormatter{})
}
