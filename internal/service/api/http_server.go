package api

import (
	"time"

	"github.com/darkkaiser/offer-bot/internal/service/api/constants"
	"github.com/darkkaiser/offer-bot/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/offer-bot/internal/service/api/middleware"
	applog "github.com/darkkaiser/offer-bot/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정입니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// RequestTimeout 각 요청의 최대 처리 시간. 0이면 constants.DefaultRequestTimeout을 사용합니다.
	RequestTimeout time.Duration

	// RateLimitPerSecond, RateLimitBurst IP별 요청 제한. 0이면 기본값을 사용합니다.
	RateLimitPerSecond int
	RateLimitBurst     int
}

// NewHTTPServer 미들웨어가 구성된 Echo 인스턴스를 생성합니다. 라우트는 별도로 등록해야 합니다.
//
// 미들웨어 적용 순서:
//
//  1. PanicRecovery: 이후 미들웨어와 핸들러의 panic까지 복구하도록 가장 먼저 둡니다.
//  2. RequestID
//  3. Server 헤더 제거
//  4. HTTPLogger: 429/503 응답도 기록되도록 RateLimiting과 Timeout보다 앞에 둡니다.
//  5. RateLimiting
//  6. ContextTimeout: 요청 Context에 제한 시간을 설정하며, 미리보기의 페이지 요청도 이 시간 안에 끝납니다.
//  7. BodyLimit: 본문을 받는 엔드포인트가 없으므로 작게 제한합니다.
//  8. Secure
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// Echo 내부 로그도 애플리케이션 로거로 기록합니다.
	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	ratePerSecond := cfg.RateLimitPerSecond
	if ratePerSecond <= 0 {
		ratePerSecond = constants.DefaultRateLimitPerSecond
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	e.Use(appmiddleware.RateLimiting(ratePerSecond, burst))
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: timeout,
	}))
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.Secure())

	return e
}
