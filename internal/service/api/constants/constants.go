// Package constants API 서비스 전반에서 사용하는 상수를 정의합니다.
package constants

import "time"

// 로깅용 컴포넌트 이름
const (
	ComponentService       = "api.service"
	ComponentHandler       = "api.handler"
	ComponentMiddleware    = "api.middleware"
	ComponentErrorHandler  = "api.error_handler"
	ComponentPanicRecovery = "api.middleware.panic_recovery"
)

// HTTP 서버 기본값
const (
	DefaultReadTimeout       = 10 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// DefaultWriteTimeout 미리보기 요청은 상품 페이지를 가져오는 동안 응답을 보류하므로 요청 타임아웃보다 길게 둡니다.
	DefaultWriteTimeout = 75 * time.Second

	// DefaultRequestTimeout 각 요청의 최대 처리 시간
	DefaultRequestTimeout = 60 * time.Second

	// 미리보기 요청마다 외부 페이지를 가져오므로 IP당 요청 수를 낮게 제한합니다.
	DefaultRateLimitPerSecond = 2
	DefaultRateLimitBurst     = 5

	DefaultMaxBodySize = "1K"

	// ShutdownTimeout Graceful Shutdown 시 최대 대기 시간
	ShutdownTimeout = 5 * time.Second
)

const (
	HealthStatusHealthy = "healthy"

	QueryURL = "url"
)

// 응답 메시지
const (
	ErrMsgInternalServer  = "내부 서버 오류가 발생했습니다"
	ErrMsgNotFound        = "요청한 리소스를 찾을 수 없습니다"
	ErrMsgTooManyRequests = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"
	ErrMsgURLRequired     = "url 파라미터는 필수입니다"
	ErrMsgURLInvalid      = "url은 http 또는 https 스킴의 절대 URL이어야 합니다"
)
