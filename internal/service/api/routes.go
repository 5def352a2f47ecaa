package api

import (
	"github.com/darkkaiser/offer-bot/internal/service/api/handler/preview"
	"github.com/darkkaiser/offer-bot/internal/service/api/handler/system"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes API 서버의 라우트를 등록합니다.
//
//   - GET /health, GET /version: 시스템 엔드포인트
//   - GET /api/v1/offers/preview: 상품 미리보기 (텔레그램에 게시하지 않음)
func RegisterRoutes(e *echo.Echo, systemHandler *system.Handler, previewHandler *preview.Handler) {
	e.GET("/health", systemHandler.HealthCheckHandler)
	e.GET("/version", systemHandler.VersionHandler)

	v1 := e.Group("/api/v1")
	v1.GET("/offers/preview", previewHandler.PreviewHandler)
}
