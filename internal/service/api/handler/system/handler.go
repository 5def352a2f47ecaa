// Package system 서버 상태 확인(/health)과 버전 정보(/version) 엔드포인트를 제공합니다.
package system

import (
	"net/http"
	"time"

	"github.com/darkkaiser/offer-bot/internal/pkg/version"
	"github.com/darkkaiser/offer-bot/internal/service/api/constants"
	"github.com/darkkaiser/offer-bot/internal/service/api/model/system"
	applog "github.com/darkkaiser/offer-bot/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler 시스템 엔드포인트 핸들러입니다. 인증 없이 접근할 수 있습니다.
type Handler struct {
	buildInfo version.Info

	serverStartTime time.Time
}

// New Handler를 생성합니다. 생성 시각이 uptime의 기준이 됩니다.
func New(buildInfo version.Info) *Handler {
	return &Handler{
		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler 서버 상태와 가동 시간(초)을 반환합니다.
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug("헬스체크 요청")

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status: constants.HealthStatusHealthy,
		Uptime: int64(time.Since(h.serverStartTime).Seconds()),
	})
}

// VersionHandler 빌드 정보를 반환합니다.
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"remote_ip": c.RealIP(),
	}).Debug("버전 정보 요청")

	return c.JSON(http.StatusOK, h.buildInfo)
}
