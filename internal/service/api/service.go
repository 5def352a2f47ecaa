// Package api 상태 확인과 상품 미리보기를 위한 HTTP API 서비스를 제공합니다.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/darkkaiser/offer-bot/internal/config"
	apperrors "github.com/darkkaiser/offer-bot/internal/pkg/errors"
	"github.com/darkkaiser/offer-bot/internal/pkg/version"
	"github.com/darkkaiser/offer-bot/internal/service"
	"github.com/darkkaiser/offer-bot/internal/service/api/constants"
	"github.com/darkkaiser/offer-bot/internal/service/api/handler/preview"
	"github.com/darkkaiser/offer-bot/internal/service/api/handler/system"
	applog "github.com/darkkaiser/offer-bot/pkg/log"
	"github.com/labstack/echo/v4"
)

var _ service.Service = (*Service)(nil)

// Service API 서버의 생명주기를 관리합니다.
//
// Start로 서버를 별도 고루틴에서 실행하고, serviceStopCtx가 취소되면 Graceful Shutdown을 수행합니다.
type Service struct {
	appConfig *config.AppConfig

	extractor preview.Extractor

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service를 생성합니다.
func NewService(appConfig *config.AppConfig, extractor preview.Extractor, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic("AppConfig는 필수입니다")
	}

	return &Service{
		appConfig: appConfig,

		extractor: extractor,

		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다. 서버는 고루틴에서 실행되며 이 함수는 즉시 반환합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info("API 서비스 시작중...")

	if s.extractor == nil {
		defer serviceStopWG.Done()
		return apperrors.New(apperrors.Internal, "Extractor 객체가 초기화되지 않았습니다")
	}

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn("API 서비스가 이미 시작됨!!!")
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info("API 서비스 시작됨")

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer Echo 서버를 생성하고 라우트를 등록합니다.
func (s *Service) setupServer() *echo.Echo {
	e := NewHTTPServer(HTTPServerConfig{
		Debug: s.appConfig.Debug,
	})

	RegisterRoutes(e, system.New(s.buildInfo), preview.New(s.extractor))

	return e
}

func (s *Service) listenAddress() string {
	return net.JoinHostPort(s.appConfig.API.ListenAddress, strconv.Itoa(s.appConfig.API.ListenPort))
}

// startHTTPServer 서버가 종료될 때까지 블로킹되며, 종료되면 done을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	addr := s.listenAddress()
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"address": addr,
	}).Info("HTTP 서버 시작")

	s.handleServerError(e.Start(addr))
}

func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info("HTTP 서버 종료됨")
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"address": s.listenAddress(),
		"error":   err,
	}).Error("HTTP 서버 실행 중 치명적인 오류가 발생했습니다")
}

// waitForShutdown 종료 신호 또는 서버의 조기 종료를 기다린 뒤 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info("API 서비스 중지중...")

	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 서버가 먼저 종료된 경우 Shutdown 없이 상태만 정리합니다.
		applog.WithComponent(constants.ComponentService).Error("HTTP 서버가 예기치 않게 종료되었습니다")

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error("HTTP 서버 Graceful Shutdown 중 오류가 발생했습니다")
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info("API 서비스 중지됨")
}
