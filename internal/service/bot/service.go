package bot

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/darkkaiser/offer-bot/internal/config"
	apperrors "github.com/darkkaiser/offer-bot/internal/pkg/errors"
	"github.com/darkkaiser/offer-bot/internal/service"
	applog "github.com/darkkaiser/offer-bot/pkg/log"
	"github.com/darkkaiser/offer-bot/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

var _ service.Service = (*Service)(nil)

// clientFactory 설정으로부터 텔레그램 클라이언트를 생성하는 함수 타입입니다.
type clientFactory func(appConfig *config.AppConfig) (client, error)

// Service 텔레그램 메시지를 수신하여 상품 정보를 게시하는 봇 서비스입니다.
type Service struct {
	appConfig *config.AppConfig

	extractor OfferExtractor

	newClient clientFactory
	client    client

	// channelID 추출 결과를 함께 게시할 채널의 ID
	channelID int64

	// fetchTimeout 상품 페이지 추출에 허용되는 최대 시간. 0이면 서비스 종료 시까지 기다립니다.
	fetchTimeout time.Duration

	// limiter 텔레그램 API 호출 속도를 제한합니다.
	limiter *rate.Limiter

	// requestSemaphore 동시에 처리되는 메시지 수를 제한합니다.
	requestSemaphore chan struct{}

	running   bool
	runningMu sync.Mutex
}

// NewService 봇 서비스를 생성합니다. 텔레그램 서버와의 연결은 Start 시점에 수행됩니다.
func NewService(appConfig *config.AppConfig, extractor OfferExtractor) *Service {
	return newService(appConfig, extractor, newTelegramClient)
}

func newService(appConfig *config.AppConfig, extractor OfferExtractor, newClient clientFactory) *Service {
	return &Service{
		appConfig: appConfig,

		extractor: extractor,

		newClient: newClient,

		channelID:    appConfig.Telegram.ChannelID,
		fetchTimeout: appConfig.Scraper.FetchTimeout,

		limiter:          rate.NewLimiter(rate.Limit(appConfig.Telegram.MessagesPerSecond), 1),
		requestSemaphore: make(chan struct{}, appConfig.Telegram.MaxConcurrentRequests),
	}
}

// newTelegramClient 텔레그램 봇 API 클라이언트를 초기화합니다.
func newTelegramClient(appConfig *config.AppConfig) (client, error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"bot_token":  strutil.MaskSensitiveData(appConfig.Telegram.BotToken),
		"channel_id": appConfig.Telegram.ChannelID,
	}).Debug("텔레그램 봇 API 클라이언트 초기화 시작")

	httpClient := &http.Client{
		Timeout: telegramHTTPClientTimeout,
	}

	botAPI, err := tgbotapi.NewBotAPIWithClient(appConfig.Telegram.BotToken, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요")
	}

	botAPI.Debug = appConfig.Debug

	return &tgClient{BotAPI: botAPI}, nil
}

// Start 봇 서비스를 시작합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("봇 서비스 시작중...")

	if s.extractor == nil {
		defer serviceStopWG.Done()
		return apperrors.New(apperrors.Internal, "Extractor 객체가 초기화되지 않았습니다")
	}

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("봇 서비스가 이미 시작됨!!!")
		return nil
	}

	c, err := s.newClient(s.appConfig)
	if err != nil {
		defer serviceStopWG.Done()
		return err
	}
	s.client = c

	go s.run(serviceStopCtx, serviceStopWG)

	s.running = true

	applog.WithComponent(component).Info("봇 서비스 시작됨")

	return nil
}

// run Long Polling으로 업데이트를 수신하고, serviceStopCtx가 취소되면 정리 후 종료합니다.
func (s *Service) run(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = updateTimeout

	updateC := s.client.GetUpdatesChan(updateConfig)

	applog.WithComponentAndFields(component, applog.Fields{
		"bot_username": s.client.GetSelf().UserName,
		"channel_id":   s.channelID,
	}).Info("텔레그램 Long Polling 시작됨")

	// 메시지 처리 고루틴들의 종료를 추적합니다.
	var wg sync.WaitGroup

	// 처리 중인 메시지는 종료 신호 이후에도 shutdownTimeout 동안 전송을 마칠 수 있어야 하므로
	// serviceStopCtx와 분리된 컨텍스트를 사용하고, 대기가 끝난 뒤에 취소합니다.
	handlerCtx, cancelHandlers := context.WithCancel(context.WithoutCancel(serviceStopCtx))

	defer s.cleanup(&wg, cancelHandlers)

	s.receiveAndDispatch(serviceStopCtx, handlerCtx, updateC, &wg)
}

// cleanup 업데이트 수신을 중단하고 처리 중인 메시지가 끝나기를 기다립니다.
func (s *Service) cleanup(wg *sync.WaitGroup, cancelHandlers context.CancelFunc) {
	s.client.StopReceivingUpdates()

	s.waitForGoroutines(wg)

	// 제한 시간 안에 끝나지 않은 메시지 처리를 중단시킵니다.
	cancelHandlers()

	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(component).Info("봇 서비스 중지됨")
}

func (s *Service) waitForGoroutines(wg *sync.WaitGroup) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		applog.WithComponent(component).Debug("Graceful Shutdown 완료: 모든 메시지 처리 고루틴 종료됨")
	case <-time.After(shutdownTimeout):
		applog.WithComponentAndFields(component, applog.Fields{
			"timeout": shutdownTimeout,
		}).Error("Graceful Shutdown 타임아웃: 일부 메시지 처리 고루틴이 아직 실행 중입니다")
	}
}
