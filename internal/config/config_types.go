package config

import (
	"time"

	apperrors "github.com/darkkaiser/offer-bot/internal/pkg/errors"
	"github.com/darkkaiser/offer-bot/internal/service/scraper"
	"github.com/go-playground/validator/v10"
)

const (
	// DefaultMaxBodyBytes 상품 페이지 응답 본문의 최대 크기 (10MB)
	DefaultMaxBodyBytes int64 = 10 * 1024 * 1024

	DefaultMaxConcurrentRequests = 10
	DefaultMessagesPerSecond     = 30.0

	DefaultAPIListenAddress = "127.0.0.1"
	DefaultAPIListenPort    = 2443
)

// AppConfig 애플리케이션 설정의 최상위 구조체입니다.
// 로드가 끝난 이후에는 읽기 전용으로 취급합니다.
type AppConfig struct {
	Debug    bool           `json:"debug"`
	Telegram TelegramConfig `json:"telegram"`
	Scraper  ScraperConfig  `json:"scraper"`
	API      APIConfig      `json:"api"`
}

// TelegramConfig 텔레그램 봇 설정입니다.
type TelegramConfig struct {
	BotToken string `json:"bot_token" validate:"required,telegram_bot_token"`

	// ChannelID 추출 결과를 함께 게시할 채널의 ID (예: -1001234567890)
	ChannelID int64 `json:"channel_id" validate:"required"`

	// MaxConcurrentRequests 동시에 처리할 수 있는 최대 메시지 수. 초과 시 메시지는 버려집니다.
	MaxConcurrentRequests int `json:"max_concurrent_requests" validate:"min=1,max=1000"`

	// MessagesPerSecond 텔레그램 API로의 초당 최대 전송 횟수
	MessagesPerSecond float64 `json:"messages_per_second" validate:"gt=0"`
}

// ScraperConfig 상품 페이지 수집 설정입니다.
type ScraperConfig struct {
	UserAgent string `json:"user_agent" validate:"required"`

	// FetchTimeout 상품 페이지 요청 제한 시간. 0이면 제한하지 않습니다.
	FetchTimeout time.Duration `json:"fetch_timeout"`

	MaxBodyBytes int64 `json:"max_body_bytes" validate:"gt=0"`
}

// APIConfig 미리보기/상태 확인용 HTTP API 서버 설정입니다.
type APIConfig struct {
	Enabled       bool   `json:"enabled"`
	ListenAddress string `json:"listen_address" validate:"required,ip|hostname"`
	ListenPort    int    `json:"listen_port" validate:"min=1,max=65535"`
}

func newDefaultConfig() *AppConfig {
	return &AppConfig{
		Debug: false,
		Telegram: TelegramConfig{
			MaxConcurrentRequests: DefaultMaxConcurrentRequests,
			MessagesPerSecond:     DefaultMessagesPerSecond,
		},
		Scraper: ScraperConfig{
			UserAgent:    scraper.DefaultUserAgent,
			FetchTimeout: 0,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		API: APIConfig{
			Enabled:       false,
			ListenAddress: DefaultAPIListenAddress,
			ListenPort:    DefaultAPIListenPort,
		},
	}
}

func (c *AppConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c.Telegram, "텔레그램(telegram)"); err != nil {
		return err
	}
	if err := c.Scraper.validate(v); err != nil {
		return err
	}
	if err := checkStruct(v, c.API, "API 서버(api)"); err != nil {
		return err
	}
	return nil
}

func (c *ScraperConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "스크래퍼(scraper)"); err != nil {
		return err
	}
	if c.FetchTimeout < 0 {
		return apperrors.Newf(apperrors.InvalidInput, "상품 페이지 요청 제한 시간(fetch_timeout)은 0 이상이어야 합니다: '%s'", c.FetchTimeout)
	}
	return nil
}
