// Package bot 텔레그램 봇 서비스를 제공합니다.
//
// 사용자가 보낸 상품 링크에서 정보를 추출하여, 요청한 채팅방과 설정된 채널에 게시합니다.
package bot

import (
	"context"
	"time"

	"github.com/darkkaiser/offer-bot/internal/service/offer"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// component 봇 서비스 로깅용 컴포넌트 이름
const component = "bot.service"

const (
	// updateTimeout Long Polling 요청 한 번이 서버에서 대기하는 최대 시간(초)입니다.
	updateTimeout = 60

	// telegramHTTPClientTimeout 텔레그램 API 호출용 HTTP 클라이언트의 타임아웃입니다.
	// Long Polling 대기 시간(updateTimeout)보다 길어야 합니다.
	telegramHTTPClientTimeout = 90 * time.Second

	// shutdownTimeout 서비스 종료 시 처리 중인 메시지가 끝나기를 기다리는 최대 시간입니다.
	shutdownTimeout = 5 * time.Second
)

const (
	welcomeMessage  = "Ciao! Inviami un link di Amazon per estrarre informazioni!"
	offerButtonText = "🔥 Apri l'offerta su Amazon! 🔥"
)

// client 텔레그램 봇 API와의 통신을 추상화한 인터페이스입니다.
type client interface {
	// 봇 정보 조회
	GetSelf() tgbotapi.User

	// 메시지 송수신
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)

	// 리소스 정리
	StopReceivingUpdates()
}

// tgClient tgbotapi.BotAPI를 래핑하여 client 인터페이스를 구현합니다.
type tgClient struct {
	*tgbotapi.BotAPI
}

// GetSelf 현재 봇의 사용자 정보를 반환합니다.
func (c *tgClient) GetSelf() tgbotapi.User {
	return c.Self
}

// OfferExtractor 상품 링크에서 정보를 추출합니다. *offer.Extractor가 이를 구현합니다.
type OfferExtractor interface {
	Extract(ctx context.Context, rawURL string) offer.Record
}
