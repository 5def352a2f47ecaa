package bot

import (
	"context"
	"strings"

	"github.com/darkkaiser/offer-bot/internal/service/offer"
	applog "github.com/darkkaiser/offer-bot/pkg/log"
	"github.com/darkkaiser/offer-bot/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const commandStart = "start"

// handleMessage 수신한 메시지 하나를 처리합니다.
//
// 명령어는 /start만 응답하고 나머지는 무시합니다. 그 외 텍스트는 상품 링크로 간주하며,
// 형식을 검사하지 않고 그대로 추출기에 전달합니다.
func (s *Service) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		s.handleCommand(ctx, message)
		return
	}

	link := strings.TrimSpace(message.Text)
	if link == "" {
		return
	}

	fields := applog.Fields{
		"chat_id": message.Chat.ID,
		"url":     strutil.Truncate(link, 200),
	}
	if message.From != nil {
		fields["user_id"] = message.From.ID
		fields["username"] = message.From.UserName
	}
	applog.WithComponentAndFields(component, fields).Info("상품 링크 수신됨")

	r := s.extract(ctx, link)

	p := offerPost{
		caption: offer.Format(r, link),
		image:   r.Image,
		link:    link,
	}

	// 요청자와 채널로의 전송은 서로 독립적입니다. 한쪽이 실패해도 다른 쪽은 전송합니다.
	if err := s.publish(ctx, message.Chat.ID, p); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": message.Chat.ID,
			"target":  "requester",
			"error":   err,
		}).Error("요청자에게 상품 정보를 전송하지 못했습니다")
	}

	if err := s.publish(ctx, s.channelID, p); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": s.channelID,
			"target":  "channel",
			"error":   err,
		}).Error("채널에 상품 정보를 게시하지 못했습니다")
	}
}

func (s *Service) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	switch command {
	case commandStart:
		if err := s.send(ctx, tgbotapi.NewMessage(message.Chat.ID, welcomeMessage)); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"chat_id": message.Chat.ID,
				"error":   err,
			}).Error("환영 메시지를 전송하지 못했습니다")
		}

	default:
		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": message.Chat.ID,
			"command": command,
		}).Info("지원하지 않는 명령어 무시됨")
	}
}

// extract fetchTimeout이 설정된 경우 제한 시간을 적용하여 상품 정보를 추출합니다.
func (s *Service) extract(ctx context.Context, link string) offer.Record {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	return s.extractor.Extract(ctx, link)
}
