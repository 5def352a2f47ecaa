package bot

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	apperrors "github.com/darkkaiser/offer-bot/internal/pkg/errors"
	applog "github.com/darkkaiser/offer-bot/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// offerPost 채팅방 하나에 게시할 상품 정보입니다.
type offerPost struct {
	caption string
	image   string
	link    string
}

// chattable chatID로 보낼 전송 요청을 만듭니다.
// 이미지가 있으면 캡션이 달린 사진을, 없으면 텍스트 메시지를 만듭니다.
func (p offerPost) chattable(chatID int64, parseMode string) tgbotapi.Chattable {
	keyboard, hasKeyboard := offerKeyboard(p.link)

	if p.image != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(p.image))
		photo.Caption = p.caption
		photo.ParseMode = parseMode
		if hasKeyboard {
			photo.ReplyMarkup = keyboard
		}
		return photo
	}

	msg := tgbotapi.NewMessage(chatID, p.caption)
	msg.ParseMode = parseMode
	if hasKeyboard {
		msg.ReplyMarkup = keyboard
	}
	return msg
}

// offerKeyboard 원본 링크를 여는 버튼 하나로 구성된 인라인 키보드를 만듭니다.
// 텔레그램은 절대 http(s) URL이 아닌 버튼을 거부하므로, 그런 링크에는 키보드를 만들지 않습니다.
func offerKeyboard(link string) (tgbotapi.InlineKeyboardMarkup, bool) {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(offerButtonText, link),
		),
	), true
}

// publish chatID로 상품 정보를 전송합니다.
// Markdown 해석에 실패하면 파싱 모드 없이 한 번 더 전송합니다.
func (s *Service) publish(ctx context.Context, chatID int64, p offerPost) error {
	err := s.send(ctx, p.chattable(chatID, tgbotapi.ModeMarkdown))
	if err != nil && isEntityParseError(err) {
		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": chatID,
			"error":   err,
		}).Warn("Markdown 파싱 오류: PlainText 모드로 재전송합니다")

		err = s.send(ctx, p.chattable(chatID, ""))
	}
	if err != nil {
		return apperrors.Wrap(err, apperrors.ExecutionFailed, fmt.Sprintf("텔레그램 메시지 전송에 실패했습니다 (chat_id: %d)", chatID))
	}

	return nil
}

// send 전송 속도 제한을 지킨 뒤 텔레그램 API를 호출합니다.
func (s *Service) send(ctx context.Context, c tgbotapi.Chattable) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := s.client.Send(c)
	return err
}

// isEntityParseError 텔레그램이 메시지의 서식(entity)을 해석하지 못해 거부했는지 확인합니다.
func isEntityParseError(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 400 && strings.Contains(apiErr.Message, "can't parse entities")
	}

	var apiErrValue tgbotapi.Error
	if errors.As(err, &apiErrValue) {
		return apiErrValue.Code == 400 && strings.Contains(apiErrValue.Message, "can't parse entities")
	}

	return false
}
