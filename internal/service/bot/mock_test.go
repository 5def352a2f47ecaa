package bot

import (
	"context"
	"fmt"
	"testing"

	"github.com/darkkaiser/offer-bot/internal/service/offer"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Telegram Client Mock
// =============================================================================

var _ client = (*mockClient)(nil)

// mockClient testify/mock 기반의 client 구현체입니다.
type mockClient struct {
	mock.Mock
}

func newMockClient(t *testing.T) *mockClient {
	m := &mockClient{}
	m.Test(t)
	return m
}

func (m *mockClient) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	args := m.Called(config)
	return getUpdatesChannel(args.Get(0))
}

func (m *mockClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)

	var msg tgbotapi.Message
	if args.Get(0) != nil {
		msg = args.Get(0).(tgbotapi.Message)
	}

	return msg, args.Error(1)
}

func (m *mockClient) StopReceivingUpdates() {
	m.Called()
}

func (m *mockClient) GetSelf() tgbotapi.User {
	args := m.Called()

	if args.Get(0) != nil {
		return args.Get(0).(tgbotapi.User)
	}
	return tgbotapi.User{}
}

// getUpdatesChannel Mock 리턴값을 tgbotapi.UpdatesChannel로 변환합니다.
// interface{}에 담긴 `chan T`는 `<-chan T`로 바로 어설션되지 않으므로 두 경우를 모두 처리합니다.
func getUpdatesChannel(ret interface{}) tgbotapi.UpdatesChannel {
	if ret == nil {
		return nil
	}

	if ch, ok := ret.(tgbotapi.UpdatesChannel); ok {
		return ch
	}
	if ch, ok := ret.(chan tgbotapi.Update); ok {
		return ch
	}

	panic(fmt.Sprintf("mockClient.GetUpdatesChan: unexpected return type: %T", ret))
}

// =============================================================================
// Extractor Stub
// =============================================================================

// extractorFunc 함수를 OfferExtractor로 사용할 수 있게 합니다.
type extractorFunc func(ctx context.Context, rawURL string) offer.Record

func (f extractorFunc) Extract(ctx context.Context, rawURL string) offer.Record {
	return f(ctx, rawURL)
}

func staticExtractor(r offer.Record) OfferExtractor {
	return extractorFunc(func(context.Context, string) offer.Record { return r })
}

// =============================================================================
// Update Builders
// =============================================================================

func textUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: chatID},
			From: &tgbotapi.User{ID: 42, UserName: "tester"},
			Text: text,
		},
	}
}

func commandUpdate(chatID int64, command string) tgbotapi.Update {
	u := textUpdate(chatID, "/"+command)
	u.Message.Entities = []tgbotapi.MessageEntity{
		{Type: "bot_command", Offset: 0, Length: len(command) + 1},
	}
	return u
}
