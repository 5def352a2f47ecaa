package bot

import (
	"context"
	"runtime/debug"
	"sync"

	applog "github.com/darkkaiser/offer-bot/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// receiveAndDispatch 수신한 메시지를 처리 고루틴으로 넘깁니다.
//
// 동시에 처리 중인 메시지가 requestSemaphore 용량에 도달하면 새 메시지는 버려집니다.
// serviceStopCtx가 취소되거나 updateC가 닫히면 반환합니다. 메시지 처리는 handlerCtx 위에서 실행됩니다.
func (s *Service) receiveAndDispatch(serviceStopCtx, handlerCtx context.Context, updateC tgbotapi.UpdatesChannel, wg *sync.WaitGroup) {
	for {
		select {
		case update, ok := <-updateC:
			if !ok {
				applog.WithComponent(component).Error("Long Polling 채널 종료됨: 메시지 수신 루프 종료")
				return
			}

			// 텍스트가 없는 메시지(사진, 스티커 등)와 메시지가 아닌 업데이트는 무시합니다.
			if update.Message == nil || update.Message.Text == "" {
				continue
			}

			select {
			case s.requestSemaphore <- struct{}{}:
				wg.Add(1)
				go func(message *tgbotapi.Message) {
					defer wg.Done()
					defer func() { <-s.requestSemaphore }()
					defer s.recoverHandler(message)

					s.handleMessage(handlerCtx, message)
				}(update.Message)

			case <-serviceStopCtx.Done():
				return

			default:
				applog.WithComponentAndFields(component, applog.Fields{
					"chat_id":            update.Message.Chat.ID,
					"semaphore_capacity": cap(s.requestSemaphore),
					"active_requests":    len(s.requestSemaphore),
				}).Warn("처리 용량 초과로 메시지 드롭됨: 빈번 발생 시 max_concurrent_requests 증가 검토 필요")
			}

		case <-serviceStopCtx.Done():
			return
		}
	}
}

// recoverHandler 메시지 처리 중 발생한 panic이 프로세스 전체를 중단시키지 않도록 복구합니다.
func (s *Service) recoverHandler(message *tgbotapi.Message) {
	if r := recover(); r != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": message.Chat.ID,
			"panic":   r,
			"stack":   string(debug.Stack()),
		}).Error("메시지 처리 중 panic 발생")
	}
}
