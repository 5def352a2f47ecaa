package middleware

import (
	"fmt"
	"runtime"

	apperrors "github.com/darkkaiser/offer-bot/internal/pkg/errors"
	"github.com/darkkaiser/offer-bot/internal/service/api/constants"
	applog "github.com/darkkaiser/offer-bot/pkg/log"
	"github.com/labstack/echo/v4"
)

const stackBufferSize = 4 << 10

// PanicRecovery 핸들러에서 발생한 panic을 복구하여 500 응답으로 변환하고, 스택 트레이스를 기록합니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
					}

					stack := make([]byte, stackBufferSize)
					length := runtime.Stack(stack, false)

					fields := applog.Fields{
						"error": err,
						"stack": string(stack[:length]),
					}
					if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
						fields["request_id"] = requestID
					}

					applog.WithComponentAndFields(constants.ComponentPanicRecovery, fields).Error("PANIC RECOVERED")

					c.Error(err)
				}
			}()

			return next(c)
		}
	}
}
