package httputil

import (
	"errors"
	"net/http"

	"github.com/darkkaiser/offer-bot/internal/service/api/constants"
	"github.com/darkkaiser/offer-bot/internal/service/api/model/response"
	applog "github.com/darkkaiser/offer-bot/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler Echo 전역 HTTP 에러 핸들러입니다.
//
// 모든 에러 응답을 ErrorResponse JSON 형식으로 통일하고, 5xx는 Error, 4xx는 Warn 레벨로 기록합니다.
// 내부 에러의 상세 내용은 응답에 노출하지 않습니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := constants.ErrMsgInternalServer

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch msg := he.Message.(type) {
		case string:
			message = msg
		case response.ErrorResponse:
			message = msg.Message
		}
	}

	if code == http.StatusNotFound {
		message = constants.ErrMsgNotFound
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error("HTTP 5xx: 서버 내부 오류 발생")
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn("HTTP 4xx: 클라이언트 요청 오류")
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}
