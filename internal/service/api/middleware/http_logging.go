package middleware

import (
	"net/url"
	"strconv"
	"time"

	"github.com/darkkaiser/offer-bot/internal/service/api/constants"
	applog "github.com/darkkaiser/offer-bot/pkg/log"
	"github.com/labstack/echo/v4"
)

// HTTPLogger 요청마다 메서드, 경로, 상태 코드, 처리 시간 등을 Info 레벨로 기록합니다.
// 미리보기 대상 url 쿼리는 길이가 길 수 있으므로 경로와 분리하여 기록합니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			defer func() {
				latency := time.Since(start)

				path := req.URL.Path
				if path == "" {
					path = "/"
				}

				fields := applog.Fields{
					"method":   req.Method,
					"path":     path,
					"host":     req.Host,
					"protocol": req.Proto,

					"remote_ip":  c.RealIP(),
					"user_agent": req.UserAgent(),

					"status":    res.Status,
					"bytes_out": strconv.FormatInt(res.Size, 10),

					"latency_human": latency.String(),

					"request_id": res.Header().Get(echo.HeaderXRequestID),
				}
				if target := targetURL(req.URL); target != "" {
					fields["target_url"] = target
				}

				applog.WithComponentAndFields(constants.ComponentMiddleware, fields).Info("HTTP 요청")
			}()

			// 에러를 여기서 처리해야 로그에 최종 상태 코드가 기록됩니다.
			if err := next(c); err != nil {
				c.Error(err)
			}

			return nil
		}
	}
}

func targetURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Query().Get(constants.QueryURL)
}
