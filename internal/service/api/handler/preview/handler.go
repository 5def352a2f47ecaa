// Package preview 상품 링크를 텔레그램에 게시하지 않고 추출 결과만 확인하는 엔드포인트를 제공합니다.
package preview

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/darkkaiser/offer-bot/internal/service/api/constants"
	"github.com/darkkaiser/offer-bot/internal/service/api/httputil"
	"github.com/darkkaiser/offer-bot/internal/service/api/model/response"
	"github.com/darkkaiser/offer-bot/internal/service/offer"
	applog "github.com/darkkaiser/offer-bot/pkg/log"
	"github.com/labstack/echo/v4"
)

// Extractor 상품 링크에서 정보를 추출합니다.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) offer.Record
}

// Handler 미리보기 핸들러입니다.
type Handler struct {
	extractor Extractor
}

// New Handler를 생성합니다.
func New(extractor Extractor) *Handler {
	if extractor == nil {
		panic("Extractor는 필수입니다")
	}

	return &Handler{extractor: extractor}
}

// PreviewHandler url 쿼리 파라미터의 상품 정보를 추출하여 캡션과 함께 반환합니다.
//
// url이 없거나 http(s) 절대 URL이 아니면 400을 반환합니다.
// 페이지를 가져오지 못한 경우에도 200과 함께 에러 문자열로 채워진 결과를 반환합니다.
func (h *Handler) PreviewHandler(c echo.Context) error {
	rawURL := strings.TrimSpace(c.QueryParam(constants.QueryURL))
	if rawURL == "" {
		return httputil.NewBadRequestError(constants.ErrMsgURLRequired)
	}
	if !isHTTPURL(rawURL) {
		return httputil.NewBadRequestError(constants.ErrMsgURLInvalid)
	}

	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/api/v1/offers/preview",
		"url":       rawURL,
		"remote_ip": c.RealIP(),
	}).Debug("상품 미리보기 요청")

	r := h.extractor.Extract(c.Request().Context(), rawURL)

	return c.JSON(http.StatusOK, response.PreviewResponse{
		Title:    r.Title,
		Price:    r.Price,
		Discount: r.Discount,
		Image:    r.Image,
		Caption:  offer.Format(r, rawURL),
	})
}

func isHTTPURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
