// Package scraper 웹 페이지를 가져와 goquery 문서로 파싱하는 기능을 제공합니다.
package scraper

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/darkkaiser/offer-bot/internal/pkg/errors"
	applog "github.com/darkkaiser/offer-bot/pkg/log"
	"golang.org/x/net/html/charset"
)

const (
	component = "scraper"

	defaultMaxBodyBytes int64 = 10 * 1024 * 1024

	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// Scraper HTML 페이지 요청과 파싱을 담당합니다. 동시 사용에 안전합니다.
type Scraper struct {
	fetcher      Fetcher
	maxBodyBytes int64
}

// Option Scraper 생성 옵션입니다.
type Option func(*Scraper)

// WithMaxBodyBytes 허용할 응답 본문의 최대 크기를 지정합니다.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Scraper) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// New 주어진 Fetcher를 사용하는 Scraper를 생성합니다.
func New(f Fetcher, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher:      f,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchHTML rawURL에 GET 요청을 보내 HTML 문서를 반환합니다.
//
// 재시도나 캐싱은 하지 않습니다. 응답의 Content-Type 또는 <meta charset>을 기준으로 UTF-8로 변환한 뒤 파싱합니다.
func (s *Scraper) FetchHTML(ctx context.Context, rawURL string) (*goquery.Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "URL 형식이 올바르지 않습니다: '%s'", rawURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 URL입니다: '%s'", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "HTTP 요청 생성에 실패했습니다")
	}
	req.Header.Set("Accept", acceptHTML)

	logger := applog.WithComponentAndFields(component, applog.Fields{"url": u.Redacted()})

	resp, err := s.fetcher.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, apperrors.Wrap(err, apperrors.Timeout, "페이지 요청 시간이 초과되었습니다")
		}
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "페이지 요청에 실패했습니다")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// 커넥션 재사용을 위해 남은 본문을 일부 비운다.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		return nil, apperrors.Wrap(&HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			URL:        u.Redacted(),
		}, apperrors.ExecutionFailed, "페이지 요청이 실패 응답을 반환했습니다")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes+1))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "응답 본문을 읽는 중 오류가 발생했습니다")
	}
	if int64(len(body)) > s.maxBodyBytes {
		return nil, apperrors.Newf(apperrors.ExecutionFailed, "응답 본문 크기가 허용 한도(%d bytes)를 초과했습니다", s.maxBodyBytes)
	}

	contentType := resp.Header.Get("Content-Type")

	logger.WithFields(applog.Fields{
		"status_code":  resp.StatusCode,
		"content_type": contentType,
		"body_size":    len(body),
	}).Debug("페이지 요청 완료, HTML 파싱 시작")

	doc, err := parseHTML(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, err
	}

	if resp.Request != nil && resp.Request.URL != nil {
		doc.Url = resp.Request.URL
	} else {
		doc.Url = u
	}

	return doc, nil
}

// parseHTML contentType의 charset 힌트(없으면 본문 스니핑)로 UTF-8 변환 후 문서를 생성합니다.
func parseHTML(r io.Reader, contentType string) (*goquery.Document, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "응답 본문의 문자 인코딩 변환에 실패했습니다")
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "HTML 파싱에 실패했습니다")
	}

	return doc, nil
}
