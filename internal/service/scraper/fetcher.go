package scraper

import (
	"net/http"
	"time"
)

// DefaultUserAgent 별도의 User-Agent가 지정되지 않았을 때 사용하는 데스크톱 Chrome 브라우저 값입니다.
// 단순한 봇 차단을 피하기 위한 것으로, 차단 회피를 보장하지는 않습니다.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher HTTP 요청을 실행하는 인터페이스입니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPFetcher 요청에 브라우저 User-Agent를 채워 넣는 Fetcher 구현체입니다.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// FetcherOption HTTPFetcher 생성 옵션입니다.
type FetcherOption func(*HTTPFetcher)

// WithUserAgent 요청에 사용할 User-Agent를 지정합니다. 빈 문자열이면 무시됩니다.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithTimeout 요청 전체에 적용할 제한 시간을 지정합니다. 0이면 제한하지 않습니다.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client.Timeout = d
	}
}

// WithTransport 하위 RoundTripper를 교체합니다.
func WithTransport(rt http.RoundTripper) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client.Transport = rt
	}
}

// NewHTTPFetcher 새로운 HTTPFetcher를 생성합니다.
// 기본적으로 제한 시간은 없으며, 호출자가 context로 제어합니다.
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    &http.Client{},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Do 요청 헤더에 User-Agent가 없으면 기본값을 설정한 뒤 요청을 실행합니다.
func (f *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	return f.client.Do(req)
}
