// Package mocks scraper 패키지 테스트용 Mock 구현체를 제공합니다.
package mocks

import (
	"bytes"
	"io"
	"net/http"

	"github.com/darkkaiser/offer-bot/internal/service/scraper"
	"github.com/stretchr/testify/mock"
)

var _ scraper.Fetcher = (*MockFetcher)(nil)

// MockFetcher testify/mock 기반 Fetcher 구현체입니다.
type MockFetcher struct {
	mock.Mock
}

// NewMockFetcher 새로운 MockFetcher를 생성합니다.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

func (m *MockFetcher) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

// NewMockResponse 주어진 본문과 상태 코드를 갖는 http.Response를 생성합니다.
func NewMockResponse(body string, statusCode int) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}
