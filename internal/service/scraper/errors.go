package scraper

import (
	"fmt"
)

// HTTPStatusError 2xx 이외의 HTTP 응답을 나타냅니다.
//
//	var statusErr *scraper.HTTPStatusError
//	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusServiceUnavailable { ... }
type HTTPStatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d (%s) URL: %s", e.StatusCode, e.Status, e.URL)
}
