package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestPanicRecovery(t *testing.T) {
	tests := []struct {
		name         string
		panicPayload any
		requestID    string
		wantError    string
	}{
		{name: "문자열 panic", panicPayload: "boom", wantError: "boom"},
		{name: "error panic", panicPayload: errors.New("kaboom"), wantError: "kaboom"},
		{name: "Request ID 포함", panicPayload: "boom", requestID: "req-123", wantError: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			e := echo.New()
			e.Use(PanicRecovery())
			e.GET("/panic", func(c echo.Context) error {
				if tt.requestID != "" {
					c.Response().Header().Set(echo.HeaderXRequestID, tt.requestID)
				}
				panic(tt.panicPayload)
			})

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			entry := parseLastLogEntry(t, buf)
			assert.Equal(t, "PANIC RECOVERED", entry["msg"])
			assert.Contains(t, entry["error"], tt.wantError)
			assert.NotEmpty(t, entry["stack"])
			if tt.requestID != "" {
				assert.Equal(t, tt.requestID, entry["request_id"])
			} else {
				assert.NotContains(t, entry, "request_id")
			}
		})
	}
}
