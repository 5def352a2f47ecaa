// Package system 시스템 엔드포인트의 응답 모델을 정의합니다.
package system

// HealthResponse /health 응답 본문입니다.
type HealthResponse struct {
	Status string `json:"status"`

	// Uptime 서버 시작 이후 경과 시간(초)
	Uptime int64 `json:"uptime"`
}
