// Package strutil 문자열 처리 유틸리티를 제공합니다.
package strutil

import (
	"strings"
	"unicode/utf8"
)

// NormalizeSpaces 앞뒤 공백을 제거하고 연속된 공백(개행 포함)을 하나로 축약합니다.
// 예: "  Echo Dot\n   (5ª gen)  " -> "Echo Dot (5ª gen)"
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// MaskSensitiveData 토큰 등 민감 정보를 로그에 남길 수 있도록 마스킹합니다.
func MaskSensitiveData(data string) string {
	if data == "" {
		return ""
	}

	if len(data) <= 3 {
		return "***"
	}
	if len(data) <= 12 {
		return data[:4] + "***"
	}

	return data[:4] + "***" + data[len(data)-4:]
}

// Truncate 문자열을 최대 maxRunes 글자로 자르고, 잘린 경우 "..."을 덧붙입니다.
// 멀티바이트 문자(이모지 등)가 중간에서 잘리지 않도록 rune 단위로 처리합니다.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	runes := []rune(s)
	return string(runes[:maxRunes]) + "..."
}
