package errors

import "strconv"

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러 (기본값)
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그 등)
	Internal

	// System 파일 I/O 등 시스템 수준의 오류
	System

	// InvalidInput 잘못된 입력값 (설정값, URL 등)
	InvalidInput

	// NotFound 리소스를 찾을 수 없음
	NotFound

	// ExecutionFailed 외부 호출 실행 실패 (비정상 HTTP 응답, 텔레그램 전송 실패 등)
	ExecutionFailed

	// ParsingFailed HTML/JSON 등 데이터 파싱 실패
	ParsingFailed

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 네트워크 장애 등으로 대상에 접근할 수 없음
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:         "Unknown",
	Internal:        "Internal",
	System:          "System",
	InvalidInput:    "InvalidInput",
	NotFound:        "NotFound",
	ExecutionFailed: "ExecutionFailed",
	ParsingFailed:   "ParsingFailed",
	Timeout:         "Timeout",
	Unavailable:     "Unavailable",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
