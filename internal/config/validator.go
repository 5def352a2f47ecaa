package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/offer-bot/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// 텔레그램 봇 토큰 형식 (예: 123456789:ABC-DEF1234ghIkl-zyx57W2v1u123ew11)
var telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

// newValidator 커스텀 규칙이 등록된 Validator를 생성합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 구조체 필드명 대신 JSON 키 이름이 나오도록 한다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("telegram_bot_token", validateTelegramBotToken); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'telegram_bot_token' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

func validateTelegramBotToken(fl validator.FieldLevel) bool {
	return telegramBotTokenRegex.MatchString(fl.Field().String())
}

// checkStruct 구조체를 검증하고, 첫 번째 위반 항목을 사용자 친화적인 메시지로 변환합니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return apperrors.Wrapf(err, apperrors.InvalidInput, "%s 유효성 검증에 실패했습니다", contextName)
	}

	fe := validationErrors[0]
	switch fe.StructField() {
	case "BotToken":
		if fe.Tag() == "required" {
			return apperrors.New(apperrors.InvalidInput, "텔레그램 봇 토큰(bot_token)이 설정되지 않았습니다 (환경 변수 OFFERBOT_TELEGRAM__BOT_TOKEN 사용 가능)")
		}
		return apperrors.New(apperrors.InvalidInput, "텔레그램 봇 토큰(bot_token)의 형식이 올바르지 않습니다")
	case "ChannelID":
		return apperrors.New(apperrors.InvalidInput, "게시 대상 채널 ID(channel_id)가 설정되지 않았습니다")
	case "MaxConcurrentRequests":
		return apperrors.Newf(apperrors.InvalidInput, "최대 동시 처리 수(max_concurrent_requests)는 1에서 1000 사이의 값이어야 합니다: '%v'", fe.Value())
	case "MessagesPerSecond":
		return apperrors.Newf(apperrors.InvalidInput, "초당 전송 횟수(messages_per_second)는 0보다 커야 합니다: '%v'", fe.Value())
	case "MaxBodyBytes":
		return apperrors.Newf(apperrors.InvalidInput, "응답 본문 최대 크기(max_body_bytes)는 0보다 커야 합니다: '%v'", fe.Value())
	case "ListenPort":
		return apperrors.New(apperrors.InvalidInput, "API 서버 포트(listen_port)는 1에서 65535 사이의 값이어야 합니다")
	}

	return apperrors.Newf(apperrors.InvalidInput, "%s의 설정이 올바르지 않습니다: %s (조건: %s)", contextName, fe.Field(), fe.Tag())
}
