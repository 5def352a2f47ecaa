package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/offer-bot/internal/pkg/errors"
	"github.com/darkkaiser/offer-bot/internal/service/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBotToken = "123456789:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

func createTempConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestNormalizeEnvKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"OFFERBOT_DEBUG", "debug"},
		{"OFFERBOT_TELEGRAM__BOT_TOKEN", "telegram.bot_token"},
		{"OFFERBOT_SCRAPER__FETCH_TIMEOUT", "scraper.fetch_timeout"},
		{"OFFERBOT_Mixed_Case__Key", "mixed_case.key"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeEnvKey(tt.input), "Input: %s", tt.input)
	}
}

func TestNewDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := newDefaultConfig()

	assert.False(t, cfg.Debug)
	assert.Equal(t, scraper.DefaultUserAgent, cfg.Scraper.UserAgent)
	assert.Equal(t, DefaultMaxBodyBytes, cfg.Scraper.MaxBodyBytes)
	assert.Zero(t, cfg.Scraper.FetchTimeout)
	assert.Equal(t, DefaultMaxConcurrentRequests, cfg.Telegram.MaxConcurrentRequests)
	assert.False(t, cfg.API.Enabled)
	assert.Equal(t, DefaultAPIListenAddress, cfg.API.ListenAddress)
}

func TestLoadWithFile(t *testing.T) {
	t.Run("Success: Defaults Applied", func(t *testing.T) {
		path := createTempConfig(t, `{
			"telegram": { "bot_token": "`+validBotToken+`", "channel_id": -1002496509220 }
		}`)

		cfg, err := LoadWithFile(path)
		require.NoError(t, err)

		assert.Equal(t, validBotToken, cfg.Telegram.BotToken)
		assert.Equal(t, int64(-1002496509220), cfg.Telegram.ChannelID)
		assert.Equal(t, DefaultMaxConcurrentRequests, cfg.Telegram.MaxConcurrentRequests)
		assert.Equal(t, DefaultMessagesPerSecond, cfg.Telegram.MessagesPerSecond)
		assert.Equal(t, scraper.DefaultUserAgent, cfg.Scraper.UserAgent)
		assert.Equal(t, DefaultAPIListenPort, cfg.API.ListenPort)
	})

	t.Run("Success: Duration String", func(t *testing.T) {
		path := createTempConfig(t, `{
			"telegram": { "bot_token": "`+validBotToken+`", "channel_id": -100 },
			"scraper": { "fetch_timeout": "15s" }
		}`)

		cfg, err := LoadWithFile(path)
		require.NoError(t, err)
		assert.Equal(t, 15*time.Second, cfg.Scraper.FetchTimeout)
	})

	t.Run("Success: Environment Overrides File", func(t *testing.T) {
		path := createTempConfig(t, `{
			"debug": false,
			"telegram": { "channel_id": -100 },
			"api": { "listen_port": 9000 }
		}`)

		t.Setenv("OFFERBOT_TELEGRAM__BOT_TOKEN", validBotToken)
		t.Setenv("OFFERBOT_TELEGRAM__CHANNEL_ID", "-200")
		t.Setenv("OFFERBOT_DEBUG", "true")

		cfg, err := LoadWithFile(path)
		require.NoError(t, err)

		assert.True(t, cfg.Debug)
		assert.Equal(t, validBotToken, cfg.Telegram.BotToken)
		assert.Equal(t, int64(-200), cfg.Telegram.ChannelID)
		assert.Equal(t, 9000, cfg.API.ListenPort)
	})

	t.Run("Error: File Not Found", func(t *testing.T) {
		cfg, err := LoadWithFile(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.True(t, apperrors.Is(err, apperrors.System))
		assert.Contains(t, err.Error(), "설정 파일을 찾을 수 없습니다")
	})

	t.Run("Error: Malformed JSON", func(t *testing.T) {
		cfg, err := LoadWithFile(createTempConfig(t, "{ invalid_json: ... }"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "설정 파일 로드 중 오류")
	})

	t.Run("Error: Unknown Field", func(t *testing.T) {
		cfg, err := LoadWithFile(createTempConfig(t, `{ "unknown_field": 1 }`))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "구조체로 변환하는데 실패했습니다")
	})

	t.Run("Error: Validation", func(t *testing.T) {
		cfg, err := LoadWithFile(createTempConfig(t, `{ "telegram": { "bot_token": "invalid", "channel_id": -100 } }`))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
		assert.Contains(t, err.Error(), "형식이 올바르지 않습니다")
	})
}

func TestAppConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *AppConfig {
		cfg := newDefaultConfig()
		cfg.Telegram.BotToken = validBotToken
		cfg.Telegram.ChannelID = -1002496509220
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr string
	}{
		{"Valid", func(c *AppConfig) {}, ""},
		{"Missing Token", func(c *AppConfig) { c.Telegram.BotToken = "" }, "bot_token)이 설정되지 않았습니다"},
		{"Invalid Token", func(c *AppConfig) { c.Telegram.BotToken = "abc:def" }, "bot_token)의 형식"},
		{"Missing Channel", func(c *AppConfig) { c.Telegram.ChannelID = 0 }, "channel_id"},
		{"Zero Concurrency", func(c *AppConfig) { c.Telegram.MaxConcurrentRequests = 0 }, "max_concurrent_requests"},
		{"Zero Rate", func(c *AppConfig) { c.Telegram.MessagesPerSecond = 0 }, "messages_per_second"},
		{"Empty User Agent", func(c *AppConfig) { c.Scraper.UserAgent = "" }, "user_agent"},
		{"Negative Timeout", func(c *AppConfig) { c.Scraper.FetchTimeout = -time.Second }, "fetch_timeout"},
		{"Zero Body Limit", func(c *AppConfig) { c.Scraper.MaxBodyBytes = 0 }, "max_body_bytes"},
		{"Invalid Port", func(c *AppConfig) { c.API.ListenPort = 70000 }, "listen_port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.validate(newValidator())
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
