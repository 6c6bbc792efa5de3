package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_PRIMARY_TEMPERATURE", "")
	t.Setenv("MIDTRANS_IS_PRODUCTION", "")

	cfg := Load()

	assert.Equal(t, "huggingface", cfg.LLM.Primary.Provider)
	assert.Equal(t, "microsoft/DialoGPT-large", cfg.LLM.Primary.Model)
	assert.Equal(t, 0.7, cfg.LLM.Primary.Temperature)
	assert.Equal(t, 300, cfg.LLM.Secondary.MaxTokens)
	assert.Equal(t, 50, cfg.LLM.MinReplyLength)
	assert.False(t, cfg.Billing.MidtransProduction)
	assert.Equal(t, time.Hour, cfg.Voice.CacheTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LLM_PRIMARY_PROVIDER", "openai")
	t.Setenv("LLM_PRIMARY_TEMPERATURE", "0.2")
	t.Setenv("MIDTRANS_IS_PRODUCTION", "true")
	t.Setenv("RATE_LIMIT_BURST", "3")

	cfg := Load()

	assert.Equal(t, "openai", cfg.LLM.Primary.Provider)
	assert.Equal(t, 0.2, cfg.LLM.Primary.Temperature)
	assert.True(t, cfg.Billing.MidtransProduction)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.Local, AppConfig{Timezone: "Local"}.Location())
	assert.Equal(t, time.Local, AppConfig{Timezone: "Mars/Olympus"}.Location())
	assert.Equal(t, "UTC", AppConfig{Timezone: "UTC"}.Location().String())
}
