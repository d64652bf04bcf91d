package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "scripted")
	// vacías = no definidas para viper (AllowEmptyEnv es false)
	for _, k := range []string{"PORT", "LLM_TIMEOUT", "LLM_MAX_RETRIES", "LLM_MODEL", "MAX_BODY_BYTES"} {
		t.Setenv(k, "")
	}

	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, ProviderScripted, cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 1, cfg.LLM.MaxRetries)
	assert.EqualValues(t, 1<<20, cfg.MaxBodyBytes)
	assert.Equal(t, "scripted", cfg.LLM.Model)
}

func TestFromViper_FailsFastWithoutAPIKey(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := FromViper(newViper())
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestFromViper_ProviderSpecificKeyFallback(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("PORT", "9090")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)
	assert.Equal(t, "g-key", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, ":9090", cfg.Addr())
}

func TestFromViper_UnknownProvider(t *testing.T) {
	v := viper.New()
	v.Set("LLM_PROVIDER", "carrier-pigeon")

	_, err := FromViper(v)
	require.ErrorIs(t, err, ErrUnknownProvider)
}

func TestValidate_ClampsNegativeRetries(t *testing.T) {
	c := Config{LLM: LLMConfig{Provider: ProviderScripted, MaxRetries: -3}}
	require.NoError(t, c.Validate())
	assert.Equal(t, 0, c.LLM.MaxRetries)
	assert.Equal(t, "8080", c.Port)
}
