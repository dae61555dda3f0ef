package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")
	t.Setenv("RAZORPAY_ACCOUNT_NUMBER", "7878780080857996")
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults and env credentials", func(t *testing.T) {
		viper.Reset()
		setRequiredEnv(t)
		path := writeConfig(t, "server:\n  port: 9090\n")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
		assert.Equal(t, "7878780080857996", cfg.Razorpay.AccountNumber)
		assert.Equal(t, "local", cfg.Storage.Backend)
		assert.Equal(t, "https://api.razorpay.com", cfg.Razorpay.BaseURL)
		assert.Equal(t, "INR", cfg.Payout.Currency)
		assert.Equal(t, "IMPS", cfg.Payout.Mode)
		assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
	})

	t.Run("selects the storage backend from env", func(t *testing.T) {
		viper.Reset()
		setRequiredEnv(t)
		t.Setenv("STORAGE_BACKEND", "supabase")
		t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
		t.Setenv("SUPABASE_SERVICE_KEY", "svc-key")
		path := writeConfig(t, "logger:\n  level: debug\n")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "supabase", cfg.Storage.Backend)
		assert.Equal(t, "https://proj.supabase.co", cfg.Storage.Supabase.URL)
	})

	t.Run("fails without AI credentials", func(t *testing.T) {
		viper.Reset()
		t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
		t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")
		t.Setenv("RAZORPAY_ACCOUNT_NUMBER", "7878780080857996")
		path := writeConfig(t, "server:\n  port: 8080\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "openai.api_key")
	})

	t.Run("fails on unknown storage backend", func(t *testing.T) {
		viper.Reset()
		setRequiredEnv(t)
		path := writeConfig(t, "storage:\n  backend: ftp\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown storage backend")
	})

	t.Run("fails on cloudinary backend without credentials", func(t *testing.T) {
		viper.Reset()
		setRequiredEnv(t)
		path := writeConfig(t, "storage:\n  backend: cloudinary\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cloudinary")
	})
}
