package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "MAX_UPLOAD_SIZE_BYTES", "RATE_LIMIT_PER_MINUTE", "CORS_ALLOWED_ORIGINS",
		"LOG_LEVEL", "LOG_FORMAT", "OUTPUT_PATH",
		"GOOGLE_SPREADSHEET_ID", "GOOGLE_SERVICE_ACCOUNT_JSON", "GOOGLE_SERVICE_ACCOUNT_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadSizeBytes)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "output/finance_summary.xlsx", cfg.OutputPath)
	assert.False(t, cfg.SheetsEnabled())
	assert.NoError(t, cfg.ValidateCLI())
	assert.NoError(t, cfg.ValidateServer())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_UPLOAD_SIZE_BYTES", "2048")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("GOOGLE_SPREADSHEET_ID", " sheet-123 ")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", `{"type":"service_account"}`)
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, int64(2048), cfg.MaxUploadSizeBytes)
	assert.Equal(t, 60, cfg.RateLimitPerMinute, "invalid numbers fall back to the default")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "sheet-123", cfg.GoogleSpreadsheetID)
	assert.True(t, cfg.SheetsEnabled())
	assert.NoError(t, cfg.ValidateServer())

	creds, err := cfg.SheetsCredentials()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"service_account"}`, string(creds))
}

func validConfig() *Config {
	return &Config{
		Port:               "8080",
		MaxUploadSizeBytes: 1024,
		RateLimitPerMinute: 60,
		LogLevel:           "info",
		LogFormat:          "text",
		OutputPath:         "out.xlsx",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *Config)
		wantCLIErr    string
		wantServerErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:          "port not a number",
			mutate:        func(c *Config) { c.Port = "http" },
			wantServerErr: "invalid port 'http'",
		},
		{
			name:          "port out of range",
			mutate:        func(c *Config) { c.Port = "70000" },
			wantServerErr: "must be between 1 and 65535",
		},
		{
			name:          "upload size",
			mutate:        func(c *Config) { c.MaxUploadSizeBytes = 0 },
			wantServerErr: "invalid max upload size",
		},
		{
			name:          "rate limit",
			mutate:        func(c *Config) { c.RateLimitPerMinute = 0 },
			wantServerErr: "invalid rate limit",
		},
		{
			name:       "output path",
			mutate:     func(c *Config) { c.OutputPath = " " },
			wantCLIErr: "output path cannot be empty",
		},
		{
			name:          "log format",
			mutate:        func(c *Config) { c.LogFormat = "xml" },
			wantCLIErr:    "invalid log format 'xml'",
			wantServerErr: "invalid log format 'xml'",
		},
		{
			name:          "sheets without credentials",
			mutate:        func(c *Config) { c.GoogleSpreadsheetID = "id" },
			wantCLIErr:    "must be provided when GOOGLE_SPREADSHEET_ID is set",
			wantServerErr: "must be provided when GOOGLE_SPREADSHEET_ID is set",
		},
		{
			name: "sheets credentials file missing",
			mutate: func(c *Config) {
				c.GoogleSpreadsheetID = "id"
				c.GoogleServiceAccountFile = filepath.Join(t.TempDir(), "missing.json")
			},
			wantCLIErr:    "service account file does not exist",
			wantServerErr: "service account file does not exist",
		},
	}

	check := func(t *testing.T, err error, want string) {
		t.Helper()
		if want == "" {
			assert.NoError(t, err)
			return
		}
		require.Error(t, err)
		assert.Contains(t, err.Error(), want)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			check(t, cfg.ValidateCLI(), tt.wantCLIErr)
			check(t, cfg.ValidateServer(), tt.wantServerErr)
		})
	}
}

func TestValidateCLI_IgnoresServerSettings(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
	t.Setenv("MAX_UPLOAD_SIZE_BYTES", "-1")
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("OUTPUT_PATH", "")

	cfg := Load()

	assert.NoError(t, cfg.ValidateCLI())
	assert.Error(t, cfg.ValidateServer())
}

func TestValidateServer_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "0"
	cfg.LogFormat = "yaml"

	err := cfg.ValidateServer()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port 0")
	assert.Contains(t, err.Error(), "invalid log format 'yaml'")
}

func TestSheetsCredentials(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sa.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"k":1}`), 0o600))

		cfg := validConfig()
		cfg.GoogleServiceAccountFile = path

		creds, err := cfg.SheetsCredentials()
		require.NoError(t, err)
		assert.Equal(t, `{"k":1}`, string(creds))
	})

	t.Run("inline JSON wins over file", func(t *testing.T) {
		cfg := validConfig()
		cfg.GoogleServiceAccountJSON = `{"inline":true}`
		cfg.GoogleServiceAccountFile = "/does/not/exist.json"

		creds, err := cfg.SheetsCredentials()
		require.NoError(t, err)
		assert.Equal(t, `{"inline":true}`, string(creds))
	})

	t.Run("none configured", func(t *testing.T) {
		_, err := validConfig().SheetsCredentials()
		assert.Error(t, err)
	})
}
