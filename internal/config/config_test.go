package config

import (
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/salaryboard/internal/payroll"
)

const testSecret = "0123456789abcdef0123"

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
		Payroll: PayrollConfig{TotalsMode: "auto", MaxContinuationLines: 50, HistorySize: 20},
		Upload:  UploadConfig{MaxFileSize: 1, MaxWaitTime: time.Second, Timeout: time.Minute},
		Session: SessionConfig{Secret: testSecret, TTL: time.Hour},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 100, UploadLimit: 10, LoginLimit: 20},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Payroll.SourcePath != "Salary.csv" {
		t.Errorf("Payroll.SourcePath = %q, want Salary.csv", cfg.Payroll.SourcePath)
	}
	if cfg.Payroll.Mode() != payroll.ModeAuto {
		t.Errorf("Payroll.Mode() = %q, want auto", cfg.Payroll.Mode())
	}
	if cfg.Payroll.MaxContinuationLines != 50 {
		t.Errorf("Payroll.MaxContinuationLines = %d, want 50", cfg.Payroll.MaxContinuationLines)
	}
	if cfg.Payroll.ReloadInterval != 0 {
		t.Errorf("Payroll.ReloadInterval = %v, want 0", cfg.Payroll.ReloadInterval)
	}
	if cfg.Upload.MaxFileSize != 20971520 {
		t.Errorf("Upload.MaxFileSize = %d, want %d", cfg.Upload.MaxFileSize, 20971520)
	}
	if cfg.Session.TTL != 8*time.Hour {
		t.Errorf("Session.TTL = %v, want 8h", cfg.Session.TTL)
	}
	if cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 100)
	}
	if len(cfg.Security.AllowedOrigins) != 0 {
		t.Errorf("Security.AllowedOrigins = %v, want empty", cfg.Security.AllowedOrigins)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"SESSION_SECRET":                 testSecret,
		"SERVER_PORT":                    "9090",
		"PAYROLL_TOTALS_MODE":            "components",
		"PAYROLL_MAX_CONTINUATION_LINES": "10",
		"PAYROLL_RELOAD_INTERVAL":        "5m",
		"LOG_LEVEL":                      "debug",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Payroll.Mode() != payroll.ModeComponents {
		t.Errorf("Payroll.Mode() = %q, want components", cfg.Payroll.Mode())
	}
	if cfg.Payroll.MaxContinuationLines != 10 {
		t.Errorf("Payroll.MaxContinuationLines = %d, want 10", cfg.Payroll.MaxContinuationLines)
	}
	if cfg.Payroll.ReloadInterval != 5*time.Minute {
		t.Errorf("Payroll.ReloadInterval = %v, want 5m", cfg.Payroll.ReloadInterval)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"JWT_SECRET": testSecret,
		"PORT":       "3000",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Session.Secret != testSecret {
		t.Errorf("Session.Secret not read from JWT_SECRET")
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	_, err := LoadFrom(envMap(nil))
	if err == nil {
		t.Fatal("LoadFrom() expected error for missing SESSION_SECRET")
	}
	if !strings.Contains(err.Error(), "SESSION_SECRET") {
		t.Errorf("error should mention SESSION_SECRET: %v", err)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	_, err := LoadFrom(envMap(map[string]string{
		"SESSION_SECRET":       testSecret,
		"UPLOAD_MAX_WAIT_TIME": "soon",
	}))
	if err == nil || !strings.Contains(err.Error(), "UPLOAD_MAX_WAIT_TIME") {
		t.Errorf("expected invalid duration error, got %v", err)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"SESSION_SECRET":       testSecret,
		"TRUSTED_PROXIES":      "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16",
		"CORS_ALLOWED_ORIGINS": "https://payroll.example.com,",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
	if len(cfg.Security.AllowedOrigins) != 1 {
		t.Errorf("AllowedOrigins = %v, want one entry", cfg.Security.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "SERVER_PORT"},
		{"invalid totals mode", func(c *Config) { c.Payroll.TotalsMode = "both" }, "PAYROLL_TOTALS_MODE"},
		{"zero continuation cap", func(c *Config) { c.Payroll.MaxContinuationLines = 0 }, "PAYROLL_MAX_CONTINUATION_LINES"},
		{"short secret", func(c *Config) { c.Session.Secret = "short" }, "SESSION_SECRET"},
		{"bad proxy cidr", func(c *Config) { c.Security.TrustedProxies = []string{"10.0.0.1"} }, "TRUSTED_PROXIES"},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"login limit off when disabled", func(c *Config) { c.Rate.Enabled = false; c.Rate.LoginLimit = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"SERVER_PORT", "LOG_FORMAT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
		{"localhost", 443, "localhost:443"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		got := cfg.Addr()
		if got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString_MasksSecret(t *testing.T) {
	cfg := validConfig()
	str := cfg.String()
	if strings.Contains(str, testSecret) {
		t.Error("String() should mask the session secret")
	}
	if !strings.Contains(str, "MASKED") {
		t.Error("String() should contain MASKED placeholder")
	}
}
