package config

import (
	"strings"
	"testing"
	"time"
)

// envMap returns a getenv func backed by m.
func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: time.Second,
			RequestTimeout:  time.Second,
		},
		Convert: ConvertConfig{MaxInputBytes: 1024, MaxConcurrent: 2},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 100},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Convert.MaxInputBytes != 5<<20 {
		t.Errorf("Convert.MaxInputBytes = %d, want %d", cfg.Convert.MaxInputBytes, 5<<20)
	}
	if cfg.Convert.MaxConcurrent != 8 || cfg.Convert.MaxWait != 5*time.Second {
		t.Errorf("Convert = %+v, want 8 slots and a 5s wait", cfg.Convert)
	}
	if !cfg.Rate.Enabled || cfg.Rate.RequestsPerMinute != 120 {
		t.Errorf("Rate = %+v, want enabled at 120/min", cfg.Rate)
	}
	if cfg.Metrics.Path != "/metrics" || cfg.Metrics.Namespace != "csvjson" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if !cfg.Security.EnableCSP {
		t.Error("Security.EnableCSP = false, want true")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{"PORT": "3000"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 3000)
	}

	// Primary wins over the alternate.
	cfg, err = LoadFrom(envMap(map[string]string{"PORT": "3000", "SERVER_PORT": "4000"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 4000)
	}
}

func TestLoad_Duration(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"SERVER_READ_TIMEOUT":    "45s",
		"SERVER_REQUEST_TIMEOUT": "1m30s",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Server.RequestTimeout != 90*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want %v", cfg.Server.RequestTimeout, 90*time.Second)
	}
}

func TestLoad_ByteSize(t *testing.T) {
	tests := []struct {
		value string
		want  int64
	}{
		{"1048576", 1 << 20},
		{"512KB", 512 << 10},
		{"5MB", 5 << 20},
		{"2mb", 2 << 20},
		{"1GB", 1 << 30},
		{"100B", 100},
	}

	for _, tt := range tests {
		cfg, err := LoadFrom(envMap(map[string]string{"CONVERT_MAX_INPUT": tt.value}))
		if err != nil {
			t.Errorf("CONVERT_MAX_INPUT=%q error = %v", tt.value, err)
			continue
		}
		if cfg.Convert.MaxInputBytes != tt.want {
			t.Errorf("CONVERT_MAX_INPUT=%q -> %d, want %d", tt.value, cfg.Convert.MaxInputBytes, tt.want)
		}
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad int", map[string]string{"SERVER_PORT": "http"}, "SERVER_PORT"},
		{"bad duration", map[string]string{"SERVER_READ_TIMEOUT": "soon"}, "SERVER_READ_TIMEOUT"},
		{"bad bool", map[string]string{"RATE_LIMIT_ENABLED": "maybe"}, "RATE_LIMIT_ENABLED"},
		{"bad size", map[string]string{"CONVERT_MAX_INPUT": "lots"}, "CONVERT_MAX_INPUT"},
		{"zero size", map[string]string{"CONVERT_MAX_INPUT": "0"}, "CONVERT_MAX_INPUT"},
		{"zero concurrency", map[string]string{"CONVERT_MAX_CONCURRENT": "0"}, "CONVERT_MAX_CONCURRENT"},
		{"bad level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"bad metrics path", map[string]string{"METRICS_PATH": "metrics"}, "METRICS_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(envMap(tt.env))
			if err == nil {
				t.Fatal("LoadFrom() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %s: %v", tt.want, err)
			}
		})
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"TRUSTED_PROXIES": "10.0.0.0/8, 172.16.0.0/12 , ,192.168.0.0/16",
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
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 99999
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

func TestValidate_RateLimitDisabled(t *testing.T) {
	cfg := validConfig()
	cfg.Rate = RateLimitConfig{Enabled: false, RequestsPerMinute: 0}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil when rate limiting is disabled", err)
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
		{"::1", 443, "[::1]:443"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString(t *testing.T) {
	str := validConfig().String()
	for _, want := range []string{"MaxInputBytes: 1024", `Path: "/metrics"`} {
		if !strings.Contains(str, want) {
			t.Errorf("String() = %s, missing %s", str, want)
		}
	}
}
