package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestGetenvAny(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		keys     []string
		def      string
		expected string
	}{
		{
			name:     "first key wins",
			env:      map[string]string{"TEST_KEY_A": "a", "TEST_KEY_B": "b"},
			keys:     []string{"TEST_KEY_A", "TEST_KEY_B"},
			expected: "a",
		},
		{
			name:     "falls through to second key",
			env:      map[string]string{"TEST_KEY_B": "b"},
			keys:     []string{"TEST_KEY_A", "TEST_KEY_B"},
			expected: "b",
		},
		{
			name:     "default when none set",
			keys:     []string{"TEST_KEY_A", "TEST_KEY_B"},
			def:      "fallback",
			expected: "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if got := getenvAny(tt.keys, tt.def); got != tt.expected {
				t.Errorf("getenvAny() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", value: "true", def: false, expected: true},
		{name: "false value", value: "false", def: true, expected: false},
		{name: "invalid value uses default", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)

			if got := mustBool("TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []string
	}{
		{name: "empty", in: "", expected: nil},
		{name: "single", in: "localhost", expected: []string{"localhost"}},
		{name: "spaces and quotes", in: ` "a.example" , 'b.example',, c `, expected: []string{"a.example", "b.example", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, splitAndTrim(tt.in)); diff != "" {
				t.Errorf("splitAndTrim() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFESSIO_STORE_BACKEND", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")

	cfg := Load()

	if cfg.StoreBackend != StoreBadger {
		t.Errorf("StoreBackend = %v, want %v", cfg.StoreBackend, StoreBadger)
	}
	if cfg.APIKey != "legacy-key" {
		t.Errorf("APIKey = %v, want %v", cfg.APIKey, "legacy-key")
	}
	if cfg.ChatModel != "gemini-2.5-flash" {
		t.Errorf("ChatModel = %v, want %v", cfg.ChatModel, "gemini-2.5-flash")
	}
	if cfg.RetrievalModel != "gemini-3.1-pro-preview" {
		t.Errorf("RetrievalModel = %v, want %v", cfg.RetrievalModel, "gemini-3.1-pro-preview")
	}
	if cfg.RequestTimeout != 90*time.Second {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, 90*time.Second)
	}
}

func TestLoadPanics(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "unknown backend",
			env:  map[string]string{"CONFESSIO_STORE_BACKEND": "sqlite"},
		},
		{
			name: "redis without address",
			env:  map[string]string{"CONFESSIO_STORE_BACKEND": "redis", "CONFESSIO_REDIS_ADDR": ""},
		},
		{
			name: "redis password required but missing",
			env: map[string]string{
				"CONFESSIO_STORE_BACKEND":           "redis",
				"CONFESSIO_REDIS_ADDR":              "localhost:6379",
				"CONFESSIO_REDIS_PASSWORD_REQUIRED": "true",
				"CONFESSIO_REDIS_PASSWORD":          "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Load() should have panicked")
				}
			}()
			Load()
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{APIKey: "secret", RedisPassword: "pw", RedisUser: "default"}
	got := cfg.Redacted()

	if got.APIKey == "secret" || got.RedisPassword == "pw" || got.RedisUser == "default" {
		t.Errorf("Redacted() leaked a secret: %+v", got)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("Redacted() modified the receiver")
	}
}
