package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		cleanup func()
		check   func(t *testing.T)
	}{
		{
			name: "defaults apply without a config file",
			setup: func() {
				viper.Reset()
				setDefaults()
			},
			cleanup: func() {
				viper.Reset()
			},
			check: func(t *testing.T) {
				if GetInt("server.port") != 8080 {
					t.Errorf("Expected server.port to be 8080, got %d", GetInt("server.port"))
				}
				if GetDuration("autosave.debounce_delay") != 2*time.Second {
					t.Errorf("Expected autosave.debounce_delay to be 2s, got %v", GetDuration("autosave.debounce_delay"))
				}
				if GetString("documents.dir") != "./data/annotations" {
					t.Errorf("Expected documents.dir default, got %q", GetString("documents.dir"))
				}
			},
		},
		{
			name: "environment variable override",
			setup: func() {
				viper.Reset()
				setDefaults()
				viper.SetEnvPrefix("ANNOTATOR")
				viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
				viper.AutomaticEnv()
				os.Setenv("ANNOTATOR_SERVER_PORT", "9090")
			},
			cleanup: func() {
				os.Unsetenv("ANNOTATOR_SERVER_PORT")
				viper.Reset()
			},
			check: func(t *testing.T) {
				if GetInt("server.port") != 9090 {
					t.Errorf("Expected server.port to be 9090 from env, got %d", GetInt("server.port"))
				}
			},
		},
		{
			name: "validate rejects bad port",
			setup: func() {
				viper.Reset()
				setDefaults()
				viper.Set("server.port", -1)
			},
			cleanup: func() {
				viper.Reset()
			},
			check: func(t *testing.T) {
				if err := validate(); err == nil {
					t.Error("Expected validation error for negative port")
				}
			},
		},
		{
			name: "validate corrects autosave knobs",
			setup: func() {
				viper.Reset()
				setDefaults()
				viper.Set("autosave.debounce_delay", 0)
				viper.Set("autosave.max_attempts", 0)
			},
			cleanup: func() {
				viper.Reset()
			},
			check: func(t *testing.T) {
				if err := validate(); err != nil {
					t.Fatalf("validate: %v", err)
				}
				if GetDuration("autosave.debounce_delay") != 2*time.Second {
					t.Errorf("Expected debounce delay corrected to 2s, got %v", GetDuration("autosave.debounce_delay"))
				}
				if GetInt("autosave.max_attempts") != 3 {
					t.Errorf("Expected max attempts corrected to 3, got %d", GetInt("autosave.max_attempts"))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.cleanup()
			tt.check(t)
		})
	}
}

func TestConfigStructValidate(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: 8080},
		Documents: DocumentsConfig{Dir: "./data/annotations"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Autosave.DebounceDelay != 2*time.Second {
		t.Errorf("Expected debounce delay defaulted to 2s, got %v", cfg.Autosave.DebounceDelay)
	}

	bad := &Config{Server: ServerConfig{Port: 8080}}
	if err := bad.Validate(); err == nil {
		t.Error("Expected error for empty documents dir")
	}
}
