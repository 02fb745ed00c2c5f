package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Path:    "src",
				Command: []string{"go", "test", "./..."},
			},
			wantErr: false,
		},
		{
			name: "missing path",
			config: Config{
				Command: []string{"make"},
			},
			wantErr: true,
		},
		{
			name: "missing command",
			config: Config{
				Path: "src",
			},
			wantErr: true,
		},
		{
			name: "blank executable",
			config: Config{
				Path:    "src",
				Command: []string{"", "arg"},
			},
			wantErr: true,
		},
		{
			name: "negative rate limit",
			config: Config{
				Path:      "src",
				Command:   []string{"make"},
				RateLimit: -time.Second,
			},
			wantErr: true,
		},
		{
			name: "negative poll interval",
			config: Config{
				Path:    "src",
				Command: []string{"make"},
				Poll:    -time.Millisecond,
			},
			wantErr: true,
		},
		{
			name: "unknown log level",
			config: Config{
				Path:    "src",
				Command: []string{"make"},
				Logging: LoggingConfig{Level: "loud"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Path: ".", Command: []string{"true"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.RateLimit != 0 {
		t.Errorf("RateLimit = %v, want 0", cfg.RateLimit)
	}
}

func TestValidateEmptyCommandSentinel(t *testing.T) {
	cfg := Config{Path: "."}
	if err := cfg.Validate(); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("Validate() error = %v, want ErrEmptyCommand", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rerun.yaml")
	content := `
path: "src"
command: ["go", "test", "./..."]
recursive: true
immediate: true
stop_on_error: true
rate_limit: 2s
poll: 500ms

exec:
  pty: true
  dir: "build"
  env:
    CGO_ENABLED: "0"

logging:
  level: "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Path != "src" {
		t.Errorf("Path = %v, want %v", cfg.Path, "src")
	}
	if len(cfg.Command) != 3 || cfg.Command[0] != "go" || cfg.Command[2] != "./..." {
		t.Errorf("Command = %v, want [go test ./...]", cfg.Command)
	}
	if !cfg.Recursive || !cfg.Immediate || !cfg.StopOnError {
		t.Errorf("flags = %v/%v/%v, want all true", cfg.Recursive, cfg.Immediate, cfg.StopOnError)
	}
	if cfg.RateLimit != 2*time.Second {
		t.Errorf("RateLimit = %v, want 2s", cfg.RateLimit)
	}
	if cfg.Poll != 500*time.Millisecond {
		t.Errorf("Poll = %v, want 500ms", cfg.Poll)
	}
	if !cfg.Exec.PTY || cfg.Exec.Dir != "build" || cfg.Exec.Env["CGO_ENABLED"] != "0" {
		t.Errorf("Exec = %+v", cfg.Exec)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %v, want debug", cfg.Logging.Level)
	}
}

func TestReadSkipsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rerun.yaml")
	if err := os.WriteFile(path, []byte("recursive: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !cfg.Recursive {
		t.Error("Recursive = false, want true")
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should reject a config without path and command")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rerun.yaml")
	if err := os.WriteFile(path, []byte("rate_limit: [oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should return error for malformed YAML")
	}
}
