package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Namespaces.Prefixes["svg"] != "http://www.w3.org/2000/svg" {
		t.Errorf("Default svg prefix = %q", cfg.Namespaces.Prefixes["svg"])
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Default console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("Default file level = %q, want none", cfg.Logging.FileLogger.Level)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	configContent := `version: 1
namespaces:
  default: "http://www.w3.org/1999/xhtml"
  prefixes:
    ex: "urn:example"
logging:
  console:
    level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("Console level = %q, want debug", cfg.Logging.ConsoleLogger.Level)
	}

	ns := cfg.Namespaces.Map()
	if ns["ex"] != "urn:example" {
		t.Errorf("ex prefix = %q, want urn:example", ns["ex"])
	}
	if ns[""] != "http://www.w3.org/1999/xhtml" {
		t.Errorf("default namespace = %q", ns[""])
	}
}

func TestLoadConfiguration_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "wrong version", content: "version: 2\n"},
		{name: "unknown field", content: "version: 1\nselectors: []\n"},
		{name: "bad level", content: "logging:\n  console:\n    level: loud\n"},
		{name: "empty prefix uri", content: "namespaces:\n  prefixes:\n    ex: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}
			if _, err := LoadConfiguration(configPath); err == nil {
				t.Error("LoadConfiguration() expected error")
			}
		})
	}
}

func TestLoadConfiguration_MissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("LoadConfiguration() error = %v", err)
	}
}

func TestNamespacesConfig_Map(t *testing.T) {
	c := NamespacesConfig{Prefixes: map[string]string{"svg": "http://www.w3.org/2000/svg"}}

	ns := c.Map()
	if _, ok := ns[""]; ok {
		t.Error("Map() without default must not set the empty prefix")
	}
	if len(ns) != 1 {
		t.Errorf("Map() = %v", ns)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "version: 1") {
		t.Errorf("Dump() = %s", data)
	}

	tmpl, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(string(tmpl), "prefixes:") {
		t.Errorf("Prepare() = %s", tmpl)
	}
}

func TestLoggingConfig_Prepare(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "cssselect.log")
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "debug", Destination: logPath, Mode: "overwrite"},
	}

	log, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("Parsed selector")
	_ = log.Sync()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Parsed selector") || !strings.Contains(string(data), "cssselect") {
		t.Errorf("log file = %s", data)
	}
}

func TestLoggingConfig_Prepare_BadDestination(t *testing.T) {
	conf := LoggingConfig{
		FileLogger: LoggerConfig{Level: "normal", Destination: filepath.Join(t.TempDir(), "missing", "x.log")},
	}
	if _, err := conf.Prepare(); err == nil {
		t.Error("Prepare() expected error")
	}
}
