package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestReadConfig(t *testing.T) {
	var (
		err         error
		projectRoot string
	)

	// Get the project root by going up from internal/config
	projectRoot, err = filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	var cfg Config

	cfg, err = ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	// Test basic config fields
	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	if cfg.Webserver.JWTSecret == "" {
		t.Error("Webserver.JWTSecret should not be empty")
	}

	// Test DB config
	if cfg.DB.Host == "" {
		t.Error("DB.Host should not be empty")
	}

	// Carrier settings
	if cfg.Carrier.BaseURL == "" {
		t.Error("Carrier.BaseURL should not be empty")
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig("/nonexistent/path/")
	if err == nil {
		t.Fatal("ReadConfig() should fail for a missing config file")
	}

	if !strings.Contains(err.Error(), "failed to read main config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{}
	valid.Webserver.Port = 8080
	valid.Webserver.URL = "http://localhost:8080"
	valid.Webserver.JWTSecret = "secret"

	if err := validate(valid); err != nil {
		t.Errorf("validate() error = %v, want nil", err)
	}

	noPort := valid
	noPort.Webserver.Port = 0

	if err := validate(noPort); err == nil {
		t.Error("validate() should fail when port is 0")
	}

	noURL := valid
	noURL.Webserver.URL = ""

	if err := validate(noURL); err == nil {
		t.Error("validate() should fail when url is empty")
	}

	noSecret := valid
	noSecret.Webserver.JWTSecret = ""

	if err := validate(noSecret); err == nil {
		t.Error("validate() should fail when jwtSecret is empty")
	}
}

func TestDumpConfig(t *testing.T) {
	c := Config{Title: "EVCare-Admin"}

	out, err := DumpConfig(c)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if !strings.Contains(out, "EVCare-Admin") {
		t.Error("DumpConfig() output should contain the title")
	}

	jsonOut, err := DumpConfigJSON(c)
	if err != nil {
		t.Fatalf("DumpConfigJSON() error = %v", err)
	}

	if !strings.Contains(jsonOut, "EVCare-Admin") {
		t.Error("DumpConfigJSON() output should contain the title")
	}
}
