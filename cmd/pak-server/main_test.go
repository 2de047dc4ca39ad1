package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yndnr/pak-go/internal/core/service"
	"github.com/yndnr/pak-go/internal/telemetry/logger"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "server.yaml", "key:\n  prefix: acme\n  digest: blake2b_256\nlog:\n  level: debug\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Key.Prefix != "acme" || cfg.Key.Digest != "blake2b_256" || cfg.Log.Level != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Key.ShortTokenLength != 8 {
		t.Errorf("unset fields should keep defaults, short length = %d", cfg.Key.ShortTokenLength)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeConfig(t, "server.toml", "[key]\ndigest = \"md5\"\n")

	_, err := loadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("loadConfig() error = %v, want invalid configuration", err)
	}
}

func TestGeneratorInfo(t *testing.T) {
	keys, err := service.NewKeyService(service.DefaultSettings("acme"), service.WithLogger(logger.Discard()))
	if err != nil {
		t.Fatalf("NewKeyService() error = %v", err)
	}

	info := generatorInfo(keys)()
	if info.Prefix != "acme" || info.Digest != "sha256" || info.RandomSource != "osrng" {
		t.Errorf("info = %+v", info)
	}
	if info.ShortTokenLength != 8 || info.LongTokenLength != 24 {
		t.Errorf("lengths = %d/%d", info.ShortTokenLength, info.LongTokenLength)
	}
}
