package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rrc-engineering/ilr-calculator/internal/storage"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MODULES_PER_STRING", "")
	t.Setenv("MODULE_POWER_W", "")
	t.Setenv("INVERTER_AC_KVA", "")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.InitialParameters != storage.DefaultParameters() {
		t.Fatalf("expected default parameters, got %+v", cfg.InitialParameters)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MODULES_PER_STRING", "30")
	t.Setenv("MODULE_POWER_W", "550")
	t.Setenv("INVERTER_AC_KVA", "1250")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.InitialParameters.ModulesPerString != 30 {
		t.Fatalf("unexpected modules per string: %d", cfg.InitialParameters.ModulesPerString)
	}
	if cfg.InitialParameters.ModulePowerW != 550 {
		t.Fatalf("unexpected module power: %g", cfg.InitialParameters.ModulePowerW)
	}
	if cfg.InitialParameters.InverterACKVA != 1250 {
		t.Fatalf("unexpected inverter rating: %g", cfg.InitialParameters.InverterACKVA)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MODULES_PER_STRING", "")
	t.Setenv("MODULE_POWER_W", "")
	t.Setenv("INVERTER_AC_KVA", "")

	content := `
port: "8090"
modules_per_string: 28
module_power_w: 600
inverter_ac_kva: 1200
shutdown_grace_period: 5s
enable_request_logging: true
rate_limit:
  rps: 10
  burst: 20
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8090" {
		t.Fatalf("expected port 8090, got %s", cfg.Port)
	}
	if cfg.InitialParameters.ModulesPerString != 28 {
		t.Fatalf("unexpected modules per string: %d", cfg.InitialParameters.ModulesPerString)
	}
	if cfg.ShutdownGracePeriod != 5*time.Second {
		t.Fatalf("unexpected grace period: %s", cfg.ShutdownGracePeriod)
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Fatalf("unexpected rate limit: rps %g burst %d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadCLIOverridesWinOverEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MODULES_PER_STRING", "30")

	port := "7070"
	modules := 32
	cfg, err := Load(&CLIOverrides{Port: &port, ModulesPerString: &modules})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "7070" {
		t.Fatalf("expected CLI port to win, got %s", cfg.Port)
	}
	if cfg.InitialParameters.ModulesPerString != 32 {
		t.Fatalf("expected CLI modules per string to win, got %d", cfg.InitialParameters.ModulesPerString)
	}
}

func TestLoadRejectsMissingConfigFile(t *testing.T) {
	if _, err := Load(&CLIOverrides{ConfigFile: "does-not-exist.yaml"}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
