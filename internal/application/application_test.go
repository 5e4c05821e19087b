package application

import (
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/rrc-engineering/ilr-calculator/internal/config"
	"github.com/rrc-engineering/ilr-calculator/internal/metrics"
)

func TestNewInitializesDependencies(t *testing.T) {
	cfg := baseTestConfig(":8085")
	cfg.InitialParameters = metrics.Parameters{
		ModulesPerString: 30,
		ModulePowerW:     550,
		InverterACKVA:    1250,
	}
	logger := zaptest.NewLogger(t)

	app, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	params, err := app.storage.GetParameters()
	if err != nil {
		t.Fatalf("GetParameters returned error: %v", err)
	}
	if params != cfg.InitialParameters {
		t.Fatalf("expected parameters %+v, got %+v", cfg.InitialParameters, params)
	}
	if app.server == nil || app.router == nil || app.handler == nil {
		t.Fatalf("expected server, router, and handler to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := baseTestConfig("9090")
	handler := http.NewServeMux()

	server := NewServer(cfg, handler)
	if server.Addr != ":9090" {
		t.Fatalf("expected address :9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != cfg.ReadHeaderTimeout ||
		server.WriteTimeout != cfg.WriteTimeout ||
		server.IdleTimeout != cfg.IdleTimeout {
		t.Fatalf("server timeouts do not match configuration")
	}
}

func TestNewReturnsErrorForInvalidParameters(t *testing.T) {
	cfg := baseTestConfig(":0")
	cfg.InitialParameters = metrics.Parameters{}

	if _, err := New(cfg, zaptest.NewLogger(t)); err == nil {
		t.Fatalf("expected error for invalid plant parameters")
	}
}

func baseTestConfig(port string) config.Config {
	return config.Config{
		Port: port,
		InitialParameters: metrics.Parameters{
			ModulesPerString: 27,
			ModulePowerW:     625,
			InverterACKVA:    1100,
		},
		ShutdownGracePeriod:  50 * time.Millisecond,
		ReadHeaderTimeout:    20 * time.Millisecond,
		WriteTimeout:         30 * time.Millisecond,
		IdleTimeout:          40 * time.Millisecond,
		EnableRequestLogging: false,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
	}
}
