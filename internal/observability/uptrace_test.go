package observability

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/riskibarqy/chess-tournament/internal/config"
	"github.com/riskibarqy/chess-tournament/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "chess-tournament-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitUptrace_EnabledWithoutDSNIsNoop(t *testing.T) {
	shutdown, err := InitUptrace(config.Config{UptraceEnabled: true}, nil)
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestPprofServer(t *testing.T) {
	srv, err := StartPprofServer(config.Config{}, logging.NewNop())
	if err != nil || srv != nil {
		t.Fatalf("expected nil server when pprof is disabled, got %v err=%v", srv, err)
	}

	srv, err = StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof server: %v", err)
	}

	resp, err := http.Get("http://" + srv.Addr + "/debug/pprof/cmdline")
	if err != nil {
		t.Fatalf("request pprof: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	if err := StopPprofServer(srv, nil, time.Second); err != nil {
		t.Fatalf("stop pprof server: %v", err)
	}
}

func TestPprofServer_BindError(t *testing.T) {
	_, err := StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:-1"}, logging.NewNop())
	if err == nil {
		t.Fatalf("expected error for invalid address")
	}
}

func TestPyroscopeConfig_Tags(t *testing.T) {
	got := pyroscopeConfig(config.Config{
		AppEnv:           config.EnvStage,
		ServiceName:      "chess-tournament-api",
		ServiceVersion:   "1.2.0",
		StorageDriver:    config.StoragePostgres,
		PyroscopeAppName: "chess-tournament",
	})

	if got.ApplicationName != "chess-tournament" {
		t.Fatalf("unexpected application name %q", got.ApplicationName)
	}
	if got.Tags["storage"] != config.StoragePostgres || got.Tags["version"] != "1.2.0" || got.Tags["env"] != config.EnvStage {
		t.Fatalf("unexpected tags: %+v", got.Tags)
	}
	if len(got.ProfileTypes) == 0 {
		t.Fatalf("expected profile types")
	}
}
