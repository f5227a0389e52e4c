package main

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/chess-tournament/internal/platform/logging"
)

func TestParseSteps(t *testing.T) {
	if steps, err := parseSteps(nil); err != nil || steps != 1 {
		t.Fatalf("expected default of 1 step, got %d err=%v", steps, err)
	}
	if steps, err := parseSteps([]string{" 3 "}); err != nil || steps != 3 {
		t.Fatalf("expected 3 steps, got %d err=%v", steps, err)
	}
	if _, err := parseSteps([]string{"0"}); err == nil {
		t.Fatalf("expected error for zero steps")
	}
	if _, err := parseSteps([]string{"two"}); err == nil {
		t.Fatalf("expected error for non numeric steps")
	}
}

func TestParseVersion(t *testing.T) {
	if v, err := parseVersion("1"); err != nil || v != 1 {
		t.Fatalf("expected version 1, got %d err=%v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
}

func TestRun_Usage(t *testing.T) {
	err := run(context.Background(), nil, logging.NewNop())
	if !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRun_RequiresDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")
	if err := run(context.Background(), []string{"up"}, logging.NewNop()); err == nil {
		t.Fatalf("expected error without DB_URL")
	}
}
