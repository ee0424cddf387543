package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRunRequestFromConfig(t *testing.T) {
	path := writeConfig(t, `{
		"run_id": "valley-1",
		"shape": "adjacent",
		"s": 0.1,
		"s_right": 0.2,
		"eps": 0.1,
		"eps_right": -0.1,
		"size": 5,
		"size_right": 6,
		"population": 200,
		"generations": 40,
		"u_ben": 0.01,
		"u_del": 0.3,
		"seed": 9
	}`)

	req, err := loadRunRequestFromConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if req.RunID != "valley-1" || req.Shape != "adjacent" {
		t.Fatalf("unexpected identity fields: %+v", req)
	}
	if req.SRight != 0.2 || req.EpsRight != -0.1 || req.SizeRight != 6 {
		t.Fatalf("unexpected right-hand fields: %+v", req)
	}
	if req.Population != 200 || req.Generations != 40 || req.Seed != 9 {
		t.Fatalf("unexpected run fields: %+v", req)
	}
	if req.DeleteriousRate != 0.3 || req.BeneficialRate != 0.01 {
		t.Fatalf("unexpected rates: %+v", req)
	}
}

func TestLoadRunRequestFromConfigPartial(t *testing.T) {
	path := writeConfig(t, `{"shape": "hybrid", "p_right": 0.75}`)

	req, err := loadRunRequestFromConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if req.Shape != "hybrid" || req.PRight != 0.75 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Population != 0 {
		t.Fatalf("absent keys must stay zero for API defaulting, got %+v", req)
	}
}

func TestLoadRunRequestFromConfigRejectsBadJSON(t *testing.T) {
	path := writeConfig(t, `{"shape":`)
	if _, err := loadRunRequestFromConfig(path); err == nil {
		t.Fatal("expected JSON error")
	}
}

func TestOverrideFromFlags(t *testing.T) {
	path := writeConfig(t, `{"shape": "simple", "generations": 10, "u_del": 0.1}`)
	req, err := loadRunRequestFromConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	overrideFromFlags(&req, map[string]bool{"gens": true, "seed": true}, map[string]any{
		"gens": 25,
		"seed": uint64(4),
	})
	if req.Generations != 25 || req.Seed != 4 {
		t.Fatalf("expected flag overrides, got %+v", req)
	}
	if req.DeleteriousRate != 0.1 {
		t.Fatalf("unset flags must not override config, got %+v", req)
	}
}
