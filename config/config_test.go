package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("MAX_HISTORY", "")
	t.Setenv("CALC_DB_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxHistory != 50 || cfg.CalcDBPath != "" || cfg.AdvisorEnabled() {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("MAX_HISTORY", "10")
	t.Setenv("CALC_DB_PATH", "data/calc.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxHistory != 10 || cfg.CalcDBPath != "data/calc.db" || !cfg.AdvisorEnabled() {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Error("expected error without token")
	}

	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("MAX_HISTORY", "many")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric MAX_HISTORY")
	}

	t.Setenv("MAX_HISTORY", "-1")
	if _, err := Load(); err == nil {
		t.Error("expected error for negative MAX_HISTORY")
	}
}
