package logging

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestInitWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	logger, err := Init(Options{Mode: "production", Level: "info", Filename: path})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer zap.ReplaceGlobals(zap.NewNop())

	zap.S().Infof("capacity computed for %s", "Jakarta")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}

func TestInitRejectsBadLevel(t *testing.T) {
	if _, err := Init(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
