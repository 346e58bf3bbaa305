package bootstrap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	errs "cubego/internal/errors"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestSetupDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Setup(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if cfg.BoardSize != 19 || cfg.ServerPort != "8080" || cfg.CommandQueueSize != 16 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("shutdown timeout = %s", cfg.ShutdownTimeout)
	}
}

func TestSetupReadsEnvFile(t *testing.T) {
	path := writeEnv(t, "SERVER_PORT=9000\nBOARD_SIZE=9\nLOCAL_CORS=true\nSHUTDOWN_TIMEOUT=250ms\n")
	cfg, err := Setup(path)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if cfg.ServerPort != "9000" || cfg.BoardSize != 9 || !cfg.IsLocalCors {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 250*time.Millisecond {
		t.Fatalf("shutdown timeout = %s", cfg.ShutdownTimeout)
	}
}

func TestSetupEnvironmentOverridesFile(t *testing.T) {
	path := writeEnv(t, "BOARD_SIZE=9\n")
	t.Setenv("BOARD_SIZE", "7")
	cfg, err := Setup(path)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if cfg.BoardSize != 7 {
		t.Fatalf("board size = %d, want 7", cfg.BoardSize)
	}
}

func TestSetupRejectsInvalidSize(t *testing.T) {
	path := writeEnv(t, "BOARD_SIZE=0\n")
	if _, err := Setup(path); !errors.Is(err, errs.ErrInvalidSize) {
		t.Fatalf("setup error = %v, want ErrInvalidSize", err)
	}

	path = writeEnv(t, "BOARD_SIZE=30\nMAX_BOARD_SIZE=20\n")
	if _, err := Setup(path); err == nil {
		t.Fatalf("expected max size error")
	}
}
