package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/mini-maxit/lchelper/internal/config"
	"github.com/mini-maxit/lchelper/pkg/constants"
)

// clearEnv isolates a test from the developer's shell environment.
func clearEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"LCHELPER_CONFIG",
		"LEETCODE_CMD",
		"LEETCODE_BIN_DIR",
		"ALLOWED_EXTENSIONS",
		"MAX_WORKERS",
		"CONSOLE_CLEAR_LINES",
		"HISTORY_FILE",
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestToolConfig_DefaultsAndCustom(t *testing.T) {
	home := clearEnv(t)

	cfg := NewConfig()
	if len(cfg.ToolCommand) != 1 || cfg.ToolCommand[0] != constants.DefaultToolCommand {
		t.Fatalf("expected default tool command [%s], got %v", constants.DefaultToolCommand, cfg.ToolCommand)
	}
	expectedBinDir := filepath.Join(home, ".cargo", "bin")
	if cfg.ToolBinDir != expectedBinDir {
		t.Fatalf("expected tool bin dir %q, got %q", expectedBinDir, cfg.ToolBinDir)
	}

	t.Setenv("LEETCODE_CMD", `"/opt/leet code/leetcode" --verbose`)
	t.Setenv("LEETCODE_BIN_DIR", "/opt/bin")
	cfg2 := NewConfig()
	if len(cfg2.ToolCommand) != 2 || cfg2.ToolCommand[0] != "/opt/leet code/leetcode" || cfg2.ToolCommand[1] != "--verbose" {
		t.Fatalf("expected tool command split by shell rules, got %q", cfg2.ToolCommand)
	}
	if cfg2.ToolBinDir != "/opt/bin" {
		t.Fatalf("expected tool bin dir %q, got %q", "/opt/bin", cfg2.ToolBinDir)
	}
}

func TestResolverConfig_DefaultsAndCustom(t *testing.T) {
	clearEnv(t)

	exts := NewConfig().AllowedExtensions
	if len(exts) != 1 || exts[0] != ".cpp" {
		t.Fatalf("expected default extensions [.cpp], got %v", exts)
	}

	t.Setenv("ALLOWED_EXTENSIONS", "CPP, .py,,rs")
	exts2 := NewConfig().AllowedExtensions
	if len(exts2) != 3 || exts2[0] != ".cpp" || exts2[1] != ".py" || exts2[2] != ".rs" {
		t.Fatalf("expected extensions [.cpp .py .rs], got %v", exts2)
	}
}

func TestSchedulerConfig_DefaultsAndCustom(t *testing.T) {
	clearEnv(t)

	if got := NewConfig().MaxWorkers; got != constants.DefaultMaxWorkers {
		t.Fatalf("expected default max workers %d, got %d", constants.DefaultMaxWorkers, got)
	}

	t.Setenv("MAX_WORKERS", "7")
	if got := NewConfig().MaxWorkers; got != 7 {
		t.Fatalf("expected max workers %d, got %d", 7, got)
	}
}

func TestConsoleConfig_DefaultsAndCustom(t *testing.T) {
	home := clearEnv(t)

	cfg := NewConfig()
	if cfg.ClearLines != constants.DefaultClearLines {
		t.Fatalf("expected default clear lines %d, got %d", constants.DefaultClearLines, cfg.ClearLines)
	}
	if cfg.HistoryFile != filepath.Join(home, ".lchelper_history") {
		t.Fatalf("unexpected default history file: %s", cfg.HistoryFile)
	}

	t.Setenv("CONSOLE_CLEAR_LINES", "0")
	t.Setenv("HISTORY_FILE", "/tmp/hist")
	cfg2 := NewConfig()
	if cfg2.ClearLines != 0 {
		t.Fatalf("expected clear lines 0, got %d", cfg2.ClearLines)
	}
	if cfg2.HistoryFile != "/tmp/hist" {
		t.Fatalf("expected history file %q, got %q", "/tmp/hist", cfg2.HistoryFile)
	}
}

func TestNewConfig_YAMLFileAndEnvPrecedence(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "lchelper.yaml")
	content := `
toolCommand: "leetcode-dev --no-color"
toolBinDir: /srv/bin
allowedExtensions: [".cpp", "py"]
maxWorkers: 2
clearLines: 5
historyFile: /srv/history
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	t.Setenv("LCHELPER_CONFIG", path)

	cfg := NewConfig()
	if len(cfg.ToolCommand) != 2 || cfg.ToolCommand[0] != "leetcode-dev" {
		t.Fatalf("unexpected tool command from file: %v", cfg.ToolCommand)
	}
	if cfg.ToolBinDir != "/srv/bin" {
		t.Fatalf("unexpected tool bin dir from file: %s", cfg.ToolBinDir)
	}
	if len(cfg.AllowedExtensions) != 2 || cfg.AllowedExtensions[1] != ".py" {
		t.Fatalf("unexpected extensions from file: %v", cfg.AllowedExtensions)
	}
	if cfg.MaxWorkers != 2 || cfg.ClearLines != 5 || cfg.HistoryFile != "/srv/history" {
		t.Fatalf("unexpected values from file: %+v", cfg)
	}

	// environment wins over the file
	t.Setenv("MAX_WORKERS", "9")
	t.Setenv("LEETCODE_CMD", "leetcode")
	cfg2 := NewConfig()
	if cfg2.MaxWorkers != 9 {
		t.Fatalf("expected env max workers 9, got %d", cfg2.MaxWorkers)
	}
	if len(cfg2.ToolCommand) != 1 || cfg2.ToolCommand[0] != "leetcode" {
		t.Fatalf("expected env tool command, got %v", cfg2.ToolCommand)
	}
	if cfg2.ToolBinDir != "/srv/bin" {
		t.Fatalf("expected file tool bin dir to survive, got %s", cfg2.ToolBinDir)
	}
}

func TestNormalizeExtensions(t *testing.T) {
	got := NormalizeExtensions([]string{" .CPP ", "py", "", "  "})
	if len(got) != 2 || got[0] != ".cpp" || got[1] != ".py" {
		t.Fatalf("unexpected normalized extensions: %v", got)
	}
}
