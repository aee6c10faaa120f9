package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/joho/godotenv"
	"github.com/mini-maxit/lchelper/internal/logger"
	"github.com/mini-maxit/lchelper/pkg/constants"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// ToolCommand is the tool executable followed by any fixed leading arguments.
	ToolCommand       []string
	ToolBinDir        string
	AllowedExtensions []string
	MaxWorkers        int
	ClearLines        int
	HistoryFile       string
}

// fileConfig mirrors Config for the optional YAML file. Environment variables take precedence.
type fileConfig struct {
	ToolCommand       string   `yaml:"toolCommand"`
	ToolBinDir        string   `yaml:"toolBinDir"`
	AllowedExtensions []string `yaml:"allowedExtensions"`
	MaxWorkers        int      `yaml:"maxWorkers"`
	ClearLines        *int     `yaml:"clearLines"`
	HistoryFile       string   `yaml:"historyFile"`
}

func NewConfig() *Config {
	logger := logger.NewNamedLogger("config")

	_, err := os.Stat(".env")
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Fatalf("failed to stat .env file with error: %v", err)
		}
	} else {
		err = godotenv.Load(".env")
		if err != nil {
			logger.Fatalf("failed to load .env file with error: %v", err)
		}
	}

	fc := loadFileConfig(logger)

	toolCommand, toolBinDir := toolConfig(logger, fc)
	allowedExtensions := resolverConfig(logger, fc)
	maxWorkers := schedulerConfig(logger, fc)
	clearLines, historyFile := consoleConfig(logger, fc)

	return &Config{
		ToolCommand:       toolCommand,
		ToolBinDir:        toolBinDir,
		AllowedExtensions: allowedExtensions,
		MaxWorkers:        maxWorkers,
		ClearLines:        clearLines,
		HistoryFile:       historyFile,
	}
}

func loadFileConfig(logger *zap.SugaredLogger) fileConfig {
	fc := fileConfig{}

	path := os.Getenv("LCHELPER_CONFIG")
	if path == "" {
		return fc
	}

	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		logger.Fatalf("failed to read config file %s with error: %v", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		logger.Fatalf("failed to parse config file %s with error: %v", path, err)
	}

	logger.Infof("Loaded config file %s", path)
	return fc
}

func toolConfig(logger *zap.SugaredLogger, fc fileConfig) ([]string, string) {
	toolCommandStr := os.Getenv("LEETCODE_CMD")
	if toolCommandStr == "" {
		toolCommandStr = fc.ToolCommand
	}
	if toolCommandStr == "" {
		toolCommandStr = constants.DefaultToolCommand
		logger.Warnf("LEETCODE_CMD is not set, using default value %s", constants.DefaultToolCommand)
	}
	toolCommand, err := shlex.Split(toolCommandStr)
	if err != nil {
		logger.Fatalf("failed to parse LEETCODE_CMD with error: %v", err)
	}
	if len(toolCommand) == 0 {
		logger.Fatalf("LEETCODE_CMD %q does not name an executable", toolCommandStr)
	}

	toolBinDir := os.Getenv("LEETCODE_BIN_DIR")
	if toolBinDir == "" {
		toolBinDir = fc.ToolBinDir
	}
	if toolBinDir == "" {
		toolBinDir = constants.DefaultToolBinDir
		logger.Warnf("LEETCODE_BIN_DIR is not set, using default value %s", constants.DefaultToolBinDir)
	}

	return toolCommand, expandHome(toolBinDir)
}

func resolverConfig(logger *zap.SugaredLogger, fc fileConfig) []string {
	var raw []string
	if allowedExtensionsStr := os.Getenv("ALLOWED_EXTENSIONS"); allowedExtensionsStr != "" {
		raw = strings.Split(allowedExtensionsStr, ",")
	} else if len(fc.AllowedExtensions) > 0 {
		raw = fc.AllowedExtensions
	} else {
		raw = strings.Split(constants.DefaultAllowedExtensions, ",")
		logger.Warnf("ALLOWED_EXTENSIONS is not set, using default value %s", constants.DefaultAllowedExtensions)
	}

	return NormalizeExtensions(raw)
}

func schedulerConfig(logger *zap.SugaredLogger, fc fileConfig) int {
	maxWorkersStr := os.Getenv("MAX_WORKERS")
	if maxWorkersStr == "" {
		if fc.MaxWorkers > 0 {
			return fc.MaxWorkers
		}
		logger.Warnf("MAX_WORKERS is not set, using default value %d", constants.DefaultMaxWorkers)
		return constants.DefaultMaxWorkers
	}

	maxWorkers, err := strconv.ParseInt(maxWorkersStr, 10, 8)
	if err != nil {
		logger.Fatalf("failed to parse MAX_WORKERS with error: %v", err)
	}
	if maxWorkers < 1 {
		logger.Fatalf("MAX_WORKERS must be positive, got %d", maxWorkers)
	}

	return int(maxWorkers)
}

func consoleConfig(logger *zap.SugaredLogger, fc fileConfig) (int, string) {
	var clearLines int
	clearLinesStr := os.Getenv("CONSOLE_CLEAR_LINES")
	switch {
	case clearLinesStr != "":
		parsed, err := strconv.Atoi(clearLinesStr)
		if err != nil {
			logger.Fatalf("failed to parse CONSOLE_CLEAR_LINES with error: %v", err)
		}
		clearLines = parsed
	case fc.ClearLines != nil:
		clearLines = *fc.ClearLines
	default:
		clearLines = constants.DefaultClearLines
	}
	if clearLines < 0 {
		clearLines = 0
	}

	historyFile := os.Getenv("HISTORY_FILE")
	if historyFile == "" {
		historyFile = fc.HistoryFile
	}
	if historyFile == "" {
		historyFile = constants.DefaultHistoryFile
	}

	return clearLines, expandHome(historyFile)
}

// NormalizeExtensions lower-cases extensions and makes sure each starts with a dot.
func NormalizeExtensions(raw []string) []string {
	extensions := make([]string, 0, len(raw))
	for _, ext := range raw {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions = append(extensions, ext)
	}
	return extensions
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
