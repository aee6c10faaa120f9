package logger

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/mini-maxit/lchelper/pkg/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	timeKey   = "time"
	levelKey  = "level"
	sourceKey = "source"
	msgKey    = "msg"
	callerKey = "caller"
)

var (
	sugarLogger *zap.SugaredLogger
	initOnce    sync.Once
)

// getLogDir returns the directory holding the rotated log files.
// Stdout is reserved for the tool output, so logs always go to a file.
func getLogDir() string {
	if logDir := os.Getenv("LOG_DIR"); logDir != "" {
		return logDir
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		wd, _ := os.Getwd()
		return filepath.Join(wd, constants.DefaultLogDir)
	}

	return filepath.Join(cacheDir, "lchelper", constants.DefaultLogDir)
}

func getLogLevel() zapcore.Level {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		levelStr = constants.DefaultLogLevel
	}

	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		return zap.InfoLevel
	}
	return level
}

func initializeLogger() {
	logPath := filepath.Join(getLogDir(), constants.DefaultLogFileName)

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		logPath = filepath.Join(os.TempDir(), constants.DefaultLogFileName)
	}

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     28,
		Compress:   true,
		LocalTime:  true,
	})

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        timeKey,
		LevelKey:       levelKey,
		NameKey:        sourceKey,
		CallerKey:      callerKey,
		MessageKey:     msgKey,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		w,
		getLogLevel(),
	)

	log := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	sugarLogger = log.Sugar()
}

// InitializeLogger builds the shared logger. Calling it more than once is a no-op.
func InitializeLogger() {
	initOnce.Do(initializeLogger)
}

// NewNamedLogger creates a new named SugaredLogger for a given component.
func NewNamedLogger(name string) *zap.SugaredLogger {
	InitializeLogger()
	return sugarLogger.Named(name)
}

// Sync flushes buffered log entries.
func Sync() {
	if sugarLogger != nil {
		_ = sugarLogger.Sync()
	}
}
