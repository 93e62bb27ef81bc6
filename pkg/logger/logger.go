package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"uptime-monitor/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

func Init(cfg *config.Config) *zerolog.Logger {
	baseLogger := New(cfg, os.Stdout)

	log.Logger = *baseLogger

	return baseLogger
}

// New builds the service logger writing to out, plus a rotating file when
// log.file is configured. The file always receives JSON.
func New(cfg *config.Config, out io.Writer) *zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || cfg.Log.Level == "" {
		level = zerolog.InfoLevel
	}

	var console io.Writer = out
	if !cfg.IsProduction() {
		console = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    false, // Enable colors
			PartsOrder: []string{
				"time", "level", "caller", "service", "env", "message", "err",
			},
			FormatLevel: func(i any) string {
				return strings.ToUpper(fmt.Sprintf("[%s]", i))
			},
			FormatCaller: func(caller any) string {
				return fmt.Sprintf("(%s)", caller)
			},
		}
	}

	writer := console
	if cfg.Log.File != "" {
		writer = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   true,
		})
	}

	baseLogger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("env", cfg.Env).
		Logger() // finalize

	// Add caller info for dev
	if !cfg.IsProduction() {
		baseLogger = baseLogger.With().Caller().Logger()
	}

	return &baseLogger
}
