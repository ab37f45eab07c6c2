// Package logging writes the diagnostics log. Every call is a no-op until
// Init succeeds, so packages can log unconditionally.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// EnvLogPath overrides the default log directory
const EnvLogPath = "LIBRETRANSLATOR_LOG_PATH"

// FileName is the diagnostics log file inside the log directory
const FileName = "diagnostics_log.txt"

var (
	diagLog  zerolog.Logger
	diagFile *os.File
	extra    []io.Writer
	logMu    sync.Mutex
	logReady bool
	dir      string
)

// ResolveDir picks the log directory: flag, then environment, then the OS default
func ResolveDir(flagPath string) (string, error) {
	if flagPath != "" {
		return absolute(flagPath)
	}

	if envPath := os.Getenv(EnvLogPath); envPath != "" {
		return absolute(envPath)
	}

	return getDefaultDir()
}

func absolute(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

// AddWriter mirrors every log line to w. Writers added before Init are
// picked up by Init.
func AddWriter(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	extra = append(extra, w)
	if logReady {
		diagLog = newLogger()
	}
}

func newLogger() zerolog.Logger {
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}}
	for _, w := range extra {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
			NoColor:    true,
		})
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Int("pid", os.Getpid()).Logger()
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	var err error
	diagFile, err = os.OpenFile(filepath.Join(dir, FileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	diagLog = newLogger()
	logReady = true
	return nil
}

// Close flushes and closes the log file. Safe to call more than once.
func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	extra = nil
	logReady = false
}

func logger() *zerolog.Logger {
	logMu.Lock()
	defer logMu.Unlock()
	if !logReady {
		return nil
	}
	l := diagLog
	return &l
}

func Info(msg string) {
	if l := logger(); l != nil {
		l.Info().Msg(msg)
	}
}

func Infof(format string, args ...any) {
	if l := logger(); l != nil {
		l.Info().Msg(fmt.Sprintf(format, args...))
	}
}

func Error(msg string) {
	if l := logger(); l != nil {
		l.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if l := logger(); l != nil {
		l.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if l := logger(); l != nil {
		l.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if l := logger(); l != nil {
		l.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

// TranslationRequest records a request leaving for the endpoint. The text
// itself is never logged.
func TranslationRequest(provider, source, target string, chars int) {
	l := logger()
	if l == nil {
		return
	}
	l.Info().
		Str("provider", provider).
		Str("source", source).
		Str("target", target).
		Int("chars", chars).
		Msg("translation_request")
}

// TranslationResult records how a request ended: "succeeded", "failed" or "error"
func TranslationResult(outcome string, totalMs float64, chars int) {
	l := logger()
	if l == nil {
		return
	}
	ev := l.Info()
	if outcome != "succeeded" {
		ev = l.Warn()
	}
	ev.Str("outcome", outcome).
		Float64("total_ms", totalMs).
		Int("chars", chars).
		Msg("translation_result")
}

func SessionStart(provider, source, target string, auto bool) {
	l := logger()
	if l == nil {
		return
	}
	l.Info().
		Str("provider", provider).
		Str("source", source).
		Str("target", target).
		Bool("auto", auto).
		Msg("session_start")
}

func SessionEnd(count int) {
	l := logger()
	if l == nil {
		return
	}
	l.Info().
		Int("translations", count).
		Msg("session_end")
}
