// Package logging configures the process-wide slog logger shared by the
// desktop app and the command-line tool.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tartampluch/go-petcare/internal/config"
)

// Options selects the log level and outputs.
type Options struct {
	Debug bool
	// Console receives a copy of every record. Nil disables it.
	Console io.Writer
	// Dir overrides the log directory (the user cache dir by default).
	Dir string
}

// Setup installs a JSON slog handler writing to the console and to a log file
// that is truncated on every start. The returned closer is nil when no file
// could be opened.
func Setup(opts Options) io.Closer {
	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, opts.Console)
	}

	var logFile *os.File
	if logPath, err := filePath(opts.Dir); err == nil {
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.Debug,
	})
	slog.SetDefault(slog.New(handler))

	if logFile == nil {
		return nil
	}
	return logFile
}

// StartupInfo logs build and environment details.
func StartupInfo(component string) {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, component,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// filePath resolves the log file inside dir, or inside the per-user cache
// directory when dir is empty. The directory is created owner-only.
func filePath(dir string) (string, error) {
	if dir == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
		}
		dir = filepath.Join(cacheDir, config.AppID)
	}

	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return filepath.Join(dir, config.LogFileName), nil
}
