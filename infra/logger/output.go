package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions configures a rotating log file. Sizes are in megabytes and ages
// in days; zero keeps the lumberjack defaults.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	outMu sync.RWMutex
	out   io.Writer = os.Stdout
)

func output() io.Writer {
	outMu.RLock()
	defer outMu.RUnlock()
	return out
}

// SetFile duplicates log output into a rotating file. Loggers created
// afterwards write to both stdout and the file. Closing the returned closer
// restores stdout only.
func SetFile(opts FileOptions) (io.Closer, error) {
	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	lj := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	outMu.Lock()
	out = io.MultiWriter(os.Stdout, lj)
	outMu.Unlock()
	return closerFunc(func() error {
		outMu.Lock()
		out = os.Stdout
		outMu.Unlock()
		return lj.Close()
	}), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
