// Package logging configures zerolog for the library and the CLI.
//
// Component loggers returned by GetLogger are usually created in package
// variables, before the CLI has parsed -v. They all write through a shared
// output that SetupLogger swaps, so they pick up the console and log file
// configured later.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFileEnv overrides the log file location. "-" disables the file.
const LogFileEnv = "TARGETENV_LOG_FILE"

// output is the writer behind every logger handed out by this package.
type output struct {
	mu sync.RWMutex
	w  io.Writer
}

func (o *output) Write(p []byte) (int, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.w.Write(p)
}

func (o *output) set(w io.Writer) {
	o.mu.Lock()
	o.w = w
	o.mu.Unlock()
}

var (
	shared  = &output{w: os.Stderr}
	logFile *os.File
)

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = zerolog.New(shared).With().Timestamp().Logger()
}

// Options controls SetupLogger.
type Options struct {
	// Verbosity: 0 warn, 1 info, 2 debug, 3+ trace.
	Verbosity int
	// Console defaults to stderr.
	Console io.Writer
	// LogFile defaults to $XDG_STATE_HOME/targetenv/targetenv.log; "-" disables it.
	LogFile string
}

// LevelFor maps a -v count to a log level.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger configures logging for a CLI run at the given verbosity.
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity, LogFile: os.Getenv(LogFileEnv)})
}

// Setup configures the global level, the console writer and the log file.
func Setup(opts Options) {
	zerolog.SetGlobalLevel(LevelFor(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    !colorCapable(console),
	}}

	path := opts.LogFile
	if path == "" {
		path = defaultLogFilePath()
	}

	var fileErr error
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	if path != "-" {
		logFile, fileErr = openLogFile(path)
		if fileErr == nil {
			writers = append(writers, logFile)
		}
	}

	shared.set(io.MultiWriter(writers...))
	log.Logger = zerolog.New(shared).With().Timestamp().Logger()
	if opts.Verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Failed to open log file, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", path).Msg("Logger initialized")
}

// GetLogger returns a logger tagged with a component name.
func GetLogger(name string) zerolog.Logger {
	return zerolog.New(shared).With().Timestamp().Str("component", name).Logger()
}

func colorCapable(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// defaultLogFilePath is under the XDG state directory
// (~/.local/state/targetenv/ when XDG_STATE_HOME is unset).
func defaultLogFilePath() string {
	if xdg.StateHome == "" {
		return "targetenv.log"
	}
	return filepath.Join(xdg.StateHome, "targetenv", "targetenv.log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
