package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level represents log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case DEBUG:
		return zerolog.DebugLevel
	case WARN:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLevel converts a string to a Level
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG", "debug":
		return DEBUG
	case "INFO", "info":
		return INFO
	case "WARN", "warn":
		return WARN
	case "ERROR", "error":
		return ERROR
	default:
		return INFO
	}
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// F is a shorthand for creating a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Config holds logger configuration
type Config struct {
	Level      Level     // Minimum log level
	FilePath   string    // Path to log file, empty disables file output
	MaxSize    int64     // Max size in bytes before rotation (default: 10MB)
	MaxAge     int       // Max age in days (default: 7)
	MaxBackups int       // Max number of backup files (default: 5)
	Console    bool      // Human readable output on stderr
	Output     io.Writer // Extra JSON sink, used by tests
}

// DefaultConfig returns default logger configuration
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	logPath := filepath.Join(home, ".digicafe", "logs", "digicafe.log")

	return Config{
		Level:      INFO,
		FilePath:   logPath,
		MaxSize:    10 * 1024 * 1024,
		MaxAge:     7,
		MaxBackups: 5,
		Console:    false, // stderr would tear the TUI
	}
}

// Logger is the main logger instance
type Logger struct {
	config Config
	file   *rotatingFile
	zl     zerolog.Logger
}

var (
	globalLogger *Logger
	once         sync.Once
)

func init() {
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}
	zerolog.TimeFieldFormat = "2006-01-02T15:04:05.000Z07:00"
}

// Init initializes the global logger
func Init(config Config) error {
	var err error
	once.Do(func() {
		globalLogger, err = New(config)
	})
	return err
}

// New creates a new logger instance
func New(config Config) (*Logger, error) {
	l := &Logger{config: config}

	var writers []io.Writer
	if config.FilePath != "" {
		f, err := openRotating(config)
		if err != nil {
			return nil, err
		}
		l.file = f
		writers = append(writers, f)
	}
	if config.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    true,
			TimeFormat: "2006-01-02 15:04:05.000",
		})
	}
	if config.Output != nil {
		writers = append(writers, config.Output)
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	l.zl = zerolog.New(out).Level(config.Level.zerolog()).With().Timestamp().Logger()
	return l, nil
}

// log writes a log entry; depth counts wrapper frames between the caller
// and the exported method.
func (l *Logger) log(level Level, depth int, msg string, fields []Field) {
	if level < l.config.Level {
		return
	}

	var e *zerolog.Event
	switch level {
	case DEBUG:
		e = l.zl.Debug()
	case WARN:
		e = l.zl.Warn()
	case ERROR:
		e = l.zl.Error()
	default:
		e = l.zl.Info()
	}
	if e == nil {
		return
	}

	if len(fields) > 0 {
		kv := make([]interface{}, 0, len(fields)*2)
		for _, f := range fields {
			kv = append(kv, f.Key, f.Value)
		}
		e = e.Fields(kv)
	}
	e.Caller(2 + depth).Msg(msg)
}

// WithFields creates a new logger with preset fields
func (l *Logger) WithFields(fields ...Field) *Logger {
	ctx := l.zl.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &Logger{
		config: l.config,
		file:   l.file,
		zl:     ctx.Logger(),
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Field) {
	l.log(DEBUG, 0, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Field) {
	l.log(INFO, 0, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Field) {
	l.log(WARN, 0, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...Field) {
	l.log(ERROR, 0, msg, fields)
}

// Close closes the underlying log file
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// rotatingFile is an io.Writer over the log file that rotates by size and age
type rotatingFile struct {
	mu         sync.Mutex
	path       string
	maxSize    int64
	maxAge     time.Duration
	maxBackups int
	file       *os.File
	size       int64
	opened     time.Time
}

func openRotating(config Config) (*rotatingFile, error) {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &rotatingFile{
		path:       config.FilePath,
		maxSize:    config.MaxSize,
		maxAge:     time.Duration(config.MaxAge) * 24 * time.Hour,
		maxBackups: config.MaxBackups,
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	if r.needsRotation(0) {
		if err := r.rotate(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *rotatingFile) open() error {
	file, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	r.file = file
	r.size = info.Size()
	r.opened = info.ModTime()
	if r.size == 0 {
		r.opened = time.Now()
	}
	return nil
}

func (r *rotatingFile) needsRotation(n int) bool {
	if r.maxSize > 0 && r.size > 0 && r.size+int64(n) > r.maxSize {
		return true
	}
	return r.maxAge > 0 && r.size > 0 && time.Since(r.opened) > r.maxAge
}

// rotate shifts digicafe.log -> .1 -> .2 ... dropping anything past maxBackups
func (r *rotatingFile) rotate() error {
	if r.file != nil {
		r.file.Close()
		r.file = nil
	}

	for i := r.maxBackups - 1; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", r.path, i)
		newPath := fmt.Sprintf("%s.%d", r.path, i+1)
		_ = os.Rename(oldPath, newPath)
	}

	if r.maxBackups > 0 {
		if _, err := os.Stat(r.path); err == nil {
			if err := os.Rename(r.path, r.path+".1"); err != nil {
				return err
			}
		}
	} else {
		_ = os.Remove(r.path)
	}

	return r.open()
}

func (r *rotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.needsRotation(len(p)) {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	if r.file == nil {
		return 0, os.ErrClosed
	}
	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *rotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// Global logger functions

// Debug logs a debug message using the global logger
func Debug(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.log(DEBUG, 1, msg, fields)
	}
}

// Info logs an info message using the global logger
func Info(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.log(INFO, 1, msg, fields)
	}
}

// Warn logs a warning message using the global logger
func Warn(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.log(WARN, 1, msg, fields)
	}
}

// Error logs an error message using the global logger
func Error(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.log(ERROR, 1, msg, fields)
	}
}

// WithFields creates a new logger with preset fields using the global logger
func WithFields(fields ...Field) *Logger {
	if globalLogger != nil {
		return globalLogger.WithFields(fields...)
	}
	return nil
}

// Close closes the global logger
func Close() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}

// GetConfig returns the current logger configuration
func GetConfig() Config {
	if globalLogger != nil {
		return globalLogger.config
	}
	return DefaultConfig()
}
