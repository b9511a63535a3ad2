package logger

import (
	"carrental/config"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	mainLogPrefix  = "carrental-"
	errorLogPrefix = "errors-"
	auditLogPrefix = "audit-"
	logFileExt     = ".log"
	logDateLayout  = "20060102"
	logFileMode    = 0o644
	logDirMode     = 0o755
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

// InitFileLogger adds the daily main and error log files to the console output.
// The returned closer releases both files.
func InitFileLogger(cfg *config.Config, now time.Time) (io.Closer, error) {
	if err := os.MkdirAll(cfg.Log.Dir, logDirMode); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}

	mainFile, err := openAppend(dailyFile(cfg.Log.Dir, mainLogPrefix, now))
	if err != nil {
		return nil, err
	}

	errorFile, err := openAppend(dailyFile(cfg.Log.Dir, errorLogPrefix, now))
	if err != nil {
		mainFile.Close()

		return nil, err
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	writer := zerolog.MultiLevelWriter(
		console,
		mainFile,
		&levelFilter{writer: errorFile, min: zerolog.ErrorLevel},
	)

	log.Logger = zerolog.New(writer).With().Timestamp().Logger()

	return multiCloser{mainFile, errorFile}, nil
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}

// CleanOldLogs removes log files in dir last modified more than days before now.
func CleanOldLogs(dir string, days int, now time.Time) (removed int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log dir: %w", err)
	}

	cutoff := now.AddDate(0, 0, -days)

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != logFileExt {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("failed to stat log file")

			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				log.Warn().Err(err).Str("file", entry.Name()).Msg("failed to remove old log file")

				continue
			}

			removed++
		}
	}

	return removed, nil
}

func dailyFile(dir, prefix string, now time.Time) string {
	return filepath.Join(dir, prefix+now.Format(logDateLayout)+logFileExt)
}

func openAppend(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFileMode)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	return file, nil
}

type levelFilter struct {
	writer io.Writer
	min    zerolog.Level
}

func (f *levelFilter) Write(p []byte) (int, error) {
	return f.writer.Write(p)
}

func (f *levelFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < f.min {
		return len(p), nil
	}

	return f.writer.Write(p)
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error

	for _, closer := range m {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
