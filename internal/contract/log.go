package contract

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide logger. It writes to stderr so that report output on stdout stays clean.
var Logger = newLogger()

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger
}

// SetLogLevel changes the level of the process-wide logger.
func SetLogLevel(level logrus.Level) {
	Logger.SetLevel(level)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger.WithError(err).Error(msg)
	os.Exit(1)
}

// LogWarn logs a warning message with its cause.
func LogWarn(msg string, err error) {
	Logger.WithError(err).Warn(msg)
}

// LogWarnFields logs a warning message with structured fields.
func LogWarnFields(msg string, fields logrus.Fields) {
	Logger.WithFields(fields).Warn(msg)
}

// LogInfo logs an informational message with structured fields.
func LogInfo(msg string, fields logrus.Fields) {
	Logger.WithFields(fields).Info(msg)
}
