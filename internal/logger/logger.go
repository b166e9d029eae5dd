package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// Initialize sets up the logger with proper configuration
func Initialize() {
	Logger = logrus.New()

	// Set log level based on environment
	var level logrus.Level
	switch os.Getenv("LOG_LEVEL") {
	case "DEBUG":
		level = logrus.DebugLevel
	case "INFO":
		level = logrus.InfoLevel
	case "WARN":
		level = logrus.WarnLevel
	case "ERROR":
		level = logrus.ErrorLevel
	default:
		level = logrus.InfoLevel
	}

	Logger.SetLevel(level)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	Logger.SetOutput(os.Stdout)

	Logger.WithFields(logrus.Fields{
		"log_level": level.String(),
	}).Info("Logging system initialized")
}

// GetLogger returns the configured logger instance
func GetLogger() *logrus.Logger {
	if Logger == nil {
		Initialize()
	}
	return Logger
}

// WithUser creates a logger with user context
func WithUser(userID uint) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"user_id": userID,
	})
}

// WithError creates a logger with error context
func WithError(err error, component string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"error":     err.Error(),
		"component": component,
	})
}

// Log levels convenience functions (with fields)
func Debug(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Debug(msg)
}

func Info(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Info(msg)
}

func Warn(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Warn(msg)
}

func Error(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Error(msg)
}

func Fatal(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Fatal(msg)
}
