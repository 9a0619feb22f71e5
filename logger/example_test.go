package logger_test

import (
	"github.com/nexuslog/nexuslog/logger"
)

// Configure once, log from anywhere, shut down on exit.
func Example() {
	logger.BasicConfig("logs/app", logger.InfoLevel, false)
	defer logger.Shutdown()

	logger.Info("Application started")
	logger.Warnf("cache miss rate %.1f%%", 12.5)
}

// Named loggers share the writer for their output path.
func ExampleGetLogger() {
	logger.BasicConfig("logs/app", logger.DebugLevel, false)
	defer logger.Shutdown()

	api, _ := logger.GetLogger("api")
	db, _ := logger.GetLoggerLevel("db", logger.WarnLevel)

	api.Debug("handling request")
	db.Warn("slow query")
}

// A logger can be bound directly to its own output path.
func ExampleNew() {
	audit, err := logger.New("audit", "logs/audit", logger.InfoLevel)
	if err != nil {
		return
	}
	defer audit.Shutdown()

	audit.Info("user login")
}
