package logger

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// New builds the process logger. format is "json" or "text"; an unknown level falls back to info.
func New(level, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

// RequestLogger logs one line per handled request. Errors from the chain are rendered through the
// app's ErrorHandler here so the logged status is the one sent to the client.
func RequestLogger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()

		entry := log.WithFields(logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  status,
			"latency": time.Since(start).String(),
			"ip":      c.IP(),
		})
		if status >= fiber.StatusInternalServerError {
			entry.Warn("request failed")
		} else {
			entry.Debug("request handled")
		}
		return nil
	}
}
