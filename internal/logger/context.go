package logger

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// WithRequest returns a logger entry carrying request identity from Fiber.
func WithRequest(c fiber.Ctx) *logrus.Entry {
	logger := GetAppLogger()
	entry := logger.WithContext(context.Background())

	var requestID string
	if rid := c.Locals("requestid"); rid != nil {
		if ridStr, ok := rid.(string); ok {
			requestID = ridStr
		}
	}
	if requestID == "" {
		requestID = c.Get("X-Request-ID")
	}
	if requestID == "" {
		requestID = c.GetRespHeader("X-Request-ID")
	}
	if requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}

	entry = entry.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})

	return entry
}

// WithFields returns a logger entry with extra fields.
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields(fields))
}

// WithError returns a logger entry with an attached error.
func WithError(err error) *logrus.Entry {
	return GetAppLogger().WithError(err)
}

// WithModule returns a logger entry tagged with a module name
// ("auth", "report", "export").
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}

// WithDataset returns a logger entry tagged with a dataset name
// ("trees", "applications", "appointments").
func WithDataset(dataset string) *logrus.Entry {
	return GetAppLogger().WithField("dataset", dataset)
}

// WithModuleAndDataset returns a logger entry tagged with both.
func WithModuleAndDataset(module, dataset string) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields{
		"module":  module,
		"dataset": dataset,
	})
}
