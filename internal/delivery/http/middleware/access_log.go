package middleware

import (
	"time"

	"jobfinder/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger *logger.Logger
}

func NewAccessLogMiddleware(log *logger.Logger) *AccessLogMiddleware {
	return &AccessLogMiddleware{logger: log}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		m.logger.Info("http access",
			"rid", rid,
			"ip", c.IP(),
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency_ms", time.Since(start).Milliseconds(),
			"resp_bytes", len(c.Response().Body()),
			"ua", c.Get(fiber.HeaderUserAgent),
		)

		return err
	}
}
