package middleware

import (
	"errors"
	"fmt"

	"jobfinder/internal/pkg/logger"
	"jobfinder/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Cause: cause}
}

type ErrorMiddleware struct {
	logger *logger.Logger
}

func NewErrorMiddleware(log *logger.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: log}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("panic recovered",
					"panic", fmt.Sprint(r),
					"method", c.Method(),
					"path", c.Path(),
				)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg := normalizeError(err)
		if status >= fiber.StatusInternalServerError {
			m.logger.Error("request failed",
				"status", status,
				"method", c.Method(),
				"path", c.Path(),
				"err", err,
			)
		}
		return response.Error(c, status, msg)
	}
}

// normalizeError never exposes a cause. 5xx responses carry only messages
// authored in handlers or the status default.
func normalizeError(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status < 400 || status > 599 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError
		}
		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(status)
		}
		return status, msg
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status < 400 || status > 599 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError
		}
		if status >= 500 {
			return status, response.DefaultMessageForStatus(status)
		}
		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(status)
		}
		return status, msg
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError
}
