package response

import "github.com/gofiber/fiber/v3"

// Envelope is the body shape every failure and most successes share.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

const (
	MessageBadRequest          = "Bad request"
	MessageUnauthorized        = "Unauthorized"
	MessageForbidden           = "Forbidden"
	MessageNotFound            = "Not found"
	MessageConflict            = "Request already in progress"
	MessageInternalServerError = "Internal server error"
	MessageBadGateway          = "Failed to fetch jobs from provider"
	MessageGatewayTimeout      = "Job provider timed out"
	MessageServiceUnavailable  = "Service temporarily unavailable"
	MessageError               = "Error"
)

func JSON(c fiber.Ctx, status int, body any) error {
	return c.Status(normalizeStatus(status)).JSON(body)
}

func OK(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true})
}

func Error(c fiber.Ctx, status int, message string) error {
	st := normalizeStatus(status)
	if message == "" {
		message = DefaultMessageForStatus(st)
	}
	return c.Status(st).JSON(Envelope{Success: false, Message: message})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func DefaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusBadGateway:
		return MessageBadGateway
	case fiber.StatusGatewayTimeout:
		return MessageGatewayTimeout
	case fiber.StatusServiceUnavailable:
		return MessageServiceUnavailable
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
