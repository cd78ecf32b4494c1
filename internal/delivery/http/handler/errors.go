package handler

import (
	"errors"

	"jobfinder/internal/delivery/http/middleware"
	"jobfinder/internal/pkg/response"
	"jobfinder/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusBadRequest, verr.Message, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Application belongs to another user", err)
	case errors.Is(err, usecase.ErrKeyReused):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request", err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, response.MessageConflict, err)
	case errors.Is(err, usecase.ErrUpstreamTimeout):
		return middleware.NewAppError(fiber.StatusGatewayTimeout, response.MessageGatewayTimeout, err)
	case errors.Is(err, usecase.ErrUpstream):
		return middleware.NewAppError(fiber.StatusBadGateway, response.MessageBadGateway, err)
	case errors.Is(err, usecase.ErrUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
