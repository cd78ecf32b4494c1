package handler

import (
	"strings"

	"jobfinder/internal/delivery/http/dto"
	"jobfinder/internal/delivery/http/middleware"
	"jobfinder/internal/pkg/response"
	"jobfinder/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/apply", h.HandleApply)
	r.Get("/history/:userId", h.HandleHistory)
	r.Delete("/history/:userId/:applicationId", h.HandleDelete)
}

func (h *ApplicationHandler) HandleApply(c fiber.Ctx) error {
	var req dto.ApplyRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", err)
	}

	if id, ok := middleware.IdentityFrom(c); ok {
		if strings.TrimSpace(req.ClerkUserID) == "" {
			req.ClerkUserID = id.UserID
		}
		if strings.TrimSpace(req.UserEmail) == "" {
			req.UserEmail = id.Email
		}
	}
	if strings.TrimSpace(req.ClerkUserID) == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "clerkUserId is required", nil)
	}
	if err := middleware.RequireSameUser(c, req.ClerkUserID); err != nil {
		return err
	}

	created, err := h.uc.Apply(c.Context(), usecase.ApplyInput{
		ClerkUserID:    req.ClerkUserID,
		UserEmail:      req.UserEmail,
		JobTitle:       req.JobTitle,
		Company:        req.Company,
		Location:       req.Location,
		JobURL:         req.JobURL,
		IdempotencyKey: c.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusCreated, dto.ApplyResponse{
		Success:     true,
		Application: dto.NewApplicationResponse(created),
	})
}

func (h *ApplicationHandler) HandleHistory(c fiber.Ctx) error {
	userID := c.Params("userId")
	if err := middleware.RequireSameUser(c, userID); err != nil {
		return err
	}

	items, err := h.uc.History(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.HistoryResponse{
		Success:      true,
		Applications: dto.NewApplicationResponses(items),
	})
}

func (h *ApplicationHandler) HandleDelete(c fiber.Ctx) error {
	userID := c.Params("userId")
	if err := middleware.RequireSameUser(c, userID); err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, c.Params("applicationId")); err != nil {
		return mapUsecaseError(err)
	}

	return response.OK(c)
}
