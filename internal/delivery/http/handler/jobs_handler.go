package handler

import (
	"jobfinder/internal/delivery/http/dto"
	"jobfinder/internal/delivery/http/middleware"
	"jobfinder/internal/pkg/response"
	"jobfinder/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobSearchUsecase
}

func NewJobsHandler(uc usecase.JobSearchUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/find", h.HandleFind)
}

func (h *JobsHandler) HandleFind(c fiber.Ctx) error {
	var req dto.FindJobsRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", err)
		}
	}

	listings, err := h.uc.Search(c.Context(), req.Profession, req.Location)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.FindJobsResponse{Jobs: listings})
}
