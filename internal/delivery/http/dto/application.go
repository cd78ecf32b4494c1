package dto

import (
	"time"

	"jobfinder/internal/domain/application"
)

type ApplyRequest struct {
	ClerkUserID string `json:"clerkUserId"`
	UserEmail   string `json:"userEmail"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	JobURL      string `json:"jobUrl"`
}

type ApplicationResponse struct {
	ID          string `json:"id"`
	ClerkUserID string `json:"clerk_user_id"`
	UserEmail   string `json:"user_email"`
	JobTitle    string `json:"job_title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	JobURL      string `json:"job_url"`
	AppliedAt   string `json:"applied_at"`
}

type ApplyResponse struct {
	Success     bool                `json:"success"`
	Application ApplicationResponse `json:"application"`
}

type HistoryResponse struct {
	Success      bool                  `json:"success"`
	Applications []ApplicationResponse `json:"applications"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID.String(),
		ClerkUserID: a.ClerkUserID,
		UserEmail:   a.UserEmail,
		JobTitle:    a.JobTitle,
		Company:     a.Company,
		Location:    a.Location,
		JobURL:      a.JobURL,
		AppliedAt:   a.AppliedAt.UTC().Format(time.RFC3339),
	}
}

func NewApplicationResponses(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
