package dto

import "jobfinder/internal/domain/job"

type FindJobsRequest struct {
	Profession string `json:"profession"`
	Location   string `json:"location"`
}

type FindJobsResponse struct {
	Jobs []job.Listing `json:"jobs"`
}
