package dto

import (
	"time"

	"kks-tracker/internal/domain/worker"
)

// StaffResponse is the short form used by pickers.
type StaffResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

type WorkerResponse struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"full_name"`
	JobTitle    string    `json:"job_title"`
	PlaceOfWork string    `json:"place_of_work"`
	Degree      string    `json:"degree"`
	Rank        string    `json:"rank"`
	Login       string    `json:"login"`
	Role        int16     `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

type LoginResponse struct {
	Worker       WorkerResponse `json:"worker"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func NewWorkerResponse(w worker.Worker) WorkerResponse {
	return WorkerResponse{
		ID:          w.ID,
		FullName:    w.FullName,
		JobTitle:    w.JobTitle,
		PlaceOfWork: w.PlaceOfWork,
		Degree:      w.Degree,
		Rank:        w.Rank,
		Login:       w.Login,
		Role:        int16(w.Role),
		CreatedAt:   w.CreatedAt,
	}
}
