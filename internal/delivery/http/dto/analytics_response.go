package dto

import "time"

type KksStatusRow struct {
	CriterionID    int64   `json:"kks_id"`
	FullName       string  `json:"full_name"`
	ShortName      string  `json:"short_name"`
	LastIssuedAt   *string `json:"last_issued_at"`
	TrainingNeeded bool    `json:"training_needed"`
}

type TrainingStatusResponse struct {
	WorkerID  int64          `json:"worker_id"`
	CheckedAt time.Time      `json:"checked_at"`
	Rows      []KksStatusRow `json:"rows"`
}

type CriterionCountResponse struct {
	CriterionID int64  `json:"kks_id"`
	ShortName   string `json:"short_name"`
	FullName    string `json:"full_name"`
	Documents   int    `json:"documents"`
}

type ProgramTypeCountResponse struct {
	TypeID    int64  `json:"type_id"`
	Name      string `json:"name"`
	Documents int    `json:"documents"`
}

type DynamicsResponse struct {
	WorkerID      int64                      `json:"worker_id,omitempty"`
	Years         []int                      `json:"years"`
	Counts        []int                      `json:"counts"`
	Cumulative    []int                      `json:"cumulative"`
	K             int                        `json:"k"`
	Skipped       int                        `json:"skipped_undated"`
	ByCriterion   []CriterionCountResponse   `json:"by_kks"`
	ByProgramType []ProgramTypeCountResponse `json:"by_program_type"`
}
