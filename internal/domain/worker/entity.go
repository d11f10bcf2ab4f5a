package worker

import "time"

type Role int16

const (
	RoleStaff Role = 0
	RoleAdmin Role = 1
)

func (r Role) Valid() bool {
	return r == RoleStaff || r == RoleAdmin
}

type Worker struct {
	ID           int64
	FullName     string
	JobTitle     string
	PlaceOfWork  string
	Degree       string
	Rank         string
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Assignment links a worker to a criterion they are expected to maintain.
type Assignment struct {
	WorkerID    int64
	CriterionID int64
}
