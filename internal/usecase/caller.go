package usecase

import "kks-tracker/internal/domain/worker"

// Caller is the authenticated worker on whose behalf a usecase runs.
type Caller struct {
	WorkerID int64
	Role     worker.Role
}

func (c Caller) scope(requested int64) (worker.Scope, error) {
	if c.WorkerID <= 0 {
		return worker.Scope{}, ErrUnauthorized
	}
	s, err := worker.ResolveScope(c.WorkerID, c.Role, requested)
	if err != nil {
		return worker.Scope{}, ErrForbidden
	}
	return s, nil
}
