package worker

import "errors"

var ErrUnknownRole = errors.New("unknown role")

// Visibility decides which workers' records a caller may read.
type Visibility int

const (
	VisibilityOwn Visibility = iota + 1
	VisibilityAll
)

func (v Visibility) String() string {
	switch v {
	case VisibilityOwn:
		return "own"
	case VisibilityAll:
		return "all"
	default:
		return "unknown"
	}
}

// VisibilityFor maps an authenticated role to its visibility. There is no
// default: a role outside the known set is rejected.
func VisibilityFor(role Role) (Visibility, error) {
	switch role {
	case RoleStaff:
		return VisibilityOwn, nil
	case RoleAdmin:
		return VisibilityAll, nil
	default:
		return 0, ErrUnknownRole
	}
}

// Scope is the resolved read filter for a request.
type Scope struct {
	Visibility Visibility
	WorkerID   int64
}

// ResolveScope applies visibility to a requested worker id. Staff callers are
// always pinned to themselves. Admins may narrow to one worker or pass 0 for
// everyone.
func ResolveScope(callerID int64, role Role, requested int64) (Scope, error) {
	v, err := VisibilityFor(role)
	if err != nil {
		return Scope{}, err
	}
	if v == VisibilityOwn {
		return Scope{Visibility: v, WorkerID: callerID}, nil
	}
	if requested < 0 {
		requested = 0
	}
	return Scope{Visibility: v, WorkerID: requested}, nil
}
