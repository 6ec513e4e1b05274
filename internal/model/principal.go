package model

import "github.com/google/uuid"

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID uuid.UUID
	OrgID  uuid.UUID
	Role   string
}

const (
	RoleAdmin     = "ADMIN"
	RoleEstimator = "ESTIMATOR"
	RoleForeman   = "FOREMAN"
	RoleWorker    = "WORKER"
)

func (p Principal) IsAdmin() bool     { return p.Role == RoleAdmin }
func (p Principal) IsEstimator() bool { return p.Role == RoleEstimator }
func (p Principal) IsForeman() bool   { return p.Role == RoleForeman }
func (p Principal) IsWorker() bool    { return p.Role == RoleWorker }
