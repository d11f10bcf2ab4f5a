package v1

import (
	"kks-tracker/internal/delivery/http/handler"
	"kks-tracker/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth          *handler.AuthHandler
	KKS           *handler.KKSHandler
	Organizations *handler.OrganizationHandler
	ProgramTypes  *handler.ProgramTypeHandler
	Programs      *handler.ProgramHandler
	Workers       *handler.WorkerHandler
	Documents     *handler.DocumentHandler
	Analytics     *handler.AnalyticsHandler
	SystemStatus  *handler.SystemStatusHandler
}

// Register mounts /auth unauthenticated and every other resource behind
// authMw. Write routes are additionally gated per route by RequireAdmin.
func Register(r fiber.Router, h Handlers, authMw fiber.Handler) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	adminOnly := middleware.RequireAdmin()
	RegisterCatalog(r, h, authMw, adminOnly)
	RegisterRecords(r, h, authMw, adminOnly)
	RegisterReports(r, h, authMw)
}
