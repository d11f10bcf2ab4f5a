package v1

import "github.com/gofiber/fiber/v3"

// RegisterCatalog mounts the reference lists: criteria, organizations,
// program types and programs.
func RegisterCatalog(r fiber.Router, h Handlers, authMw, adminOnly fiber.Handler) {
	if r == nil {
		return
	}

	if h.KKS != nil {
		h.KKS.RegisterRoutes(r.Group("/kks", authMw), adminOnly)
	}
	if h.Organizations != nil {
		h.Organizations.RegisterRoutes(r.Group("/organizations", authMw), adminOnly)
	}
	if h.ProgramTypes != nil {
		h.ProgramTypes.RegisterRoutes(r.Group("/program-types", authMw), adminOnly)
	}
	if h.Programs != nil {
		h.Programs.RegisterRoutes(r.Group("/programs", authMw), adminOnly)
	}
}
