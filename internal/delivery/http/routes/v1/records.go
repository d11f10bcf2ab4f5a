package v1

import "github.com/gofiber/fiber/v3"

func RegisterRecords(r fiber.Router, h Handlers, authMw, adminOnly fiber.Handler) {
	if r == nil {
		return
	}

	if h.Workers != nil {
		h.Workers.RegisterRoutes(r.Group("/workers", authMw), adminOnly)
	}
	if h.Documents != nil {
		h.Documents.RegisterRoutes(r.Group("/documents", authMw), adminOnly)
	}
}

func RegisterReports(r fiber.Router, h Handlers, authMw fiber.Handler) {
	if r == nil {
		return
	}

	if h.Analytics != nil {
		h.Analytics.RegisterRoutes(r, authMw)
	}
	if h.SystemStatus != nil {
		h.SystemStatus.RegisterRoutes(r, authMw)
	}
}
