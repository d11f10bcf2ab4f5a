package handler

import (
	"log"
	"time"

	"kks-tracker/internal/pkg/response"
	"kks-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SystemStatusHandler struct {
	uc  usecase.SystemStatusUsecase
	log *log.Logger
}

func NewSystemStatusHandler(uc usecase.SystemStatusUsecase, logger *log.Logger) *SystemStatusHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &SystemStatusHandler{uc: uc, log: logger}
}

func (h *SystemStatusHandler) RegisterRoutes(r fiber.Router, authMw fiber.Handler) {
	if r == nil {
		return
	}
	r.Get("/system/status", authMw, h.GetStatus)
}

func (h *SystemStatusHandler) GetStatus(c fiber.Ctx) error {
	start := time.Now()

	data, err := h.uc.GetStatus(c.Context())
	if err != nil {
		h.log.Printf("system_status method=%s path=%s status=error duration=%s err=%v", c.Method(), c.Path(), time.Since(start), err)
		return mapUsecaseError(err)
	}

	h.log.Printf("system_status method=%s path=%s status=ok duration=%s", c.Method(), c.Path(), time.Since(start))
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
