package handler

import (
	"kks-tracker/internal/delivery/http/dto"
	"kks-tracker/internal/pkg/response"
	"kks-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type KKSHandler struct {
	uc usecase.KKSUsecase
}

type kksRequest struct {
	FullName  string `json:"full_name"`
	ShortName string `json:"short_name"`
}

func NewKKSHandler(uc usecase.KKSUsecase) *KKSHandler {
	return &KKSHandler{uc: uc}
}

func (h *KKSHandler) RegisterRoutes(r fiber.Router, adminOnly fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", adminOnly, h.Create)
	r.Put("/:id", adminOnly, h.Update)
	r.Delete("/:id", adminOnly, h.Delete)
}

func (h *KKSHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewKKSList(items))
}

func (h *KKSHandler) Create(c fiber.Ctx) error {
	var req kksRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	k, err := h.uc.Create(c.Context(), usecase.KKSInput{FullName: req.FullName, ShortName: req.ShortName})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewKKSResponse(k))
}

func (h *KKSHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	var req kksRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	k, err := h.uc.Update(c.Context(), id, usecase.KKSInput{FullName: req.FullName, ShortName: req.ShortName})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewKKSResponse(k))
}

func (h *KKSHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageDeleted, nil)
}
