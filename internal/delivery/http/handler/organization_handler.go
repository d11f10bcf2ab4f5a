package handler

import (
	"kks-tracker/internal/delivery/http/dto"
	"kks-tracker/internal/pkg/response"
	"kks-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type OrganizationHandler struct {
	uc usecase.OrganizationUsecase
}

type organizationRequest struct {
	FullName  string `json:"full_name"`
	ShortName string `json:"short_name"`
}

func NewOrganizationHandler(uc usecase.OrganizationUsecase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

func (h *OrganizationHandler) RegisterRoutes(r fiber.Router, adminOnly fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", adminOnly, h.Create)
	r.Put("/:id", adminOnly, h.Update)
	r.Delete("/:id", adminOnly, h.Delete)
}

func (h *OrganizationHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	out := make([]dto.OrganizationResponse, 0, len(items))
	for _, o := range items {
		out = append(out, dto.NewOrganizationResponse(o))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *OrganizationHandler) Create(c fiber.Ctx) error {
	var req organizationRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	o, err := h.uc.Create(c.Context(), usecase.OrganizationInput{FullName: req.FullName, ShortName: req.ShortName})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewOrganizationResponse(o))
}

func (h *OrganizationHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	var req organizationRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	o, err := h.uc.Update(c.Context(), id, usecase.OrganizationInput{FullName: req.FullName, ShortName: req.ShortName})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOrganizationResponse(o))
}

func (h *OrganizationHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageDeleted, nil)
}
