package handler

import (
	"kks-tracker/internal/delivery/http/dto"
	"kks-tracker/internal/domain/catalog"
	"kks-tracker/internal/pkg/response"
	"kks-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProgramTypeHandler struct {
	uc usecase.ProgramTypeUsecase
}

type programTypeRequest struct {
	Name string `json:"name"`
}

func NewProgramTypeHandler(uc usecase.ProgramTypeUsecase) *ProgramTypeHandler {
	return &ProgramTypeHandler{uc: uc}
}

func (h *ProgramTypeHandler) RegisterRoutes(r fiber.Router, adminOnly fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", adminOnly, h.Create)
	r.Put("/:id", adminOnly, h.Update)
	r.Delete("/:id", adminOnly, h.Delete)
}

func (h *ProgramTypeHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	out := make([]dto.ProgramTypeResponse, 0, len(items))
	for _, t := range items {
		out = append(out, toProgramTypeResponse(t))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ProgramTypeHandler) Create(c fiber.Ctx) error {
	var req programTypeRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	t, err := h.uc.Create(c.Context(), req.Name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, toProgramTypeResponse(t))
}

func (h *ProgramTypeHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	var req programTypeRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	t, err := h.uc.Update(c.Context(), id, req.Name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toProgramTypeResponse(t))
}

func (h *ProgramTypeHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageDeleted, nil)
}

func toProgramTypeResponse(t catalog.ProgramType) dto.ProgramTypeResponse {
	return dto.ProgramTypeResponse{ID: t.ID, Name: t.Name}
}
