package handler

import (
	"kks-tracker/internal/delivery/http/dto"
	"kks-tracker/internal/pkg/response"
	"kks-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProgramHandler struct {
	uc  usecase.ProgramUsecase
	rec usecase.RecommendationUsecase
}

type createProgramRequest struct {
	Name           string  `json:"name"`
	TypeID         int64   `json:"type_id"`
	OrganizationID int64   `json:"organization_id"`
	KKSIDs         []int64 `json:"kks_ids"`
}

type updateProgramRequest struct {
	Name           *string `json:"name"`
	TypeID         *int64  `json:"type_id"`
	OrganizationID *int64  `json:"organization_id"`
}

type passportRequest struct {
	KKSIDs []int64 `json:"kks_ids"`
}

func NewProgramHandler(uc usecase.ProgramUsecase, rec usecase.RecommendationUsecase) *ProgramHandler {
	return &ProgramHandler{uc: uc, rec: rec}
}

func (h *ProgramHandler) RegisterRoutes(r fiber.Router, adminOnly fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/recommended", h.Recommended)
	r.Get("/:id", h.Details)
	r.Post("/", adminOnly, h.Create)
	r.Patch("/:id", adminOnly, h.Update)
	r.Put("/:id/passport", adminOnly, h.SetPassport)
	r.Delete("/:id", adminOnly, h.Delete)
}

func (h *ProgramHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProgramSummaryList(items))
}

// Recommended reads kks_ids as a comma separated list. Entries that are not
// integers are ignored; no usable ids yields an empty list.
func (h *ProgramHandler) Recommended(c fiber.Ctx) error {
	items, err := h.rec.RecommendPrograms(c.Context(), parseIDList(c.Query("kks_ids")))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProgramSummaryList(items))
}

func (h *ProgramHandler) Details(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	p, err := h.uc.Details(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProgramResponse(p))
}

func (h *ProgramHandler) Create(c fiber.Ctx) error {
	var req createProgramRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	p, err := h.uc.Create(c.Context(), usecase.ProgramInput{
		Name:           req.Name,
		TypeID:         req.TypeID,
		OrganizationID: req.OrganizationID,
		KKSIDs:         req.KKSIDs,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewProgramResponse(p))
}

func (h *ProgramHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	var req updateProgramRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	p, err := h.uc.Update(c.Context(), id, usecase.ProgramPatchInput{
		Name:           req.Name,
		TypeID:         req.TypeID,
		OrganizationID: req.OrganizationID,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProgramResponse(p))
}

func (h *ProgramHandler) SetPassport(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	var req passportRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	p, err := h.uc.SetPassport(c.Context(), id, req.KKSIDs)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProgramResponse(p))
}

func (h *ProgramHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageDeleted, nil)
}
