package handler

import (
	"kks-tracker/internal/delivery/http/dto"
	"kks-tracker/internal/domain/document"
	"kks-tracker/internal/pkg/response"
	"kks-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DocumentHandler struct {
	uc usecase.DocumentUsecase
}

type documentRequest struct {
	WorkerID   int64  `json:"worker_id"`
	ProgramID  int64  `json:"program_id"`
	RegNumber  string `json:"reg_number"`
	FormSeries string `json:"form_series"`
	FormNumber string `json:"form_number"`
	IssuedAt   string `json:"issued_at"`
	ValidFrom  string `json:"valid_from"`
	ValidTo    string `json:"valid_to"`
}

func NewDocumentHandler(uc usecase.DocumentUsecase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

func (h *DocumentHandler) RegisterRoutes(r fiber.Router, adminOnly fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", adminOnly, h.Create)
	r.Put("/:id", adminOnly, h.Update)
	r.Delete("/:id", adminOnly, h.Delete)
}

// List serves GET /documents?worker_id=&from=&to=. The caller's role decides
// whether worker_id is honoured.
func (h *DocumentHandler) List(c fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	workerID, err := queryInt64(c, "worker_id")
	if err != nil {
		return badRequest(err)
	}

	res, err := h.uc.List(c.Context(), caller, usecase.DocumentQuery{
		WorkerID: workerID,
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	var (
		scopeWorker int64
		items       []document.Listing
	)
	switch v := res.(type) {
	case usecase.OwnDocuments:
		scopeWorker, items = v.WorkerID, v.Items
	case usecase.AllDocuments:
		scopeWorker, items = v.WorkerID, v.Items
	}

	out := dto.DocumentListResponse{
		Visibility: res.Visibility().String(),
		WorkerID:   scopeWorker,
		Items:      make([]dto.DocumentListingResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.NewDocumentListing(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *DocumentHandler) Create(c fiber.Ctx) error {
	var req documentRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	d, err := h.uc.Create(c.Context(), req.input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewDocumentResponse(d))
}

func (h *DocumentHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	var req documentRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	d, err := h.uc.Update(c.Context(), id, req.input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDocumentResponse(d))
}

func (h *DocumentHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageDeleted, nil)
}

func (r documentRequest) input() usecase.DocumentInput {
	return usecase.DocumentInput{
		WorkerID:   r.WorkerID,
		ProgramID:  r.ProgramID,
		RegNumber:  r.RegNumber,
		FormSeries: r.FormSeries,
		FormNumber: r.FormNumber,
		IssuedAt:   r.IssuedAt,
		ValidFrom:  r.ValidFrom,
		ValidTo:    r.ValidTo,
	}
}
