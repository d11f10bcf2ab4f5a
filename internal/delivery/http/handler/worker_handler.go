package handler

import (
	"kks-tracker/internal/delivery/http/dto"
	"kks-tracker/internal/domain/worker"
	"kks-tracker/internal/pkg/response"
	"kks-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type WorkerHandler struct {
	uc usecase.WorkerUsecase
}

type workerRequest struct {
	FullName    string `json:"full_name"`
	JobTitle    string `json:"job_title"`
	PlaceOfWork string `json:"place_of_work"`
	Degree      string `json:"degree"`
	Rank        string `json:"rank"`
	Login       string `json:"login"`
	Password    string `json:"password"`
	Role        *int16 `json:"role"`
}

type assignRequest struct {
	KKSID int64 `json:"kks_id"`
}

func NewWorkerHandler(uc usecase.WorkerUsecase) *WorkerHandler {
	return &WorkerHandler{uc: uc}
}

func (h *WorkerHandler) RegisterRoutes(r fiber.Router, adminOnly fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.ListStaff)
	r.Get("/admin", adminOnly, h.ListAll)
	r.Post("/", adminOnly, h.Create)
	r.Put("/:id", adminOnly, h.Update)
	r.Delete("/:id", adminOnly, h.Delete)
	r.Get("/:id/kks", adminOnly, h.ListAssigned)
	r.Post("/:id/kks", adminOnly, h.Assign)
	r.Delete("/:id/kks/:kksId", adminOnly, h.Unassign)
}

func (h *WorkerHandler) ListStaff(c fiber.Ctx) error {
	items, err := h.uc.ListStaff(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	out := make([]dto.StaffResponse, 0, len(items))
	for _, w := range items {
		out = append(out, dto.StaffResponse{ID: w.ID, FullName: w.FullName})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *WorkerHandler) ListAll(c fiber.Ctx) error {
	items, err := h.uc.ListAll(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	out := make([]dto.WorkerResponse, 0, len(items))
	for _, w := range items {
		out = append(out, dto.NewWorkerResponse(w))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *WorkerHandler) Create(c fiber.Ctx) error {
	in, err := bindWorker(c)
	if err != nil {
		return err
	}
	w, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewWorkerResponse(w))
}

func (h *WorkerHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	in, err := bindWorker(c)
	if err != nil {
		return err
	}
	w, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewWorkerResponse(w))
}

func (h *WorkerHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageDeleted, nil)
}

func (h *WorkerHandler) ListAssigned(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	ids, err := h.uc.ListAssignedCriteria(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"worker_id": id, "kks_ids": ids})
}

func (h *WorkerHandler) Assign(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	var req assignRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	if err := h.uc.AssignCriterion(c.Context(), id, req.KKSID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, fiber.Map{"worker_id": id, "kks_id": req.KKSID})
}

func (h *WorkerHandler) Unassign(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(err)
	}
	kksID, err := paramID(c, "kksId")
	if err != nil {
		return badRequest(err)
	}
	if err := h.uc.UnassignCriterion(c.Context(), id, kksID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageDeleted, nil)
}

// bindWorker requires an explicit role so a missing field never defaults to
// staff silently.
func bindWorker(c fiber.Ctx) (usecase.WorkerInput, error) {
	var req workerRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.WorkerInput{}, badRequest(err)
	}
	if req.Role == nil {
		return usecase.WorkerInput{}, badRequest(nil)
	}
	return usecase.WorkerInput{
		FullName:    req.FullName,
		JobTitle:    req.JobTitle,
		PlaceOfWork: req.PlaceOfWork,
		Degree:      req.Degree,
		Rank:        req.Rank,
		Login:       req.Login,
		Password:    req.Password,
		Role:        worker.Role(*req.Role),
	}, nil
}
