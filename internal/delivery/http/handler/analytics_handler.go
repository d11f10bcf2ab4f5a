package handler

import (
	"kks-tracker/internal/delivery/http/dto"
	"kks-tracker/internal/pkg/response"
	"kks-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AnalyticsHandler struct {
	training  usecase.TrainingStatusUsecase
	analytics usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(training usecase.TrainingStatusUsecase, analytics usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{training: training, analytics: analytics}
}

// RegisterRoutes mounts two top level paths, so authentication is passed in
// per route rather than through a group.
func (h *AnalyticsHandler) RegisterRoutes(r fiber.Router, authMw fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/training/status", authMw, h.TrainingStatus)
	r.Get("/analytics/dynamics", authMw, h.Dynamics)
}

func (h *AnalyticsHandler) TrainingStatus(c fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	workerID, err := queryInt64(c, "worker_id")
	if err != nil {
		return badRequest(err)
	}

	rep, err := h.training.GetStatus(c.Context(), caller, workerID)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.TrainingStatusResponse{
		WorkerID:  rep.WorkerID,
		CheckedAt: rep.CheckedAt,
		Rows:      make([]dto.KksStatusRow, 0, len(rep.Rows)),
	}
	for _, row := range rep.Rows {
		out.Rows = append(out.Rows, dto.KksStatusRow{
			CriterionID:    row.CriterionID,
			FullName:       row.FullName,
			ShortName:      row.ShortName,
			LastIssuedAt:   dto.FormatDate(row.LastIssuedAt),
			TrainingNeeded: row.TrainingNeeded,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *AnalyticsHandler) Dynamics(c fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	workerID, err := queryInt64(c, "worker_id")
	if err != nil {
		return badRequest(err)
	}

	rep, err := h.analytics.Dynamics(c.Context(), caller, usecase.AnalyticsQuery{
		WorkerID: workerID,
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.DynamicsResponse{
		WorkerID:      rep.WorkerID,
		Years:         rep.Years,
		Counts:        rep.Counts,
		Cumulative:    rep.Cumulative,
		K:             rep.K,
		Skipped:       rep.Skipped,
		ByCriterion:   make([]dto.CriterionCountResponse, 0, len(rep.ByCriterion)),
		ByProgramType: make([]dto.ProgramTypeCountResponse, 0, len(rep.ByProgramType)),
	}
	for _, it := range rep.ByCriterion {
		out.ByCriterion = append(out.ByCriterion, dto.CriterionCountResponse{
			CriterionID: it.CriterionID,
			ShortName:   it.ShortName,
			FullName:    it.FullName,
			Documents:   it.Documents,
		})
	}
	for _, it := range rep.ByProgramType {
		out.ByProgramType = append(out.ByProgramType, dto.ProgramTypeCountResponse{
			TypeID:    it.TypeID,
			Name:      it.Name,
			Documents: it.Documents,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
